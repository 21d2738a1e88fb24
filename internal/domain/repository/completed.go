package repository

import (
	"context"

	"github.com/campus-canteen/canteen/internal/domain/model"
)

// CompletedOrderRepository is the append-only fulfillment journal.
type CompletedOrderRepository interface {
	Create(ctx context.Context, record *model.CompletedOrder) (*model.CompletedOrder, error)
	List(ctx context.Context) ([]model.CompletedOrder, error)
}
