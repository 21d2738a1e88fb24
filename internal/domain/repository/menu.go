package repository

import (
	"context"

	"github.com/campus-canteen/canteen/internal/domain/model"
)

// MenuRepository describes persistence operations for menu items.
type MenuRepository interface {
	Upsert(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error)
	List(ctx context.Context) ([]model.MenuItem, error)
	// DecrementAvailability lowers the stock counter for a named item,
	// flooring at zero. Missing items are ignored.
	DecrementAvailability(ctx context.Context, name string, qty int) error
}
