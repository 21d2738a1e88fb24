package handlers

import (
	"context"

	"github.com/campus-canteen/canteen/internal/domain/model"
)

// CheckoutFacade opens hosted checkout sessions.
type CheckoutFacade interface {
	CreateCheckout(ctx context.Context, lines []model.CartLine) (string, error)
}

// OrderFacade encapsulates the student-facing order lifecycle.
type OrderFacade interface {
	VerifyPayment(ctx context.Context, sessionID string) (*model.Order, bool, error)
	OrderBySession(ctx context.Context, sessionID string) (*model.Order, error)
	ProofQR(ctx context.Context, sessionID string) ([]byte, error)
	UploadProof(ctx context.Context, sessionID, filename string, data []byte) (*model.Order, error)
}

// MenuFacade serves and ingests menu items.
type MenuFacade interface {
	Menu(ctx context.Context) ([]model.MenuItem, error)
	IngestMenuDoc(ctx context.Context, doc map[string]any) (*model.MenuItem, error)
}

// AdminFacade covers the counter-side workflow.
type AdminFacade interface {
	AdminLogin(password string) (string, error)
	ParseAdminToken(token string) error
	AdminLookup(ctx context.Context, raw string) (*model.Order, error)
	CompleteOrder(ctx context.Context, token string) (*model.CompletedOrder, error)
	CompletedOrders(ctx context.Context) ([]model.CompletedOrder, error)
}

// CanteenFacade aggregates the full set of operations used across handlers.
type CanteenFacade interface {
	CheckoutFacade
	OrderFacade
	MenuFacade
	AdminFacade
}
