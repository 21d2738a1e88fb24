package app

import (
	"context"
	"time"

	"github.com/campus-canteen/canteen/internal/config"
	"github.com/campus-canteen/canteen/internal/domain/model"
	"github.com/campus-canteen/canteen/internal/usecase"
)

// CanteenFacade is the single entry point the HTTP layer and the background
// worker talk to.
type CanteenFacade struct {
	checkout     *usecase.CheckoutUseCase
	verification *usecase.VerificationUseCase
	proofs       *usecase.ProofUseCase
	menu         *usecase.MenuUseCase
	admin        *usecase.AdminUseCase

	successURL string
	cancelURL  string
	staleAfter time.Duration
}

// NewCanteenFacade constructs CanteenFacade. The checkout redirect URLs point
// back at the student frontend.
func NewCanteenFacade(checkout *usecase.CheckoutUseCase, verification *usecase.VerificationUseCase, proofs *usecase.ProofUseCase, menu *usecase.MenuUseCase, admin *usecase.AdminUseCase, cfg *config.Config) *CanteenFacade {
	return &CanteenFacade{
		checkout:     checkout,
		verification: verification,
		proofs:       proofs,
		menu:         menu,
		admin:        admin,
		successURL:   cfg.AllowedOrigin + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:    cfg.AllowedOrigin + "/cart",
		staleAfter:   cfg.UploadStaleAfter,
	}
}

// CreateCheckout opens a hosted checkout session for the cart.
func (f *CanteenFacade) CreateCheckout(ctx context.Context, lines []model.CartLine) (string, error) {
	return f.checkout.CreateSession(ctx, lines, f.successURL, f.cancelURL)
}

// VerifyPayment checks the session with the processor and creates the order
// when paid.
func (f *CanteenFacade) VerifyPayment(ctx context.Context, sessionID string) (*model.Order, bool, error) {
	return f.verification.Verify(ctx, sessionID)
}

// OrderBySession fetches an order for status display.
func (f *CanteenFacade) OrderBySession(ctx context.Context, sessionID string) (*model.Order, error) {
	return f.verification.OrderBySession(ctx, sessionID)
}

// ProofQR renders the proof payload QR for the order.
func (f *CanteenFacade) ProofQR(ctx context.Context, sessionID string) ([]byte, error) {
	return f.proofs.QRCode(ctx, sessionID)
}

// UploadProof ingests a proof screenshot for the order.
func (f *CanteenFacade) UploadProof(ctx context.Context, sessionID, filename string, data []byte) (*model.Order, error) {
	return f.proofs.Upload(ctx, sessionID, filename, data)
}

// Menu returns the canonical menu.
func (f *CanteenFacade) Menu(ctx context.Context) ([]model.MenuItem, error) {
	return f.menu.List(ctx)
}

// IngestMenuDoc normalizes and upserts an admin menu document.
func (f *CanteenFacade) IngestMenuDoc(ctx context.Context, doc map[string]any) (*model.MenuItem, error) {
	return f.menu.Ingest(ctx, doc)
}

// AdminLogin checks the admin password and issues a session token.
func (f *CanteenFacade) AdminLogin(password string) (string, error) {
	return f.admin.Login(password)
}

// ParseAdminToken validates an admin session token.
func (f *CanteenFacade) ParseAdminToken(token string) error {
	return f.admin.ParseToken(token)
}

// AdminLookup resolves a scanned or typed value to an order.
func (f *CanteenFacade) AdminLookup(ctx context.Context, raw string) (*model.Order, error) {
	return f.admin.Lookup(ctx, raw)
}

// CompleteOrder journals an order handover.
func (f *CanteenFacade) CompleteOrder(ctx context.Context, token string) (*model.CompletedOrder, error) {
	return f.admin.Complete(ctx, token)
}

// CompletedOrders lists the fulfillment journal.
func (f *CanteenFacade) CompletedOrders(ctx context.Context) ([]model.CompletedOrder, error) {
	return f.admin.Completed(ctx)
}

// StaleUploads returns orders whose proof upload is overdue.
func (f *CanteenFacade) StaleUploads(ctx context.Context, limit int) ([]model.Order, error) {
	return f.verification.StalePendingUploads(ctx, f.staleAfter, limit)
}

// AuditSession re-checks a stale order's session with the processor.
func (f *CanteenFacade) AuditSession(ctx context.Context, order model.Order) error {
	return f.verification.AuditSession(ctx, order)
}
