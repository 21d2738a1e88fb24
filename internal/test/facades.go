package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/campus-canteen/canteen/internal/domain/model"
)

// CheckoutFacadeStub provides controllable behaviour for checkout endpoints.
type CheckoutFacadeStub struct {
	CreateFn func(context.Context, []model.CartLine) (string, error)
}

// CreateCheckout delegates to provided function or returns a default URL.
func (s CheckoutFacadeStub) CreateCheckout(ctx context.Context, lines []model.CartLine) (string, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, lines)
	}
	return "https://checkout.test/session", nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	VerifyFn    func(context.Context, string) (*model.Order, bool, error)
	BySessionFn func(context.Context, string) (*model.Order, error)
	QRFn        func(context.Context, string) ([]byte, error)
	UploadFn    func(context.Context, string, string, []byte) (*model.Order, error)
}

// VerifyPayment delegates or returns a default verified order.
func (s OrderFacadeStub) VerifyPayment(ctx context.Context, sessionID string) (*model.Order, bool, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, sessionID)
	}
	return &model.Order{SessionID: sessionID, Token: "T1234", Status: model.OrderStatusPendingUpload}, true, nil
}

// OrderBySession delegates or returns a default order.
func (s OrderFacadeStub) OrderBySession(ctx context.Context, sessionID string) (*model.Order, error) {
	if s.BySessionFn != nil {
		return s.BySessionFn(ctx, sessionID)
	}
	return &model.Order{SessionID: sessionID, Token: "T1234"}, nil
}

// ProofQR delegates or returns placeholder bytes.
func (s OrderFacadeStub) ProofQR(ctx context.Context, sessionID string) ([]byte, error) {
	if s.QRFn != nil {
		return s.QRFn(ctx, sessionID)
	}
	return []byte("png"), nil
}

// UploadProof delegates or returns an uploaded order.
func (s OrderFacadeStub) UploadProof(ctx context.Context, sessionID, filename string, data []byte) (*model.Order, error) {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, sessionID, filename, data)
	}
	return &model.Order{SessionID: sessionID, Token: "T1234", Status: model.OrderStatusUploaded}, nil
}

// MenuFacadeStub simulates menu operations.
type MenuFacadeStub struct {
	MenuFn   func(context.Context) ([]model.MenuItem, error)
	IngestFn func(context.Context, map[string]any) (*model.MenuItem, error)
}

// Menu returns configured or default items.
func (s MenuFacadeStub) Menu(ctx context.Context) ([]model.MenuItem, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx)
	}
	return []model.MenuItem{{ID: "1", Name: "Tea", Price: 10, Available: 50}}, nil
}

// IngestMenuDoc returns the configured ingest result.
func (s MenuFacadeStub) IngestMenuDoc(ctx context.Context, doc map[string]any) (*model.MenuItem, error) {
	if s.IngestFn != nil {
		return s.IngestFn(ctx, doc)
	}
	return &model.MenuItem{ID: "1", Name: "Tea", Price: 10, Available: 50}, nil
}

// AdminFacadeStub simulates the counter-side workflow.
type AdminFacadeStub struct {
	LoginFn     func(string) (string, error)
	ParseFn     func(string) error
	LookupFn    func(context.Context, string) (*model.Order, error)
	CompleteFn  func(context.Context, string) (*model.CompletedOrder, error)
	CompletedFn func(context.Context) ([]model.CompletedOrder, error)
}

// AdminLogin returns a session token for valid scenarios.
func (s AdminFacadeStub) AdminLogin(password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(password)
	}
	return "admin-token", nil
}

// ParseAdminToken validates an admin session token.
func (s AdminFacadeStub) ParseAdminToken(token string) error {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return nil
}

// AdminLookup resolves tokens to orders.
func (s AdminFacadeStub) AdminLookup(ctx context.Context, raw string) (*model.Order, error) {
	if s.LookupFn != nil {
		return s.LookupFn(ctx, raw)
	}
	return &model.Order{Token: "T1234", Status: model.OrderStatusUploaded}, nil
}

// CompleteOrder records fulfillment.
func (s AdminFacadeStub) CompleteOrder(ctx context.Context, token string) (*model.CompletedOrder, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, token)
	}
	return &model.CompletedOrder{ID: 1, Token: token}, nil
}

// CompletedOrders lists the journal.
func (s AdminFacadeStub) CompletedOrders(ctx context.Context) ([]model.CompletedOrder, error) {
	if s.CompletedFn != nil {
		return s.CompletedFn(ctx)
	}
	return []model.CompletedOrder{{ID: 1, Token: "T1234"}}, nil
}

// CanteenFacadeStub aggregates facade dependencies for HTTP layer tests.
type CanteenFacadeStub struct {
	CheckoutFacadeStub
	OrderFacadeStub
	MenuFacadeStub
	AdminFacadeStub
}

// WorkerFacadeStub mimics worker interactions with the canteen facade.
type WorkerFacadeStub struct {
	Stale          [][]model.Order
	StaleFn        func(context.Context, int) ([]model.Order, error)
	AuditFn        func(context.Context, model.Order) error
	mu             sync.Mutex
	Audited        []model.Order
	staleCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// StaleUploads returns batches from the configured queue.
func (s *WorkerFacadeStub) StaleUploads(ctx context.Context, limit int) ([]model.Order, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.staleCallCount, 1)
	if int(call) <= len(s.Stale) {
		return s.Stale[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// AuditSession records audited orders.
func (s *WorkerFacadeStub) AuditSession(ctx context.Context, order model.Order) error {
	if s.AuditFn != nil {
		return s.AuditFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Audited = append(s.Audited, order)
	return nil
}
