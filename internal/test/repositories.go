package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory and enforces the same
// uniqueness rules as the real store: session_id, token and qr_content.
type OrderRepositoryStub struct {
	CreateFn      func(context.Context, *model.Order) (*model.Order, bool, error)
	AttachProofFn func(context.Context, string, string, string) (*model.Order, error)

	mu        sync.Mutex
	bySession map[string]*model.Order
	byToken   map[string]*model.Order
	byQR      map[string]*model.Order
	next      int64
	Err       error
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		bySession: make(map[string]*model.Order),
		byToken:   make(map[string]*model.Order),
		byQR:      make(map[string]*model.Order),
		next:      1,
	}
}

// Seed inserts an order directly, bypassing uniqueness errors.
func (s *OrderRepositoryStub) Seed(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == 0 {
		order.ID = s.next
		s.next++
	}
	stored := order
	s.bySession[order.SessionID] = &stored
	s.byToken[order.Token] = &stored
	if order.QRContent != "" {
		s.byQR[order.QRContent] = &stored
	}
}

// Create mirrors the store semantics: idempotent per session, ErrTokenTaken
// on token collision.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return nil, false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.bySession[order.SessionID]; ok {
		copied := *existing
		return &copied, false, nil
	}
	if _, ok := s.byToken[order.Token]; ok {
		return nil, false, domainErrors.ErrTokenTaken
	}
	stored := *order
	stored.ID = s.next
	s.next++
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.bySession[stored.SessionID] = &stored
	s.byToken[stored.Token] = &stored
	copied := stored
	return &copied, true, nil
}

// GetBySession fetches order by session or returns not found.
func (s *OrderRepositoryStub) GetBySession(ctx context.Context, sessionID string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.bySession[sessionID]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByToken fetches order by pickup token or returns not found.
func (s *OrderRepositoryStub) GetByToken(ctx context.Context, token string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.byToken[token]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// QRContentExists reports whether any stored order holds the payload.
func (s *OrderRepositoryStub) QRContentExists(ctx context.Context, qrContent string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byQR[qrContent]
	return ok, nil
}

// AttachProof mirrors the atomic attach semantics of the real store.
func (s *OrderRepositoryStub) AttachProof(ctx context.Context, sessionID, qrContent, screenshotURL string) (*model.Order, error) {
	if s.AttachProofFn != nil {
		return s.AttachProofFn(ctx, sessionID, qrContent, screenshotURL)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byQR[qrContent]; ok {
		return nil, domainErrors.ErrDuplicateProof
	}
	order, ok := s.bySession[sessionID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusPendingUpload {
		return nil, domainErrors.ErrAlreadyExists
	}
	order.QRContent = qrContent
	order.PaymentScreenshot = screenshotURL
	order.Status = model.OrderStatusUploaded
	order.UpdatedAt = time.Now()
	s.byQR[qrContent] = order
	copied := *order
	return &copied, nil
}

// ListStalePendingUpload returns pending-upload orders created before cutoff.
func (s *OrderRepositoryStub) ListStalePendingUpload(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, order := range s.bySession {
		if order.Status == model.OrderStatusPendingUpload && order.CreatedAt.Before(cutoff) {
			result = append(result, *order)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

// MenuRepositoryStub stores menu items in-memory for tests.
type MenuRepositoryStub struct {
	mu         sync.Mutex
	Items      map[string]*model.MenuItem
	Decrements []MenuDecrement
	Err        error
}

// MenuDecrement records a DecrementAvailability invocation.
type MenuDecrement struct {
	Name string
	Qty  int
}

// NewMenuRepositoryStub constructs stub repository with initialized map.
func NewMenuRepositoryStub() *MenuRepositoryStub {
	return &MenuRepositoryStub{Items: make(map[string]*model.MenuItem)}
}

// Upsert stores the item keyed by name.
func (s *MenuRepositoryStub) Upsert(ctx context.Context, item *model.MenuItem) (*model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *item
	s.Items[item.Name] = &stored
	copied := stored
	return &copied, nil
}

// List returns all stored items.
func (s *MenuRepositoryStub) List(ctx context.Context) ([]model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.MenuItem
	for _, item := range s.Items {
		result = append(result, *item)
	}
	return result, nil
}

// DecrementAvailability records the call and lowers stock, flooring at zero.
func (s *MenuRepositoryStub) DecrementAvailability(ctx context.Context, name string, qty int) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Decrements = append(s.Decrements, MenuDecrement{Name: name, Qty: qty})
	if item, ok := s.Items[name]; ok {
		item.Available -= qty
		if item.Available < 0 {
			item.Available = 0
		}
	}
	return nil
}

// CompletedOrderRepositoryStub records fulfillment journal entries.
type CompletedOrderRepositoryStub struct {
	mu      sync.Mutex
	Records []model.CompletedOrder
	Err     error
}

// Create appends a journal record.
func (s *CompletedOrderRepositoryStub) Create(ctx context.Context, record *model.CompletedOrder) (*model.CompletedOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *record
	stored.ID = int64(len(s.Records) + 1)
	stored.CompletedAt = time.Now()
	s.Records = append(s.Records, stored)
	copied := stored
	return &copied, nil
}

// List returns recorded entries.
func (s *CompletedOrderRepositoryStub) List(ctx context.Context) ([]model.CompletedOrder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CompletedOrder(nil), s.Records...), nil
}
