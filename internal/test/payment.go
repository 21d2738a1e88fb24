package test

import (
	"context"

	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
)

// PaymentProviderStub simulates the hosted payment processor.
type PaymentProviderStub struct {
	CreateFn   func(context.Context, []model.CartLine, string, string) (string, error)
	RetrieveFn func(context.Context, string) (*model.PaymentSession, error)
	Sessions   map[string]*model.PaymentSession
}

// CreateCheckoutSession returns a configured or default checkout URL.
func (s *PaymentProviderStub) CreateCheckoutSession(ctx context.Context, lines []model.CartLine, successURL, cancelURL string) (string, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, lines, successURL, cancelURL)
	}
	return "https://checkout.test/session", nil
}

// RetrieveSession looks up sessions from the configured map.
func (s *PaymentProviderStub) RetrieveSession(ctx context.Context, sessionID string) (*model.PaymentSession, error) {
	if s.RetrieveFn != nil {
		return s.RetrieveFn(ctx, sessionID)
	}
	if session, ok := s.Sessions[sessionID]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, domainErrors.ErrSessionNotFound
}

// ObjectStoreStub keeps uploaded objects in-memory.
type ObjectStoreStub struct {
	SaveFn   func(context.Context, string, []byte) (string, error)
	RemoveFn func(context.Context, string) error
	Saved    map[string][]byte
	Removed  []string
	DirPath  string
}

// Save records the object and returns a synthetic URL.
func (s *ObjectStoreStub) Save(ctx context.Context, name string, data []byte) (string, error) {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, name, data)
	}
	if s.Saved == nil {
		s.Saved = make(map[string][]byte)
	}
	url := "http://store.test/uploads/" + name
	s.Saved[url] = data
	return url, nil
}

// Remove records removal requests.
func (s *ObjectStoreStub) Remove(ctx context.Context, publicURL string) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, publicURL)
	}
	s.Removed = append(s.Removed, publicURL)
	delete(s.Saved, publicURL)
	return nil
}

// Dir reports the configured directory.
func (s *ObjectStoreStub) Dir() string { return s.DirPath }
