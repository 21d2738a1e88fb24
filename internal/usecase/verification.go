package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/campus-canteen/canteen/internal/adapter/payment"
	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
	"github.com/campus-canteen/canteen/internal/domain/repository"
)

// maxTokenAttempts bounds the pickup-token retry loop. The token space holds
// 9000 values; hitting the bound means the space is nearly full and is worth
// an alarm rather than an endless loop.
const maxTokenAttempts = 16

// VerificationUseCase turns paid checkout sessions into orders. This is the
// only place orders are created.
type VerificationUseCase struct {
	orders   repository.OrderRepository
	menu     repository.MenuRepository
	provider payment.Provider
	logger   *slog.Logger

	// newToken is swappable in tests to force collisions.
	newToken func() string
}

// NewVerificationUseCase constructs VerificationUseCase.
func NewVerificationUseCase(orders repository.OrderRepository, menu repository.MenuRepository, provider payment.Provider, logger *slog.Logger) *VerificationUseCase {
	return &VerificationUseCase{
		orders:   orders,
		menu:     menu,
		provider: provider,
		logger:   logger,
		newToken: randomToken,
	}
}

// randomToken returns "T" plus four random digits in [1000,9999].
func randomToken() string {
	return fmt.Sprintf("T%d", 1000+rand.Intn(9000))
}

// Verify checks the session with the payment processor and, if paid, creates
// the order with a fresh pickup token. Paid reports the processor's verdict;
// an unpaid session yields (nil, false, nil). Re-verifying an already
// processed session returns the existing order unchanged.
func (u *VerificationUseCase) Verify(ctx context.Context, sessionID string) (*model.Order, bool, error) {
	if sessionID == "" {
		return nil, false, domainErrors.ErrSessionNotFound
	}

	session, err := u.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if !session.Paid {
		u.logger.Info("payment not completed", "session_id", sessionID)
		return nil, false, nil
	}

	order := &model.Order{
		SessionID: sessionID,
		Status:    model.OrderStatusPendingUpload,
		Items:     session.Lines,
		Total:     session.Total,
	}

	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		order.Token = u.newToken()
		stored, created, err := u.orders.Create(ctx, order)
		if err != nil {
			if errors.Is(err, domainErrors.ErrTokenTaken) {
				continue
			}
			return nil, true, err
		}
		if created {
			u.decrementAvailability(ctx, stored.Items)
			u.logger.Info("order created",
				"session_id", sessionID, "token", stored.Token, "total", stored.Total)
		}
		return stored, true, nil
	}

	u.logger.Error("pickup token space exhausted", "session_id", sessionID, "attempts", maxTokenAttempts)
	return nil, true, domainErrors.ErrTokenSpaceExhausted
}

// OrderBySession fetches an order for status display and QR issuance.
func (u *VerificationUseCase) OrderBySession(ctx context.Context, sessionID string) (*model.Order, error) {
	return u.orders.GetBySession(ctx, sessionID)
}

// decrementAvailability lowers stock counters for a freshly created order.
// Failures are logged, not surfaced: the order is already paid for.
func (u *VerificationUseCase) decrementAvailability(ctx context.Context, items []model.OrderItem) {
	for _, item := range items {
		if err := u.menu.DecrementAvailability(ctx, item.Name, item.Qty); err != nil {
			u.logger.Warn("failed to decrement availability", "item", item.Name, "error", err)
		}
	}
}

// StalePendingUploads returns orders that have been waiting for a proof
// upload longer than olderThan.
func (u *VerificationUseCase) StalePendingUploads(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return u.orders.ListStalePendingUpload(ctx, time.Now().Add(-olderThan), limit)
}

// AuditSession re-checks a stale order's session with the processor and logs
// the outcome. Observational only: the order is never mutated here.
func (u *VerificationUseCase) AuditSession(ctx context.Context, order model.Order) error {
	session, err := u.provider.RetrieveSession(ctx, order.SessionID)
	if err != nil {
		u.logger.Warn("stale order audit failed",
			"session_id", order.SessionID, "token", order.Token, "error", err)
		return err
	}
	if !session.Paid {
		u.logger.Error("stale order session no longer paid",
			"session_id", order.SessionID, "token", order.Token)
		return nil
	}
	u.logger.Warn("order paid but proof upload still pending",
		"session_id", order.SessionID, "token", order.Token, "age", time.Since(order.CreatedAt).String())
	return nil
}
