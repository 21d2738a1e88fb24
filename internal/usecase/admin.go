package usecase

import (
	"context"

	"github.com/campus-canteen/canteen/internal/adapter/qr"
	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
	"github.com/campus-canteen/canteen/internal/domain/repository"
	pkgAuth "github.com/campus-canteen/canteen/internal/pkg/auth"
)

// adminSubject is the only identity this service signs tokens for; student
// identity lives with the external auth provider.
const adminSubject = "admin"

// AdminUseCase covers the counter-side workflow: login, token lookup and
// fulfillment.
type AdminUseCase struct {
	orders       repository.OrderRepository
	completed    repository.CompletedOrderRepository
	hasher       pkgAuth.PasswordHasher
	tokens       pkgAuth.Strategy
	passwordHash string
}

// NewAdminUseCase constructs AdminUseCase. passwordHash is the bcrypt hash
// of the shared admin password.
func NewAdminUseCase(orders repository.OrderRepository, completed repository.CompletedOrderRepository, hasher pkgAuth.PasswordHasher, tokens pkgAuth.Strategy, passwordHash string) *AdminUseCase {
	return &AdminUseCase{
		orders:       orders,
		completed:    completed,
		hasher:       hasher,
		tokens:       tokens,
		passwordHash: passwordHash,
	}
}

// Login checks the admin password and issues a signed session token.
func (u *AdminUseCase) Login(password string) (string, error) {
	if password == "" || u.passwordHash == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(u.passwordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.tokens.IssueToken(adminSubject)
}

// ParseToken validates an admin session token.
func (u *AdminUseCase) ParseToken(token string) error {
	if token == "" {
		return pkgAuth.ErrInvalidToken
	}
	subject, err := u.tokens.ParseToken(token)
	if err != nil {
		return err
	}
	if subject != adminSubject {
		return pkgAuth.ErrInvalidToken
	}
	return nil
}

// Lookup resolves a scanned or typed value to an order. It accepts a bare
// pickup token, a "Token: Txxxx" scanner payload or a full proof payload.
func (u *AdminUseCase) Lookup(ctx context.Context, raw string) (*model.Order, error) {
	token := qr.ExtractToken(raw)
	if token == "" {
		return nil, domainErrors.ErrNotFound
	}
	return u.orders.GetByToken(ctx, token)
}

// Complete records the handover of an order as a journal entry snapshotting
// its items and total. The order itself is never deleted, so a token can be
// audited after fulfillment.
func (u *AdminUseCase) Complete(ctx context.Context, token string) (*model.CompletedOrder, error) {
	order, err := u.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	return u.completed.Create(ctx, &model.CompletedOrder{
		OrderID: order.ID,
		Token:   order.Token,
		Items:   order.Items,
		Total:   order.Total,
	})
}

// Completed lists the fulfillment journal, newest first.
func (u *AdminUseCase) Completed(ctx context.Context) ([]model.CompletedOrder, error) {
	return u.completed.List(ctx)
}
