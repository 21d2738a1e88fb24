package usecase

import (
	"context"

	"github.com/campus-canteen/canteen/internal/adapter/payment"
	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
)

// CheckoutUseCase opens hosted checkout sessions for student carts.
type CheckoutUseCase struct {
	provider payment.Provider
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(provider payment.Provider) *CheckoutUseCase {
	return &CheckoutUseCase{provider: provider}
}

// CreateSession validates the cart and opens a checkout session, returning
// the hosted payment page URL. No order exists until the payment is verified.
func (u *CheckoutUseCase) CreateSession(ctx context.Context, lines []model.CartLine, successURL, cancelURL string) (string, error) {
	if !model.ValidCart(lines) {
		return "", domainErrors.ErrInvalidCart
	}
	return u.provider.CreateCheckoutSession(ctx, lines, successURL, cancelURL)
}
