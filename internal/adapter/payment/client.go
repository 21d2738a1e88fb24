package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"

	"github.com/stripe/stripe-go/v76"
	stripeclient "github.com/stripe/stripe-go/v76/client"

	domainErrors "github.com/campus-canteen/canteen/internal/domain/errors"
	"github.com/campus-canteen/canteen/internal/domain/model"
)

// Provider exposes the operations the order lifecycle needs from the hosted
// payment processor. Payment state is only ever read through here.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, lines []model.CartLine, successURL, cancelURL string) (string, error)
	RetrieveSession(ctx context.Context, sessionID string) (*model.PaymentSession, error)
}

// StripeClient implements Provider against the Stripe checkout API.
type StripeClient struct {
	api      *stripeclient.API
	currency string
	logger   *slog.Logger
}

// NewStripeClient creates a Stripe-backed provider. backendURL overrides the
// API host and is only set in tests.
func NewStripeClient(secretKey, currency, backendURL string, logger *slog.Logger) (*StripeClient, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key must not be empty")
	}
	if currency == "" {
		return nil, fmt.Errorf("currency must not be empty")
	}

	var backends *stripe.Backends
	if backendURL != "" {
		if _, err := url.Parse(backendURL); err != nil {
			return nil, fmt.Errorf("parse backend url: %w", err)
		}
		backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL: stripe.String(backendURL),
		})
		backends = &stripe.Backends{API: backend, Connect: backend, Uploads: backend}
	}

	api := &stripeclient.API{}
	api.Init(secretKey, backends)

	return &StripeClient{api: api, currency: currency, logger: logger}, nil
}

// CreateCheckoutSession opens a hosted checkout session for the cart and
// returns the redirect URL. Nothing is persisted locally; the session id
// comes back through the processor's post-payment redirect.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, lines []model.CartLine, successURL, cancelURL string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems:  toLineItemParams(lines, c.currency),
	}
	params.Context = ctx

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.logger.Error("create checkout session failed", slog.String("error", err.Error()))
		return "", mapStripeError(err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("processor returned empty checkout url")
	}
	return session.URL, nil
}

// RetrieveSession fetches the authoritative payment state for a session,
// with line items expanded so verified orders can snapshot them.
func (c *StripeClient) RetrieveSession(ctx context.Context, sessionID string) (*model.PaymentSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("line_items")

	session, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, mapStripeError(err)
	}
	return sessionFromStripe(session), nil
}

func toLineItemParams(lines []model.CartLine, currency string) []*stripe.CheckoutSessionLineItemParams {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, l := range lines {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(toMinorUnits(l.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(l.Name),
				},
			},
			Quantity: stripe.Int64(int64(l.Qty)),
		})
	}
	return items
}

func sessionFromStripe(s *stripe.CheckoutSession) *model.PaymentSession {
	session := &model.PaymentSession{
		ID:    s.ID,
		Paid:  s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Total: fromMinorUnits(s.AmountTotal),
	}
	if s.LineItems == nil {
		return session
	}
	for _, li := range s.LineItems.Data {
		qty := li.Quantity
		if qty < 1 {
			qty = 1
		}
		session.Lines = append(session.Lines, model.OrderItem{
			Name:  li.Description,
			Price: fromMinorUnits(li.AmountTotal) / float64(qty),
			Qty:   int(qty),
		})
	}
	return session
}

func mapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return domainErrors.ErrSessionNotFound
		}
		return fmt.Errorf("processor error: %w", err)
	}
	// Anything that is not a processor verdict is a transport problem the
	// user can retry by reloading.
	return fmt.Errorf("%w: %w", domainErrors.ErrVerificationUnavailable, err)
}

func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
