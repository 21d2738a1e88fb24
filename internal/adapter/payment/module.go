package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/campus-canteen/canteen/internal/config"
)

// Module exposes the payment provider implementation to the fx graph.
var Module = fx.Provide(newProvider)

type providerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newProvider(p providerParams) (Provider, error) {
	return NewStripeClient(p.Config.StripeSecretKey, p.Config.Currency, "", p.Logger)
}
