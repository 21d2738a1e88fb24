package usecase

import (
	"go.uber.org/fx"

	"github.com/campus-canteen/canteen/internal/config"
	"github.com/campus-canteen/canteen/internal/domain/repository"
	pkgAuth "github.com/campus-canteen/canteen/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewCheckoutUseCase,
	NewVerificationUseCase,
	NewProofUseCase,
	NewMenuUseCase,
	func(orders repository.OrderRepository, completed repository.CompletedOrderRepository, hasher pkgAuth.PasswordHasher, tokens pkgAuth.Strategy, cfg *config.Config) *AdminUseCase {
		return NewAdminUseCase(orders, completed, hasher, tokens, cfg.AdminPasswordHash)
	},
)
