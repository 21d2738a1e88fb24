package di

import (
	"go.uber.org/fx"

	"github.com/campus-canteen/canteen/internal/adapter/payment"
	"github.com/campus-canteen/canteen/internal/app"
	"github.com/campus-canteen/canteen/internal/config"
	"github.com/campus-canteen/canteen/internal/logger"
	"github.com/campus-canteen/canteen/internal/pkg/auth"
	"github.com/campus-canteen/canteen/internal/server/http/handlers"
	"github.com/campus-canteen/canteen/internal/server/http/router"
	"github.com/campus-canteen/canteen/internal/storage/objectstore"
	"github.com/campus-canteen/canteen/internal/storage/postgres"
	"github.com/campus-canteen/canteen/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		objectstore.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(func(f *app.CanteenFacade) handlers.CanteenFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
