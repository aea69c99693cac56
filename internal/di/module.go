package di

import (
	"go.uber.org/fx"

	"github.com/tdnguyen/storefront/internal/adapter/assets"
	"github.com/tdnguyen/storefront/internal/app"
	"github.com/tdnguyen/storefront/internal/config"
	"github.com/tdnguyen/storefront/internal/logger"
	"github.com/tdnguyen/storefront/internal/pkg/auth"
	"github.com/tdnguyen/storefront/internal/server/http/router"
	"github.com/tdnguyen/storefront/internal/storage/postgres"
	"github.com/tdnguyen/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		assets.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
