package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/tdnguyen/storefront/internal/app"
	"github.com/tdnguyen/storefront/internal/config"
	"github.com/tdnguyen/storefront/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade *app.StorefrontFacade
	Config *config.Config
	Logger *slog.Logger
}

func newRouter(p routerParams) *gin.Engine {
	var facade handlers.StorefrontFacade = p.Facade
	return Setup(facade, p.Config, p.Logger)
}
