package usecase

import (
	"go.uber.org/fx"

	"github.com/tdnguyen/storefront/internal/config"
	"github.com/tdnguyen/storefront/internal/domain/repository"
	pkgAuth "github.com/tdnguyen/storefront/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(newAuthUseCase),
	fx.Provide(NewCatalogUseCase),
	fx.Provide(NewCartUseCase),
	fx.Provide(NewPromotionUseCase),
	fx.Provide(newOrderUseCase),
)

type authParams struct {
	fx.In

	Users    repository.UserRepository
	Hasher   pkgAuth.PasswordHasher
	Strategy pkgAuth.Strategy
	Config   *config.Config
}

func newAuthUseCase(p authParams) *AuthUseCase {
	return NewAuthUseCase(p.Users, p.Hasher, p.Strategy, p.Config.AdminEmail)
}

type orderParams struct {
	fx.In

	Orders     repository.OrderRepository
	Carts      repository.CartRepository
	Products   repository.ProductRepository
	Promotions *PromotionUseCase
	Config     *config.Config
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Carts, p.Products, p.Promotions, p.Config.ExpressShippingFee)
}
