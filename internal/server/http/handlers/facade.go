package handlers

import (
	"context"
	"io"

	"github.com/tdnguyen/storefront/internal/domain/model"
	pkgAuth "github.com/tdnguyen/storefront/internal/pkg/auth"
	"github.com/tdnguyen/storefront/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, username, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
	User(ctx context.Context, id int64) (*model.User, error)
}

// CatalogFacade serves the public storefront catalog.
type CatalogFacade interface {
	Products(ctx context.Context, categoryID *int64, includeHidden bool) ([]model.Product, error)
	ProductDetail(ctx context.Context, id int64) (*usecase.ProductDetail, error)
	AddReview(ctx context.Context, userID, productID int64, rating int, comment string) (*model.Review, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

// CartFacade manages the authenticated account's cart.
type CartFacade interface {
	CartAdd(ctx context.Context, userID, productID int64, quantity int, color, size string) (*model.CartItem, error)
	CartSetQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	CartRemove(ctx context.Context, userID, itemID int64) error
	Cart(ctx context.Context, userID int64) ([]model.CartLine, error)
}

// PromotionFacade exposes discount code operations at the cart.
type PromotionFacade interface {
	ApplyPromotion(ctx context.Context, userID int64, code string) (usecase.Evaluation, error)
	RemovePromotion(ctx context.Context, userID int64) error
	AppliedPromotion(ctx context.Context, userID int64) (string, usecase.Evaluation, error)
}

// OrderFacade encapsulates checkout and order history.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID int64, shipping model.ShippingInfo) (*model.Order, error)
	Orders(ctx context.Context, userID int64, limit int) ([]model.Order, error)
}

// AdminFacade aggregates the management surface behind the admin routes.
type AdminFacade interface {
	Products(ctx context.Context, categoryID *int64, includeHidden bool) ([]model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)
	UpdateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	InventoryLogs(ctx context.Context, limit int) ([]model.InventoryLog, error)
	CreatePromotion(ctx context.Context, promo *model.Promotion) (*model.Promotion, error)
	UpdatePromotion(ctx context.Context, promo *model.Promotion) error
	DeletePromotion(ctx context.Context, id int64) error
	Promotions(ctx context.Context) ([]model.Promotion, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UploadImage(ctx context.Context, filename string, content io.Reader) (string, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	PromotionFacade
	OrderFacade
	AdminFacade
}
