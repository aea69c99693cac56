package app

import (
	"context"
	"io"
	"time"

	"github.com/tdnguyen/storefront/internal/adapter/assets"
	"github.com/tdnguyen/storefront/internal/domain/model"
	pkgAuth "github.com/tdnguyen/storefront/internal/pkg/auth"
	"github.com/tdnguyen/storefront/internal/usecase"
)

// StorefrontFacade is the single entry point the HTTP layer talks to. It
// aggregates the use cases behind one surface so handlers depend on a flat
// set of operations instead of individual use case types.
type StorefrontFacade struct {
	auth       *usecase.AuthUseCase
	catalog    *usecase.CatalogUseCase
	cart       *usecase.CartUseCase
	promotions *usecase.PromotionUseCase
	orders     *usecase.OrderUseCase
	uploads    assets.Client
}

func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	cart *usecase.CartUseCase,
	promotions *usecase.PromotionUseCase,
	orders *usecase.OrderUseCase,
	uploads assets.Client,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:       auth,
		catalog:    catalog,
		cart:       cart,
		promotions: promotions,
		orders:     orders,
		uploads:    uploads,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, email, username, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, email, username, password)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) User(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *StorefrontFacade) Products(ctx context.Context, categoryID *int64, includeHidden bool) ([]model.Product, error) {
	return f.catalog.ListProducts(ctx, categoryID, includeHidden)
}

func (f *StorefrontFacade) ProductDetail(ctx context.Context, id int64) (*usecase.ProductDetail, error) {
	return f.catalog.ProductDetail(ctx, id)
}

func (f *StorefrontFacade) AddReview(ctx context.Context, userID, productID int64, rating int, comment string) (*model.Review, error) {
	return f.catalog.AddReview(ctx, userID, productID, rating, comment)
}

func (f *StorefrontFacade) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	return f.catalog.CreateProduct(ctx, p)
}

func (f *StorefrontFacade) UpdateProduct(ctx context.Context, p *model.Product) error {
	return f.catalog.UpdateProduct(ctx, p)
}

func (f *StorefrontFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.DeleteProduct(ctx, id)
}

func (f *StorefrontFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *StorefrontFacade) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	return f.catalog.CreateCategory(ctx, name, description)
}

func (f *StorefrontFacade) UpdateCategory(ctx context.Context, c *model.Category) error {
	return f.catalog.UpdateCategory(ctx, c)
}

func (f *StorefrontFacade) DeleteCategory(ctx context.Context, id int64) error {
	return f.catalog.DeleteCategory(ctx, id)
}

func (f *StorefrontFacade) InventoryLogs(ctx context.Context, limit int) ([]model.InventoryLog, error) {
	return f.catalog.InventoryLogs(ctx, limit)
}

func (f *StorefrontFacade) CartAdd(ctx context.Context, userID, productID int64, quantity int, color, size string) (*model.CartItem, error) {
	return f.cart.Add(ctx, userID, productID, quantity, color, size)
}

func (f *StorefrontFacade) CartSetQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	return f.cart.SetQuantity(ctx, userID, itemID, quantity)
}

func (f *StorefrontFacade) CartRemove(ctx context.Context, userID, itemID int64) error {
	return f.cart.Remove(ctx, userID, itemID)
}

func (f *StorefrontFacade) Cart(ctx context.Context, userID int64) ([]model.CartLine, error) {
	return f.cart.List(ctx, userID)
}

func (f *StorefrontFacade) ApplyPromotion(ctx context.Context, userID int64, code string) (usecase.Evaluation, error) {
	return f.promotions.Apply(ctx, userID, code, time.Now())
}

func (f *StorefrontFacade) RemovePromotion(ctx context.Context, userID int64) error {
	return f.promotions.Remove(ctx, userID)
}

func (f *StorefrontFacade) AppliedPromotion(ctx context.Context, userID int64) (string, usecase.Evaluation, error) {
	return f.promotions.Applied(ctx, userID, time.Now())
}

func (f *StorefrontFacade) CreatePromotion(ctx context.Context, promo *model.Promotion) (*model.Promotion, error) {
	return f.promotions.CreatePromotion(ctx, promo)
}

func (f *StorefrontFacade) UpdatePromotion(ctx context.Context, promo *model.Promotion) error {
	return f.promotions.UpdatePromotion(ctx, promo)
}

func (f *StorefrontFacade) DeletePromotion(ctx context.Context, id int64) error {
	return f.promotions.DeletePromotion(ctx, id)
}

func (f *StorefrontFacade) Promotions(ctx context.Context) ([]model.Promotion, error) {
	return f.promotions.ListPromotions(ctx)
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, userID int64, shipping model.ShippingInfo) (*model.Order, error) {
	return f.orders.PlaceOrder(ctx, userID, shipping)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64, limit int) ([]model.Order, error) {
	return f.orders.History(ctx, userID, limit)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StorefrontFacade) ShippingFee(method model.ShippingMethod) int64 {
	return f.orders.ShippingFee(method)
}

func (f *StorefrontFacade) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	return f.uploads.Upload(ctx, filename, content)
}
