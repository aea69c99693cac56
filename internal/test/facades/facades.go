// Package facades holds stub implementations of the handler facade
// interfaces for HTTP layer tests. It lives apart from the repository
// stubs because these stubs return usecase result types, which the
// usecase package's own tests must not depend on.
package facades

import (
	"context"
	"io"
	"time"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	pkgAuth "github.com/tdnguyen/storefront/internal/pkg/auth"
	"github.com/tdnguyen/storefront/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (pkgAuth.Claims, error)
	UserFn         func(context.Context, int64) (*model.User, error)
}

// Register returns a default customer for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, username, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, username, password)
	}
	return &model.User{ID: 1, Email: email, Username: username, Role: model.RoleCustomer}, "token", nil
}

// Authenticate returns a default customer for successful sign-in scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleCustomer}, "token", nil
}

// ParseToken returns stored claims for the authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Claims{UserID: 1, Role: "customer"}, nil
}

// User returns the default account.
func (s AuthFacadeStub) User(ctx context.Context, id int64) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, id)
	}
	return &model.User{ID: id, Email: "user@example.com", Role: model.RoleCustomer}, nil
}

// CatalogFacadeStub serves canned catalog data.
type CatalogFacadeStub struct {
	ProductsFn      func(context.Context, *int64, bool) ([]model.Product, error)
	ProductDetailFn func(context.Context, int64) (*usecase.ProductDetail, error)
	AddReviewFn     func(context.Context, int64, int64, int, string) (*model.Review, error)
	CategoriesFn    func(context.Context) ([]model.Category, error)
}

// Products returns configured products or a single default.
func (s CatalogFacadeStub) Products(ctx context.Context, categoryID *int64, includeHidden bool) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, categoryID, includeHidden)
	}
	return []model.Product{{ID: 1, Name: "Shirt", Price: 100, Active: true}}, nil
}

// ProductDetail returns configured detail or a default page.
func (s CatalogFacadeStub) ProductDetail(ctx context.Context, id int64) (*usecase.ProductDetail, error) {
	if s.ProductDetailFn != nil {
		return s.ProductDetailFn(ctx, id)
	}
	return &usecase.ProductDetail{
		Product: model.Product{ID: id, Name: "Shirt", Price: 100, Active: true},
		Price:   100,
	}, nil
}

// AddReview delegates to override or echoes the review back.
func (s CatalogFacadeStub) AddReview(ctx context.Context, userID, productID int64, rating int, comment string) (*model.Review, error) {
	if s.AddReviewFn != nil {
		return s.AddReviewFn(ctx, userID, productID, rating, comment)
	}
	return &model.Review{ID: 1, ProductID: productID, UserID: userID, Rating: rating, Comment: comment}, nil
}

// Categories returns configured categories or a single default.
func (s CatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []model.Category{{ID: 1, Name: "Apparel"}}, nil
}

// CartFacadeStub provides controllable behaviour for cart endpoints.
type CartFacadeStub struct {
	AddFn         func(context.Context, int64, int64, int, string, string) (*model.CartItem, error)
	SetQuantityFn func(context.Context, int64, int64, int) error
	RemoveFn      func(context.Context, int64, int64) error
	CartFn        func(context.Context, int64) ([]model.CartLine, error)
}

// CartAdd delegates to override or returns the added line.
func (s CartFacadeStub) CartAdd(ctx context.Context, userID, productID int64, quantity int, color, size string) (*model.CartItem, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID, quantity, color, size)
	}
	return &model.CartItem{ID: 1, UserID: userID, ProductID: productID, Quantity: quantity, Color: color, Size: size}, nil
}

// CartSetQuantity executes the configured override when provided.
func (s CartFacadeStub) CartSetQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(ctx, userID, itemID, quantity)
	}
	return nil
}

// CartRemove executes the configured override when provided.
func (s CartFacadeStub) CartRemove(ctx context.Context, userID, itemID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, itemID)
	}
	return nil
}

// Cart returns configured lines or a single default line.
func (s CartFacadeStub) Cart(ctx context.Context, userID int64) ([]model.CartLine, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return []model.CartLine{{
		Item:      model.CartItem{ID: 1, UserID: userID, ProductID: 1, Quantity: 2},
		Product:   model.Product{ID: 1, Name: "Shirt", Price: 100, Active: true},
		UnitPrice: 100,
		LineTotal: 200,
	}}, nil
}

// PromotionFacadeStub provides controllable behaviour for promotion
// endpoints.
type PromotionFacadeStub struct {
	ApplyFn   func(context.Context, int64, string) (usecase.Evaluation, error)
	RemoveFn  func(context.Context, int64) error
	AppliedFn func(context.Context, int64) (string, usecase.Evaluation, error)
}

// ApplyPromotion returns a valid evaluation by default.
func (s PromotionFacadeStub) ApplyPromotion(ctx context.Context, userID int64, code string) (usecase.Evaluation, error) {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, userID, code)
	}
	return usecase.Evaluation{Valid: true, Discount: 25}, nil
}

// RemovePromotion executes the configured override when provided.
func (s PromotionFacadeStub) RemovePromotion(ctx context.Context, userID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID)
	}
	return nil
}

// AppliedPromotion reports no applied code by default.
func (s PromotionFacadeStub) AppliedPromotion(ctx context.Context, userID int64) (string, usecase.Evaluation, error) {
	if s.AppliedFn != nil {
		return s.AppliedFn(ctx, userID)
	}
	return "", usecase.Evaluation{}, domainErrors.ErrNotFound
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn  func(context.Context, int64, model.ShippingInfo) (*model.Order, error)
	OrdersFn func(context.Context, int64, int) ([]model.Order, error)
}

// PlaceOrder returns a default pending order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, userID int64, shipping model.ShippingInfo) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID, shipping)
	}
	return &model.Order{ID: 1, Number: "order-1", UserID: userID, Shipping: shipping, Status: model.OrderStatusPending, CreatedAt: time.Unix(0, 0)}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID, limit)
	}
	return []model.Order{{ID: 1, Number: "order-1", UserID: userID}}, nil
}

// AdminFacadeStub provides controllable behaviour for admin endpoints.
type AdminFacadeStub struct {
	CreateProductFn     func(context.Context, *model.Product) (*model.Product, error)
	UpdateProductFn     func(context.Context, *model.Product) error
	DeleteProductFn     func(context.Context, int64) error
	CreateCategoryFn    func(context.Context, string, string) (*model.Category, error)
	UpdateCategoryFn    func(context.Context, *model.Category) error
	DeleteCategoryFn    func(context.Context, int64) error
	InventoryLogsFn     func(context.Context, int) ([]model.InventoryLog, error)
	CreatePromotionFn   func(context.Context, *model.Promotion) (*model.Promotion, error)
	UpdatePromotionFn   func(context.Context, *model.Promotion) error
	DeletePromotionFn   func(context.Context, int64) error
	PromotionsFn        func(context.Context) ([]model.Promotion, error)
	AllOrdersFn         func(context.Context) ([]model.Order, error)
	UpdateOrderStatusFn func(context.Context, int64, model.OrderStatus) error
	UploadImageFn       func(context.Context, string, io.Reader) (string, error)
}

// CreateProduct echoes the product back with an identifier.
func (s AdminFacadeStub) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, p)
	}
	created := *p
	created.ID = 1
	return &created, nil
}

// UpdateProduct executes the configured override when provided.
func (s AdminFacadeStub) UpdateProduct(ctx context.Context, p *model.Product) error {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, p)
	}
	return nil
}

// DeleteProduct executes the configured override when provided.
func (s AdminFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

// CreateCategory echoes the category back with an identifier.
func (s AdminFacadeStub) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	if s.CreateCategoryFn != nil {
		return s.CreateCategoryFn(ctx, name, description)
	}
	return &model.Category{ID: 1, Name: name, Description: description}, nil
}

// UpdateCategory executes the configured override when provided.
func (s AdminFacadeStub) UpdateCategory(ctx context.Context, c *model.Category) error {
	if s.UpdateCategoryFn != nil {
		return s.UpdateCategoryFn(ctx, c)
	}
	return nil
}

// DeleteCategory executes the configured override when provided.
func (s AdminFacadeStub) DeleteCategory(ctx context.Context, id int64) error {
	if s.DeleteCategoryFn != nil {
		return s.DeleteCategoryFn(ctx, id)
	}
	return nil
}

// InventoryLogs returns configured log rows.
func (s AdminFacadeStub) InventoryLogs(ctx context.Context, limit int) ([]model.InventoryLog, error) {
	if s.InventoryLogsFn != nil {
		return s.InventoryLogsFn(ctx, limit)
	}
	return []model.InventoryLog{{ID: 1, ProductID: 1, ChangeAmount: 10, Reason: "Initial stock"}}, nil
}

// CreatePromotion echoes the promotion back with an identifier.
func (s AdminFacadeStub) CreatePromotion(ctx context.Context, promo *model.Promotion) (*model.Promotion, error) {
	if s.CreatePromotionFn != nil {
		return s.CreatePromotionFn(ctx, promo)
	}
	created := *promo
	created.ID = 1
	return &created, nil
}

// UpdatePromotion executes the configured override when provided.
func (s AdminFacadeStub) UpdatePromotion(ctx context.Context, promo *model.Promotion) error {
	if s.UpdatePromotionFn != nil {
		return s.UpdatePromotionFn(ctx, promo)
	}
	return nil
}

// DeletePromotion executes the configured override when provided.
func (s AdminFacadeStub) DeletePromotion(ctx context.Context, id int64) error {
	if s.DeletePromotionFn != nil {
		return s.DeletePromotionFn(ctx, id)
	}
	return nil
}

// Promotions returns configured promotions.
func (s AdminFacadeStub) Promotions(ctx context.Context) ([]model.Promotion, error) {
	if s.PromotionsFn != nil {
		return s.PromotionsFn(ctx)
	}
	return []model.Promotion{{ID: 1, Code: "SAVE10", Type: model.DiscountPercentage, Value: 10, MaxUsage: 1, Active: true}}, nil
}

// AllOrders returns configured orders.
func (s AdminFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{{ID: 1, Number: "order-1", Status: model.OrderStatusPending}}, nil
}

// UpdateOrderStatus executes the configured override when provided.
func (s AdminFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.UpdateOrderStatusFn != nil {
		return s.UpdateOrderStatusFn(ctx, orderID, status)
	}
	return nil
}

// UploadImage returns a deterministic hosted URL.
func (s AdminFacadeStub) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	if s.UploadImageFn != nil {
		return s.UploadImageFn(ctx, filename, content)
	}
	return "https://cdn.example.com/" + filename, nil
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	PromotionFacadeStub
	OrderFacadeStub
	AdminFacadeStub
}
