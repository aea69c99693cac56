package repository

import (
	"context"

	"github.com/tdnguyen/storefront/internal/domain/model"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID *int64
	// VisibleOnly restricts the listing to active, non-deleted products.
	VisibleOnly bool
}

// ProductRepository describes persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	ListRelated(ctx context.Context, categoryID, excludeID int64, limit int) ([]model.Product, error)
}

// CategoryRepository manages product categories.
type CategoryRepository interface {
	Create(ctx context.Context, name, description string) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

// ReviewRepository provides access to product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *model.Review) (*model.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]model.Review, error)
}

// InventoryLogRepository appends and lists stock change records.
type InventoryLogRepository interface {
	Append(ctx context.Context, productID int64, change int, reason string) error
	List(ctx context.Context, limit int) ([]model.InventoryLog, error)
}
