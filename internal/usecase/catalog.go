package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/domain/repository"
)

// relatedProductLimit caps the related-products strip on a detail page.
const relatedProductLimit = 4

// ProductDetail bundles everything the product page shows.
type ProductDetail struct {
	Product model.Product
	Price   int64
	Reviews []model.Review
	Related []model.Product
}

// CatalogUseCase serves the public catalog and the admin product CRUD.
type CatalogUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
	inventory  repository.InventoryLogRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	reviews repository.ReviewRepository,
	inventory repository.InventoryLogRepository,
) *CatalogUseCase {
	return &CatalogUseCase{products: products, categories: categories, reviews: reviews, inventory: inventory}
}

// ListProducts returns the storefront listing. Customers only ever see
// purchasable products; the admin panel lists everything.
func (u *CatalogUseCase) ListProducts(ctx context.Context, categoryID *int64, includeHidden bool) ([]model.Product, error) {
	return u.products.List(ctx, repository.ProductFilter{
		CategoryID:  categoryID,
		VisibleOnly: !includeHidden,
	})
}

// ProductDetail loads a product together with its reviews and a strip of
// related products from the same category.
func (u *CatalogUseCase) ProductDetail(ctx context.Context, id int64) (*ProductDetail, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.Purchasable() {
		return nil, domainErrors.ErrNotFound
	}

	reviews, err := u.reviews.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	related, err := u.products.ListRelated(ctx, product.CategoryID, product.ID, relatedProductLimit)
	if err != nil {
		return nil, err
	}

	return &ProductDetail{
		Product: *product,
		Price:   ResolvePrice(product),
		Reviews: reviews,
		Related: related,
	}, nil
}

// AddReview records a customer rating on a purchasable product.
func (u *CatalogUseCase) AddReview(ctx context.Context, userID, productID int64, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domainErrors.ErrInvalidReview
	}

	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Purchasable() {
		return nil, domainErrors.ErrNotFound
	}

	return u.reviews.Create(ctx, &model.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	})
}

// CreateProduct registers a new catalog entry and logs its opening stock.
func (u *CatalogUseCase) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	created, err := u.products.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	if created.Stock != 0 {
		if err := u.inventory.Append(ctx, created.ID, created.Stock, "Initial stock"); err != nil {
			return nil, err
		}
	}
	return created, nil
}

// UpdateProduct persists admin edits. A stock change is appended to the
// inventory log with its delta.
func (u *CatalogUseCase) UpdateProduct(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	current, err := u.products.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}

	if err := u.products.Update(ctx, p); err != nil {
		return err
	}

	if delta := p.Stock - current.Stock; delta != 0 {
		reason := fmt.Sprintf("Stock adjusted from %d to %d", current.Stock, p.Stock)
		if err := u.inventory.Append(ctx, p.ID, delta, reason); err != nil {
			return err
		}
	}
	return nil
}

// DeleteProduct hides a product from the storefront without losing the
// order history that references it.
func (u *CatalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	return u.products.SoftDelete(ctx, id)
}

// Categories returns all categories.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	return u.categories.List(ctx)
}

// CreateCategory registers a new category.
func (u *CatalogUseCase) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.ErrInvalidCategory
	}
	return u.categories.Create(ctx, name, description)
}

// UpdateCategory persists admin edits to a category.
func (u *CatalogUseCase) UpdateCategory(ctx context.Context, c *model.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return domainErrors.ErrInvalidCategory
	}
	return u.categories.Update(ctx, c)
}

// DeleteCategory removes a category.
func (u *CatalogUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return u.categories.Delete(ctx, id)
}

// InventoryLogs returns recent stock changes for the admin panel.
func (u *CatalogUseCase) InventoryLogs(ctx context.Context, limit int) ([]model.InventoryLog, error) {
	return u.inventory.List(ctx, limit)
}

func validateProduct(p *model.Product) error {
	if strings.TrimSpace(p.Name) == "" || p.Price < 0 || p.Stock < 0 {
		return domainErrors.ErrInvalidProduct
	}
	if p.SalePrice != nil && (*p.SalePrice < 0 || *p.SalePrice >= p.Price) {
		return domainErrors.ErrInvalidProduct
	}
	return nil
}
