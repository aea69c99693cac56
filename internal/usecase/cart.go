package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/domain/repository"
)

// CartUseCase manages an account's cart lines.
type CartUseCase struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{carts: carts, products: products}
}

// Add puts a product into the cart, merging into an existing line with the
// same product and variant.
func (u *CartUseCase) Add(ctx context.Context, userID, productID int64, quantity int, color, size string) (*model.CartItem, error) {
	if quantity < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Purchasable() {
		return nil, domainErrors.ErrProductUnavailable
	}

	return u.carts.Add(ctx, userID, productID, quantity, color, size)
}

// SetQuantity updates a line's quantity. Quantities below one are silently
// ignored, mirroring the storefront's minus-button behavior at one.
func (u *CartUseCase) SetQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	if quantity < 1 {
		return nil
	}
	return u.carts.SetQuantity(ctx, userID, itemID, quantity)
}

// Remove deletes a line unconditionally.
func (u *CartUseCase) Remove(ctx context.Context, userID, itemID int64) error {
	return u.carts.Remove(ctx, userID, itemID)
}

// List returns the cart joined with product data and resolved prices.
func (u *CartUseCase) List(ctx context.Context, userID int64) ([]model.CartLine, error) {
	return loadCartLines(ctx, u.carts, u.products, userID)
}

// loadCartLines joins cart items with their products and prices the lines.
// Lines whose product no longer exists are dropped from the view.
func loadCartLines(ctx context.Context, carts repository.CartRepository, products repository.ProductRepository, userID int64) ([]model.CartLine, error) {
	items, err := carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]model.CartLine, 0, len(items))
	for _, item := range items {
		product, err := products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		unit := ResolvePrice(product)
		lines = append(lines, model.CartLine{
			Item:      item,
			Product:   *product,
			UnitPrice: unit,
			LineTotal: unit * int64(item.Quantity),
		})
	}
	return lines, nil
}
