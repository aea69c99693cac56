package repository

import (
	"context"

	"github.com/tdnguyen/storefront/internal/domain/model"
)

// CartRepository manages per-account cart lines and the applied promotion
// code. At most one code may be applied per account at a time.
type CartRepository interface {
	// Add merges into an existing line with the same product and variant,
	// incrementing quantity, or inserts a new line.
	Add(ctx context.Context, userID, productID int64, quantity int, color, size string) (*model.CartItem, error)
	SetQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	Remove(ctx context.Context, userID, itemID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)

	SetAppliedCode(ctx context.Context, userID int64, code string) error
	AppliedCode(ctx context.Context, userID int64) (string, error)
	ClearAppliedCode(ctx context.Context, userID int64) error
}
