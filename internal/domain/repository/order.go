package repository

import (
	"context"

	"github.com/tdnguyen/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Create persists the order with its items and, when a promotion code is
// attached, locks the promotion row, re-checks the per-account usage cap and
// records the redemption; the account's cart lines and applied code are
// cleared in the same transaction.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
