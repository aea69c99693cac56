package repository

import (
	"context"

	"github.com/tdnguyen/storefront/internal/domain/model"
)

// PromotionRepository describes persistence operations for discount codes.
type PromotionRepository interface {
	Create(ctx context.Context, p *model.Promotion) (*model.Promotion, error)
	Update(ctx context.Context, p *model.Promotion) error
	Delete(ctx context.Context, id int64) error
	GetByCode(ctx context.Context, code string) (*model.Promotion, error)
	List(ctx context.Context) ([]model.Promotion, error)
}

// RedemptionRepository counts prior uses of a code by an account. Rows are
// written by order placement only.
type RedemptionRepository interface {
	CountByUserAndCode(ctx context.Context, userID int64, code string) (int, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Redemption, error)
}
