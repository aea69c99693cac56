package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/domain/repository"
)

// RejectReason explains why a promotion code failed evaluation.
type RejectReason string

const (
	ReasonNotFound      RejectReason = "not found"
	ReasonInactive      RejectReason = "inactive"
	ReasonOutOfWindow   RejectReason = "out of window"
	ReasonBelowMinimum  RejectReason = "below minimum"
	ReasonUsageExceeded RejectReason = "usage exceeded"
)

// Evaluation is the outcome of checking a code against a cart subtotal.
// It carries no side effects; redemption happens at order placement.
type Evaluation struct {
	Valid    bool
	Discount int64
	Reason   RejectReason
}

// PromotionUseCase evaluates and applies discount codes, and exposes the
// admin CRUD for promotions.
type PromotionUseCase struct {
	promotions  repository.PromotionRepository
	redemptions repository.RedemptionRepository
	carts       repository.CartRepository
	products    repository.ProductRepository
}

// NewPromotionUseCase constructs PromotionUseCase.
func NewPromotionUseCase(
	promotions repository.PromotionRepository,
	redemptions repository.RedemptionRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
) *PromotionUseCase {
	return &PromotionUseCase{promotions: promotions, redemptions: redemptions, carts: carts, products: products}
}

// Evaluate checks whether a code is currently applicable to the given
// subtotal for the account, and computes the discount amount. Pure preview.
func (u *PromotionUseCase) Evaluate(ctx context.Context, code string, subtotal, userID int64, now time.Time) (Evaluation, error) {
	promo, err := u.promotions.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return Evaluation{Reason: ReasonNotFound}, nil
		}
		return Evaluation{}, err
	}

	if !promo.Active {
		return Evaluation{Reason: ReasonInactive}, nil
	}

	if now.Before(promo.StartsAt) || now.After(promo.EndsAt) {
		return Evaluation{Reason: ReasonOutOfWindow}, nil
	}

	if subtotal < promo.MinOrderAmount {
		return Evaluation{Reason: ReasonBelowMinimum}, nil
	}

	used, err := u.redemptions.CountByUserAndCode(ctx, userID, code)
	if err != nil {
		return Evaluation{}, err
	}
	if used >= promo.MaxUsage {
		return Evaluation{Reason: ReasonUsageExceeded}, nil
	}

	return Evaluation{Valid: true, Discount: discountAmount(promo, subtotal)}, nil
}

// discountAmount computes the discount in minor units, clamped to the
// subtotal so the order total never drops below the shipping fee.
func discountAmount(promo *model.Promotion, subtotal int64) int64 {
	var discount int64
	switch promo.Type {
	case model.DiscountPercentage:
		discount = subtotal * promo.Value / 100
	case model.DiscountFixed:
		discount = promo.Value
	default:
		return 0
	}
	if discount > subtotal {
		return subtotal
	}
	return discount
}

// Apply evaluates a code against the account's current cart and records it
// as the applied promotion. Only one code may be applied at a time; a second
// apply is rejected until the first is removed.
func (u *PromotionUseCase) Apply(ctx context.Context, userID int64, code string, now time.Time) (Evaluation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Evaluation{Reason: ReasonNotFound}, domainErrors.ErrInvalidPromotion
	}

	if _, err := u.carts.AppliedCode(ctx, userID); err == nil {
		return Evaluation{}, domainErrors.ErrPromotionApplied
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return Evaluation{}, err
	}

	lines, err := loadCartLines(ctx, u.carts, u.products, userID)
	if err != nil {
		return Evaluation{}, err
	}

	eval, err := u.Evaluate(ctx, code, SubtotalOf(lines), userID, now)
	if err != nil {
		return Evaluation{}, err
	}
	if !eval.Valid {
		return eval, domainErrors.ErrInvalidPromotion
	}

	if err := u.carts.SetAppliedCode(ctx, userID, code); err != nil {
		return Evaluation{}, err
	}
	return eval, nil
}

// Remove clears the applied promotion for the account.
func (u *PromotionUseCase) Remove(ctx context.Context, userID int64) error {
	return u.carts.ClearAppliedCode(ctx, userID)
}

// Applied returns the currently applied code with a fresh evaluation, or
// ErrNotFound when no code is applied.
func (u *PromotionUseCase) Applied(ctx context.Context, userID int64, now time.Time) (string, Evaluation, error) {
	code, err := u.carts.AppliedCode(ctx, userID)
	if err != nil {
		return "", Evaluation{}, err
	}

	lines, err := loadCartLines(ctx, u.carts, u.products, userID)
	if err != nil {
		return "", Evaluation{}, err
	}

	eval, err := u.Evaluate(ctx, code, SubtotalOf(lines), userID, now)
	if err != nil {
		return "", Evaluation{}, err
	}
	return code, eval, nil
}

// CreatePromotion registers a new code.
func (u *PromotionUseCase) CreatePromotion(ctx context.Context, promo *model.Promotion) (*model.Promotion, error) {
	promo.Code = strings.TrimSpace(promo.Code)
	if promo.Code == "" || !validDiscountValue(promo.Type, promo.Value) || promo.MaxUsage < 1 {
		return nil, domainErrors.ErrInvalidPromotion
	}
	return u.promotions.Create(ctx, promo)
}

// UpdatePromotion persists admin edits to an existing code.
func (u *PromotionUseCase) UpdatePromotion(ctx context.Context, promo *model.Promotion) error {
	if !validDiscountValue(promo.Type, promo.Value) || promo.MaxUsage < 1 {
		return domainErrors.ErrInvalidPromotion
	}
	return u.promotions.Update(ctx, promo)
}

// DeletePromotion removes a code.
func (u *PromotionUseCase) DeletePromotion(ctx context.Context, id int64) error {
	return u.promotions.Delete(ctx, id)
}

// ListPromotions returns all codes for the admin panel.
func (u *PromotionUseCase) ListPromotions(ctx context.Context) ([]model.Promotion, error) {
	return u.promotions.List(ctx)
}

// validDiscountValue rejects unknown types, negative values, and
// percentages above 100, which would discount more than the subtotal.
func validDiscountValue(t model.DiscountType, value int64) bool {
	switch t {
	case model.DiscountPercentage:
		return value >= 0 && value <= 100
	case model.DiscountFixed:
		return value >= 0
	default:
		return false
	}
}
