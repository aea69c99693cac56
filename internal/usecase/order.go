package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/domain/repository"
)

// OrderUseCase assembles orders at checkout and manages their lifecycle.
type OrderUseCase struct {
	orders     repository.OrderRepository
	carts      repository.CartRepository
	products   repository.ProductRepository
	promotions *PromotionUseCase
	expressFee int64
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	promotions *PromotionUseCase,
	expressFee int64,
) *OrderUseCase {
	return &OrderUseCase{orders: orders, carts: carts, products: products, promotions: promotions, expressFee: expressFee}
}

// ShippingFee returns the surcharge for the selected method.
func (u *OrderUseCase) ShippingFee(method model.ShippingMethod) int64 {
	if method == model.ShippingExpress {
		return u.expressFee
	}
	return 0
}

// PlaceOrder turns the account's cart into a persisted order. Unit prices
// are snapshotted at resolution time, the applied promotion (if any) is
// re-evaluated, and order insert, redemption and cart clearing happen in one
// transaction.
func (u *OrderUseCase) PlaceOrder(ctx context.Context, userID int64, shipping model.ShippingInfo) (*model.Order, error) {
	if !ValidateShipping(shipping) {
		return nil, domainErrors.ErrInvalidShipping
	}

	lines, err := loadCartLines(ctx, u.carts, u.products, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}
	for _, line := range lines {
		if !line.Product.Purchasable() {
			return nil, domainErrors.ErrProductUnavailable
		}
	}

	subtotal := SubtotalOf(lines)

	var (
		promoCode *string
		discount  int64
	)
	code, err := u.carts.AppliedCode(ctx, userID)
	switch {
	case err == nil:
		eval, err := u.promotions.Evaluate(ctx, code, subtotal, userID, time.Now())
		if err != nil {
			return nil, err
		}
		if !eval.Valid {
			return nil, domainErrors.ErrInvalidPromotion
		}
		promoCode = &code
		discount = eval.Discount
	case errors.Is(err, domainErrors.ErrNotFound):
		// no promotion applied
	default:
		return nil, err
	}

	fee := u.ShippingFee(shipping.Method)
	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.OrderItem{
			ProductID: line.Product.ID,
			Quantity:  line.Item.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	order := &model.Order{
		Number:      uuid.NewString(),
		UserID:      userID,
		Items:       items,
		Shipping:    shipping,
		ShippingFee: fee,
		PromoCode:   promoCode,
		Discount:    discount,
		Subtotal:    subtotal,
		Total:       subtotal - discount + fee,
		Status:      model.OrderStatusPending,
	}

	return u.orders.Create(ctx, order)
}

// History returns the account's orders, newest first. A positive limit caps
// the result for the checkout history panel.
func (u *OrderUseCase) History(ctx context.Context, userID int64, limit int) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID, limit)
}

// ListAll returns every order for the admin panel.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// UpdateStatus moves an order along the fulfilment path, rejecting moves
// the lifecycle does not allow.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !CanTransition(order.Status, status) {
		return domainErrors.ErrInvalidTransition
	}
	return u.orders.UpdateStatus(ctx, orderID, status)
}
