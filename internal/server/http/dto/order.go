package dto

import "time"

// PlaceOrderRequest carries checkout shipping details.
type PlaceOrderRequest struct {
	ReceiverName string `json:"receiver_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Method       string `json:"method"`
}

// OrderItemResponse is one purchased line with its snapshotted price.
type OrderItemResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}

// OrderResponse represents a persisted order.
type OrderResponse struct {
	ID          int64               `json:"id"`
	Number      string              `json:"number"`
	Status      string              `json:"status"`
	Items       []OrderItemResponse `json:"items"`
	ShippingFee int64               `json:"shipping_fee"`
	PromoCode   *string             `json:"promo_code,omitempty"`
	Discount    int64               `json:"discount"`
	Subtotal    int64               `json:"subtotal"`
	Total       int64               `json:"total"`
	CreatedAt   time.Time           `json:"created_at"`
}

// OrderStatusRequest moves an order along the fulfilment path.
type OrderStatusRequest struct {
	Status string `json:"status"`
}
