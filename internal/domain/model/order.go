package model

import "time"

// OrderStatus describes the fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ShippingMethod selects the delivery option.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// ShippingInfo carries the recipient details collected at checkout.
type ShippingInfo struct {
	ReceiverName string
	Phone        string
	Address      string
	Method       ShippingMethod
}

// OrderItem snapshots a purchased product line. UnitPrice is the resolved
// price at checkout time, not a reference to the live product.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice int64
}

// Order is a persisted checkout result. Amounts are minor units.
type Order struct {
	ID          int64
	Number      string
	UserID      int64
	Items       []OrderItem
	Shipping    ShippingInfo
	ShippingFee int64
	PromoCode   *string
	Discount    int64
	Subtotal    int64
	Total       int64
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
