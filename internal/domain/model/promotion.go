package model

import "time"

// DiscountType selects how a promotion value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Promotion is a discount code redeemable at checkout. Value is a whole
// percent for percentage promotions and a minor-unit amount for fixed ones.
type Promotion struct {
	ID             int64
	Code           string
	Type           DiscountType
	Value          int64
	MinOrderAmount int64
	StartsAt       time.Time
	EndsAt         time.Time
	MaxUsage       int
	Active         bool
	CreatedAt      time.Time
}

// Redemption records one use of a promotion code by an account. Append-only;
// per-account usage caps are enforced by counting matching rows.
type Redemption struct {
	ID         int64
	UserID     int64
	Code       string
	OrderID    int64
	RedeemedAt time.Time
}
