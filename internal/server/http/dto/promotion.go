package dto

import "time"

// ApplyPromotionRequest carries the code entered at the cart.
type ApplyPromotionRequest struct {
	Code string `json:"code"`
}

// PromotionEvaluationResponse reports the outcome of applying a code.
type PromotionEvaluationResponse struct {
	Code     string `json:"code"`
	Valid    bool   `json:"valid"`
	Discount int64  `json:"discount"`
	Reason   string `json:"reason,omitempty"`
}

// PromotionRequest is the admin create/update payload.
type PromotionRequest struct {
	Code           string    `json:"code"`
	Type           string    `json:"type"`
	Value          int64     `json:"value"`
	MinOrderAmount int64     `json:"min_order_amount"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	MaxUsage       int       `json:"max_usage"`
	Active         bool      `json:"active"`
}

// PromotionResponse represents a stored promotion.
type PromotionResponse struct {
	ID             int64     `json:"id"`
	Code           string    `json:"code"`
	Type           string    `json:"type"`
	Value          int64     `json:"value"`
	MinOrderAmount int64     `json:"min_order_amount"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	MaxUsage       int       `json:"max_usage"`
	Active         bool      `json:"active"`
}
