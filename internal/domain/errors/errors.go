package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidShipping    = errors.New("invalid shipping info")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidPromotion   = errors.New("invalid promotion")
	ErrPromotionApplied   = errors.New("promotion already applied")
	ErrInvalidReview      = errors.New("invalid review")
	ErrInvalidProduct     = errors.New("invalid product")
	ErrInvalidCategory    = errors.New("invalid category")
)
