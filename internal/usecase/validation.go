package usecase

import (
	"strings"

	"github.com/tdnguyen/storefront/internal/domain/model"
)

// ValidateShipping checks that all recipient fields are present and the
// method is one of the supported options.
func ValidateShipping(info model.ShippingInfo) bool {
	if strings.TrimSpace(info.ReceiverName) == "" {
		return false
	}
	if strings.TrimSpace(info.Phone) == "" {
		return false
	}
	if strings.TrimSpace(info.Address) == "" {
		return false
	}
	return info.Method == model.ShippingStandard || info.Method == model.ShippingExpress
}

// statusTransitions lists the allowed fulfilment moves: the common path is
// one-directional, and cancellation is possible from any pre-delivered state.
var statusTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusProcessing, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:    {model.OrderStatusDelivered, model.OrderStatusCancelled},
}

// CanTransition reports whether an order may move between the two statuses.
func CanTransition(from, to model.OrderStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
