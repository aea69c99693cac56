package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/server/http/dto"
)

// OrderHandler manages checkout and order history endpoints.
type OrderHandler struct {
	facade       OrderFacade
	historyLimit int
}

// NewOrderHandler constructs OrderHandler. historyLimit caps the default
// history page size when the client does not ask for one.
func NewOrderHandler(facade OrderFacade, historyLimit int) *OrderHandler {
	return &OrderHandler{facade: facade, historyLimit: historyLimit}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	shipping := model.ShippingInfo{
		ReceiverName: req.ReceiverName,
		Phone:        req.Phone,
		Address:      req.Address,
		Method:       model.ShippingMethod(req.Method),
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentUserID(c), shipping)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidShipping):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrEmptyCart):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrProductUnavailable):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrInvalidPromotion):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	limit := h.historyLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.Status(http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}
