package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/server/http/dto"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// List handles GET /api/cart.
func (h *CartHandler) List(c *gin.Context) {
	lines, err := h.facade.Cart(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := dto.CartResponse{Items: make([]dto.CartLineResponse, 0, len(lines))}
	for _, line := range lines {
		response.Items = append(response.Items, dto.CartLineResponse{
			ItemID:    line.Item.ID,
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			ImageURL:  line.Product.ImageURL,
			Color:     line.Item.Color,
			Size:      line.Item.Size,
			Quantity:  line.Item.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
		response.Subtotal += line.LineTotal
	}
	c.JSON(http.StatusOK, response)
}

// Add handles POST /api/cart.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	_, err := h.facade.CartAdd(c.Request.Context(), CurrentUserID(c), req.ProductID, req.Quantity, req.Color, req.Size)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound), errors.Is(err, domainErrors.ErrProductUnavailable):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusCreated)
}

// SetQuantity handles PATCH /api/cart/:id.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.CartSetQuantity(c.Request.Context(), CurrentUserID(c), id, req.Quantity); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// Remove handles DELETE /api/cart/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.CartRemove(c.Request.Context(), CurrentUserID(c), id); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}
