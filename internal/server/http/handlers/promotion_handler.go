package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/server/http/dto"
)

// PromotionHandler manages the applied discount code at the cart.
type PromotionHandler struct {
	facade PromotionFacade
}

// NewPromotionHandler constructs PromotionHandler.
func NewPromotionHandler(facade PromotionFacade) *PromotionHandler {
	return &PromotionHandler{facade: facade}
}

// Apply handles POST /api/cart/promotion.
func (h *PromotionHandler) Apply(c *gin.Context) {
	var req dto.ApplyPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	eval, err := h.facade.ApplyPromotion(c.Request.Context(), CurrentUserID(c), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrPromotionApplied):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrInvalidPromotion):
			c.JSON(http.StatusUnprocessableEntity, dto.PromotionEvaluationResponse{
				Code:   req.Code,
				Valid:  false,
				Reason: string(eval.Reason),
			})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.PromotionEvaluationResponse{
		Code:     req.Code,
		Valid:    true,
		Discount: eval.Discount,
	})
}

// Remove handles DELETE /api/cart/promotion.
func (h *PromotionHandler) Remove(c *gin.Context) {
	if err := h.facade.RemovePromotion(c.Request.Context(), CurrentUserID(c)); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

// Applied handles GET /api/cart/promotion.
func (h *PromotionHandler) Applied(c *gin.Context) {
	code, eval, err := h.facade.AppliedPromotion(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNoContent)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.PromotionEvaluationResponse{
		Code:     code,
		Valid:    eval.Valid,
		Discount: eval.Discount,
		Reason:   string(eval.Reason),
	})
}
