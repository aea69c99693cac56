package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/server/http/dto"
)

// CatalogHandler serves the public product catalog.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/products.
func (h *CatalogHandler) List(c *gin.Context) {
	var categoryID *int64
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		categoryID = &id
	}

	products, err := h.facade.Products(c.Request.Context(), categoryID, false)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Detail handles GET /api/products/:id.
func (h *CatalogHandler) Detail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	detail, err := h.facade.ProductDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	reviews := make([]dto.ReviewResponse, 0, len(detail.Reviews))
	for _, r := range detail.Reviews {
		reviews = append(reviews, toReviewResponse(r))
	}
	related := make([]dto.ProductResponse, 0, len(detail.Related))
	for _, p := range detail.Related {
		related = append(related, toProductResponse(p))
	}

	c.JSON(http.StatusOK, dto.ProductDetailResponse{
		Product: toProductResponse(detail.Product),
		Reviews: reviews,
		Related: related,
	})
}

// Categories handles GET /api/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		response = append(response, dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Description: cat.Description})
	}
	c.JSON(http.StatusOK, response)
}

// AddReview handles POST /api/products/:id/reviews.
func (h *CatalogHandler) AddReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	review, err := h.facade.AddReview(c.Request.Context(), CurrentUserID(c), id, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidReview):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toReviewResponse(*review))
}
