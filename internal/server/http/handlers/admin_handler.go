package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tdnguyen/storefront/internal/adapter/assets"
	domainErrors "github.com/tdnguyen/storefront/internal/domain/errors"
	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/server/http/dto"
)

// defaultInventoryLogLimit caps the admin inventory log page.
const defaultInventoryLogLimit = 100

// AdminHandler serves the management endpoints behind the admin role guard.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// ListProducts handles GET /api/admin/products. Hidden and deleted products
// are included so the panel can manage them.
func (h *AdminHandler) ListProducts(c *gin.Context) {
	products, err := h.facade.Products(c.Request.Context(), nil, true)
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

// CreateProduct handles POST /api/admin/products.
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.CreateProduct(c.Request.Context(), productFromRequest(req))
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidProduct) {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(*created))
}

// UpdateProduct handles PUT /api/admin/products/:id.
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	product := productFromRequest(req)
	product.ID = id
	if err := h.facade.UpdateProduct(c.Request.Context(), product); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidProduct):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateCategory handles POST /api/admin/categories.
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCategory) {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, dto.CategoryResponse{ID: created.ID, Name: created.Name, Description: created.Description})
}

// UpdateCategory handles PUT /api/admin/categories/:id.
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.UpdateCategory(c.Request.Context(), &model.Category{ID: id, Name: req.Name, Description: req.Description})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCategory):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// DeleteCategory handles DELETE /api/admin/categories/:id.
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

// InventoryLogs handles GET /api/admin/inventory-logs.
func (h *AdminHandler) InventoryLogs(c *gin.Context) {
	limit := defaultInventoryLogLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.Status(http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	logs, err := h.facade.InventoryLogs(c.Request.Context(), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.InventoryLogResponse, 0, len(logs))
	for _, log := range logs {
		response = append(response, dto.InventoryLogResponse{
			ID:           log.ID,
			ProductID:    log.ProductID,
			ChangeAmount: log.ChangeAmount,
			Reason:       log.Reason,
			CreatedAt:    log.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// ListPromotions handles GET /api/admin/promotions.
func (h *AdminHandler) ListPromotions(c *gin.Context) {
	promotions, err := h.facade.Promotions(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.PromotionResponse, 0, len(promotions))
	for _, p := range promotions {
		response = append(response, toPromotionResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// CreatePromotion handles POST /api/admin/promotions.
func (h *AdminHandler) CreatePromotion(c *gin.Context) {
	var req dto.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created, err := h.facade.CreatePromotion(c.Request.Context(), promotionFromRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidPromotion):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toPromotionResponse(*created))
}

// UpdatePromotion handles PUT /api/admin/promotions/:id.
func (h *AdminHandler) UpdatePromotion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	promo := promotionFromRequest(req)
	promo.ID = id
	if err := h.facade.UpdatePromotion(c.Request.Context(), promo); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidPromotion):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// DeletePromotion handles DELETE /api/admin/promotions/:id.
func (h *AdminHandler) DeletePromotion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeletePromotion(c.Request.Context(), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.facade.AllOrders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles PATCH /api/admin/orders/:id.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.UpdateOrderStatus(c.Request.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// UploadImage handles POST /api/admin/uploads.
func (h *AdminHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	defer src.Close()

	url, err := h.facade.UploadImage(c.Request.Context(), file.Filename, src)
	if err != nil {
		if errors.Is(err, assets.ErrUnsupportedImage) {
			c.Status(http.StatusUnsupportedMediaType)
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}

func productFromRequest(req dto.ProductRequest) *model.Product {
	return &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	}
}

func promotionFromRequest(req dto.PromotionRequest) *model.Promotion {
	return &model.Promotion{
		Code:           req.Code,
		Type:           model.DiscountType(req.Type),
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		MaxUsage:       req.MaxUsage,
		Active:         req.Active,
	}
}
