package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/server/http/dto"
	"github.com/tdnguyen/storefront/internal/server/http/middleware"
	"github.com/tdnguyen/storefront/internal/usecase"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func toProductResponse(p model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       usecase.ResolvePrice(&p),
		ListPrice:   p.Price,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		ImageURL:    p.ImageURL,
		Active:      p.Active,
	}
}

func toReviewResponse(r model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return dto.OrderResponse{
		ID:          o.ID,
		Number:      o.Number,
		Status:      string(o.Status),
		Items:       items,
		ShippingFee: o.ShippingFee,
		PromoCode:   o.PromoCode,
		Discount:    o.Discount,
		Subtotal:    o.Subtotal,
		Total:       o.Total,
		CreatedAt:   o.CreatedAt,
	}
}

func toPromotionResponse(p model.Promotion) dto.PromotionResponse {
	return dto.PromotionResponse{
		ID:             p.ID,
		Code:           p.Code,
		Type:           string(p.Type),
		Value:          p.Value,
		MinOrderAmount: p.MinOrderAmount,
		StartsAt:       p.StartsAt,
		EndsAt:         p.EndsAt,
		MaxUsage:       p.MaxUsage,
		Active:         p.Active,
	}
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     string(u.Role),
	}
}
