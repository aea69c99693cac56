package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/tdnguyen/storefront/internal/config"
	"github.com/tdnguyen/storefront/internal/domain/model"
	"github.com/tdnguyen/storefront/internal/server/http/handlers"
	"github.com/tdnguyen/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	promotionHandler := handlers.NewPromotionHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade, cfg.OrderHistoryLimit)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	api.GET("/products", catalogHandler.List)
	api.GET("/products/:id", catalogHandler.Detail)
	api.GET("/categories", catalogHandler.Categories)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/products/:id/reviews", catalogHandler.AddReview)

	authed.GET("/cart", cartHandler.List)
	authed.POST("/cart", cartHandler.Add)
	authed.PATCH("/cart/items/:id", cartHandler.SetQuantity)
	authed.DELETE("/cart/items/:id", cartHandler.Remove)

	authed.GET("/cart/promotion", promotionHandler.Applied)
	authed.POST("/cart/promotion", promotionHandler.Apply)
	authed.DELETE("/cart/promotion", promotionHandler.Remove)

	authed.POST("/orders", orderHandler.Place)
	authed.GET("/orders", orderHandler.List)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade))
	admin.Use(middleware.RoleRequired(model.RoleAdmin))
	admin.GET("/products", adminHandler.ListProducts)
	admin.POST("/products", adminHandler.CreateProduct)
	admin.PUT("/products/:id", adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)
	admin.POST("/categories", adminHandler.CreateCategory)
	admin.PUT("/categories/:id", adminHandler.UpdateCategory)
	admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
	admin.GET("/inventory-logs", adminHandler.InventoryLogs)
	admin.GET("/promotions", adminHandler.ListPromotions)
	admin.POST("/promotions", adminHandler.CreatePromotion)
	admin.PUT("/promotions/:id", adminHandler.UpdatePromotion)
	admin.DELETE("/promotions/:id", adminHandler.DeletePromotion)
	admin.GET("/orders", adminHandler.ListOrders)
	admin.PATCH("/orders/:id", adminHandler.UpdateOrderStatus)
	admin.POST("/uploads", adminHandler.UploadImage)

	return engine
}
