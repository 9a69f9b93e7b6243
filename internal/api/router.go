// Package api exposes the catalog over a JSON HTTP API built on gin.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/axellelanca/catalog/internal/services"
)

// Dependencies groups the services the handlers call.
type Dependencies struct {
	Auth     *services.AuthService
	Products *services.ProductService
	Brands   *services.BrandService
	Channels *services.ChannelService
	Prices   *services.PriceService
	Accounts *services.AccountService
	Visits   *services.VisitService
}

// NewRouter builds the gin engine with its middleware chain and routes.
func NewRouter(deps Dependencies, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))
	SetupRoutes(router, deps)
	return router
}

// SetupRoutes configures every API route.
// Catalog reads are public, catalog writes need an authenticated user and
// account management needs an administrator.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", HealthCheckHandler)

	api := router.Group("/api/v1")
	api.POST("/token", ObtainTokenHandler(deps.Auth))
	api.POST("/token/refresh", RefreshTokenHandler(deps.Auth))

	api.Use(Authenticate(deps.Auth))
	authed := RequireAuth()
	admin := RequireAdmin()

	products := api.Group("/products")
	{
		products.GET("", ListProductsHandler(deps.Products))
		products.GET("/:sku", RetrieveProductHandler(deps.Products))
		products.GET("/:sku/stats", admin, ProductStatsHandler(deps.Visits))
		products.POST("", authed, CreateProductHandler(deps.Products))
		products.PUT("/:sku", authed, UpdateProductHandler(deps.Products, false))
		products.PATCH("/:sku", authed, UpdateProductHandler(deps.Products, true))
		products.DELETE("/:sku", authed, DeleteProductHandler(deps.Products))
	}

	brands := api.Group("/brands")
	{
		brands.GET("", ListBrandsHandler(deps.Brands))
		brands.GET("/:name", RetrieveBrandHandler(deps.Brands))
		brands.POST("", authed, CreateBrandHandler(deps.Brands))
		brands.PUT("/:name", authed, UpdateBrandHandler(deps.Brands, false))
		brands.PATCH("/:name", authed, UpdateBrandHandler(deps.Brands, true))
		brands.DELETE("/:name", authed, DeleteBrandHandler(deps.Brands))
	}

	channels := api.Group("/channels")
	{
		channels.GET("", ListChannelsHandler(deps.Channels))
		channels.GET("/:id", RetrieveChannelHandler(deps.Channels))
		channels.POST("", authed, CreateChannelHandler(deps.Channels))
		channels.PUT("/:id", authed, UpdateChannelHandler(deps.Channels, false))
		channels.PATCH("/:id", authed, UpdateChannelHandler(deps.Channels, true))
		channels.DELETE("/:id", authed, DeleteChannelHandler(deps.Channels))
	}

	prices := api.Group("/prices")
	{
		prices.GET("", ListPricesHandler(deps.Prices))
		prices.POST("", authed, CreatePriceHandler(deps.Prices))
		prices.GET("/channel/:id", ChannelPricesHandler(deps.Prices))
	}

	accounts := api.Group("/accounts", admin)
	{
		accounts.GET("", ListAccountsHandler(deps.Accounts))
		accounts.POST("", CreateAccountHandler(deps.Accounts))
		accounts.GET("/:id", RetrieveAccountHandler(deps.Accounts))
		accounts.PUT("/:id", UpdateAccountHandler(deps.Accounts))
		accounts.PATCH("/:id", UpdateAccountHandler(deps.Accounts))
		accounts.DELETE("/:id", DeleteAccountHandler(deps.Accounts))
		accounts.POST("/:id/reset-password", ResetPasswordHandler(deps.Accounts))
	}
}

// HealthCheckHandler handles the /health route.
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
