package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/axellelanca/catalog/internal/services"
	"github.com/axellelanca/catalog/internal/tracking"
)

// ProductRequest is the body of product writes. Price accepts a JSON number
// or a decimal string.
type ProductRequest struct {
	SKU   *string          `json:"sku"`
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
	Brand *uint            `json:"brand"`
}

func (r ProductRequest) input() services.ProductInput {
	return services.ProductInput{SKU: r.SKU, Name: r.Name, Price: r.Price, Brand: r.Brand}
}

func ListProductsHandler(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.ListProducts(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, mapSlice(list, newProductResponse))
	}
}

// RetrieveProductHandler returns a product by SKU. Views by anonymous clients
// are submitted for background visit tracking; the response never waits on it.
func RetrieveProductHandler(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := products.GetProduct(c.Request.Context(), c.Param("sku"))
		if err != nil {
			respondError(c, err)
			return
		}

		if currentUser(c) == nil {
			products.TrackRetrieve(product, tracking.Collect(c.Request))
		}
		c.JSON(http.StatusOK, newProductResponse(*product))
	}
}

func CreateProductHandler(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if !bindJSON(c, &req) {
			return
		}

		product, err := products.CreateProduct(c.Request.Context(), req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newProductResponse(*product))
	}
}

// UpdateProductHandler handles PUT (partial=false) and PATCH (partial=true).
// The other administrators are notified once the update is stored.
func UpdateProductHandler(products *services.ProductService, partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if !bindJSON(c, &req) {
			return
		}

		product, err := products.UpdateProduct(c.Request.Context(), c.Param("sku"), req.input(), partial, currentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newProductResponse(*product))
	}
}

// DeleteProductHandler deletes a product with its prices and visit records.
func DeleteProductHandler(products *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := products.DeleteProduct(c.Request.Context(), c.Param("sku")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ProductStatsHandler aggregates the recorded visits of a product.
func ProductStatsHandler(visits *services.VisitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, stats, err := visits.ProductStats(c.Request.Context(), c.Param("sku"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, StatsResponse{SKU: product.SKU, Name: product.Name, VisitStats: stats})
	}
}

