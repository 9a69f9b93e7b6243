package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/services"
)

type NameRequest struct {
	Name *string `json:"name"`
}

type PriceRequest struct {
	Product *uint            `json:"product"`
	Price   *decimal.Decimal `json:"price"`
	Channel *uint            `json:"channel"`
}

// idParam parses the :id path parameter. Malformed ids cannot match a record.
func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, customerrors.ErrNotFound
	}
	return uint(id), nil
}

func brandResponse(b models.Brand) BrandResponse { return BrandResponse{ID: b.ID, Name: b.Name} }

func channelResponse(ch models.Channel) ChannelResponse {
	return ChannelResponse{ID: ch.ID, Name: ch.Name}
}

// --- brands, looked up by name ---

func ListBrandsHandler(brands *services.BrandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := brands.ListBrands(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, mapSlice(list, brandResponse))
	}
}

func RetrieveBrandHandler(brands *services.BrandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		brand, err := brands.GetBrand(c.Request.Context(), c.Param("name"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, brandResponse(*brand))
	}
}

func CreateBrandHandler(brands *services.BrandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NameRequest
		if !bindJSON(c, &req) {
			return
		}
		brand, err := brands.CreateBrand(c.Request.Context(), req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, brandResponse(*brand))
	}
}

func UpdateBrandHandler(brands *services.BrandService, partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NameRequest
		if !bindJSON(c, &req) {
			return
		}
		brand, err := brands.UpdateBrand(c.Request.Context(), c.Param("name"), req.Name, partial)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, brandResponse(*brand))
	}
}

// DeleteBrandHandler answers 400 while products still reference the brand.
func DeleteBrandHandler(brands *services.BrandService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := brands.DeleteBrand(c.Request.Context(), c.Param("name")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- channels, looked up by id ---

func ListChannelsHandler(channels *services.ChannelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := channels.ListChannels(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, mapSlice(list, channelResponse))
	}
}

func RetrieveChannelHandler(channels *services.ChannelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		channel, err := channels.GetChannel(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, channelResponse(*channel))
	}
}

func CreateChannelHandler(channels *services.ChannelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NameRequest
		if !bindJSON(c, &req) {
			return
		}
		channel, err := channels.CreateChannel(c.Request.Context(), req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, channelResponse(*channel))
	}
}

func UpdateChannelHandler(channels *services.ChannelService, partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		var req NameRequest
		if !bindJSON(c, &req) {
			return
		}
		channel, err := channels.UpdateChannel(c.Request.Context(), id, req.Name, partial)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, channelResponse(*channel))
	}
}

func DeleteChannelHandler(channels *services.ChannelService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := channels.DeleteChannel(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- prices ---

func ListPricesHandler(prices *services.PriceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := prices.ListPrices(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, mapSlice(list, newPriceResponse))
	}
}

func CreatePriceHandler(prices *services.PriceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PriceRequest
		if !bindJSON(c, &req) {
			return
		}
		price, err := prices.CreatePrice(c.Request.Context(), services.PriceInput{
			Product: req.Product,
			Channel: req.Channel,
			Price:   req.Price,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreatedPriceResponse{
			ID:      price.ID,
			Product: price.ProductID,
			Price:   price.Price.StringFixed(2),
			Channel: price.ChannelID,
		})
	}
}

// ChannelPricesHandler lists the prices of one channel under a "prices" key.
func ChannelPricesHandler(prices *services.PriceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := idParam(c)
		if err != nil {
			respondError(c, err)
			return
		}
		list, err := prices.ListChannelPrices(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"prices": mapSlice(list, newPriceResponse)})
	}
}
