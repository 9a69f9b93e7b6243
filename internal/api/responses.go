package api

import (
	"github.com/axellelanca/catalog/internal/models"
)

// ProductResponse is the public representation of a product.
type ProductResponse struct {
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Brand uint   `json:"brand"`
}

func newProductResponse(p models.Product) ProductResponse {
	return ProductResponse{SKU: p.SKU, Name: p.Name, Price: p.Price.StringFixed(2), Brand: p.BrandID}
}

type BrandResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ChannelResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PriceResponse lists a price with its product SKU.
type PriceResponse struct {
	ID      uint   `json:"id"`
	Product string `json:"product"`
	Price   string `json:"price"`
	Channel uint   `json:"channel"`
}

func newPriceResponse(p models.Price) PriceResponse {
	return PriceResponse{ID: p.ID, Product: p.Product.SKU, Price: p.Price.StringFixed(2), Channel: p.ChannelID}
}

// CreatedPriceResponse echoes a created price with its product id.
type CreatedPriceResponse struct {
	ID      uint   `json:"id"`
	Product uint   `json:"product"`
	Price   string `json:"price"`
	Channel uint   `json:"channel"`
}

// AccountResponse never exposes the password hash.
type AccountResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	IsActive  bool   `json:"is_active"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func newAccountResponse(u models.User) AccountResponse {
	return AccountResponse{ID: u.ID, Email: u.Email, IsActive: u.IsActive, FirstName: u.FirstName, LastName: u.LastName}
}

// StatsResponse aggregates the visits of one product.
type StatsResponse struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
	models.VisitStats
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
