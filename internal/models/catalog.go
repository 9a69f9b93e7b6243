package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Brand représente une marque de produits.
type Brand struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null"`
}

func (b Brand) String() string {
	return b.Name
}

// Channel représente un canal de vente (boutique en ligne, marketplace, magasin...).
type Channel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null"`
}

// Product is a catalog item identified by its SKU.
// Its brand cannot be deleted while the product exists (RESTRICT);
// prices and visit records are removed together with the product.
type Product struct {
	ID      uint            `gorm:"primaryKey"`
	SKU     string          `gorm:"uniqueIndex;size:50;not null"`
	Name    string          `gorm:"size:255;not null"`
	Price   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	BrandID uint            `gorm:"index;not null"`
	Brand   Brand           `gorm:"foreignKey:BrandID;constraint:OnDelete:RESTRICT"`
}

func (p Product) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.SKU)
}

// Price is the price of a product on one channel. A product has at most one
// price per channel.
type Price struct {
	ID        uint            `gorm:"primaryKey"`
	ProductID uint            `gorm:"uniqueIndex:idx_price_product_channel;not null"`
	Product   Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ChannelID uint            `gorm:"uniqueIndex:idx_price_product_channel;not null"`
	Channel   Channel         `gorm:"foreignKey:ChannelID;constraint:OnDelete:CASCADE"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}
