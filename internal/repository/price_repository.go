package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/axellelanca/catalog/internal/models"
)

// PriceRepository définit l'accès aux prix par canal.
type PriceRepository interface {
	ListPrices(ctx context.Context) ([]models.Price, error)
	ListPricesByChannel(ctx context.Context, channelID uint) ([]models.Price, error)
	PriceExists(ctx context.Context, productID, channelID uint) (bool, error)
	CreatePrice(ctx context.Context, price *models.Price) error
}

type GormPriceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) *GormPriceRepository {
	return &GormPriceRepository{db: db}
}

// ListPrices récupère tous les prix avec leur produit et leur canal.
func (r *GormPriceRepository) ListPrices(ctx context.Context) ([]models.Price, error) {
	var prices []models.Price
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Product.Brand").Preload("Channel").
		Order("id").Find(&prices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve prices: %w", err)
	}
	return prices, nil
}

// ListPricesByChannel récupère les prix d'un canal donné.
func (r *GormPriceRepository) ListPricesByChannel(ctx context.Context, channelID uint) ([]models.Price, error) {
	var prices []models.Price
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Product.Brand").Preload("Channel").
		Where("channel_id = ?", channelID).Order("id").Find(&prices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve prices for channel %d: %w", channelID, err)
	}
	return prices, nil
}

// PriceExists vérifie si un produit a déjà un prix sur le canal.
func (r *GormPriceRepository) PriceExists(ctx context.Context, productID, channelID uint) (bool, error) {
	var price models.Price
	err := r.db.WithContext(ctx).Select("id").
		Where("product_id = ? AND channel_id = ?", productID, channelID).
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check price existence: %w", err)
	}
	return true, nil
}

func (r *GormPriceRepository) CreatePrice(ctx context.Context, price *models.Price) error {
	if err := r.db.WithContext(ctx).Omit("Product", "Channel").Create(price).Error; err != nil {
		return fmt.Errorf("failed to create price: %w", translate(err))
	}
	return nil
}
