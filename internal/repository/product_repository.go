package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/axellelanca/catalog/internal/models"
)

// ProductRepository est une interface qui définit les méthodes d'accès aux produits
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsByBrand(ctx context.Context, brandID uint) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

// GormProductRepository est l'implémentation de ProductRepository utilisant GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository crée et retourne une nouvelle instance de GormProductRepository.
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// ListProducts récupère tous les produits, triés par SKU.
func (r *GormProductRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Preload("Brand").Order("sku").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// ListProductsByBrand récupère les produits qui référencent une marque.
func (r *GormProductRepository) ListProductsByBrand(ctx context.Context, brandID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("brand_id = ?", brandID).Order("sku").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products for brand %d: %w", brandID, err)
	}
	return products, nil
}

// GetProductByID récupère un produit par son identifiant numérique.
// Returns customerrors.ErrNotFound when the product doesn't exist.
func (r *GormProductRepository) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Brand").First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// GetProductBySKU récupère un produit en utilisant son SKU.
func (r *GormProductRepository) GetProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Brand").Where("sku = ?", sku).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// CreateProduct insère un nouveau produit dans la base de données.
func (r *GormProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Omit("Brand").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	return nil
}

// UpdateProduct enregistre toutes les colonnes d'un produit existant.
func (r *GormProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Omit("Brand").Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, translate(err))
	}
	return nil
}

// DeleteProduct supprime un produit avec ses prix et ses visites.
// Children are removed explicitly so the cascade holds even on databases
// where foreign keys are not enforced.
func (r *GormProductRepository) DeleteProduct(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.VisitRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete visits of product %d: %w", id, err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Price{}).Error; err != nil {
			return fmt.Errorf("failed to delete prices of product %d: %w", id, err)
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return translate(gorm.ErrRecordNotFound)
		}
		return nil
	})
}
