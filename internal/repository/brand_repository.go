package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/axellelanca/catalog/internal/models"
)

// BrandRepository définit l'accès aux marques.
type BrandRepository interface {
	ListBrands(ctx context.Context) ([]models.Brand, error)
	GetBrandByID(ctx context.Context, id uint) (*models.Brand, error)
	GetBrandByName(ctx context.Context, name string) (*models.Brand, error)
	CreateBrand(ctx context.Context, brand *models.Brand) error
	UpdateBrand(ctx context.Context, brand *models.Brand) error
	DeleteBrand(ctx context.Context, id uint) error
}

type GormBrandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

func (r *GormBrandRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("name").Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve brands: %w", err)
	}
	return brands, nil
}

func (r *GormBrandRepository) GetBrandByID(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, translate(err)
	}
	return &brand, nil
}

// GetBrandByName récupère une marque par son nom exact.
func (r *GormBrandRepository) GetBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&brand).Error; err != nil {
		return nil, translate(err)
	}
	return &brand, nil
}

func (r *GormBrandRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	if err := r.db.WithContext(ctx).Create(brand).Error; err != nil {
		return fmt.Errorf("failed to create brand: %w", translate(err))
	}
	return nil
}

func (r *GormBrandRepository) UpdateBrand(ctx context.Context, brand *models.Brand) error {
	if err := r.db.WithContext(ctx).Save(brand).Error; err != nil {
		return fmt.Errorf("failed to update brand %d: %w", brand.ID, translate(err))
	}
	return nil
}

// DeleteBrand supprime une marque. The caller is expected to have checked
// that no product references it; the foreign key rejects it otherwise.
func (r *GormBrandRepository) DeleteBrand(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Brand{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete brand %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
