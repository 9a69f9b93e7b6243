package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/axellelanca/catalog/internal/models"
)

// VisitRepository définit l'accès au journal des visites de produits.
// Records are append-only, so there is no update method.
type VisitRepository interface {
	CreateVisit(ctx context.Context, visit *models.VisitRecord) error
	ListVisitsByProduct(ctx context.Context, productID uint) ([]models.VisitRecord, error)
	CountVisitsByProduct(ctx context.Context, productID uint) (int64, error)
}

type GormVisitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

// CreateVisit insère un nouvel enregistrement de visite.
func (r *GormVisitRepository) CreateVisit(ctx context.Context, visit *models.VisitRecord) error {
	if err := r.db.WithContext(ctx).Omit("Product").Create(visit).Error; err != nil {
		return fmt.Errorf("failed to create visit for product %d: %w", visit.ProductID, err)
	}
	return nil
}

// ListVisitsByProduct récupère les visites d'un produit, de la plus ancienne à la plus récente.
func (r *GormVisitRepository) ListVisitsByProduct(ctx context.Context, productID uint) ([]models.VisitRecord, error) {
	var visits []models.VisitRecord
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("visited_at, id").Find(&visits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve visits for product %d: %w", productID, err)
	}
	return visits, nil
}

// CountVisitsByProduct compte le nombre total de visites pour un produit donné.
func (r *GormVisitRepository) CountVisitsByProduct(ctx context.Context, productID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.VisitRecord{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count visits for product %d: %w", productID, err)
	}
	return count, nil
}
