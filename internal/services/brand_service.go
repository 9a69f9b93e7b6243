package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/repository"
)

// BrandService gère les marques.
type BrandService struct {
	brands   repository.BrandRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

func NewBrandService(brands repository.BrandRepository, products repository.ProductRepository, logger *slog.Logger) *BrandService {
	return &BrandService{brands: brands, products: products, logger: logger.With("service", "brands")}
}

func (s *BrandService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.brands.ListBrands(ctx)
}

func (s *BrandService) GetBrand(ctx context.Context, name string) (*models.Brand, error) {
	return s.brands.GetBrandByName(ctx, name)
}

func (s *BrandService) CreateBrand(ctx context.Context, name *string) (*models.Brand, error) {
	brand := &models.Brand{}
	if err := s.apply(ctx, brand, name, true); err != nil {
		return nil, err
	}
	if err := s.brands.CreateBrand(ctx, brand); err != nil {
		return nil, s.translateWrite(err)
	}
	return brand, nil
}

// UpdateBrand renames the brand currently called name. A nil newName is only
// accepted for partial updates and leaves the brand unchanged.
func (s *BrandService) UpdateBrand(ctx context.Context, name string, newName *string, partial bool) (*models.Brand, error) {
	brand, err := s.brands.GetBrandByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, brand, newName, !partial); err != nil {
		return nil, err
	}
	if err := s.brands.UpdateBrand(ctx, brand); err != nil {
		return nil, s.translateWrite(err)
	}
	return brand, nil
}

// DeleteBrand refuses with customerrors.BrandInUseError while products
// reference the brand.
func (s *BrandService) DeleteBrand(ctx context.Context, name string) error {
	brand, err := s.brands.GetBrandByName(ctx, name)
	if err != nil {
		return err
	}

	products, err := s.products.ListProductsByBrand(ctx, brand.ID)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		refs := make([]string, len(products))
		for i, p := range products {
			refs[i] = p.String()
		}
		return customerrors.BrandInUseError{Brand: brand.Name, Products: refs}
	}

	if err := s.brands.DeleteBrand(ctx, brand.ID); err != nil {
		return err
	}
	s.logger.Info("brand deleted", "name", brand.Name)
	return nil
}

func (s *BrandService) apply(ctx context.Context, brand *models.Brand, name *string, required bool) error {
	v := &customerrors.ValidationError{}
	checkText(v, "name", name, 100, required)
	if name != nil && *name != brand.Name && v.Fields["name"] == nil {
		_, err := s.brands.GetBrandByName(ctx, *name)
		switch {
		case err == nil:
			v.Add("name", msgUnique("brand", "name"))
		case !errors.Is(err, customerrors.ErrNotFound):
			return err
		}
	}
	if err := failed(v); err != nil {
		return err
	}
	if name != nil {
		brand.Name = *name
	}
	return nil
}

func (s *BrandService) translateWrite(err error) error {
	if errors.Is(err, customerrors.ErrDuplicate) {
		return customerrors.NewFieldError("name", msgUnique("brand", "name"))
	}
	return fmt.Errorf("failed to save brand: %w", err)
}
