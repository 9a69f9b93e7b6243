package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/repository"
)

// ProductInput carries the writable product fields. Nil fields are absent
// from the request: required on create and full update, kept on partial update.
type ProductInput struct {
	SKU   *string
	Name  *string
	Price *decimal.Decimal
	Brand *uint
}

// UpdateNotifier is told about every successful product update.
type UpdateNotifier interface {
	NotifyProductUpdated(ctx context.Context, product *models.Product, actor *models.User) error
}

// ProductService gère les produits du catalogue.
type ProductService struct {
	products   repository.ProductRepository
	brands     repository.BrandRepository
	dispatcher TaskDispatcher
	notifier   UpdateNotifier
	logger     *slog.Logger
}

func NewProductService(
	products repository.ProductRepository,
	brands repository.BrandRepository,
	dispatcher TaskDispatcher,
	notifier UpdateNotifier,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		brands:     brands,
		dispatcher: dispatcher,
		notifier:   notifier,
		logger:     logger.With("service", "products"),
	}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.ListProducts(ctx)
}

// GetProduct returns customerrors.ErrNotFound for an unknown SKU.
func (s *ProductService) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	return s.products.GetProductBySKU(ctx, sku)
}

// TrackRetrieve submits the anonymous view of product for background
// recording. A rejected submission is logged and otherwise ignored.
func (s *ProductService) TrackRetrieve(product *models.Product, meta models.VisitMetadata) {
	if err := s.dispatcher.Submit(TaskTrackProductRetrieve, product.ID, meta); err != nil {
		s.logger.Warn("product visit dropped", "sku", product.SKU, "error", err)
	}
}

// CreateProduct validates in and inserts a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := s.apply(ctx, product, in, false); err != nil {
		return nil, err
	}
	if err := s.products.CreateProduct(ctx, product); err != nil {
		return nil, s.translateWrite(err)
	}
	return product, nil
}

// UpdateProduct applies in to the product identified by sku and notifies the
// administrators once the write has succeeded. Notification failures are
// logged, never returned.
func (s *ProductService) UpdateProduct(ctx context.Context, sku string, in ProductInput, partial bool, actor *models.User) (*models.Product, error) {
	product, err := s.products.GetProductBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, product, in, partial); err != nil {
		return nil, err
	}
	if err := s.products.UpdateProduct(ctx, product); err != nil {
		return nil, s.translateWrite(err)
	}

	if err := s.notifier.NotifyProductUpdated(ctx, product, actor); err != nil {
		s.logger.Error("product update notification failed", "sku", product.SKU, "error", err)
	}
	return product, nil
}

// DeleteProduct removes a product with its prices and visit records.
func (s *ProductService) DeleteProduct(ctx context.Context, sku string) error {
	product, err := s.products.GetProductBySKU(ctx, sku)
	if err != nil {
		return err
	}
	if err := s.products.DeleteProduct(ctx, product.ID); err != nil {
		return err
	}
	s.logger.Info("product deleted", "sku", sku)
	return nil
}

// apply validates in and copies it onto product, loading the referenced brand.
func (s *ProductService) apply(ctx context.Context, product *models.Product, in ProductInput, partial bool) error {
	required := !partial
	v := &customerrors.ValidationError{}
	checkText(v, "sku", in.SKU, 50, required)
	checkText(v, "name", in.Name, 255, required)
	checkMoney(v, "price", in.Price, required)
	if in.Brand == nil && required {
		v.Add("brand", msgRequired)
	}

	var brand *models.Brand
	if in.Brand != nil {
		b, err := s.brands.GetBrandByID(ctx, *in.Brand)
		switch {
		case errors.Is(err, customerrors.ErrNotFound):
			v.Add("brand", msgDoesNotExist(*in.Brand))
		case err != nil:
			return err
		default:
			brand = b
		}
	}

	if in.SKU != nil && *in.SKU != product.SKU && v.Fields["sku"] == nil {
		existing, err := s.products.GetProductBySKU(ctx, *in.SKU)
		switch {
		case err == nil && existing.ID != product.ID:
			v.Add("sku", msgUnique("product", "sku"))
		case err != nil && !errors.Is(err, customerrors.ErrNotFound):
			return err
		}
	}

	if err := failed(v); err != nil {
		return err
	}

	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if brand != nil {
		product.BrandID = brand.ID
		product.Brand = *brand
	}
	return nil
}

// translateWrite turns a unique violation that slipped past validation into a
// field error.
func (s *ProductService) translateWrite(err error) error {
	if errors.Is(err, customerrors.ErrDuplicate) {
		return customerrors.NewFieldError("sku", msgUnique("product", "sku"))
	}
	return fmt.Errorf("failed to save product: %w", err)
}
