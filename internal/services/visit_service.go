package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	customerrors "github.com/axellelanca/catalog/internal/errors"
	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/repository"
)

const unknownCountry = "unknown"

// LocationEnricher fills in the country and city of a visit. It never fails.
type LocationEnricher interface {
	Enrich(ip string, meta *models.VisitMetadata)
}

// VisitService records anonymous product views and aggregates them.
type VisitService struct {
	products repository.ProductRepository
	visits   repository.VisitRepository
	enricher LocationEnricher
	logger   *slog.Logger
}

func NewVisitService(products repository.ProductRepository, visits repository.VisitRepository, enricher LocationEnricher, logger *slog.Logger) *VisitService {
	return &VisitService{
		products: products,
		visits:   visits,
		enricher: enricher,
		logger:   logger.With("service", "visits"),
	}
}

// TrackProductRetrieve enriches meta and appends one visit record for the
// product. A product deleted in the meantime is not an error: nothing is
// recorded. Every call appends a new record.
func (s *VisitService) TrackProductRetrieve(ctx context.Context, productID uint, meta models.VisitMetadata) error {
	if _, err := s.products.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, customerrors.ErrNotFound) {
			s.logger.Debug("product no longer exists, visit not recorded", "product_id", productID)
			return nil
		}
		return err
	}

	s.enricher.Enrich(meta.IP, &meta)

	visit := &models.VisitRecord{
		ProductID: productID,
		Metadata:  datatypes.NewJSONType(meta),
	}
	if err := s.visits.CreateVisit(ctx, visit); err != nil {
		return err
	}
	s.logger.Debug("visit recorded", "product_id", productID, "device_type", meta.DeviceType, "country", meta.Country)
	return nil
}

// ProductStats aggregates the visits of the product identified by sku.
func (s *VisitService) ProductStats(ctx context.Context, sku string) (*models.Product, models.VisitStats, error) {
	product, err := s.products.GetProductBySKU(ctx, sku)
	if err != nil {
		return nil, models.VisitStats{}, err
	}

	visits, err := s.visits.ListVisitsByProduct(ctx, product.ID)
	if err != nil {
		return nil, models.VisitStats{}, fmt.Errorf("failed to load visits of %s: %w", sku, err)
	}
	return product, Aggregate(visits), nil
}

// Aggregate counts visits by device type and by country.
func Aggregate(visits []models.VisitRecord) models.VisitStats {
	stats := models.VisitStats{
		Total:        int64(len(visits)),
		ByDeviceType: make(map[string]int64),
		ByCountry:    make(map[string]int64),
	}
	for _, v := range visits {
		meta := v.Metadata.Data()

		device := string(meta.DeviceType)
		if device == "" {
			device = string(models.DeviceUnknown)
		}
		stats.ByDeviceType[device]++

		country := meta.Country
		if country == "" {
			country = unknownCountry
		}
		stats.ByCountry[country]++
	}
	return stats
}
