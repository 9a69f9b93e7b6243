// Package geo resolves visitor IP addresses to a country and city.
package geo

import (
	"fmt"
	"log/slog"

	"github.com/axellelanca/catalog/internal/models"
)

// Values used whenever a location cannot be resolved.
const (
	DefaultCountry = "México"
	DefaultCity    = "Ciudad de México"
)

// Location is the subset of a GeoIP record the catalog keeps.
// Empty fields mean the database had no name for them.
type Location struct {
	Country string
	City    string
}

// Reader looks up IP addresses in an opened GeoIP database.
type Reader interface {
	City(ip string) (*Location, error)
	Close() error
}

// Opener opens a fresh Reader. Enricher calls it once per lookup.
type Opener func() (Reader, error)

// Enricher fills in the country and city of visit metadata.
type Enricher struct {
	open   Opener
	logger *slog.Logger
}

func NewEnricher(open Opener, logger *slog.Logger) *Enricher {
	return &Enricher{open: open, logger: logger.With("component", "geo")}
}

// Enrich sets meta.Country and meta.City for ip. It never fails: any error,
// including a panic inside the reader, leaves both fields at their defaults.
func (e *Enricher) Enrich(ip string, meta *models.VisitMetadata) {
	loc, err := e.lookup(ip)
	if err != nil {
		e.logger.Debug("geo lookup failed, using defaults", "ip", ip, "error", err)
		meta.Country, meta.City = DefaultCountry, DefaultCity
		return
	}

	meta.Country, meta.City = loc.Country, loc.City
	if meta.Country == "" {
		meta.Country = DefaultCountry
	}
	if meta.City == "" {
		meta.City = DefaultCity
	}
}

func (e *Enricher) lookup(ip string) (loc *Location, err error) {
	defer func() {
		if r := recover(); r != nil {
			loc, err = nil, fmt.Errorf("geo reader panic: %v", r)
		}
	}()

	reader, err := e.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open geo database: %w", err)
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			e.logger.Warn("failed to close geo database", "error", cerr)
		}
	}()

	loc, err = reader.City(ip)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("no record for %s", ip)
	}
	return loc, nil
}
