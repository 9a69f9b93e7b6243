package geo

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// MaxMindReader reads a GeoLite2/GeoIP2 City database.
type MaxMindReader struct {
	db *geoip2.Reader
}

// OpenMaxMind opens the .mmdb file at path.
func OpenMaxMind(path string) (*MaxMindReader, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &MaxMindReader{db: db}, nil
}

// MaxMindOpener returns an Opener for the database at path.
func MaxMindOpener(path string) Opener {
	return func() (Reader, error) {
		r, err := OpenMaxMind(path)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

// City looks up ip and returns its English country and city names.
func (r *MaxMindReader) City(ip string) (*Location, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("invalid IP address %q", ip)
	}
	record, err := r.db.City(parsed)
	if err != nil {
		return nil, err
	}
	return &Location{
		Country: record.Country.Names["en"],
		City:    record.City.Names["en"],
	}, nil
}

func (r *MaxMindReader) Close() error {
	return r.db.Close()
}
