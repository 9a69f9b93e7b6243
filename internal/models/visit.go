package models

import (
	"time"

	"gorm.io/datatypes"
)

// DeviceType is the coarse classification of the client that viewed a product.
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DevicePC      DeviceType = "pc"
	DeviceBot     DeviceType = "bot"
	DeviceUnknown DeviceType = "unknown"
)

// VisitMetadata describes one anonymous product view.
// Country and City are empty until the visit has gone through geo enrichment.
type VisitMetadata struct {
	IP         string     `json:"ip"`
	UserAgent  string     `json:"user_agent"`
	Device     string     `json:"device"`
	DeviceType DeviceType `json:"device_type"`
	OS         string     `json:"os"`
	Browser    string     `json:"browser"`
	IsMobile   bool       `json:"is_mobile"`
	IsTablet   bool       `json:"is_tablet"`
	IsPC       bool       `json:"is_pc"`
	Referer    *string    `json:"referer"`
	Country    string     `json:"country,omitempty"`
	City       string     `json:"city,omitempty"`
}

// Enriched reports whether geo enrichment has filled in the location fields.
func (m VisitMetadata) Enriched() bool {
	return m.Country != "" && m.City != ""
}

// VisitRecord is an append-only log entry of a product view.
// Records are never updated; they disappear only with their product.
type VisitRecord struct {
	ID        uint                              `gorm:"primaryKey"`
	VisitedAt time.Time                         `gorm:"autoCreateTime;index"`
	Metadata  datatypes.JSONType[VisitMetadata] `gorm:"not null"`
	ProductID uint                              `gorm:"index;not null"`
	Product   Product                           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// VisitStats aggregates the visit records of one product.
type VisitStats struct {
	Total        int64            `json:"total_visits"`
	ByDeviceType map[string]int64 `json:"by_device_type"`
	ByCountry    map[string]int64 `json:"by_country"`
}

// All returns every model managed by the application, in migration order.
func All() []any {
	return []any{&User{}, &Brand{}, &Channel{}, &Product{}, &Price{}, &VisitRecord{}}
}
