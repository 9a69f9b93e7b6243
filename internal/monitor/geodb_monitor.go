// Package monitor watches the external resources the background tasks depend on.
package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/axellelanca/catalog/internal/geo"
)

// GeoDBMonitor periodically checks that the GeoIP database can be opened.
// Visit enrichment silently falls back to default locations when it can't,
// so state changes are logged for operators.
type GeoDBMonitor struct {
	open     geo.Opener
	path     string
	interval time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	known     bool // a first check has run
	available bool // last observed state
}

// NewGeoDBMonitor creates a monitor for the database at path, opened with open.
func NewGeoDBMonitor(open geo.Opener, path string, interval time.Duration, logger *slog.Logger) *GeoDBMonitor {
	return &GeoDBMonitor{
		open:     open,
		path:     path,
		interval: interval,
		logger:   logger.With("component", "monitor"),
	}
}

// Start checks immediately, then every interval until ctx is cancelled.
func (m *GeoDBMonitor) Start(ctx context.Context) {
	m.logger.Info("starting GeoIP database monitor", "path", m.path, "interval", m.interval)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check()
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("GeoIP database monitor stopped")
			return
		case <-ticker.C:
			m.Check()
		}
	}
}

// Check opens and closes the database once, logs the initial state or any
// transition, and returns whether the database is available.
func (m *GeoDBMonitor) Check() bool {
	current := m.probe()

	m.mu.Lock()
	previous, known := m.available, m.known
	m.available, m.known = current, true
	m.mu.Unlock()

	switch {
	case !known:
		m.logger.Info("GeoIP database initial state", "path", m.path, "state", formatState(current))
	case previous != current:
		m.logger.Warn("GeoIP database state changed", "path", m.path,
			"from", formatState(previous), "to", formatState(current))
	}
	return current
}

func (m *GeoDBMonitor) probe() bool {
	reader, err := m.open()
	if err != nil {
		m.logger.Debug("GeoIP database cannot be opened", "path", m.path, "error", err)
		return false
	}
	if err := reader.Close(); err != nil {
		m.logger.Debug("GeoIP database close failed", "path", m.path, "error", err)
	}
	return true
}

func formatState(available bool) string {
	if available {
		return "AVAILABLE"
	}
	return "UNAVAILABLE"
}
