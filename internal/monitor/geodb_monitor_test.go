package monitor

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/axellelanca/catalog/internal/geo"
)

type nopReader struct{}

func (nopReader) City(string) (*geo.Location, error) { return &geo.Location{}, nil }
func (nopReader) Close() error                       { return nil }

func TestGeoDBMonitor_LogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	available := false
	open := func() (geo.Reader, error) {
		if !available {
			return nil, errors.New("missing file")
		}
		return nopReader{}, nil
	}
	m := NewGeoDBMonitor(open, "/data/GeoLite2-City.mmdb", time.Minute, logger)

	assert.False(t, m.Check())
	assert.Contains(t, buf.String(), "initial state")
	assert.Contains(t, buf.String(), "UNAVAILABLE")

	buf.Reset()
	assert.False(t, m.Check())
	assert.Empty(t, buf.String())

	available = true
	assert.True(t, m.Check())
	assert.Contains(t, buf.String(), "state changed")
	assert.Contains(t, buf.String(), "to=AVAILABLE")
}

func TestGeoDBMonitor_StopsOnCancel(t *testing.T) {
	m := NewGeoDBMonitor(func() (geo.Reader, error) { return nopReader{}, nil }, "x", time.Hour, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}
