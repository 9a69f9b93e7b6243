package tracking

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/catalog/internal/models"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		remote string
		want   string
	}{
		{"forwarded chain", "203.0.113.1, 70.41.3.18", "should-not-be-used", "203.0.113.1"},
		{"forwarded single with spaces", "  198.51.100.7 ", "10.0.0.1:1234", "198.51.100.7"},
		{"remote host and port", "", "192.0.2.10:5555", "192.0.2.10"},
		{"remote without port", "", "192.0.2.11", "192.0.2.11"},
		{"ipv6 remote", "", "[2001:db8::1]:443", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/products/A1", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, ClientIP(r))
		})
	}
}

func TestCollect(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/products/A1", nil)
	r.RemoteAddr = "192.0.2.10:5555"
	r.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	r.Header.Set("Referer", "https://shop.example.com/")

	meta := Collect(r)

	assert.Equal(t, "192.0.2.10", meta.IP)
	assert.Equal(t, models.DevicePC, meta.DeviceType)
	assert.True(t, meta.IsPC)
	assert.False(t, meta.IsMobile)
	require.NotNil(t, meta.Referer)
	assert.Equal(t, "https://shop.example.com/", *meta.Referer)
	assert.False(t, meta.Enriched())
}

func TestCollect_NoRefererNoAgent(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/products/A1", nil)
	r.Header.Del("User-Agent")

	meta := Collect(r)

	assert.Nil(t, meta.Referer)
	assert.Equal(t, models.DeviceUnknown, meta.DeviceType)
	assert.Empty(t, meta.UserAgent)
}
