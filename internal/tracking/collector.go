// Package tracking builds the metadata recorded for anonymous product views.
package tracking

import (
	"net"
	"net/http"
	"strings"

	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/useragent"
)

// Collect extracts client address, User-Agent and referer from r and
// classifies the client. Country and city are left empty for geo enrichment.
func Collect(r *http.Request) models.VisitMetadata {
	raw := r.UserAgent()
	info := useragent.Classify(raw)

	meta := models.VisitMetadata{
		IP:         ClientIP(r),
		UserAgent:  raw,
		Device:     info.Device,
		DeviceType: info.DeviceType(),
		OS:         info.OS,
		Browser:    info.Browser,
		IsMobile:   info.IsMobile,
		IsTablet:   info.IsTablet,
		IsPC:       info.IsPC,
	}
	if ref := r.Referer(); ref != "" {
		meta.Referer = &ref
	}
	return meta
}

// ClientIP returns the first X-Forwarded-For entry, or the connection's
// remote host when the header is absent.
//
// The header is taken as-is and can be spoofed by any client not behind a
// proxy that overwrites it.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
