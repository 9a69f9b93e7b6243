// Package useragent turns raw User-Agent headers into the device, OS and
// browser families stored with each product visit.
package useragent

import (
	"strings"

	"github.com/mssola/useragent"

	"github.com/axellelanca/catalog/internal/models"
)

const other = "Other"

// Info is the classification of a single User-Agent string.
type Info struct {
	Device   string
	OS       string
	Browser  string
	IsMobile bool
	IsTablet bool
	IsPC     bool
	IsBot    bool
}

// DeviceType derives the coarse device type from the flags.
func (i Info) DeviceType() models.DeviceType {
	return DeviceTypeOf(i.IsMobile, i.IsTablet, i.IsPC, i.IsBot)
}

// DeviceTypeOf applies the precedence mobile > tablet > pc > bot > unknown.
func DeviceTypeOf(mobile, tablet, pc, bot bool) models.DeviceType {
	switch {
	case mobile:
		return models.DeviceMobile
	case tablet:
		return models.DeviceTablet
	case pc:
		return models.DevicePC
	case bot:
		return models.DeviceBot
	default:
		return models.DeviceUnknown
	}
}

// Classify parses raw. It never fails: an empty or unrecognised string yields
// "Other" families and the unknown device type.
func Classify(raw string) Info {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Info{Device: other, OS: other, Browser: other}
	}

	ua := useragent.New(raw)
	info := Info{IsBot: ua.Bot()}

	// Flags are derived independently; a crawler announcing a phone is both
	// mobile and bot, and DeviceTypeOf picks mobile.
	info.IsTablet = isTablet(raw)
	info.IsMobile = !info.IsTablet && (ua.Mobile() || strings.Contains(raw, "iPhone") ||
		strings.Contains(raw, "Android") && strings.Contains(raw, "Mobile"))
	info.OS = osFamily(raw, ua)
	info.IsPC = !info.IsMobile && !info.IsTablet && desktopOS(info.OS)
	info.Device = deviceFamily(raw, info)

	if name, _ := ua.Browser(); name != "" {
		info.Browser = name
	} else {
		info.Browser = other
	}
	return info
}

func isTablet(raw string) bool {
	for _, token := range []string{"iPad", "Tablet", "Kindle", "Silk"} {
		if strings.Contains(raw, token) {
			return true
		}
	}
	// Android phones advertise "Mobile", Android tablets don't
	return strings.Contains(raw, "Android") && !strings.Contains(raw, "Mobile")
}

func osFamily(raw string, ua *useragent.UserAgent) string {
	switch {
	case strings.Contains(raw, "iPhone"), strings.Contains(raw, "iPad"), strings.Contains(raw, "iPod"):
		return "iOS"
	case strings.Contains(raw, "Android"):
		return "Android"
	case strings.Contains(raw, "CrOS"):
		return "Chrome OS"
	case strings.Contains(raw, "Windows"):
		return "Windows"
	case strings.Contains(raw, "Mac OS X"), strings.Contains(raw, "Macintosh"):
		return "Mac OS X"
	case strings.Contains(raw, "Linux"):
		return "Linux"
	}
	if name := ua.OSInfo().Name; name != "" {
		return name
	}
	return other
}

func desktopOS(family string) bool {
	switch family {
	case "Windows", "Mac OS X", "Linux", "Chrome OS":
		return true
	}
	return false
}

func deviceFamily(raw string, info Info) string {
	switch {
	case info.IsBot:
		return "Spider"
	case strings.Contains(raw, "iPhone"):
		return "iPhone"
	case strings.Contains(raw, "iPad"):
		return "iPad"
	case strings.Contains(raw, "iPod"):
		return "iPod"
	case info.OS == "Android":
		if model := androidModel(raw); model != "" {
			return model
		}
		return "Generic Android"
	case info.OS == "Mac OS X":
		return "Mac"
	}
	return other
}

// androidModel extracts the model from "...; <model> Build/..." segments.
func androidModel(raw string) string {
	end := strings.Index(raw, " Build/")
	if end < 0 {
		return ""
	}
	start := strings.LastIndex(raw[:end], ";")
	if start < 0 {
		return ""
	}
	return strings.TrimSpace(raw[start+1 : end])
}
