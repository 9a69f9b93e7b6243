package useragent

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axellelanca/catalog/internal/models"
)

func TestDeviceTypeOf_Precedence(t *testing.T) {
	for i := 0; i < 16; i++ {
		mobile, tablet, pc, bot := i&8 != 0, i&4 != 0, i&2 != 0, i&1 != 0

		var want models.DeviceType
		switch {
		case mobile:
			want = models.DeviceMobile
		case tablet:
			want = models.DeviceTablet
		case pc:
			want = models.DevicePC
		case bot:
			want = models.DeviceBot
		default:
			want = models.DeviceUnknown
		}

		name := fmt.Sprintf("mobile=%t tablet=%t pc=%t bot=%t", mobile, tablet, pc, bot)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, DeviceTypeOf(mobile, tablet, pc, bot))
		})
	}
}

func TestClassify_Empty(t *testing.T) {
	info := Classify("   ")
	assert.Equal(t, models.DeviceUnknown, info.DeviceType())
	assert.Equal(t, "Other", info.OS)
	assert.Equal(t, "Other", info.Browser)
	assert.Equal(t, "Other", info.Device)
}

func TestClassify_RealAgents(t *testing.T) {
	tests := []struct {
		name   string
		ua     string
		want   models.DeviceType
		os     string
		device string
		bot    bool
	}{
		{
			name:   "iPhone Safari",
			ua:     "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1",
			want:   models.DeviceMobile,
			os:     "iOS",
			device: "iPhone",
		},
		{
			name:   "iPad",
			ua:     "Mozilla/5.0 (iPad; CPU OS 15_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.0 Mobile/15E148 Safari/604.1",
			want:   models.DeviceTablet,
			os:     "iOS",
			device: "iPad",
		},
		{
			name:   "Android phone",
			ua:     "Mozilla/5.0 (Linux; Android 13; Pixel 7 Build/TQ3A.230805.001) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Mobile Safari/537.36",
			want:   models.DeviceMobile,
			os:     "Android",
			device: "Pixel 7",
		},
		{
			name:   "Android tablet",
			ua:     "Mozilla/5.0 (Linux; Android 12; SM-X700 Build/SP1A.210812.016) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36",
			want:   models.DeviceTablet,
			os:     "Android",
			device: "SM-X700",
		},
		{
			name:   "Windows Chrome",
			ua:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			want:   models.DevicePC,
			os:     "Windows",
			device: "Other",
		},
		{
			name:   "Mac Firefox",
			ua:     "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:121.0) Gecko/20100101 Firefox/121.0",
			want:   models.DevicePC,
			os:     "Mac OS X",
			device: "Mac",
		},
		{
			name:   "Googlebot",
			ua:     "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			want:   models.DeviceBot,
			device: "Spider",
			bot:    true,
		},
		{
			name:   "Googlebot smartphone",
			ua:     "Mozilla/5.0 (Linux; Android 6.0.1; Nexus 5X Build/MMB29P) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/41.0.2272.96 Mobile Safari/537.36 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			want:   models.DeviceMobile,
			os:     "Android",
			device: "Spider",
			bot:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Classify(tt.ua)
			assert.Equal(t, tt.want, info.DeviceType())
			assert.Equal(t, tt.device, info.Device)
			assert.Equal(t, tt.bot, info.IsBot)
			if tt.os != "" {
				assert.Equal(t, tt.os, info.OS)
			}
			assert.NotEmpty(t, info.Browser)
		})
	}
}
