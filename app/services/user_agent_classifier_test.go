package services

import (
	"testing"

	"github.com/amirphl/Yata-no-Kagami/models"
	"github.com/amirphl/Yata-no-Kagami/utils"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
)

func TestUserAgentClassifier_Classify(t *testing.T) {
	classifier := NewUserAgentClassifier()

	tests := []struct {
		name            string
		userAgent       string
		expectedDevice  string
		expectedBrowser string
	}{
		{
			name:            "iphone safari",
			userAgent:       "Mozilla/5.0 (iPhone; CPU iPhone OS 16_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Mobile/15E148 Safari/604.1",
			expectedDevice:  models.DeviceTypeMobile,
			expectedBrowser: "Safari",
		},
		{
			name:            "ipad safari",
			userAgent:       "Mozilla/5.0 (iPad; CPU OS 16_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Mobile/15E148 Safari/604.1",
			expectedDevice:  models.DeviceTypeTablet,
			expectedBrowser: "Safari",
		},
		{
			name:            "windows chrome",
			userAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			expectedDevice:  models.DeviceTypeDesktop,
			expectedBrowser: "Chrome",
		},
		{
			name:            "linux firefox",
			userAgent:       "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			expectedDevice:  models.DeviceTypeDesktop,
			expectedBrowser: "Firefox",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device, browser := classifier.Classify(utils.ToPtr(tt.userAgent))
			assert.Equal(t, tt.expectedDevice, device)
			assert.Equal(t, tt.expectedBrowser, browser)
		})
	}

	t.Run("nil and blank are unknown", func(t *testing.T) {
		device, browser := classifier.Classify(nil)
		assert.Equal(t, models.DeviceTypeUnknown, device)
		assert.Equal(t, models.BrowserUnknown, browser)

		device, browser = classifier.Classify(utils.ToPtr("   "))
		assert.Equal(t, models.DeviceTypeUnknown, device)
		assert.Equal(t, models.BrowserUnknown, browser)
	})

	t.Run("non phone devices fall back to desktop", func(t *testing.T) {
		for _, ua := range []string{
			"Mozilla/5.0 (PlayStation 4 3.11) AppleWebKit/537.73 (KHTML, like Gecko)",
			"Mozilla/5.0 (PlayStation Vita 3.61) AppleWebKit/537.73 (KHTML, like Gecko) Silk/3.2",
			"Mozilla/5.0 (Nintendo Switch; WifiWebAuthApplet) AppleWebKit/606.4 (KHTML, like Gecko) NF/6.0.1.15.4 NintendoBrowser/5.1.0.20393",
			// watches and glasses announce themselves as mobile browsers
			"Mozilla/5.0 (Linux; Android 11; SAMSUNG SM-R870) AppleWebKit/537.36 (KHTML, like Gecko) SamsungBrowser/14.2 Chrome/87.0.4280.141 Mobile Safari/537.36",
			"Mozilla/5.0 (Linux; Tizen 2.3; SAMSUNG SM-R720) AppleWebKit/537.3 (KHTML, like Gecko) Version/2.3 Mobile Safari/537.3",
			"Mozilla/5.0 (Linux; Tizen 2.3.2.0; SmartWatch) AppleWebKit/537.3 (KHTML, like Gecko) Version/2.3 Mobile Safari/537.3",
			"Mozilla/5.0 (Linux; Android 9; LG Watch Sport Build/PWDR.190618.001; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/74.0.3729.157 Mobile Safari/537.36",
			"Mozilla/5.0 (Linux; U; Android 4.0.4; en-us; Glass 1 Build/IMM76L; XE11) AppleWebKit/534.30 (KHTML, like Gecko) Version/4.0 Mobile Safari/534.30",
			// TVs and sticks
			"Mozilla/5.0 (Linux; Android 9; SHIELD Android TV Build/PPR1.180610.011; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/111.0.5563.116 Mobile Safari/537.36",
			"Mozilla/5.0 (SMART-TV; Linux; Tizen 5.0) AppleWebKit/538.1 (KHTML, like Gecko) Version/5.0 NativeTVs Safari/538.1",
			"Mozilla/5.0 (Web0S; Linux/SmartTV) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/79.0.3945.79 Safari/537.36 WebAppManager",
			"AppleTV11,1/11.1",
			"Mozilla/5.0 (Linux; Android 9; AFTMM Build/PS7233; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/104.0.5112.97 Mobile Safari/537.36",
			"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			"curl/8.4.0",
			"definitely-not-a-browser",
		} {
			device, browser := classifier.Classify(utils.ToPtr(ua))
			assert.Equal(t, models.DeviceTypeDesktop, device, ua)
			assert.NotEmpty(t, browser, ua)
		}
	})

	t.Run("random agents always classify", func(t *testing.T) {
		allowed := []string{models.DeviceTypeMobile, models.DeviceTypeTablet, models.DeviceTypeDesktop}
		for range 50 {
			device, browser := classifier.Classify(utils.ToPtr(gofakeit.UserAgent()))
			assert.Contains(t, allowed, device)
			assert.NotEmpty(t, browser)
		}
	})
}
