package services

import (
	"regexp"
	"strings"

	"github.com/amirphl/Yata-no-Kagami/models"
	"github.com/mileusna/useragent"
)

// UserAgentClassifier derives a device type and browser name from a raw User-Agent header
type UserAgentClassifier interface {
	Classify(rawUserAgent *string) (deviceType string, browser string)
}

// nonHandheldPattern matches watches, glasses, TVs, streaming sticks and consoles.
// The parser reports most of them as phones or tablets because their agents
// carry "Mobile" or an Android token.
var nonHandheldPattern = regexp.MustCompile(`(?i)smart-?watch|\bwatch\b|watchos|wear ?os|\bglass \d|\bsm-r\d{3}\b|` +
	`android ?tv|smart-?tv|apple ?tv|google ?tv|\bcrkey\b|\bhbbtv\b|\broku\b|\bweb0s\b|\bbravia\b|\bnettv\b|(?-i:\bAFT[A-Z]{1,3}\b)|` +
	`playstation|nintendo|xbox`)

// UserAgentClassifierImpl implements UserAgentClassifier on top of mileusna/useragent
type UserAgentClassifierImpl struct{}

// NewUserAgentClassifier creates a new user agent classifier
func NewUserAgentClassifier() UserAgentClassifier {
	return &UserAgentClassifierImpl{}
}

// Classify never fails. Anything that is not a tablet or a phone is reported as
// desktop, including bots, consoles, TVs and agents the parser cannot place.
func (c *UserAgentClassifierImpl) Classify(rawUserAgent *string) (string, string) {
	if rawUserAgent == nil || strings.TrimSpace(*rawUserAgent) == "" {
		return models.DeviceTypeUnknown, models.BrowserUnknown
	}

	ua := useragent.Parse(*rawUserAgent)

	deviceType := models.DeviceTypeDesktop
	switch {
	case nonHandheldPattern.MatchString(*rawUserAgent):
	case ua.Tablet:
		deviceType = models.DeviceTypeTablet
	case ua.Mobile:
		deviceType = models.DeviceTypeMobile
	}

	browser := strings.TrimSpace(ua.Name)
	if browser == "" {
		browser = models.BrowserUnknown
	}

	return deviceType, browser
}
