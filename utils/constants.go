package utils

import (
	"time"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Short code constants
const (
	// ShortCodeAlphabet is the alphabet short codes are drawn from
	ShortCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// ShortCodeLength is the default number of characters in a short code
	ShortCodeLength = 10

	// ShortCodeMaxLength bounds what the resolver accepts from a URL path
	ShortCodeMaxLength = 32

	// ShortCodeMaxAttempts is how many candidates are tried before giving up on a collision
	ShortCodeMaxAttempts = 5
)

// Scan recording constants
const (
	ScanQueueSize    = 1024
	ScanWorkers      = 4
	ScanWriteTimeout = 5 * time.Second

	// column widths of the scans table
	ScanIPMaxLength      = 64
	ScanCountryMaxLength = 8
	ScanCityMaxLength    = 128
	ScanBrowserMaxLength = 64
)

// Analytics limits
const (
	TopBrowsersLimit  = 10
	TopLocationsLimit = 20
)

// QR rendering constants
const (
	QRCodeImageSize  = 512
	PNGDataURLPrefix = "data:image/png;base64,"
)
