package models

import "time"

// Scan represents a single redirect traversal of a QR code
// IPAddress only ever holds the truncated address
// Country and City come from edge geolocation headers and may be absent
type Scan struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QRCodeID   uint      `gorm:"column:qr_code_id;not null;index:idx_scans_qr_code_id" json:"qr_code_id"`
	ScannedAt  time.Time `gorm:"not null;index:idx_scans_scanned_at" json:"scanned_at"`
	UserAgent  *string   `gorm:"type:text" json:"user_agent,omitempty"`
	IPAddress  *string   `gorm:"size:64" json:"ip_address,omitempty"`
	Country    *string   `gorm:"size:8" json:"country,omitempty"`
	City       *string   `gorm:"size:128" json:"city,omitempty"`
	DeviceType *string   `gorm:"size:16" json:"device_type,omitempty"`
	Browser    *string   `gorm:"size:64" json:"browser,omitempty"`

	QRCode *QRCode `gorm:"foreignKey:QRCodeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for Scan
func (Scan) TableName() string { return "scans" }

// ScanFilter provides filter fields for repository queries
type ScanFilter struct {
	QRCodeID      *uint
	DeviceType    *string
	ScannedAfter  *time.Time
	ScannedBefore *time.Time
}

// Device types stored in scans.device_type
const (
	DeviceTypeMobile  = "mobile"
	DeviceTypeTablet  = "tablet"
	DeviceTypeDesktop = "desktop"
	DeviceTypeUnknown = "unknown"
)

// BrowserUnknown is stored when the user agent is absent or unparseable
const BrowserUnknown = "unknown"

// DateCount is one bucket of the per-day scan time series
type DateCount struct {
	Date  string `gorm:"column:day" json:"date"`
	Count int64  `gorm:"column:total" json:"count"`
}

// DeviceCount is one row of the device breakdown
type DeviceCount struct {
	DeviceType string `gorm:"column:device_type" json:"device_type"`
	Count      int64  `gorm:"column:total" json:"count"`
}

// BrowserCount is one row of the browser breakdown
type BrowserCount struct {
	Browser *string `gorm:"column:browser" json:"browser"`
	Count   int64   `gorm:"column:total" json:"count"`
}

// LocationCount is one row of the location breakdown
type LocationCount struct {
	Country string `gorm:"column:country" json:"country"`
	City    string `gorm:"column:city" json:"city"`
	Count   int64  `gorm:"column:total" json:"count"`
}
