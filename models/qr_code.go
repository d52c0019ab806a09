package models

import "time"

// QRCode represents one issued short code and the destination it redirects to
// ShortCode is the unique, immutable token embedded in the QR image
// FgColor and BgColor are the #RRGGBB colors the image was rendered with
// ScanCount is a denormalized counter; analytics always count scans directly
type QRCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ShortCode string    `gorm:"size:32;not null;uniqueIndex:uk_qr_codes_short_code" json:"short_code"`
	TargetURL string    `gorm:"type:text;not null" json:"target_url"`
	FgColor   string    `gorm:"size:7;not null" json:"fg_color"`
	BgColor   string    `gorm:"size:7;not null" json:"bg_color"`
	ScanCount int64     `gorm:"not null;default:0" json:"scan_count"`
	CreatedAt time.Time `gorm:"not null;index:idx_qr_codes_created_at" json:"created_at"`
}

// TableName returns the table name for QRCode
func (QRCode) TableName() string { return "qr_codes" }

// QRCodeFilter provides filter fields for repository queries
type QRCodeFilter struct {
	ID            *uint
	ShortCode     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

const (
	DefaultFgColor = "#000000"
	DefaultBgColor = "#FFFFFF"
)
