// Package testing provides test utilities and database setup for testing the QR redirect service
package testing

import (
	"fmt"
	"time"

	"github.com/amirphl/Yata-no-Kagami/models"
	"github.com/amirphl/Yata-no-Kagami/utils"
	"github.com/brianvoe/gofakeit/v7"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestQRCode inserts a QR code with a random target URL and short code
func (tf *TestFixtures) CreateTestQRCode() (*models.QRCode, error) {
	qr := &models.QRCode{
		ShortCode: gofakeit.Password(true, true, true, false, false, 10),
		TargetURL: "https://" + gofakeit.DomainName() + "/" + gofakeit.Word(),
		FgColor:   models.DefaultFgColor,
		BgColor:   models.DefaultBgColor,
		CreatedAt: utils.UTCNow(),
	}
	if err := tf.DB.DB.Create(qr).Error; err != nil {
		return nil, fmt.Errorf("failed to create test qr code: %w", err)
	}
	return qr, nil
}

// ScanOption customises a fixture scan
type ScanOption func(*models.Scan)

func WithDevice(deviceType string) ScanOption {
	return func(s *models.Scan) { s.DeviceType = utils.ToPtr(deviceType) }
}

func WithBrowser(browser string) ScanOption {
	return func(s *models.Scan) { s.Browser = utils.ToPtr(browser) }
}

func WithLocation(country, city string) ScanOption {
	return func(s *models.Scan) {
		s.Country = utils.ToPtr(country)
		s.City = utils.ToPtr(city)
	}
}

func WithScannedAt(t time.Time) ScanOption {
	return func(s *models.Scan) { s.ScannedAt = t.UTC() }
}

// CreateTestScan inserts a scan row directly, bypassing classification
func (tf *TestFixtures) CreateTestScan(qrCodeID uint, opts ...ScanOption) (*models.Scan, error) {
	scan := &models.Scan{
		QRCodeID:  qrCodeID,
		ScannedAt: utils.UTCNow(),
	}
	for _, opt := range opts {
		opt(scan)
	}
	if err := tf.DB.DB.Create(scan).Error; err != nil {
		return nil, fmt.Errorf("failed to create test scan: %w", err)
	}
	return scan, nil
}
