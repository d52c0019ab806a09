// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/amirphl/Yata-no-Kagami/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// QRCodeRepository defines operations for issued QR codes
type QRCodeRepository interface {
	Repository[models.QRCode, models.QRCodeFilter]
	ByShortCode(ctx context.Context, shortCode string) (*models.QRCode, error)
}

// ScanRepository defines operations for scan events and their aggregates
type ScanRepository interface {
	Repository[models.Scan, models.ScanFilter]
	SaveWithCounter(ctx context.Context, scan *models.Scan) error
	CountByQRCode(ctx context.Context, qrCodeID uint) (int64, error)
	CountByDate(ctx context.Context, qrCodeID uint) ([]models.DateCount, error)
	CountByDevice(ctx context.Context, qrCodeID uint) ([]models.DeviceCount, error)
	TopBrowsers(ctx context.Context, qrCodeID uint, limit int) ([]models.BrowserCount, error)
	TopLocations(ctx context.Context, qrCodeID uint, limit int) ([]models.LocationCount, error)
}
