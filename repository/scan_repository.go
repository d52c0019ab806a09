package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/Yata-no-Kagami/models"
	"gorm.io/gorm"
)

// ScanRepositoryImpl implements ScanRepository
type ScanRepositoryImpl struct {
	*BaseRepository[models.Scan, models.ScanFilter]
}

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &ScanRepositoryImpl{BaseRepository: NewBaseRepository[models.Scan, models.ScanFilter](db)}
}

func (r *ScanRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Scan, error) {
	db := r.getDB(ctx)
	var row models.Scan
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// SaveWithCounter inserts the scan and bumps qr_codes.scan_count in the same transaction
func (r *ScanRepositoryImpl) SaveWithCounter(ctx context.Context, scan *models.Scan) error {
	return WithTransaction(ctx, r.DB, func(txCtx context.Context) error {
		db := r.getDB(txCtx)
		if err := db.Create(scan).Error; err != nil {
			return fmt.Errorf("failed to save scan: %w", err)
		}
		err := db.Model(&models.QRCode{}).
			Where("id = ?", scan.QRCodeID).
			UpdateColumn("scan_count", gorm.Expr("scan_count + ?", 1)).Error
		if err != nil {
			return fmt.Errorf("failed to increment scan counter: %w", err)
		}
		return nil
	})
}

func (r *ScanRepositoryImpl) CountByQRCode(ctx context.Context, qrCodeID uint) (int64, error) {
	return r.Count(ctx, models.ScanFilter{QRCodeID: &qrCodeID})
}

// CountByDate buckets scans per UTC calendar day, oldest first
func (r *ScanRepositoryImpl) CountByDate(ctx context.Context, qrCodeID uint) ([]models.DateCount, error) {
	db := r.getDB(ctx)
	dayExpr := r.dayExpression(db)
	var rows []models.DateCount
	err := db.Model(&models.Scan{}).
		Select(dayExpr+" AS day, COUNT(*) AS total").
		Where("qr_code_id = ?", qrCodeID).
		Group(dayExpr).
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count scans by date: %w", err)
	}
	return rows, nil
}

func (r *ScanRepositoryImpl) CountByDevice(ctx context.Context, qrCodeID uint) ([]models.DeviceCount, error) {
	db := r.getDB(ctx)
	const deviceExpr = "COALESCE(device_type, 'unknown')"
	var rows []models.DeviceCount
	err := db.Model(&models.Scan{}).
		Select(deviceExpr+" AS device_type, COUNT(*) AS total").
		Where("qr_code_id = ?", qrCodeID).
		Group(deviceExpr).
		Order("total DESC, device_type ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count scans by device: %w", err)
	}
	return rows, nil
}

func (r *ScanRepositoryImpl) TopBrowsers(ctx context.Context, qrCodeID uint, limit int) ([]models.BrowserCount, error) {
	db := r.getDB(ctx)
	var rows []models.BrowserCount
	query := db.Model(&models.Scan{}).
		Select("browser, COUNT(*) AS total").
		Where("qr_code_id = ?", qrCodeID).
		Group("browser").
		Order("total DESC, browser ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count scans by browser: %w", err)
	}
	return rows, nil
}

func (r *ScanRepositoryImpl) TopLocations(ctx context.Context, qrCodeID uint, limit int) ([]models.LocationCount, error) {
	db := r.getDB(ctx)
	const (
		countryExpr = "COALESCE(country, 'unknown')"
		cityExpr    = "COALESCE(city, 'unknown')"
	)
	var rows []models.LocationCount
	query := db.Model(&models.Scan{}).
		Select(countryExpr+" AS country, "+cityExpr+" AS city, COUNT(*) AS total").
		Where("qr_code_id = ?", qrCodeID).
		Group(countryExpr + ", " + cityExpr).
		Order("total DESC, country ASC, city ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count scans by location: %w", err)
	}
	return rows, nil
}

// dayExpression renders scanned_at as YYYY-MM-DD in UTC for the active dialect
func (r *ScanRepositoryImpl) dayExpression(db *gorm.DB) string {
	if db.Dialector != nil && db.Dialector.Name() == "postgres" {
		return "TO_CHAR(scanned_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	}
	return "strftime('%Y-%m-%d', scanned_at)"
}

func (r *ScanRepositoryImpl) applyFilter(db *gorm.DB, f models.ScanFilter) *gorm.DB {
	if f.QRCodeID != nil {
		db = db.Where("qr_code_id = ?", *f.QRCodeID)
	}
	if f.DeviceType != nil {
		db = db.Where("device_type = ?", *f.DeviceType)
	}
	if f.ScannedAfter != nil {
		db = db.Where("scanned_at >= ?", *f.ScannedAfter)
	}
	if f.ScannedBefore != nil {
		db = db.Where("scanned_at < ?", *f.ScannedBefore)
	}
	return db
}

func (r *ScanRepositoryImpl) ByFilter(ctx context.Context, filter models.ScanFilter, orderBy string, limit, offset int) ([]*models.Scan, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Scan{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.Scan
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScanRepositoryImpl) Count(ctx context.Context, filter models.ScanFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Scan{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ScanRepositoryImpl) Exists(ctx context.Context, filter models.ScanFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
