package repository

import (
	"context"
	"errors"

	"github.com/amirphl/Yata-no-Kagami/models"
	"gorm.io/gorm"
)

// QRCodeRepositoryImpl implements QRCodeRepository
type QRCodeRepositoryImpl struct {
	*BaseRepository[models.QRCode, models.QRCodeFilter]
}

func NewQRCodeRepository(db *gorm.DB) QRCodeRepository {
	return &QRCodeRepositoryImpl{BaseRepository: NewBaseRepository[models.QRCode, models.QRCodeFilter](db)}
}

func (r *QRCodeRepositoryImpl) ByID(ctx context.Context, id uint) (*models.QRCode, error) {
	db := r.getDB(ctx)
	var row models.QRCode
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByShortCode is the redirect hot path; it relies on uk_qr_codes_short_code
func (r *QRCodeRepositoryImpl) ByShortCode(ctx context.Context, shortCode string) (*models.QRCode, error) {
	db := r.getDB(ctx)
	var row models.QRCode
	if err := db.Where("short_code = ?", shortCode).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *QRCodeRepositoryImpl) applyFilter(db *gorm.DB, f models.QRCodeFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.ShortCode != nil {
		db = db.Where("short_code = ?", *f.ShortCode)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *QRCodeRepositoryImpl) ByFilter(ctx context.Context, filter models.QRCodeFilter, orderBy string, limit, offset int) ([]*models.QRCode, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.QRCode{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.QRCode
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *QRCodeRepositoryImpl) Count(ctx context.Context, filter models.QRCodeFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.QRCode{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *QRCodeRepositoryImpl) Exists(ctx context.Context, filter models.QRCodeFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
