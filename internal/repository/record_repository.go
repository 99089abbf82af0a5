package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"parksys/internal/model"
)

// RecordRepository defines parking record persistence operations. Records are
// append-only: there is deliberately no update method.
type RecordRepository interface {
	Create(ctx context.Context, record *model.ParkingRecord) error
	List(ctx context.Context, page, limit int) ([]model.ParkingRecord, int64, error)
	FindByEntryBetween(ctx context.Context, from, to time.Time) ([]model.ParkingRecord, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new record repository.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

// Create creates a new parking record.
func (r *recordRepository) Create(ctx context.Context, record *model.ParkingRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// List returns one page of records, newest entry first, plus the total count.
func (r *recordRepository) List(ctx context.Context, page, limit int) ([]model.ParkingRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ParkingRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.ParkingRecord
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Slot").
		Order("entry_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// FindByEntryBetween returns records whose entry time falls in [from, to].
func (r *recordRepository) FindByEntryBetween(ctx context.Context, from, to time.Time) ([]model.ParkingRecord, error) {
	var records []model.ParkingRecord
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("entry_time >= ? AND entry_time <= ?", from, to).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteAll removes every record. Used only by the administrative reset.
func (r *recordRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.ParkingRecord{})
	return res.RowsAffected, res.Error
}
