package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"parksys/internal/model"
)

// RateRepository defines versioned price list persistence operations.
type RateRepository interface {
	FindCurrent(ctx context.Context, vehicleType model.VehicleType, at time.Time) (*model.ParkingRate, error)
	ListCurrent(ctx context.Context, at time.Time) ([]model.ParkingRate, error)
	CloseOpen(ctx context.Context, at time.Time) error
	CreateBatch(ctx context.Context, rates []model.ParkingRate) error
	// WithTransaction executes a function against transaction-scoped rates so
	// close-old and insert-new happen as one unit.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RateRepository) error) error
}

type rateRepository struct {
	db *gorm.DB
}

// NewRateRepository creates a new rate repository.
func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

// FindCurrent returns the rate row in effect for a vehicle type at the given
// instant.
func (r *rateRepository) FindCurrent(ctx context.Context, vehicleType model.VehicleType, at time.Time) (*model.ParkingRate, error) {
	var rate model.ParkingRate
	err := r.db.WithContext(ctx).
		Where("vehicle_type = ? AND effective_from <= ?", vehicleType, at).
		Where("effective_until IS NULL OR effective_until >= ?", at).
		Order("effective_from DESC").
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// ListCurrent returns the rate rows in effect at the given instant, one per
// vehicle type, in type order.
func (r *rateRepository) ListCurrent(ctx context.Context, at time.Time) ([]model.ParkingRate, error) {
	var rates []model.ParkingRate
	err := r.db.WithContext(ctx).
		Where("effective_from <= ?", at).
		Where("effective_until IS NULL OR effective_until >= ?", at).
		Order("vehicle_type ASC").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

// CloseOpen stamps effective_until on every open rate row.
func (r *rateRepository) CloseOpen(ctx context.Context, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.ParkingRate{}).
		Where("effective_until IS NULL").
		Update("effective_until", at).Error
}

// CreateBatch inserts new rate rows.
func (r *rateRepository) CreateBatch(ctx context.Context, rates []model.ParkingRate) error {
	if len(rates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rates, 100).Error
}

// WithTransaction executes a function within a database transaction.
func (r *rateRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RateRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &rateRepository{db: tx})
	})
}
