package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"parksys/internal/errors"
	"parksys/internal/model"
	"parksys/internal/repository"
)

// DefaultBaseRates are the hourly prices used until an administrator
// publishes a price list of their own.
var DefaultBaseRates = map[model.VehicleType]int64{
	model.VehicleTypeTwoWheeler:  10,
	model.VehicleTypeFourWheeler: 20,
	model.VehicleTypeTruck:       50,
	model.VehicleTypeBus:         75,
}

// RateUpdate is one vehicle type's new price in a rate revision.
type RateUpdate struct {
	VehicleType    model.VehicleType
	BaseRate       decimal.Decimal
	AdditionalRate decimal.Decimal
}

// RateService exposes the versioned price list.
type RateService interface {
	// BaseRate returns the hourly rate in effect for a vehicle type at the
	// given instant, falling back to the built-in default when no row exists.
	BaseRate(ctx context.Context, vehicleType model.VehicleType, at time.Time) (decimal.Decimal, error)
	CurrentRates(ctx context.Context) ([]model.ParkingRate, error)
	// UpdateRates publishes a new price revision: open rows are closed and new
	// rows inserted in one transaction. Historical rows are never modified.
	UpdateRates(ctx context.Context, updates []RateUpdate) ([]model.ParkingRate, error)
}

type rateService struct {
	rateRepo repository.RateRepository
}

// NewRateService creates a new rate service.
func NewRateService(rateRepo repository.RateRepository) RateService {
	return &rateService{rateRepo: rateRepo}
}

func (s *rateService) BaseRate(ctx context.Context, vehicleType model.VehicleType, at time.Time) (decimal.Decimal, error) {
	rate, err := s.rateRepo.FindCurrent(ctx, vehicleType, at)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return defaultBaseRate(vehicleType), nil
		}
		return decimal.Zero, fmt.Errorf("find current rate: %w", err)
	}
	return rate.BaseRate, nil
}

func (s *rateService) CurrentRates(ctx context.Context) ([]model.ParkingRate, error) {
	return s.rateRepo.ListCurrent(ctx, time.Now())
}

func (s *rateService) UpdateRates(ctx context.Context, updates []RateUpdate) ([]model.ParkingRate, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: at least one rate is required", errors.ErrValidation)
	}
	seen := make(map[model.VehicleType]bool, len(updates))
	for _, u := range updates {
		if !u.VehicleType.Valid() {
			return nil, fmt.Errorf("%w: unknown vehicle type %q", errors.ErrValidation, u.VehicleType)
		}
		if !u.BaseRate.IsPositive() {
			return nil, fmt.Errorf("%w: base rate for %s must be positive", errors.ErrValidation, u.VehicleType)
		}
		if seen[u.VehicleType] {
			return nil, fmt.Errorf("%w: duplicate vehicle type %q", errors.ErrValidation, u.VehicleType)
		}
		seen[u.VehicleType] = true
	}

	now := time.Now()
	rates := make([]model.ParkingRate, 0, len(updates))
	for _, u := range updates {
		additional := u.AdditionalRate
		if additional.IsZero() {
			additional = u.BaseRate
		}
		rates = append(rates, model.ParkingRate{
			VehicleType:    u.VehicleType,
			BaseRate:       u.BaseRate,
			AdditionalRate: additional,
			Currency:       "INR",
			EffectiveFrom:  now,
		})
	}

	err := s.rateRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.RateRepository) error {
		if err := repo.CloseOpen(ctx, now); err != nil {
			return fmt.Errorf("close open rates: %w", err)
		}
		if err := repo.CreateBatch(ctx, rates); err != nil {
			return fmt.Errorf("insert new rates: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func defaultBaseRate(vehicleType model.VehicleType) decimal.Decimal {
	if rate, ok := DefaultBaseRates[vehicleType]; ok {
		return decimal.NewFromInt(rate)
	}
	if vehicleType == model.VehicleTypeTwoWheeler {
		return decimal.NewFromInt(10)
	}
	return decimal.NewFromInt(20)
}
