package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parksys/internal/model"
)

// VehicleRepository defines vehicle persistence operations.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Update(ctx context.Context, vehicle *model.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	FindParkedByRegistration(ctx context.Context, registration string) (*model.Vehicle, error)
	ListParked(ctx context.Context) ([]model.Vehicle, error)
	ListAll(ctx context.Context) ([]model.Vehicle, error)
	SearchParked(ctx context.Context, fragment string) ([]model.Vehicle, error)
	CountParked(ctx context.Context) (int64, error)
	DeleteParked(ctx context.Context) (int64, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

// Create creates a new vehicle row.
func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// Update updates an existing vehicle row.
func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

// FindByID finds a vehicle by ID.
func (r *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindParkedByRegistration finds the parked vehicle holding a registration, if any.
func (r *vehicleRepository) FindParkedByRegistration(ctx context.Context, registration string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.db.WithContext(ctx).
		Where("registration_number = ? AND status = ?", model.NormalizeRegistration(registration), model.VehicleStatusParked).
		First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListParked lists all currently parked vehicles.
func (r *vehicleRepository) ListParked(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Slot").
		Where("status = ?", model.VehicleStatusParked).
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// ListAll lists every vehicle row, newest entry first.
func (r *vehicleRepository) ListAll(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Slot").
		Order("entry_time DESC").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// SearchParked finds parked vehicles whose registration contains the fragment,
// case-insensitive.
func (r *vehicleRepository) SearchParked(ctx context.Context, fragment string) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	pattern := "%" + model.NormalizeRegistration(fragment) + "%"
	err := r.db.WithContext(ctx).
		Preload("Slot").
		Where("registration_number LIKE ? AND status = ?", pattern, model.VehicleStatusParked).
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// CountParked counts currently parked vehicles.
func (r *vehicleRepository) CountParked(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("status = ?", model.VehicleStatusParked).
		Count(&count).Error
	return count, err
}

// DeleteParked removes all parked vehicle rows. Used only by the
// administrative reset.
func (r *vehicleRepository) DeleteParked(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ?", model.VehicleStatusParked).
		Delete(&model.Vehicle{})
	return res.RowsAffected, res.Error
}
