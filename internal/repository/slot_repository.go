package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"parksys/internal/model"
)

// SlotRepository defines parking slot persistence operations.
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []model.ParkingSlot) error
	Update(ctx context.Context, slot *model.ParkingSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ParkingSlot, error)
	// FindFirstAvailableForUpdate locks and returns the lowest-numbered
	// available slot of the given type. Callers must be inside a transaction
	// for the row lock to mean anything.
	FindFirstAvailableForUpdate(ctx context.Context, vehicleType model.VehicleType) (*model.ParkingSlot, error)
	ListAll(ctx context.Context) ([]model.ParkingSlot, error)
	CountByType(ctx context.Context) (map[model.VehicleType]int64, error)
	CountByStatus(ctx context.Context) (map[model.SlotStatus]int64, error)
	MaxNumberSuffix(ctx context.Context) (int, error)
	DeleteAvailable(ctx context.Context, vehicleType model.VehicleType, limit int) (int64, error)
	ReleaseAll(ctx context.Context) error
}

type slotRepository struct {
	db *gorm.DB
}

// NewSlotRepository creates a new slot repository.
func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

// CreateBatch inserts new slots in one statement.
func (r *slotRepository) CreateBatch(ctx context.Context, slots []model.ParkingSlot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(slots, 100).Error
}

// Update updates an existing slot.
func (r *slotRepository) Update(ctx context.Context, slot *model.ParkingSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

// FindByID finds a slot by ID.
func (r *slotRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ParkingSlot, error) {
	var slot model.ParkingSlot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// FindFirstAvailableForUpdate locks the first free slot of a type with a
// row-level lock so concurrent entries serialize on the same candidate.
func (r *slotRepository) FindFirstAvailableForUpdate(ctx context.Context, vehicleType model.VehicleType) (*model.ParkingSlot, error) {
	var slot model.ParkingSlot
	err := r.db.WithContext(ctx).Set("gorm:query_option", "FOR UPDATE").
		Where("status = ? AND type = ?", model.SlotStatusAvailable, vehicleType).
		Order("CAST(SUBSTRING(number, 2) AS UNSIGNED) ASC").
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListAll lists every slot in label order. Labels sort by their numeric
// suffix so A100 comes after A99, not between A10 and A11.
func (r *slotRepository) ListAll(ctx context.Context) ([]model.ParkingSlot, error) {
	var slots []model.ParkingSlot
	if err := r.db.WithContext(ctx).Order("CAST(SUBSTRING(number, 2) AS UNSIGNED) ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

type typeCount struct {
	Type  model.VehicleType
	Count int64
}

// CountByType returns slot counts grouped by vehicle type.
func (r *slotRepository) CountByType(ctx context.Context) (map[model.VehicleType]int64, error) {
	var rows []typeCount
	err := r.db.WithContext(ctx).Model(&model.ParkingSlot{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.VehicleType]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

type statusCount struct {
	Status model.SlotStatus
	Count  int64
}

// CountByStatus returns slot counts grouped by status.
func (r *slotRepository) CountByStatus(ctx context.Context) (map[model.SlotStatus]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).Model(&model.ParkingSlot{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.SlotStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// MaxNumberSuffix returns the highest numeric suffix across all slot labels
// (e.g. 52 for "B52"), or 0 when no slots exist. New slots continue counting
// from here so labels are never reused.
func (r *slotRepository) MaxNumberSuffix(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&model.ParkingSlot{}).
		Select("MAX(CAST(SUBSTRING(number, 2) AS UNSIGNED))").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// DeleteAvailable removes up to limit available slots of a type, highest
// label first. Occupied slots are never touched.
func (r *slotRepository) DeleteAvailable(ctx context.Context, vehicleType model.VehicleType, limit int) (int64, error) {
	if limit <= 0 {
		return 0, nil
	}
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.ParkingSlot{}).
		Where("type = ? AND status = ?", vehicleType, model.SlotStatusAvailable).
		Order("CAST(SUBSTRING(number, 2) AS UNSIGNED) DESC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.ParkingSlot{})
	return res.RowsAffected, res.Error
}

// ReleaseAll marks every slot available and clears occupant references.
// Used only by the administrative reset.
func (r *slotRepository) ReleaseAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.ParkingSlot{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"status":     model.SlotStatusAvailable,
			"vehicle_id": nil,
		}).Error
}
