package service

import (
	"context"
	"fmt"

	"parksys/internal/errors"
	"parksys/internal/model"
	"parksys/internal/repository"
)

// slotsPerRow controls the grid coordinates assigned to new slots.
const slotsPerRow = 10

// SystemConfig is the facility layout and price list snapshot.
type SystemConfig struct {
	TotalSlots  int64                       `json:"totalSlots"`
	SlotsByType map[model.VehicleType]int64 `json:"slotsByType"`
	Rates       []model.ParkingRate         `json:"rates"`
}

// CapacityChange reports the outcome of a capacity adjustment.
type CapacityChange struct {
	Added       map[model.VehicleType]int   `json:"added,omitempty"`
	Removed     map[model.VehicleType]int64 `json:"removed,omitempty"`
	SlotsByType map[model.VehicleType]int64 `json:"slotsByType"`
	TotalSlots  int64                       `json:"totalSlots"`
}

// SlotService manages facility capacity. Growth is additive: raising a
// category's target creates new slots with fresh labels, and shrinking only
// ever removes available slots.
type SlotService interface {
	SystemConfig(ctx context.Context) (*SystemConfig, error)
	// ExpandCapacity raises each category up to its target count. Targets at or
	// below the current count are a no-op; slots are never removed here.
	ExpandCapacity(ctx context.Context, targets map[model.VehicleType]int) (*CapacityChange, error)
	// ShrinkCapacity lowers each category toward its target by deleting
	// available slots only. A category with parked vehicles may stay above
	// target; the result reports what was actually removed.
	ShrinkCapacity(ctx context.Context, targets map[model.VehicleType]int) (*CapacityChange, error)
}

type slotService struct {
	slotRepo repository.SlotRepository
	rates    RateService
}

// NewSlotService creates a new capacity service.
func NewSlotService(slotRepo repository.SlotRepository, rates RateService) SlotService {
	return &slotService{slotRepo: slotRepo, rates: rates}
}

// SystemConfig returns current capacity per type and the active price list.
func (s *slotService) SystemConfig(ctx context.Context) (*SystemConfig, error) {
	byType, err := s.slotRepo.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count slots: %w", err)
	}
	rates, err := s.rates.CurrentRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}

	cfg := &SystemConfig{SlotsByType: byType, Rates: rates}
	for _, count := range byType {
		cfg.TotalSlots += count
	}
	return cfg, nil
}

func (s *slotService) ExpandCapacity(ctx context.Context, targets map[model.VehicleType]int) (*CapacityChange, error) {
	if err := validateTargets(targets); err != nil {
		return nil, err
	}
	current, err := s.slotRepo.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count slots: %w", err)
	}
	nextSuffix, err := s.slotRepo.MaxNumberSuffix(ctx)
	if err != nil {
		return nil, fmt.Errorf("max slot number: %w", err)
	}

	added := make(map[model.VehicleType]int)
	// Iterate in declared type order so label assignment is deterministic.
	for _, vehicleType := range model.VehicleTypes {
		target, ok := targets[vehicleType]
		if !ok || target <= int(current[vehicleType]) {
			continue
		}
		toAdd := target - int(current[vehicleType])
		slots := make([]model.ParkingSlot, 0, toAdd)
		for i := 0; i < toAdd; i++ {
			nextSuffix++
			slots = append(slots, model.ParkingSlot{
				Number:    fmt.Sprintf("%s%02d", model.NumberPrefix(vehicleType), nextSuffix),
				Type:      vehicleType,
				Status:    model.SlotStatusAvailable,
				PositionX: ((nextSuffix - 1) % slotsPerRow) * 100,
				PositionY: ((nextSuffix - 1) / slotsPerRow) * 80,
			})
		}
		if err := s.slotRepo.CreateBatch(ctx, slots); err != nil {
			return nil, fmt.Errorf("add %s slots: %w", vehicleType, err)
		}
		added[vehicleType] = toAdd
	}

	change := &CapacityChange{Added: added}
	if err := s.fillCounts(ctx, change); err != nil {
		return nil, err
	}
	return change, nil
}

func (s *slotService) ShrinkCapacity(ctx context.Context, targets map[model.VehicleType]int) (*CapacityChange, error) {
	if err := validateTargets(targets); err != nil {
		return nil, err
	}
	current, err := s.slotRepo.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count slots: %w", err)
	}

	removed := make(map[model.VehicleType]int64)
	for _, vehicleType := range model.VehicleTypes {
		target, ok := targets[vehicleType]
		if !ok || int(current[vehicleType]) <= target {
			continue
		}
		count, err := s.slotRepo.DeleteAvailable(ctx, vehicleType, int(current[vehicleType])-target)
		if err != nil {
			return nil, fmt.Errorf("remove %s slots: %w", vehicleType, err)
		}
		removed[vehicleType] = count
	}

	change := &CapacityChange{Removed: removed}
	if err := s.fillCounts(ctx, change); err != nil {
		return nil, err
	}
	return change, nil
}

func (s *slotService) fillCounts(ctx context.Context, change *CapacityChange) error {
	byType, err := s.slotRepo.CountByType(ctx)
	if err != nil {
		return fmt.Errorf("recount slots: %w", err)
	}
	change.SlotsByType = byType
	for _, count := range byType {
		change.TotalSlots += count
	}
	return nil
}

func validateTargets(targets map[model.VehicleType]int) error {
	if len(targets) == 0 {
		return fmt.Errorf("%w: at least one slot target is required", errors.ErrValidation)
	}
	for vehicleType, target := range targets {
		if !vehicleType.Valid() {
			return fmt.Errorf("%w: unknown vehicle type %q", errors.ErrValidation, vehicleType)
		}
		if target < 0 {
			return fmt.Errorf("%w: slot count for %s cannot be negative", errors.ErrValidation, vehicleType)
		}
	}
	return nil
}
