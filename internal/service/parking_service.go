package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"parksys/internal/cache"
	"parksys/internal/errors"
	"parksys/internal/model"
	"parksys/internal/notify"
	"parksys/internal/repository"
)

const (
	statsCacheKey = "parking:stats"
	statsCacheTTL = 30 * time.Second

	// defaultAverageStay is reported when no completed stay exists yet.
	defaultAverageStay = 125
)

// peakHourBands is the static list of historically busy windows shown on the
// dashboard and reports.
var peakHourBands = []string{"09:00-11:00", "14:00-16:00", "18:00-20:00"}

// Notifier dispatches lifecycle notifications without blocking the caller.
type Notifier interface {
	NotifyEntry(data notify.EntryData, email, phone string)
	NotifyExit(data notify.ExitData, email, phone string)
}

// EntryRequest carries the fields of a vehicle entry.
type EntryRequest struct {
	RegistrationNumber string
	Type               model.VehicleType
	OwnerName          string
	PhoneNumber        string
	Email              string
}

// DashboardStats is the aggregate snapshot shown on the dashboard.
type DashboardStats struct {
	TotalSlots          int64           `json:"totalSlots"`
	OccupiedSlots       int64           `json:"occupiedSlots"`
	AvailableSlots      int64           `json:"availableSlots"`
	ReservedSlots       int64           `json:"reservedSlots"`
	TodayRevenue        decimal.Decimal `json:"todayRevenue"`
	TodayVehicles       int             `json:"todayVehicles"`
	AverageStayDuration int64           `json:"averageStayDuration"`
	PeakHours           []string        `json:"peakHours"`
}

// ResetSummary reports what an administrative reset cleared.
type ResetSummary struct {
	VehiclesCleared int64 `json:"vehicles"`
	RecordsCleared  int64 `json:"records"`
	TotalSlots      int64 `json:"slots"`
}

// ParkingService orchestrates the parking lifecycle: slot allocation on
// entry, billing and release on exit.
type ParkingService interface {
	EnterVehicle(ctx context.Context, req EntryRequest) (*model.Vehicle, string, error)
	ExitVehicle(ctx context.Context, vehicleID uuid.UUID, method model.PaymentMethod) (*model.ParkingRecord, error)
	ListSlots(ctx context.Context) ([]model.ParkingSlot, error)
	ActiveVehicles(ctx context.Context) ([]model.Vehicle, error)
	AllVehicles(ctx context.Context) ([]model.Vehicle, error)
	SearchParked(ctx context.Context, fragment string) ([]model.Vehicle, error)
	Records(ctx context.Context, page, limit int) ([]model.ParkingRecord, int64, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	Reset(ctx context.Context) (*ResetSummary, error)
}

type parkingService struct {
	vehicleRepo repository.VehicleRepository
	slotRepo    repository.SlotRepository
	recordRepo  repository.RecordRepository
	txManager   repository.TxManager
	rates       RateService
	notifier    Notifier
	cache       *cache.Client
	// Mutex map for per-vehicle-type allocation serialization
	typeMutexes sync.Map
}

// NewParkingService creates a new parking lifecycle service.
func NewParkingService(
	vehicleRepo repository.VehicleRepository,
	slotRepo repository.SlotRepository,
	recordRepo repository.RecordRepository,
	txManager repository.TxManager,
	rates RateService,
	notifier Notifier,
	cache *cache.Client,
) ParkingService {
	return &parkingService{
		vehicleRepo: vehicleRepo,
		slotRepo:    slotRepo,
		recordRepo:  recordRepo,
		txManager:   txManager,
		rates:       rates,
		notifier:    notifier,
		cache:       cache,
	}
}

// getMutex returns the allocation mutex for a vehicle type.
func (s *parkingService) getMutex(t model.VehicleType) *sync.Mutex {
	value, _ := s.typeMutexes.LoadOrStore(string(t), &sync.Mutex{})
	return value.(*sync.Mutex)
}

// EnterVehicle runs the entry protocol: reject duplicates, pick the first
// free slot of the requested type, and create the vehicle and occupy the slot
// in one transaction. Returns the vehicle and the assigned slot label.
func (s *parkingService) EnterVehicle(ctx context.Context, req EntryRequest) (*model.Vehicle, string, error) {
	if req.RegistrationNumber == "" || !req.Type.Valid() {
		return nil, "", errors.ErrValidation
	}
	if req.PhoneNumber == "" && req.Email == "" {
		return nil, "", fmt.Errorf("%w: owner phone number or email is required", errors.ErrValidation)
	}

	// Serialize allocation per vehicle type in-process; the row lock below
	// covers concurrent instances.
	mutex := s.getMutex(req.Type)
	mutex.Lock()
	defer mutex.Unlock()

	existing, err := s.vehicleRepo.FindParkedByRegistration(ctx, req.RegistrationNumber)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check active vehicle: %w", err)
	}
	if existing != nil {
		return nil, "", errors.ErrDuplicateActiveVehicle
	}

	baseRate, err := s.rates.BaseRate(ctx, req.Type, time.Now())
	if err != nil {
		return nil, "", fmt.Errorf("look up rate: %w", err)
	}

	var vehicle *model.Vehicle
	var slotNumber string
	err = s.txManager.WithTransaction(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		slot, err := repos.Slots.FindFirstAvailableForUpdate(ctx, req.Type)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrNoAvailableSlot
			}
			return fmt.Errorf("find available slot: %w", err)
		}

		vehicle = &model.Vehicle{
			RegistrationNumber: req.RegistrationNumber,
			Type:               req.Type,
			OwnerName:          req.OwnerName,
			PhoneNumber:        req.PhoneNumber,
			Email:              req.Email,
			EntryTime:          time.Now(),
			SlotID:             &slot.ID,
			Status:             model.VehicleStatusParked,
		}
		if err := repos.Vehicles.Create(ctx, vehicle); err != nil {
			return fmt.Errorf("create vehicle: %w", err)
		}

		slot.Status = model.SlotStatusOccupied
		slot.VehicleID = &vehicle.ID
		if err := repos.Slots.Update(ctx, slot); err != nil {
			return fmt.Errorf("occupy slot: %w", err)
		}
		slotNumber = slot.Number
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	_ = s.cache.Delete(ctx, statsCacheKey)

	s.notifier.NotifyEntry(notify.EntryData{
		RegistrationNumber: vehicle.RegistrationNumber,
		VehicleType:        vehicle.Type,
		OwnerName:          vehicle.OwnerName,
		SlotNumber:         slotNumber,
		EntryTime:          vehicle.EntryTime,
		Rate:               baseRate,
	}, vehicle.Email, vehicle.PhoneNumber)

	return vehicle, slotNumber, nil
}

// ExitVehicle runs the exit protocol: compute the fee, write the immutable
// record, mark the vehicle exited, and free the slot, all in one transaction.
func (s *parkingService) ExitVehicle(ctx context.Context, vehicleID uuid.UUID, method model.PaymentMethod) (*model.ParkingRecord, error) {
	var record *model.ParkingRecord
	var vehicle *model.Vehicle

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		vehicle, err = repos.Vehicles.FindByID(ctx, vehicleID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrVehicleNotFound
			}
			return fmt.Errorf("find vehicle: %w", err)
		}
		if vehicle.Status != model.VehicleStatusParked {
			return errors.ErrVehicleNotParked
		}
		if vehicle.SlotID == nil {
			return errors.ErrSlotNotFound
		}

		slot, err := repos.Slots.FindByID(ctx, *vehicle.SlotID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrSlotNotFound
			}
			return fmt.Errorf("find slot: %w", err)
		}

		exitTime := time.Now()
		baseRate, err := s.rates.BaseRate(ctx, vehicle.Type, exitTime)
		if err != nil {
			return fmt.Errorf("look up rate: %w", err)
		}
		durationMinutes, _, amount := ComputeBill(vehicle.EntryTime, exitTime, baseRate)

		record = &model.ParkingRecord{
			VehicleID:       vehicle.ID,
			SlotID:          slot.ID,
			EntryTime:       vehicle.EntryTime,
			ExitTime:        exitTime,
			DurationMinutes: durationMinutes,
			Amount:          amount,
			PaymentStatus:   model.PaymentStatusCompleted,
			PaymentMethod:   method,
			ReceiptID:       fmt.Sprintf("RCP-%d", exitTime.UnixMilli()),
		}
		if err := repos.Records.Create(ctx, record); err != nil {
			return fmt.Errorf("create record: %w", err)
		}

		vehicle.ExitTime = &exitTime
		vehicle.Status = model.VehicleStatusExited
		vehicle.SlotID = nil
		if err := repos.Vehicles.Update(ctx, vehicle); err != nil {
			return fmt.Errorf("mark vehicle exited: %w", err)
		}

		slot.Status = model.SlotStatusAvailable
		slot.VehicleID = nil
		if err := repos.Slots.Update(ctx, slot); err != nil {
			return fmt.Errorf("release slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, statsCacheKey)

	s.notifier.NotifyExit(notify.ExitData{
		RegistrationNumber: vehicle.RegistrationNumber,
		OwnerName:          vehicle.OwnerName,
		DurationMinutes:    record.DurationMinutes,
		Amount:             record.Amount,
		PaymentMethod:      record.PaymentMethod,
		ReceiptID:          record.ReceiptID,
	}, vehicle.Email, vehicle.PhoneNumber)

	return record, nil
}

// ComputeBill derives the billed duration and amount for a stay. Duration
// rounds up to whole minutes and any partial hour bills as a full hour.
func ComputeBill(entry, exit time.Time, baseRate decimal.Decimal) (durationMinutes, billedHours int64, amount decimal.Decimal) {
	elapsed := exit.Sub(entry)
	durationMinutes = int64(elapsed / time.Minute)
	if elapsed%time.Minute != 0 {
		durationMinutes++
	}
	if durationMinutes < 0 {
		durationMinutes = 0
	}
	billedHours = (durationMinutes + 59) / 60
	amount = baseRate.Mul(decimal.NewFromInt(billedHours))
	return durationMinutes, billedHours, amount
}

// ListSlots lists every slot in label order.
func (s *parkingService) ListSlots(ctx context.Context) ([]model.ParkingSlot, error) {
	return s.slotRepo.ListAll(ctx)
}

// ActiveVehicles lists currently parked vehicles.
func (s *parkingService) ActiveVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return s.vehicleRepo.ListParked(ctx)
}

// AllVehicles lists every vehicle, newest entry first.
func (s *parkingService) AllVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return s.vehicleRepo.ListAll(ctx)
}

// SearchParked finds parked vehicles by registration fragment.
func (s *parkingService) SearchParked(ctx context.Context, fragment string) ([]model.Vehicle, error) {
	if fragment == "" {
		return nil, fmt.Errorf("%w: registration number is required", errors.ErrValidation)
	}
	return s.vehicleRepo.SearchParked(ctx, fragment)
}

// Records returns one page of historical records plus the total count.
func (s *parkingService) Records(ctx context.Context, page, limit int) ([]model.ParkingRecord, int64, error) {
	return s.recordRepo.List(ctx, page, limit)
}

// DashboardStats computes the dashboard aggregate, cached briefly.
func (s *parkingService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	byStatus, err := s.slotRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count slots: %w", err)
	}

	start, end := dayBounds(time.Now())
	todayRecords, err := s.recordRepo.FindByEntryBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load today's records: %w", err)
	}

	revenue := decimal.Zero
	var totalMinutes int64
	for _, r := range todayRecords {
		revenue = revenue.Add(r.Amount)
		totalMinutes += r.DurationMinutes
	}
	averageStay := int64(defaultAverageStay)
	if len(todayRecords) > 0 {
		averageStay = totalMinutes / int64(len(todayRecords))
	}

	stats := &DashboardStats{
		TotalSlots:          byStatus[model.SlotStatusAvailable] + byStatus[model.SlotStatusOccupied] + byStatus[model.SlotStatusReserved] + byStatus[model.SlotStatusMaintenance],
		OccupiedSlots:       byStatus[model.SlotStatusOccupied],
		AvailableSlots:      byStatus[model.SlotStatusAvailable],
		ReservedSlots:       byStatus[model.SlotStatusReserved],
		TodayRevenue:        revenue,
		TodayVehicles:       len(todayRecords),
		AverageStayDuration: averageStay,
		PeakHours:           peakHourBands,
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}
	return stats, nil
}

// Reset clears parked vehicles and all records and frees every slot.
func (s *parkingService) Reset(ctx context.Context) (*ResetSummary, error) {
	summary := &ResetSummary{}
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		cleared, err := repos.Vehicles.DeleteParked(ctx)
		if err != nil {
			return fmt.Errorf("clear vehicles: %w", err)
		}
		summary.VehiclesCleared = cleared

		records, err := repos.Records.DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("clear records: %w", err)
		}
		summary.RecordsCleared = records

		if err := repos.Slots.ReleaseAll(ctx); err != nil {
			return fmt.Errorf("release slots: %w", err)
		}

		byStatus, err := repos.Slots.CountByStatus(ctx)
		if err != nil {
			return fmt.Errorf("count slots: %w", err)
		}
		for _, count := range byStatus {
			summary.TotalSlots += count
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, statsCacheKey)
	return summary, nil
}

// dayBounds returns the inclusive start and end instants of the calendar day
// containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.Add(24*time.Hour - time.Nanosecond)
}
