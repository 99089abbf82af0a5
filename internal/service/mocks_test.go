package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"parksys/internal/model"
	"parksys/internal/notify"
	"parksys/internal/repository"
)

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindParkedByRegistration(ctx context.Context, registration string) (*model.Vehicle, error) {
	args := m.Called(ctx, registration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListParked(ctx context.Context) ([]model.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListAll(ctx context.Context) ([]model.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) SearchParked(ctx context.Context, fragment string) ([]model.Vehicle, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) CountParked(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVehicleRepository) DeleteParked(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSlotRepository is a mock implementation of SlotRepository.
type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) CreateBatch(ctx context.Context, slots []model.ParkingSlot) error {
	args := m.Called(ctx, slots)
	return args.Error(0)
}

func (m *MockSlotRepository) Update(ctx context.Context, slot *model.ParkingSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ParkingSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingSlot), args.Error(1)
}

func (m *MockSlotRepository) FindFirstAvailableForUpdate(ctx context.Context, vehicleType model.VehicleType) (*model.ParkingSlot, error) {
	args := m.Called(ctx, vehicleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingSlot), args.Error(1)
}

func (m *MockSlotRepository) ListAll(ctx context.Context) ([]model.ParkingSlot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ParkingSlot), args.Error(1)
}

func (m *MockSlotRepository) CountByType(ctx context.Context) (map[model.VehicleType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.VehicleType]int64), args.Error(1)
}

func (m *MockSlotRepository) CountByStatus(ctx context.Context) (map[model.SlotStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.SlotStatus]int64), args.Error(1)
}

func (m *MockSlotRepository) MaxNumberSuffix(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockSlotRepository) DeleteAvailable(ctx context.Context, vehicleType model.VehicleType, limit int) (int64, error) {
	args := m.Called(ctx, vehicleType, limit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSlotRepository) ReleaseAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRecordRepository is a mock implementation of RecordRepository.
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Create(ctx context.Context, record *model.ParkingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) List(ctx context.Context, page, limit int) ([]model.ParkingRecord, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.ParkingRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecordRepository) FindByEntryBetween(ctx context.Context, from, to time.Time) ([]model.ParkingRecord, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ParkingRecord), args.Error(1)
}

func (m *MockRecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRateRepository is a mock implementation of RateRepository.
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindCurrent(ctx context.Context, vehicleType model.VehicleType, at time.Time) (*model.ParkingRate, error) {
	args := m.Called(ctx, vehicleType, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ParkingRate), args.Error(1)
}

func (m *MockRateRepository) ListCurrent(ctx context.Context, at time.Time) ([]model.ParkingRate, error) {
	args := m.Called(ctx, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ParkingRate), args.Error(1)
}

func (m *MockRateRepository) CloseOpen(ctx context.Context, at time.Time) error {
	args := m.Called(ctx, at)
	return args.Error(0)
}

func (m *MockRateRepository) CreateBatch(ctx context.Context, rates []model.ParkingRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockRateRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.RateRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID, username string, role model.UserRole, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, string, model.UserRole, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.String(1), args.Get(2).(model.UserRole), args.Error(3)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// fakeTxManager runs the unit of work directly against the given mocks, so
// transactional paths are testable without a database.
type fakeTxManager struct {
	repos repository.TxRepos
}

func (f *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	return fn(ctx, f.repos)
}

// recordingNotifier captures dispatched notifications.
type recordingNotifier struct {
	entries []notify.EntryData
	exits   []notify.ExitData
}

func (n *recordingNotifier) NotifyEntry(data notify.EntryData, email, phone string) {
	n.entries = append(n.entries, data)
}

func (n *recordingNotifier) NotifyExit(data notify.ExitData, email, phone string) {
	n.exits = append(n.exits, data)
}
