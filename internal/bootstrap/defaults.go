package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"parksys/internal/model"
	"parksys/internal/repository"
	"parksys/internal/service"
)

const (
	defaultTwoWheelerSlots  = 30
	defaultFourWheelerSlots = 20
	slotsPerRow             = 10
)

// defaultUsers are the accounts created on first boot. Operators are expected
// to change these passwords immediately.
var defaultUsers = []struct {
	username string
	email    string
	name     string
	role     model.UserRole
	password string
}{
	{"admin", "admin@parksys.local", "Administrator", model.UserRoleAdmin, "admin123"},
	{"staff", "staff@parksys.local", "Staff", model.UserRoleStaff, "staff123"},
}

// EnsureDefaultData seeds the facility on first boot: 50 slots, the default
// price list, and the admin/staff accounts. Each section is idempotent and
// skipped when data already exists.
func EnsureDefaultData(
	ctx context.Context,
	slotRepo repository.SlotRepository,
	rateRepo repository.RateRepository,
	userRepo repository.UserRepository,
) error {
	if err := ensureSlots(ctx, slotRepo); err != nil {
		return fmt.Errorf("seed slots: %w", err)
	}
	if err := ensureRates(ctx, rateRepo); err != nil {
		return fmt.Errorf("seed rates: %w", err)
	}
	if err := ensureUsers(ctx, userRepo); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	return nil
}

func ensureSlots(ctx context.Context, slotRepo repository.SlotRepository) error {
	byType, err := slotRepo.CountByType(ctx)
	if err != nil {
		return err
	}
	var total int64
	for _, count := range byType {
		total += count
	}
	if total > 0 {
		return nil
	}

	slots := make([]model.ParkingSlot, 0, defaultTwoWheelerSlots+defaultFourWheelerSlots)
	suffix := 0
	appendSlots := func(vehicleType model.VehicleType, count int) {
		for i := 0; i < count; i++ {
			suffix++
			slots = append(slots, model.ParkingSlot{
				Number:    fmt.Sprintf("%s%02d", model.NumberPrefix(vehicleType), suffix),
				Type:      vehicleType,
				Status:    model.SlotStatusAvailable,
				PositionX: ((suffix - 1) % slotsPerRow) * 100,
				PositionY: ((suffix - 1) / slotsPerRow) * 80,
			})
		}
	}
	appendSlots(model.VehicleTypeTwoWheeler, defaultTwoWheelerSlots)
	appendSlots(model.VehicleTypeFourWheeler, defaultFourWheelerSlots)

	if err := slotRepo.CreateBatch(ctx, slots); err != nil {
		return err
	}
	log.Printf("bootstrap: created %d default slots", len(slots))
	return nil
}

func ensureRates(ctx context.Context, rateRepo repository.RateRepository) error {
	now := time.Now()
	current, err := rateRepo.ListCurrent(ctx, now)
	if err != nil {
		return err
	}
	if len(current) > 0 {
		return nil
	}

	rates := make([]model.ParkingRate, 0, len(model.VehicleTypes))
	for _, vehicleType := range model.VehicleTypes {
		base := decimal.NewFromInt(service.DefaultBaseRates[vehicleType])
		rates = append(rates, model.ParkingRate{
			VehicleType:    vehicleType,
			BaseRate:       base,
			AdditionalRate: base,
			Currency:       "INR",
			EffectiveFrom:  now,
		})
	}
	if err := rateRepo.CreateBatch(ctx, rates); err != nil {
		return err
	}
	log.Printf("bootstrap: created default rates for %d vehicle types", len(rates))
	return nil
}

func ensureUsers(ctx context.Context, userRepo repository.UserRepository) error {
	for _, u := range defaultUsers {
		_, err := userRepo.FindByUsername(ctx, u.username)
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := userRepo.Create(ctx, &model.User{
			Username:     u.username,
			Email:        u.email,
			Name:         u.name,
			Role:         u.role,
			PasswordHash: string(hash),
			Active:       true,
		}); err != nil {
			return err
		}
		log.Printf("bootstrap: created default %s user %q", u.role, u.username)
	}
	return nil
}
