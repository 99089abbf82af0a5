package main

import (
	"context"
	"log"

	"parksys/internal/bootstrap"
	"parksys/internal/config"
	"parksys/internal/db"
	"parksys/internal/model"
	"parksys/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(
		&model.ParkingSlot{},
		&model.Vehicle{},
		&model.ParkingRecord{},
		&model.ParkingRate{},
		&model.User{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	slotRepo := repository.NewSlotRepository(gormDB)
	rateRepo := repository.NewRateRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	if err := bootstrap.EnsureDefaultData(context.Background(), slotRepo, rateRepo, userRepo); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Println("Seed completed")
}
