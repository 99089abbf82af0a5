package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "parksys/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"parksys/internal/auth"
	"parksys/internal/bootstrap"
	"parksys/internal/cache"
	"parksys/internal/config"
	"parksys/internal/db"
	"parksys/internal/handler"
	"parksys/internal/model"
	"parksys/internal/notify"
	"parksys/internal/repository"
	"parksys/internal/router"
	"parksys/internal/service"
)

// @title ParkSys API
// @version 1.0
// @description Parking facility management API: slots, vehicle entry/exit, billing, rates, reports.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.ParkingRecord{},
			&model.Vehicle{},
			&model.ParkingSlot{},
			&model.ParkingRate{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.ParkingSlot{},
		&model.Vehicle{},
		&model.ParkingRecord{},
		&model.ParkingRate{},
		&model.User{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	vehicleRepo := repository.NewVehicleRepository(gormDB)
	slotRepo := repository.NewSlotRepository(gormDB)
	recordRepo := repository.NewRecordRepository(gormDB)
	rateRepo := repository.NewRateRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	txManager := repository.NewTxManager(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Notification channels fall back to log-only senders when credentials
	// are not configured.
	var emailSender notify.Sender = notify.NewLogSender(notify.ChannelEmail)
	if cfg.SMTPHost != "" {
		emailSender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}
	var smsSender notify.Sender = notify.NewLogSender(notify.ChannelSMS)
	if cfg.TwilioSID != "" {
		smsSender = notify.NewTwilioSender(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	}
	dispatcher := notify.NewDispatcher(emailSender, smsSender)
	defer dispatcher.Close()

	// Initialize services
	rateService := service.NewRateService(rateRepo)
	parkingService := service.NewParkingService(vehicleRepo, slotRepo, recordRepo, txManager, rateService, dispatcher, cacheClient)
	slotService := service.NewSlotService(slotRepo, rateService)
	reportService := service.NewReportService(recordRepo, slotRepo)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	parkingHandler := handler.NewParkingHandler(parkingService, reportService)
	configHandler := handler.NewConfigHandler(slotService, rateService)
	notifyHandler := handler.NewNotifyHandler(dispatcher)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		parkingHandler,
		configHandler,
		notifyHandler,
	)

	// Seed default slots, rates, and users on first boot
	if err := bootstrap.EnsureDefaultData(context.Background(), slotRepo, rateRepo, userRepo); err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
