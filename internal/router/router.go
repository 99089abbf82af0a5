package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"parksys/internal/auth"
	"parksys/internal/config"
	"parksys/internal/errors"
	"parksys/internal/handler"
	"parksys/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	parkingHandler *handler.ParkingHandler,
	configHandler *handler.ConfigHandler,
	notifyHandler *handler.NotifyHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/parking/slots", parkingHandler.ListSlots)
	api.GET("/parking/stats", parkingHandler.Stats)
	api.GET("/parking/vehicles", parkingHandler.ActiveVehicles)
	api.GET("/parking/vehicles/all", parkingHandler.AllVehicles)
	api.GET("/parking/records", parkingHandler.Records)
	api.GET("/parking/search", parkingHandler.Search)
	api.POST("/parking/enter", parkingHandler.Enter)
	api.POST("/parking/exit", parkingHandler.Exit)
	api.POST("/parking/reports/daily", parkingHandler.DailyReport)
	api.POST("/parking/test-notifications", notifyHandler.TestNotifications)

	api.GET("/config/system", configHandler.SystemConfig)
	api.GET("/config/rates", configHandler.CurrentRates)
	api.POST("/email/preview", notifyHandler.Preview)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/auth/me", authHandler.Me)
	secured.POST("/auth/change-password", authHandler.ChangePassword)

	// Admin routes
	admin := secured.Group("", RequireAdmin)

	admin.POST("/auth/register", authHandler.Register)
	admin.GET("/auth/users", authHandler.ListUsers)
	admin.PUT("/auth/users/:id", authHandler.UpdateUser)
	admin.DELETE("/auth/users/:id", authHandler.DeleteUser)

	admin.POST("/parking/reset", parkingHandler.Reset)

	admin.POST("/config/slots", configHandler.AddSlots)
	admin.DELETE("/config/slots", configHandler.RemoveSlots)
	admin.POST("/config/rates", configHandler.UpdateRates)
}

// RequireAdmin rejects callers whose token does not carry the admin role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.CurrentClaims(c)
		if err != nil {
			return err
		}
		if claims.Role != model.UserRoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "admin access required",
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
