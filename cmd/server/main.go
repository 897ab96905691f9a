package main

import (
	"log"

	"salon_booking_go/config"
	"salon_booking_go/db"
	"salon_booking_go/handlers"
	"salon_booking_go/middleware"
	"salon_booking_go/models"
	"salon_booking_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Service{}, &models.Appointment{}, &models.Slot{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the service catalogue on first run
	if err := services.SeedDefaultServices(db.DB); err != nil {
		log.Fatalf("Failed to seed services: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes
	e.GET("/api/availabilities", handlers.GetSlotsHandler)
	e.GET("/api/availabilities/:id", handlers.GetSlotHandler)
	e.GET("/api/services", handlers.GetServicesHandler)
	e.GET("/api/services/:id", handlers.GetServiceHandler)
	e.POST("/api/appointments", handlers.CreateAppointmentHandler)

	// Admin routes
	admin := e.Group("/api")
	admin.Use(middleware.RequireAdmin(cfg))
	{
		admin.POST("/availabilities", handlers.CreateSlotHandler)
		admin.PATCH("/availabilities/:id", handlers.UpdateSlotHandler)
		admin.DELETE("/availabilities/:id", handlers.DeleteSlotHandler)
		admin.POST("/availabilities/:id/unblock", handlers.UnblockSlotHandler)
		admin.POST("/availabilities/block-day", handlers.BlockDayHandler)
		admin.POST("/availabilities/block-range", handlers.BlockRangeHandler)
		admin.POST("/availabilities/override-day", handlers.OverrideDayHandler)
		admin.DELETE("/availabilities/reset", handlers.ResetSlotsHandler)

		admin.GET("/appointments", handlers.GetAppointmentsHandler)
		admin.GET("/appointments/export", handlers.ExportAppointmentsHandler)
		admin.GET("/appointments/:id", handlers.GetAppointmentHandler)
		admin.PATCH("/appointments/:id", handlers.UpdateAppointmentHandler)
		admin.DELETE("/appointments/:id", handlers.DeleteAppointmentHandler)

		admin.POST("/services", handlers.CreateServiceHandler)
		admin.PATCH("/services/:id", handlers.UpdateServiceHandler)
		admin.DELETE("/services/:id", handlers.DeleteServiceHandler)
	}

	// Start server
	log.Printf("Starting server on port %s (%s)", cfg.ServerPort, cfg.Environment)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
