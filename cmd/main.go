package main

import (
	"vendor-service/internal/handler"
	"vendor-service/internal/middleware"
	"vendor-service/internal/store"
	"vendor-service/pkg/config"
	"vendor-service/pkg/database"
	"vendor-service/pkg/jwtutil"
	"vendor-service/pkg/logger"
	"vendor-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting vendor service...", zap.String("environment", cfg.Server.Env))

	// Initialize JWT utilities
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utilities initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Connect to the database and run migrations; the handle is passed down
	// explicitly and closed here on shutdown
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed",
		zap.String("db_host", cfg.DB.Host),
		zap.String("db_name", cfg.DB.DBName))

	// Wire stores and handlers
	vendorHandler := &handler.VendorHandler{Store: store.NewVendorStore(db)}
	authHandler := &handler.AuthHandler{Users: store.NewUserStore(db)}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(middleware.MetricsMiddleware)

	// Public routes that don't require authentication
	e.GET("/", handler.Hello)
	e.GET("/health", handler.Hello)

	// Prometheus metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	// Authentication endpoints
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Vendor reads are public
	vendors := api.Group("/vendors")
	vendors.GET("", vendorHandler.ListVendors)
	vendors.GET("/search", vendorHandler.SearchVendors)
	vendors.GET("/:id", vendorHandler.GetVendor)

	// Every write operation goes through the single admin guard
	admin := vendors.Group("", middleware.AuthMiddleware, middleware.RequireAdmin)
	admin.POST("", vendorHandler.CreateVendor)
	admin.PUT("/:id", vendorHandler.UpdateVendor)
	admin.DELETE("/:id", vendorHandler.DeleteVendor)
	admin.GET("/stats/overview", vendorHandler.GetVendorStats)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
