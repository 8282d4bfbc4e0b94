package main

import (
	"trainer-api/internal/handler"
	mid "trainer-api/internal/middleware"
	"trainer-api/internal/store"
	"trainer-api/pkg/config"
	"trainer-api/pkg/database"
	"trainer-api/pkg/logger"
	"trainer-api/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting trainer-api",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database and create schema
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established",
		zap.String("driver", appConfig.DB.Driver))

	h := handler.New(store.New(database.GetDB()))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	// The mini app is opened from a webview on another origin
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"*"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Routes
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.GET("/user/:tg_id", h.GetUser)
	api.POST("/scan-qr", h.ScanQR)
	api.GET("/product/:product_id", h.GetProduct)
	api.GET("/training-programs/:product_id", h.GetTrainingPrograms)
	api.GET("/training-videos/:program_id", h.GetTrainingVideos)
	api.POST("/support", h.CreateSupportRequest)
	api.GET("/support/:tg_id", h.GetSupportRequests)

	admin := api.Group("/admin")
	admin.POST("/product", h.AdminCreateProduct)
	admin.POST("/training-program", h.AdminCreateProgram)
	admin.POST("/training-video", h.AdminCreateVideo)
	admin.PATCH("/support-request/:id/status", h.AdminUpdateSupportStatus)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
