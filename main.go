package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trimly/config"
	"trimly/cron"
	"trimly/database"
	bookingRepoPkg "trimly/database/repository/booking"
	catalogRepoPkg "trimly/database/repository/catalog"
	scheduleRepoPkg "trimly/database/repository/schedule"
	"trimly/handlers"
	"trimly/routes"
	"trimly/services/booking"
	"trimly/services/scheduling"
	"trimly/services/tasks"
	"trimly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitLockClient()

	if err := catalogRepoPkg.EnsureCatalogIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure catalog indexes: %v", err)
	}
	if err := scheduleRepoPkg.EnsureScheduleIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure schedule indexes: %v", err)
	}
	if err := bookingRepoPkg.EnsureBookingIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// repositories.
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:       bookingRepo,
		Catalog:    catalogRepo,
		Locker:     utils.NewRedisLocker(utils.GetLockClient()),
		Expiry:     tasks.NewAsynqExpiryScheduler(),
		PendingTTL: time.Duration(config.AppConfig.PendingExpiryMinutes) * time.Minute,
	}
	availabilityService := &scheduling.DefaultAvailabilityService{
		Catalog:   catalogRepo,
		Schedules: scheduleRepo,
		Bookings:  bookingRepo,
	}

	// Background worker for pending-booking expiry.
	cron.InitExpiryWorker(bookingRepo)
	utils.StartHealthMonitor([]*redis.Client{utils.GetLockClient()}, database.MongoClient)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	handlerBundle := handlers.NewHandlerBundle(bookingService, availabilityService)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
