package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"worktime-tracker/internal/calendar"
	"worktime-tracker/internal/config"
	"worktime-tracker/internal/database"
	"worktime-tracker/internal/handler"
	"worktime-tracker/internal/logger"
	"worktime-tracker/internal/repository"
	"worktime-tracker/internal/router"
	"worktime-tracker/internal/service"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config/local.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting worktime server",
		zap.String("env", cfg.Env),
		zap.String("config_path", *configPath),
	)

	// Initialize database
	db, err := database.New(cfg.StoragePath, log.Logger)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Initialize repositories
	entryRepo := repository.NewWorkEntryRepository(db.DB)
	locationRepo := repository.NewLocationEntryRepository(db.DB)
	holidayRepo := repository.NewHolidayRepository(db.DB)

	// Initialize calendar layer
	classifier := calendar.NewClassifier(holidayRepo)
	window := calendar.NewWindowResolver(
		classifier,
		cfg.Accounting.WorkingDayQuota,
		cfg.Accounting.MaxScanDays,
	)

	// Initialize services
	locationService := service.NewLocationService(locationRepo, classifier)
	entryService := service.NewEntryService(
		db.DB,
		entryRepo,
		locationService,
		window,
		cfg.Accounting.MaxDailyHours,
	)
	statsService := service.NewStatsService(entryRepo, holidayRepo, cfg.Accounting.StandardDailyHours)
	missingDayService := service.NewMissingDayService(entryRepo, classifier, window)
	holidayService := service.NewHolidayService(holidayRepo)

	// Initialize HTTP layer
	handlers := router.Handlers{
		Entries:   handler.NewEntryHandler(entryService, log.Logger),
		Locations: handler.NewLocationHandler(locationService, log.Logger),
		Holidays:  handler.NewHolidayHandler(holidayService, log.Logger),
		Stats:     handler.NewStatsHandler(statsService, missingDayService, log.Logger),
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.New(handlers, log.Logger),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	}

	log.Info("Worktime server stopped")
}
