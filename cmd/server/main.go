package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	grpcapi "rental-tracker-backend/internal/api/grpc"
	httpapi "rental-tracker-backend/internal/api/http"
	"rental-tracker-backend/internal/config"
	"rental-tracker-backend/internal/logger"
	"rental-tracker-backend/internal/metrics"
	"rental-tracker-backend/internal/repository/postgres"
	"rental-tracker-backend/internal/security"
	"rental-tracker-backend/internal/service"
	"rental-tracker-backend/internal/storage"
	"rental-tracker-backend/internal/utils"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	logger.Info("Starting Rental Tracker Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "grpc_health", cfg.GetGRPCHealthAddress(), "timezone", cfg.App.Timezone)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		logger.Info("Applying database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			logger.Error("Failed to apply migrations", "error", err)
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Storage
	logger.Info("Using local attachment storage", "upload_dir", cfg.Storage.UploadDir)
	files, err := storage.New(storage.Config{
		Type:    cfg.Storage.Type,
		Dir:     cfg.Storage.UploadDir,
		BaseURL: cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// Initialize Services
	calendar := utils.NewCalendar(cfg.Location(), nil)
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	authSvc := service.NewAuthService(
		store.UserRepository,
		store.PasswordResetRepository,
		tokenManager,
		emailSvc,
		cfg.App.PublicURL,
		cfg.ResetTokenTTL(),
	)
	userSvc := service.NewUserService(store.UserRepository, cfg.Auth.SeedAdminEmail, cfg.Auth.SeedAdminPassword)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		files,
		calendar,
		service.AttachmentPolicy{
			MaxBytes:     cfg.MaxUploadBytes(),
			AllowedTypes: cfg.Storage.AllowedTypes,
		},
		cfg.CacheTTL(),
	)
	reportSvc := service.NewReportService(rentalSvc, calendar)
	shareSvc := service.NewShareService(cfg.App.PublicURL)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := userSvc.EnsureSeedAdmin(startupCtx); err != nil {
		cancelStartup()
		logger.Error("Failed to ensure seed administrator", "error", err)
		log.Fatalf("Failed to ensure seed administrator: %v", err)
	}
	cancelStartup()

	router := httpapi.NewRouter(httpapi.Services{
		Auth:   authSvc,
		User:   userSvc,
		Rental: rentalSvc,
		Report: reportSvc,
		Share:  shareSvc,
	}, httpapi.RouterOptions{
		Calendar:       calendar,
		Metrics:        m,
		MetricsPath:    cfg.Metrics.Path,
		CORSOrigins:    cfg.App.CORSOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Ping:           db.PingContext,
	})

	httpServer := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Get().Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	var healthServer *grpcapi.HealthServer
	if cfg.Server.GRPCHealthPort > 0 {
		lis, err := net.Listen("tcp", cfg.GetGRPCHealthAddress())
		if err != nil {
			logger.Error("Failed to listen", "error", err, "address", cfg.GetGRPCHealthAddress())
			log.Fatalf("Failed to listen: %v", err)
		}
		healthServer = grpcapi.NewHealthServer(db.PingContext, 15*time.Second)
		g.Go(func() error {
			return healthServer.Serve(lis)
		})
		g.Go(func() error {
			healthServer.Watch(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if healthServer != nil {
			healthServer.Stop()
		}
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
