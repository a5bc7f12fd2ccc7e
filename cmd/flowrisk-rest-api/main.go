// cmd/flowrisk-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	v1 "github.com/vsm34/FlowRisk/internal/api/rest/v1"
	"github.com/vsm34/FlowRisk/internal/app"
	"github.com/vsm34/FlowRisk/internal/domain/profiles"
	"github.com/vsm34/FlowRisk/internal/domain/runs"
	"github.com/vsm34/FlowRisk/internal/domain/scenarios"
	"github.com/vsm34/FlowRisk/internal/domain/users"
	"github.com/vsm34/FlowRisk/internal/infrastructure/identity"
	"github.com/vsm34/FlowRisk/internal/infrastructure/persistence"
	"github.com/vsm34/FlowRisk/internal/infrastructure/simulation"
	"github.com/vsm34/FlowRisk/internal/infrastructure/telemetry"
	"github.com/vsm34/FlowRisk/internal/pkg/config"
	"github.com/vsm34/FlowRisk/internal/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db        *gorm.DB
	telemetry *telemetry.Telemetry
	services  *appServices
}

type appServices struct {
	auth     users.AuthService
	profile  profiles.ProfileService
	scenario scenarios.ScenarioService
	run      runs.RunService
}

func (d *appDependencies) close(log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.telemetry.Shutdown(ctx); err != nil {
		log.Warn("Telemetry shutdown failed", "error", err)
	}
	if err := persistence.CloseDB(d.db); err != nil {
		log.Warn("Database close failed", "error", err)
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	ctx := context.Background()

	// Initialize database
	db, err := persistence.NewDBConnection(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if cfg.Database.AutoMigrate {
		if err := persistence.Migrate(db); err != nil {
			return nil, err
		}
		version, err := persistence.CurrentVersion(db)
		if err != nil {
			return nil, err
		}
		log.Info("Database migrations completed successfully", "version", version)
	}

	tel, err := telemetry.NewTelemetry(log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	services, err := initializeApplicationServices(cfg, db, tel, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		db:        db,
		telemetry: tel,
		services:  services,
	}, nil
}

// initializeApplicationServices sets up repositories and all application services
func initializeApplicationServices(cfg *config.RestConfig, db *gorm.DB, tel *telemetry.Telemetry, log logger.Logger) (*appServices, error) {
	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	profileRepo, err := persistence.NewGormProfileRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile repository: %w", err)
	}

	scenarioRepo, err := persistence.NewGormScenarioRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario repository: %w", err)
	}

	runRepo, err := persistence.NewGormRunRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create run repository: %w", err)
	}

	var verifier users.TokenVerifier
	if cfg.DevBypassActive() {
		log.Warn("DEV BYPASS AUTH ACTIVE: every request is served as the development user")
	} else {
		if cfg.Auth.DevBypass {
			log.Warn("FLOWRISK_DEV_BYPASS_AUTH is ignored in production")
		}
		verifier = identity.NewFirebaseVerifier(cfg.Auth, log)
	}

	authService, err := app.NewAuthService(verifier, userRepo, cfg.DevBypassActive(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	profileService, err := app.NewProfileService(profileRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}

	scenarioService, err := app.NewScenarioService(scenarioRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario service: %w", err)
	}

	runService, err := app.NewRunService(profileRepo, scenarioRepo, runRepo, simulation.NewAnalyzer(log), tel, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create run service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		auth:     authService,
		profile:  profileService,
		scenario: scenarioService,
		run:      runService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup router
	r := gin.New()
	r.Use(gin.Recovery(), v1.RequestIDMiddleware(), v1.RequestLoggerMiddleware(log), v1.MetricsMiddleware(deps.telemetry))

	// Configure CORS
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", v1.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Type", v1.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.auth,
		deps.services.profile,
		deps.services.scenario,
		deps.services.run,
		v1.RouteSettings{
			Environment:  cfg.Environment,
			DevEndpoints: cfg.Auth.DevBypass,
			RunLimiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit.RunsPerSecond), cfg.RateLimit.RunsBurst),
			Metrics:      deps.telemetry.Handler(),
		},
		log,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server", "app", cfg.AppName, "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal, initiating graceful shutdown", "signal", sig.String())
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
