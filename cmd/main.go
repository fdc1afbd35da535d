package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Dosada05/hackathon-platform/cache"
	"github.com/Dosada05/hackathon-platform/config"
	"github.com/Dosada05/hackathon-platform/db"
	"github.com/Dosada05/hackathon-platform/handlers"
	"github.com/Dosada05/hackathon-platform/realtime"
	"github.com/Dosada05/hackathon-platform/repositories"
	api "github.com/Dosada05/hackathon-platform/routes"
	"github.com/Dosada05/hackathon-platform/services"
	"github.com/Dosada05/hackathon-platform/storage"
)

const (
	leaderboardTTL  = 5 * time.Minute
	shutdownTimeout = 15 * time.Second
)

// @title Hackathon Platform API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, cfg.DBTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsDir, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	presets, err := config.LoadJudgingPresets(cfg.JudgingPresetsFile)
	if err != nil {
		return fmt.Errorf("failed to load judging presets: %w", err)
	}
	logger.Info("judging presets loaded", slog.Any("presets", presets.Names()))

	var leaderboard cache.LeaderboardCache = cache.Noop{}
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		leaderboard = cache.NewRedisLeaderboard(redisClient, leaderboardTTL)
		logger.Info("redis leaderboard cache enabled", slog.String("address", cfg.Redis.Address))
	} else {
		logger.Warn("REDIS_ADDRESS not set, leaderboard cache disabled")
	}

	var uploader storage.FileUploader
	if cfg.R2.Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, uploads disabled")
	}

	var mailer services.InvitationMailer
	if cfg.SMTP.Enabled() {
		mailer = services.NewEmailService(cfg.SMTP, logger)
	} else {
		logger.Warn("SMTP not configured, invitation emails are only logged")
		mailer = services.NewLogMailer(logger)
	}

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)
	logger.Info("WebSocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	orgRepo := repositories.NewPostgresOrganizationRepository(dbConn)
	hackathonRepo := repositories.NewPostgresHackathonRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, logger)
	orgService := services.NewOrganizationService(orgRepo, userRepo)
	hackathonService := services.NewHackathonService(hackathonRepo, teamRepo, userRepo, orgRepo, leaderboard, presets, hub, logger)
	registrationService := services.NewRegistrationService(hackathonRepo, teamRepo, userRepo, orgRepo, hub, logger)
	teamService := services.NewTeamService(services.TeamServiceDeps{
		Hackathons:    hackathonRepo,
		Teams:         teamRepo,
		Users:         userRepo,
		Organizations: orgRepo,
		XP:            userService,
		Mailer:        mailer,
		Uploader:      uploader,
		Leaderboard:   leaderboard,
		Events:        hub,
		PublicURL:     cfg.PublicURL,
		Logger:        logger,
	})
	submissionService := services.NewSubmissionService(hackathonRepo, teamRepo, userService, uploader, hub, logger)
	judgingService := services.NewJudgingService(hackathonRepo, teamRepo, leaderboard, hub, logger)
	dashboardService := services.NewDashboardService(hackathonRepo, teamRepo, orgRepo, logger)
	logger.Info("services initialized")

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:         handlers.NewAuthHandler(authService, cfg.JWTSecretKey, cfg.TokenTTL),
		User:         handlers.NewUserHandler(userService, teamService),
		Organization: handlers.NewOrganizationHandler(orgService),
		Hackathon:    handlers.NewHackathonHandler(hackathonService),
		Registration: handlers.NewRegistrationHandler(registrationService),
		Team:         handlers.NewTeamHandler(teamService),
		Invite:       handlers.NewInviteHandler(teamService),
		Submission:   handlers.NewSubmissionHandler(submissionService, judgingService),
		Dashboard:    handlers.NewDashboardHandler(dashboardService),
		WebSocket:    handlers.NewWebSocketHandler(hub, hackathonService, cfg.CORSOrigins, logger),
	}, api.Options{
		JWTSecret:   cfg.JWTSecretKey,
		CORSOrigins: cfg.CORSOrigins,
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		logger.Info("server shutdown complete")
	}
	return nil
}
