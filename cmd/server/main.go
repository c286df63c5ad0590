package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"newsmarketplace/internal/config"
	"newsmarketplace/internal/db"
	"newsmarketplace/internal/email"
	"newsmarketplace/internal/metrics"
	"newsmarketplace/internal/middleware"
	"newsmarketplace/internal/models"
	"newsmarketplace/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		slog.Error("failed to load config file", "error", err)
		os.Exit(1)
	}
	yamlCfg.Apply(cfg)

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations completed successfully")

	if cfg.IsDev() {
		seedDev(ctx, cfg, database)
	}

	// Notifications
	templates, err := email.NewTemplates(cfg)
	if err != nil {
		slog.Error("failed to load email templates", "error", err)
		os.Exit(1)
	}
	mailer := email.NewService(cfg, logger)
	notifier := email.NewNotifier(cfg, yamlCfg, database, mailer, templates)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.Init(reg, database, models.AllKinds)

	srv := server.New(cfg)
	srv.RegisterRoutes(server.Deps{
		DB:         database,
		Dispatcher: notifier,
		Kinds:      yamlCfg,
		Metrics:    recorder,
		Gatherer:   reg,
		Logger:     logger,
	})

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	if err := srv.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server exited")
}

// seedDev creates the development accounts and logs a token for each.
func seedDev(ctx context.Context, cfg *config.Config, database *db.DB) {
	if err := database.SeedDev(ctx); err != nil {
		slog.Warn("failed to seed development data", "error", err)
		return
	}

	var userID, adminID int64
	if err := database.Pool.QueryRow(ctx, `SELECT id FROM users WHERE email = 'dev.user@example.com'`).Scan(&userID); err != nil {
		slog.Warn("failed to look up dev user", "error", err)
		return
	}
	if err := database.Pool.QueryRow(ctx, `SELECT id FROM admins WHERE email = 'dev.admin@example.com'`).Scan(&adminID); err != nil {
		slog.Warn("failed to look up dev admin", "error", err)
		return
	}

	for _, p := range []*models.Principal{
		{ID: userID, Email: "dev.user@example.com", Role: models.RoleUser},
		{ID: adminID, Email: "dev.admin@example.com", Role: models.RoleSuperAdmin},
	} {
		tok, err := middleware.IssueToken(cfg.JWTSecret, cfg.JWTIssuer, p, 24*time.Hour)
		if err != nil {
			slog.Warn("failed to issue dev token", "email", p.Email, "error", err)
			continue
		}
		slog.Info("dev token", "email", p.Email, "role", p.Role, "token", tok)
	}
}
