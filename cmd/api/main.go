package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	adapters "github.com/Haleralex/orghub/internal/adapters/http"
	"github.com/Haleralex/orghub/internal/config"
	"github.com/Haleralex/orghub/internal/infrastructure/persistence/postgres"
	"github.com/Haleralex/orghub/internal/pkg/logger"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", os.Getenv("ORGHUB_CONFIG"), "Path to configuration file")
	flag.Parse()

	// 1. Configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Logger
	logger.Setup(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	slog.Info("Starting OrgHub API server",
		slog.String("version", version),
		slog.String("environment", cfg.App.Environment),
	)

	// 3. Database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := postgres.NewConnectionPool(ctx, postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Database:        cfg.Database.Database,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConnections,
		MinConns:        cfg.Database.MinConnections,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		ConnectTimeout:  5 * time.Second,
	})
	cancel()
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	slog.Info("Database connected")

	// 4. Repositories
	departmentRepo := postgres.NewDepartmentRepository(pool)

	// 5. Router
	router := adapters.NewRouter(&adapters.RouterConfig{
		Logger:          slog.Default(),
		Pool:            pool,
		Version:         version,
		BuildTime:       buildTime,
		Environment:     cfg.App.Environment,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		RateLimit:       cfg.RateLimit.Limit,
		RateLimitWindow: cfg.RateLimit.Window,
	}, departmentRepo)

	// 6. Server
	server := adapters.NewServer(&adapters.ServerConfig{
		Addr:            cfg.Server.Address(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Logger:          slog.Default(),
	}, router)

	if err := server.Run(); err != nil {
		slog.Error("Server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
