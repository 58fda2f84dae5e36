package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/vidly-backend/api/routes"
	"github.com/angelmondragon/vidly-backend/internal/auth"
	"github.com/angelmondragon/vidly-backend/internal/customers"
	"github.com/angelmondragon/vidly-backend/internal/genres"
	"github.com/angelmondragon/vidly-backend/internal/movies"
	"github.com/angelmondragon/vidly-backend/internal/rentals"
	"github.com/angelmondragon/vidly-backend/internal/users"
	"github.com/angelmondragon/vidly-backend/pkg/config"
	"github.com/angelmondragon/vidly-backend/pkg/db"
	"github.com/angelmondragon/vidly-backend/pkg/logger"
	"github.com/angelmondragon/vidly-backend/pkg/metrics"
	"github.com/angelmondragon/vidly-backend/pkg/migrate"
	"github.com/angelmondragon/vidly-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.Open(runCtx, cfg, logg)
	if err != nil {
		logg.Error(runCtx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(runCtx, cfg, logg, dbClient); err != nil {
		logg.Error(runCtx, "failed to run dev migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(runCtx, cfg.Redis, logg)
		if err != nil {
			logg.Error(runCtx, "failed to bootstrap redis", err)
			_ = dbClient.Close()
			os.Exit(1)
		}
	} else {
		logg.Warn(runCtx, "redis not configured; checkout idempotency and auth rate limits are disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps, err := buildDependencies(cfg, logg, dbClient, registry)
	if err != nil {
		logg.Error(runCtx, "failed to build services", err)
		_ = dbClient.Close()
		os.Exit(1)
	}
	deps.Redis = redisClient

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(runCtx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	shutdownErr = multierr.Append(shutdownErr, server.Shutdown(shutdownCtx))
	if redisClient != nil {
		shutdownErr = multierr.Append(shutdownErr, redisClient.Close())
	}
	shutdownErr = multierr.Append(shutdownErr, dbClient.Close())
	if shutdownErr != nil {
		logg.Error(ctx, "api shutdown incomplete", shutdownErr)
		exitCode = 1
	} else {
		logg.Info(ctx, "api server stopped")
	}

	os.Exit(exitCode)
}

func buildDependencies(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, registry *prometheus.Registry) (routes.Dependencies, error) {
	conn := dbClient.DB()
	userRepo := users.NewRepository(conn)
	genreRepo := genres.NewRepository(conn)
	customerRepo := customers.NewRepository(conn)
	movieRepo := movies.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  userRepo,
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		return routes.Dependencies{}, err
	}
	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		UserRepo:       userRepo,
		PasswordConfig: cfg.Password,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		return routes.Dependencies{}, err
	}
	usersService, err := users.NewService(userRepo)
	if err != nil {
		return routes.Dependencies{}, err
	}
	genreService, err := genres.NewService(genreRepo)
	if err != nil {
		return routes.Dependencies{}, err
	}
	customerService, err := customers.NewService(customerRepo)
	if err != nil {
		return routes.Dependencies{}, err
	}
	movieService, err := movies.NewService(movieRepo, genreRepo)
	if err != nil {
		return routes.Dependencies{}, err
	}
	rentalService, err := rentals.NewService(rentals.ServiceParams{
		Tx:            dbClient,
		Rentals:       rentals.NewRepository(conn),
		Movies:        movieRepo,
		Customers:     customerRepo,
		FeeMultiplier: cfg.Rentals.FeeMultiplier,
		Metrics:       metrics.NewRentalMetrics(registry),
		Logger:        logg,
	})
	if err != nil {
		return routes.Dependencies{}, err
	}

	return routes.Dependencies{
		DB:        dbClient,
		Metrics:   registry,
		Auth:      authService,
		Register:  registerService,
		Users:     usersService,
		Genres:    genreService,
		Customers: customerService,
		Movies:    movieService,
		Rentals:   rentalService,
	}, nil
}
