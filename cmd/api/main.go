package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"spendtrack/internal/adapter/repo"
	"spendtrack/internal/http/handlers"
	"spendtrack/internal/http/httpapi"
	"spendtrack/internal/infra"
	"spendtrack/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	if err := storage.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Best-effort: index drift never blocks startup or request handling.
	repo.EnsureIndexes(ctx, dbpool, logger)

	app := handlers.NewApp(
		repo.NewUserRepository(dbpool),
		repo.NewSettingsRepository(dbpool),
		repo.NewExpenseRepository(dbpool),
		repo.NewBudgetRepository(dbpool),
		logger,
		cfg.JWTSecret,
		cfg.JWTExpires,
	)

	router := httpapi.NewRouter(app, cfg.CORSOrigins, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
