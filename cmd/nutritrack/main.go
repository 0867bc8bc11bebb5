package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"nutritrack/internal/analytics"
	"nutritrack/internal/api"
	"nutritrack/internal/config"
	"nutritrack/internal/database"
	"nutritrack/internal/foodlog"
	"nutritrack/internal/logging"
	"nutritrack/internal/profile"
	"nutritrack/internal/progress"
	"nutritrack/internal/streak"
	"nutritrack/internal/waterlog"
	"nutritrack/internal/weightlog"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	foodRepo := foodlog.NewRepository(db.SQL)
	waterRepo := waterlog.NewRepository(db.SQL)
	weightRepo := weightlog.NewRepository(db.SQL)
	profileRepo := profile.NewRepository(db.SQL)
	streakRepo := streak.NewRepository(db.SQL)
	progressRepo := progress.NewRepository(db.SQL)

	streakSvc := streak.NewService(foodRepo, streakRepo)
	progressSvc := progress.NewService(foodRepo, waterRepo, progressRepo)
	analyticsSvc := analytics.NewService(foodRepo, weightRepo, profileRepo)

	server := api.NewServer(foodRepo, waterRepo, weightRepo, profileRepo,
		streakSvc, progressSvc, analyticsSvc, []byte(cfg.JWTSecret))

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
