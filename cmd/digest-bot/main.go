package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"nutritrack/internal/config"
	"nutritrack/internal/database"
	"nutritrack/internal/digest"
	"nutritrack/internal/foodlog"
	"nutritrack/internal/logging"
	"nutritrack/internal/progress"
	"nutritrack/internal/streak"
	"nutritrack/internal/waterlog"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	if cfg.TelegramBotToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if len(cfg.TelegramChats) == 0 {
		log.Fatal().Msg("TELEGRAM_CHAT_USERS environment variable not set")
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	foodRepo := foodlog.NewRepository(db.SQL)
	waterRepo := waterlog.NewRepository(db.SQL)
	streakSvc := streak.NewService(foodRepo, streak.NewRepository(db.SQL))
	progressSvc := progress.NewService(foodRepo, waterRepo, progress.NewRepository(db.SQL))

	bot, err := digest.NewBot(cfg.TelegramBotToken, cfg.TelegramChats, streakSvc, progressSvc)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("digest bot running")
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("bot stopped")
	}
}
