// Package digest serves streak and weekly-progress summaries over Telegram.
// Each allowed chat is mapped to one nutritrack user in the configuration.
package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"nutritrack/internal/progress"
	"nutritrack/internal/streak"
)

// Bot wraps the Telegram API and the aggregate services.
type Bot struct {
	api      *tgbotapi.BotAPI
	streaks  *streak.Service
	progress *progress.Service
	chats    map[int64]string
}

// NewBot initializes the Telegram bot with long polling.
func NewBot(token string, chats map[int64]string, streaks *streak.Service, prog *progress.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	log.Info().Str("account", api.Self.UserName).Msg("telegram bot authorized")

	return &Bot{
		api:      api,
		streaks:  streaks,
		progress: prog,
		chats:    chats,
	}, nil
}

// Run consumes updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(ctx, update.Message)
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, ok := b.chats[msg.Chat.ID]
	if !ok {
		b.reply(msg.Chat.ID, "This chat is not linked to a nutritrack account.")
		return
	}

	var text string
	switch msg.Command() {
	case "streak":
		text = b.streakDigest(ctx, userID)
	case "week":
		text = b.weekDigest(ctx, userID)
	case "start", "help":
		text = "Commands:\n/streak - current logging streak\n/week - this week's nutrition totals"
	default:
		text = "Unknown command. Try /streak or /week."
	}
	b.reply(msg.Chat.ID, text)
}

func (b *Bot) streakDigest(ctx context.Context, userID string) string {
	rec, err := b.streaks.Current(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to load streak")
		return "Could not load your streak right now."
	}
	if rec.CurrentStreak == 0 {
		return fmt.Sprintf("No active streak. Longest so far: %d days. Log a meal today to start one!", rec.LongestStreak)
	}
	return fmt.Sprintf("🔥 %d-day streak (longest: %d days). Keep it up!", rec.CurrentStreak, rec.LongestStreak)
}

func (b *Bot) weekDigest(ctx context.Context, userID string) string {
	rec, err := b.progress.Week(ctx, userID, time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("failed to load weekly progress")
		return "Could not load this week's progress right now."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Week of %s\n", rec.WeekStart)
	fmt.Fprintf(&sb, "Days logged: %d/7\n", rec.DaysLogged)
	fmt.Fprintf(&sb, "Calories: %d kcal\n", rec.TotalCalories)
	fmt.Fprintf(&sb, "Protein: %.0fg  Carbs: %.0fg  Fats: %.0fg\n", rec.TotalProtein, rec.TotalCarbs, rec.TotalFats)
	fmt.Fprintf(&sb, "Water: %.1f L", float64(rec.TotalWaterMl)/1000)
	return sb.String()
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to send telegram message")
	}
}
