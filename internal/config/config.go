package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	ListenAddr   string
	JWTSecret    string

	LogLevel  string
	LogFormat string

	// Digest bot config (optional for the API server, required for the bot)
	TelegramBotToken string
	// TelegramChats maps a Telegram chat ID to the nutritrack user it may
	// query, e.g. "12345=user-a,67890=user-b".
	TelegramChats map[int64]string
}

// NewFromEnv creates a new Config object from environment variables. A .env
// file in the working directory is loaded first when present.
func NewFromEnv() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	dbPath := os.Getenv("NUTRITRACK_DB_PATH")
	if dbPath == "" {
		dbPath = "data/nutritrack.db"
	}

	listenAddr := os.Getenv("NUTRITRACK_LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	jwtSecret := os.Getenv("NUTRITRACK_JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("NUTRITRACK_JWT_SECRET environment variable not set")
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	chats, err := parseChatMap(os.Getenv("TELEGRAM_CHAT_USERS"))
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabasePath:     dbPath,
		ListenAddr:       listenAddr,
		JWTSecret:        jwtSecret,
		LogLevel:         logLevel,
		LogFormat:        logFormat,
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChats:    chats,
	}, nil
}

func parseChatMap(raw string) (map[int64]string, error) {
	chats := make(map[int64]string)
	if raw == "" {
		return chats, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[1] == "" {
			return nil, fmt.Errorf("malformed TELEGRAM_CHAT_USERS entry %q", pair)
		}
		var chatID int64
		if _, err := fmt.Sscanf(parts[0], "%d", &chatID); err != nil {
			return nil, fmt.Errorf("malformed chat ID in TELEGRAM_CHAT_USERS entry %q", pair)
		}
		chats[chatID] = parts[1]
	}
	return chats, nil
}
