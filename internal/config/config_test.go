package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("NUTRITRACK_JWT_SECRET", "secret")
		t.Setenv("NUTRITRACK_DB_PATH", "/tmp/test.db")
		t.Setenv("NUTRITRACK_LISTEN_ADDR", ":9090")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.JWTSecret != "secret" {
			t.Errorf("Expected JWTSecret 'secret', got '%s'", cfg.JWTSecret)
		}
		if cfg.DatabasePath != "/tmp/test.db" {
			t.Errorf("Expected DatabasePath '/tmp/test.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.ListenAddr != ":9090" {
			t.Errorf("Expected ListenAddr ':9090', got '%s'", cfg.ListenAddr)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("NUTRITRACK_JWT_SECRET", "secret")
		os.Unsetenv("NUTRITRACK_DB_PATH")
		os.Unsetenv("NUTRITRACK_LISTEN_ADDR")
		os.Unsetenv("LOG_LEVEL")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/nutritrack.db" {
			t.Errorf("Expected default DatabasePath, got '%s'", cfg.DatabasePath)
		}
		if cfg.ListenAddr != ":8080" {
			t.Errorf("Expected default ListenAddr ':8080', got '%s'", cfg.ListenAddr)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Expected default LogLevel 'info', got '%s'", cfg.LogLevel)
		}
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		os.Unsetenv("NUTRITRACK_JWT_SECRET")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing NUTRITRACK_JWT_SECRET, got nil")
		}
	})

	t.Run("ChatMap", func(t *testing.T) {
		t.Setenv("NUTRITRACK_JWT_SECRET", "secret")
		t.Setenv("TELEGRAM_CHAT_USERS", "12345=user-a, 67890=user-b")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.TelegramChats[12345] != "user-a" {
			t.Errorf("Expected chat 12345 -> 'user-a', got '%s'", cfg.TelegramChats[12345])
		}
		if cfg.TelegramChats[67890] != "user-b" {
			t.Errorf("Expected chat 67890 -> 'user-b', got '%s'", cfg.TelegramChats[67890])
		}
	})

	t.Run("MalformedChatMap", func(t *testing.T) {
		t.Setenv("NUTRITRACK_JWT_SECRET", "secret")
		t.Setenv("TELEGRAM_CHAT_USERS", "not-a-number=user-a")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for malformed chat map, got nil")
		}
	})
}
