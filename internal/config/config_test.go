package config

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/numguess/internal/game"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LOG_LEVEL", "LOG_FILE", "GUESS_MIN", "GUESS_MAX", "HOST", "PORT",
		"SESSION_SECRET", "SESSION_DAYS", "MAX_GAMES", "CLIENT_ORIGIN", "NODE_ENV",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game != game.DefaultConfig() {
		t.Errorf("Game = %+v", cfg.Game)
	}
	if cfg.Addr() != "127.0.0.1:5175" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.LogLevel != zerolog.InfoLevel || cfg.Production {
		t.Errorf("LogLevel=%v Production=%v", cfg.LogLevel, cfg.Production)
	}
	if cfg.SessionTTL != 14*24*time.Hour || cfg.MaxGames != 10000 {
		t.Errorf("SessionTTL = %v MaxGames = %d", cfg.SessionTTL, cfg.MaxGames)
	}
	if !cfg.InsecureSecret() {
		t.Errorf("default secret not flagged")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GUESS_MIN", "-10")
	t.Setenv("GUESS_MAX", "10")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_DAYS", "1")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_GAMES", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game != (game.Config{Min: -10, Max: 10}) {
		t.Errorf("Game = %+v", cfg.Game)
	}
	if cfg.Addr() != "0.0.0.0:8080" || cfg.SessionTTL != 24*time.Hour || !cfg.Production || cfg.InsecureSecret() {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LogLevel != zerolog.DebugLevel || cfg.MaxGames != 50 {
		t.Errorf("LogLevel = %v MaxGames = %d", cfg.LogLevel, cfg.MaxGames)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		is   error
	}{
		{"bad min", map[string]string{"GUESS_MIN": "one"}, nil},
		{"bad days", map[string]string{"SESSION_DAYS": "x"}, nil},
		{"zero days", map[string]string{"SESSION_DAYS": "0"}, nil},
		{"unknown log level", map[string]string{"LOG_LEVEL": "loud"}, nil},
		{"bad max games", map[string]string{"MAX_GAMES": "lots"}, nil},
		{"negative max games", map[string]string{"MAX_GAMES": "-1"}, nil},
		{"empty range", map[string]string{"GUESS_MIN": "50", "GUESS_MAX": "50"}, game.ErrInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("Load succeeded")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("err = %v, want %v", err, tt.is)
			}
		})
	}
}
