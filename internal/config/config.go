// internal/config/config.go
//
// Environment-driven configuration for both presentation layers.
// main calls godotenv.Load() first so a local .env file can supply values.
//
// Environment variables:
//   LOG_LEVEL        zerolog level (default "info")
//   LOG_FILE         log destination while the terminal UI owns the screen
//   GUESS_MIN        lowest secret (default 1)
//   GUESS_MAX        highest secret (default 100)
//   HOST, PORT       HTTP bind (default 127.0.0.1:5175)
//   SESSION_SECRET   HS256 key for session tokens
//   SESSION_DAYS     session token lifetime in days (default 14)
//   MAX_GAMES        games held in memory before the oldest is dropped (default 10000)
//   CLIENT_ORIGIN    credentialed CORS origin (default http://localhost:5173)
//   NODE_ENV         "production" switches cookies to Secure + SameSite=None

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/numguess/internal/game"
)

const defaultSessionSecret = "dev_secret_change_me"

// Config is the resolved runtime configuration.
type Config struct {
	LogLevel zerolog.Level
	LogFile  string

	Game game.Config

	Host          string
	Port          string
	SessionSecret string
	SessionTTL    time.Duration
	MaxGames      int
	ClientOrigin  string
	Production    bool
}

// Addr is the HTTP listen address.
func (c Config) Addr() string { return net.JoinHostPort(c.Host, c.Port) }

// InsecureSecret reports whether the built-in development key is in use.
func (c Config) InsecureSecret() bool { return c.SessionSecret == defaultSessionSecret }

// Load reads the environment. Malformed numbers, unknown log levels and
// an empty game range are errors rather than silent fallbacks.
func Load() (Config, error) {
	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	lo, err := envInt("GUESS_MIN", game.DefaultMin)
	if err != nil {
		return Config{}, err
	}
	hi, err := envInt("GUESS_MAX", game.DefaultMax)
	if err != nil {
		return Config{}, err
	}
	days, err := envInt("SESSION_DAYS", 14)
	if err != nil {
		return Config{}, err
	}
	if days <= 0 {
		return Config{}, fmt.Errorf("SESSION_DAYS must be positive, got %d", days)
	}
	maxGames, err := envInt("MAX_GAMES", 10000)
	if err != nil {
		return Config{}, err
	}
	if maxGames <= 0 {
		return Config{}, fmt.Errorf("MAX_GAMES must be positive, got %d", maxGames)
	}

	cfg := Config{
		LogLevel:      level,
		LogFile:       os.Getenv("LOG_FILE"),
		Game:          game.Config{Min: lo, Max: hi},
		Host:          getEnv("HOST", "127.0.0.1"),
		Port:          getEnv("PORT", "5175"),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionTTL:    time.Duration(days) * 24 * time.Hour,
		MaxGames:      maxGames,
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:    os.Getenv("NODE_ENV") == "production",
	}
	if err := cfg.Game.Validate(); err != nil {
		return Config{}, fmt.Errorf("GUESS_MIN/GUESS_MAX: %w", err)
	}
	return cfg, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as a base-10 integer, returning def if unset/empty.
func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
