// main.go
//
// numguess entry point.
//
// Usage:
//   numguess [play]   terminal game (default)
//   numguess serve    JSON API for a browser front end
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numguess/internal/config"
	"github.com/robalobadob/numguess/internal/httpserver"
	"github.com/robalobadob/numguess/internal/store"
	"github.com/robalobadob/numguess/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	mode := "play"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "play":
		closeLog, err := logToFile(cfg.LogFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.LogFile).Msg("open log file")
		}
		err = tui.Run(cfg.Game)
		closeLog()
		if err != nil {
			fmt.Fprintf(os.Stderr, "numguess: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if isatty.IsTerminal(os.Stderr.Fd()) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}
		if cfg.InsecureSecret() {
			log.Warn().Msg("SESSION_SECRET not set; using development key")
		}
		games := store.NewMemoryStore(store.WithTTL(cfg.SessionTTL), store.WithMaxGames(cfg.MaxGames))
		srv := httpserver.New(games, httpserver.Options{
			Game:          cfg.Game,
			SessionSecret: []byte(cfg.SessionSecret),
			SessionTTL:    cfg.SessionTTL,
			ClientOrigin:  cfg.ClientOrigin,
			SecureCookies: cfg.Production,
		})
		log.Info().Str("addr", cfg.Addr()).Int("min", cfg.Game.Min).Int("max", cfg.Game.Max).Msg("starting numguess server")
		if err := srv.Start(cfg.Addr()); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [play|serve]\n", os.Args[0])
		os.Exit(2)
	}
}

// logToFile redirects the global logger while the terminal UI owns the
// screen. An empty path discards log output.
func logToFile(path string) (func(), error) {
	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}
