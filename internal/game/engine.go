// internal/game/engine.go
//
// Core game engine for a single number-guessing session.
// Responsibilities:
//   - Draw a secret uniformly from [Min, Max] through an injectable Source.
//   - Validate and classify guesses (parse → range → won → compare).
//   - Track attempts and history; transition in_progress → won.
//
// Notes:
//   - A Game has one logical owner. It does no locking of its own; callers
//     that share a Game across goroutines go through the store package.
//   - The secret never leaves this package.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math"
	"strconv"
)

// ErrInvalidConfiguration is returned by New and Start when Min >= Max.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Game holds the state of one guessing session.
type Game struct {
	ID string // Unique game identifier (random hex string); stable across restarts.

	src      Source
	cfg      Config
	secret   int
	attempts int
	history  []Record
	status   Status
}

// Option customises a Game at construction.
type Option func(*Game)

// WithSource replaces the default crypto-backed randomness.
func WithSource(src Source) Option {
	return func(g *Game) {
		if src != nil {
			g.src = src
		}
	}
}

// New constructs a game and starts the first round with cfg.
func New(cfg Config, opts ...Option) (*Game, error) {
	g := &Game{ID: randomID(), src: CryptoSource{}}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.Start(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// Start begins a new round: draws a fresh secret, zeroes the attempt
// counter, clears history and sets the status to in_progress.
// On an invalid range the previous round is left untouched.
func (g *Game) Start(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	n, _ := span(cfg, math.MaxInt)
	g.cfg = cfg
	g.secret = cfg.Min + g.src.IntN(int(n))
	g.attempts = 0
	g.history = nil
	g.status = StatusInProgress
	return nil
}

// Submit applies the raw text the player typed.
//
// Steps run in a fixed order and each may short-circuit before any
// mutation:
//  1. raw must parse as a base-10 signed 32-bit integer (no trimming).
//  2. the value must lie in [Min, Max].
//  3. a won game ignores further guesses.
//  4. otherwise the attempt is counted, classified and recorded.
func (g *Game) Submit(raw string) Result {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return g.result(OutcomeInvalidInput)
	}
	guess := int(n)
	if guess < g.cfg.Min || guess > g.cfg.Max {
		return g.result(OutcomeOutOfRange)
	}
	if g.status == StatusWon {
		return g.result(OutcomeGameAlreadyWon)
	}

	g.attempts++
	out := classify(guess, g.secret)
	g.history = append(g.history, Record{Guess: guess, Outcome: out})
	if out == OutcomeCorrect {
		g.status = StatusWon
	}
	return g.result(out)
}

// State returns a snapshot for rendering.
func (g *Game) State() State {
	return State{
		Min:      g.cfg.Min,
		Max:      g.cfg.Max,
		Attempts: g.attempts,
		History:  g.historyCopy(),
		Status:   g.status,
	}
}

func (g *Game) result(o Outcome) Result {
	return Result{Outcome: o, Attempts: g.attempts, History: g.historyCopy()}
}

func (g *Game) historyCopy() []Record {
	out := make([]Record, len(g.history))
	copy(out, g.history)
	return out
}

func classify(guess, secret int) Outcome {
	switch {
	case guess < secret:
		return OutcomeLower
	case guess > secret:
		return OutcomeHigher
	default:
		return OutcomeCorrect
	}
}

// guesses are parsed as 32-bit, so wider ranges could never be won.
func fitsGuess(c Config) bool {
	return c.Min >= math.MinInt32 && c.Max <= math.MaxInt32
}

// span is the number of values in [Min, Max], computed in int64 so a
// full int32 range cannot wrap. ok is false when it exceeds limit.
func span(c Config, limit int64) (int64, bool) {
	n := int64(c.Max) - int64(c.Min) + 1
	return n, n > 0 && n <= limit
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
