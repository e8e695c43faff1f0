// internal/game/types.go
//
// Core type definitions for the number-guessing engine.
// Defines:
//   - Config:  the closed integer range the secret is drawn from.
//   - Outcome: classification of a single submitted guess.
//   - Status:  coarse game state (in progress / won).
//   - Record, Result, State: values handed to presentation layers.

package game

import (
	"fmt"
	"math"
)

const (
	DefaultMin = 1
	DefaultMax = 100
)

// Config selects the closed range [Min, Max] for a game.
// It is validated as given; callers wanting 1..100 pass DefaultConfig().
type Config struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultConfig returns the 1..100 range.
func DefaultConfig() Config {
	return Config{Min: DefaultMin, Max: DefaultMax}
}

// IsZero reports whether c is the zero value (no range chosen).
func (c Config) IsZero() bool { return c == Config{} }

// Validate reports ErrInvalidConfiguration unless Min < Max.
func (c Config) Validate() error {
	if c.Min >= c.Max {
		return fmt.Errorf("%w: min %d must be below max %d", ErrInvalidConfiguration, c.Min, c.Max)
	}
	if !fitsGuess(c) {
		return fmt.Errorf("%w: range %d..%d exceeds 32-bit guesses", ErrInvalidConfiguration, c.Min, c.Max)
	}
	if _, ok := span(c, math.MaxInt); !ok {
		return fmt.Errorf("%w: range %d..%d too wide for this platform", ErrInvalidConfiguration, c.Min, c.Max)
	}
	return nil
}

// Outcome is the classification returned for one guess.
// Possible values:
//   - "invalid_input":    text did not parse as a base-10 integer.
//   - "out_of_range":     parsed value lies outside [Min, Max].
//   - "lower":            guess is below the secret.
//   - "higher":           guess is above the secret.
//   - "correct":          guess equals the secret; the game is won.
//   - "game_already_won": the game was already won; guess ignored.
type Outcome string

const (
	OutcomeInvalidInput   Outcome = "invalid_input"
	OutcomeOutOfRange     Outcome = "out_of_range"
	OutcomeLower          Outcome = "lower"
	OutcomeHigher         Outcome = "higher"
	OutcomeCorrect        Outcome = "correct"
	OutcomeGameAlreadyWon Outcome = "game_already_won"
)

// Counted reports whether the outcome consumed an attempt.
func (o Outcome) Counted() bool {
	return o == OutcomeLower || o == OutcomeHigher || o == OutcomeCorrect
}

// Status is the state machine position: in_progress → won.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
)

// Record is one entry of the guess history.
type Record struct {
	Guess   int     `json:"guess"`
	Outcome Outcome `json:"outcome"`
}

// String formats the record as a history line, e.g. "50 (too high)".
func (r Record) String() string {
	switch r.Outcome {
	case OutcomeLower:
		return fmt.Sprintf("%d (too low)", r.Guess)
	case OutcomeHigher:
		return fmt.Sprintf("%d (too high)", r.Guess)
	case OutcomeCorrect:
		return fmt.Sprintf("%d (correct!)", r.Guess)
	}
	return fmt.Sprintf("%d (%s)", r.Guess, r.Outcome)
}

// Result is returned by Submit.
type Result struct {
	Outcome  Outcome  `json:"outcome"`
	Attempts int      `json:"attempts"`
	History  []Record `json:"history"`
}

// State is a read-only snapshot of a game. It never carries the secret.
type State struct {
	Min      int      `json:"min"`
	Max      int      `json:"max"`
	Attempts int      `json:"attempts"`
	History  []Record `json:"history"`
	Status   Status   `json:"status"`
}
