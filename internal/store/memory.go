// internal/store/memory.go
//
// In-memory registry of *game.Game values for the HTTP layer.
//
// Characteristics:
//   - Stores games keyed by ID in a map, each with a last-used time.
//   - A game has one logical owner: every read or mutation runs inside
//     Update/View while the store mutex is held, so concurrent requests
//     for the same session never interleave inside the engine.
//   - Idle games expire after the configured TTL; Save sweeps expired
//     entries and, at capacity, drops the least recently used game.
//   - State is lost when the process restarts (nothing is persisted).

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/numguess/internal/game"
)

// ErrNotFound is returned when no game exists for an ID (or it expired).
var ErrNotFound = errors.New("game not found")

// Store defines the registry interface for game sessions.
type Store interface {
	// Save adds or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Update runs fn against the game with exclusive access.
	// fn's error is returned as-is.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// View returns a snapshot of the game's state.
	View(ctx context.Context, id string) (game.State, error)

	// Len reports how many games are held.
	Len() int
}

// Option configures the memory store.
type Option func(*memory)

// WithTTL expires games idle for longer than d. Zero disables expiry.
func WithTTL(d time.Duration) Option {
	return func(m *memory) { m.ttl = d }
}

// WithMaxGames caps the number of held games. Zero means no cap.
func WithMaxGames(n int) Option {
	return func(m *memory) { m.max = n }
}

// WithClock replaces time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(m *memory) { m.now = now }
}

type entry struct {
	g        *game.Game
	lastUsed time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu        sync.Mutex        // guards games and every engine access
	games     map[string]*entry // keyed by Game.ID
	ttl       time.Duration
	max       int
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	m := &memory{games: make(map[string]*entry), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sweep(now)
	if _, ok := m.games[g.ID]; !ok && m.max > 0 {
		for len(m.games) >= m.max {
			m.evictOldest()
		}
	}
	m.games[g.ID] = &entry{g: g, lastUsed: now}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	e, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	if m.expired(e, now) {
		delete(m.games, id)
		return ErrNotFound
	}
	e.lastUsed = now
	return fn(e.g)
}

func (m *memory) View(ctx context.Context, id string) (game.State, error) {
	var st game.State
	err := m.Update(ctx, id, func(g *game.Game) error {
		st = g.State()
		return nil
	})
	return st, err
}

func (m *memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games)
}

func (m *memory) expired(e *entry, now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.lastUsed) > m.ttl
}

// sweep drops expired games, at most once per sweepInterval.
func (m *memory) sweep(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.lastSweep) < m.sweepInterval() {
		return
	}
	m.lastSweep = now
	for id, e := range m.games {
		if m.expired(e, now) {
			delete(m.games, id)
		}
	}
}

func (m *memory) sweepInterval() time.Duration {
	if m.ttl < time.Minute {
		return m.ttl
	}
	return time.Minute
}

// evictOldest drops the least recently used game.
func (m *memory) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, e := range m.games {
		if oldestID == "" || e.lastUsed.Before(oldest) {
			oldestID, oldest = id, e.lastUsed
		}
	}
	delete(m.games, oldestID)
}
