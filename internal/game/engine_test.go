package game

import (
	"errors"
	"math"
	"math/rand/v2"
	"strconv"
	"testing"
)

// offsetSource always returns the same offset from Min.
type offsetSource int

func (o offsetSource) IntN(n int) int {
	if int(o) >= n {
		return n - 1
	}
	return int(o)
}

func newWithSecret(t *testing.T, cfg Config, secret int) *Game {
	t.Helper()
	g, err := New(cfg, WithSource(offsetSource(secret-cfg.Min)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.Secret() != secret {
		t.Fatalf("secret = %d, want %d", g.Secret(), secret)
	}
	return g
}

func TestStartRejectsInvalidRange(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"equal", Config{Min: 5, Max: 5}},
		{"inverted", Config{Min: 10, Max: 1}},
		{"wider than int32", Config{Min: 1, Max: 1 << 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("New(%+v) err = %v, want ErrInvalidConfiguration", tt.cfg, err)
			}
		})
	}
}

func TestStartInvalidRangeKeepsRound(t *testing.T) {
	g := newWithSecret(t, DefaultConfig(), 42)
	g.Submit("10")

	if err := g.Start(Config{Min: 3, Max: 3}); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("Start err = %v", err)
	}
	st := g.State()
	if st.Attempts != 1 || len(st.History) != 1 || g.Secret() != 42 {
		t.Fatalf("state changed after failed Start: %+v secret=%d", st, g.Secret())
	}
}

func TestZeroConfigRejected(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("New(Config{}) err = %v, want ErrInvalidConfiguration", err)
	}

	g := newWithSecret(t, DefaultConfig(), 42)
	g.Submit("10")
	if err := g.Start(Config{}); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("Start(Config{}) err = %v, want ErrInvalidConfiguration", err)
	}
	st := g.State()
	if st.Min != DefaultMin || st.Max != DefaultMax || st.Attempts != 1 {
		t.Fatalf("state changed after rejected Start: %+v", st)
	}
}

func TestFullInt32Range(t *testing.T) {
	cfg := Config{Min: math.MinInt32, Max: math.MaxInt32}
	if n, ok := span(cfg, math.MaxInt64); !ok || n != 1<<32 {
		t.Fatalf("span = %d, %v; want 1<<32, true", n, ok)
	}
	// an int32-sized platform cannot hold the span
	if _, ok := span(cfg, math.MaxInt32); ok {
		t.Fatalf("span fits a 32-bit int")
	}
	if math.MaxInt < 1<<32 {
		t.Skip("range cannot be drawn with a 32-bit int")
	}

	g := newWithSecret(t, cfg, math.MaxInt32)
	if res := g.Submit(strconv.Itoa(math.MinInt32)); res.Outcome != OutcomeLower {
		t.Fatalf("Submit(min) = %s", res.Outcome)
	}
	g2, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s := g2.Secret(); s < cfg.Min || s > cfg.Max {
		t.Fatalf("secret %d outside range", s)
	}
}

func TestLockedSourceConcurrent(t *testing.T) {
	src := Locked(rand.New(rand.NewPCG(3, 4)))
	if Locked(src) != src {
		t.Fatalf("Locked wrapped twice")
	}
	if Locked(nil) != nil {
		t.Fatalf("Locked(nil) != nil")
	}

	done := make(chan struct{})
	for w := 0; w < 4; w++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 500; i++ {
				if n := src.IntN(10); n < 0 || n >= 10 {
					t.Errorf("IntN(10) = %d", n)
					return
				}
			}
		}()
	}
	for w := 0; w < 4; w++ {
		<-done
	}
}

func TestSecretWithinRange(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	configs := []Config{
		{Min: 1, Max: 100},
		{Min: 0, Max: 1},
		{Min: -50, Max: -10},
		{Min: -5, Max: 5},
		{Min: 1000, Max: 1003},
	}
	for _, cfg := range configs {
		for _, src := range []Source{r, CryptoSource{}} {
			g, err := New(cfg, WithSource(src))
			if err != nil {
				t.Fatalf("New(%+v): %v", cfg, err)
			}
			for i := 0; i < 200; i++ {
				if err := g.Start(cfg); err != nil {
					t.Fatalf("Start(%+v): %v", cfg, err)
				}
				if s := g.Secret(); s < cfg.Min || s > cfg.Max {
					t.Fatalf("secret %d outside %d..%d", s, cfg.Min, cfg.Max)
				}
			}
		}
	}
}

func TestSubmitRejectsWithoutMutation(t *testing.T) {
	g := newWithSecret(t, DefaultConfig(), 42)
	g.Submit("10")

	tests := []struct {
		raw  string
		want Outcome
	}{
		{"", OutcomeInvalidInput},
		{"abc", OutcomeInvalidInput},
		{"4 2", OutcomeInvalidInput},
		{" 42", OutcomeInvalidInput},
		{"42 ", OutcomeInvalidInput},
		{"4.2", OutcomeInvalidInput},
		{"0x2a", OutcomeInvalidInput},
		{"99999999999", OutcomeInvalidInput},
		{"0", OutcomeOutOfRange},
		{"101", OutcomeOutOfRange},
		{"-1", OutcomeOutOfRange},
		{"2147483647", OutcomeOutOfRange},
	}
	for _, tt := range tests {
		t.Run(strconv.Quote(tt.raw), func(t *testing.T) {
			for i := 0; i < 2; i++ {
				res := g.Submit(tt.raw)
				if res.Outcome != tt.want {
					t.Fatalf("Submit(%q) = %s, want %s", tt.raw, res.Outcome, tt.want)
				}
				if res.Attempts != 1 || len(res.History) != 1 {
					t.Fatalf("Submit(%q) mutated state: %+v", tt.raw, res)
				}
			}
		})
	}
}

func TestSubmitClassifies(t *testing.T) {
	g := newWithSecret(t, DefaultConfig(), 42)

	steps := []struct {
		raw  string
		want Outcome
	}{
		{"41", OutcomeLower},
		{"+43", OutcomeHigher},
		{"1", OutcomeLower},
		{"100", OutcomeHigher},
		{"42", OutcomeCorrect},
	}
	for i, s := range steps {
		res := g.Submit(s.raw)
		if res.Outcome != s.want {
			t.Fatalf("step %d: Submit(%q) = %s, want %s", i, s.raw, res.Outcome, s.want)
		}
		if res.Attempts != i+1 || len(res.History) != i+1 {
			t.Fatalf("step %d: attempts=%d history=%d", i, res.Attempts, len(res.History))
		}
		if last := res.History[i]; last.Outcome != s.want {
			t.Fatalf("step %d: last record %+v", i, last)
		}
	}
	if st := g.State(); st.Status != StatusWon {
		t.Fatalf("status = %s, want won", st.Status)
	}
}

func TestAlreadyWonIgnoresGuesses(t *testing.T) {
	g := newWithSecret(t, DefaultConfig(), 7)
	if res := g.Submit("7"); res.Outcome != OutcomeCorrect || res.Attempts != 1 {
		t.Fatalf("winning guess = %+v", res)
	}
	for _, raw := range []string{"7", "50", "7"} {
		res := g.Submit(raw)
		if res.Outcome != OutcomeGameAlreadyWon || res.Attempts != 1 || len(res.History) != 1 {
			t.Fatalf("Submit(%q) after win = %+v", raw, res)
		}
	}
	// parse and range checks still run first
	if res := g.Submit("x"); res.Outcome != OutcomeInvalidInput {
		t.Fatalf("Submit(x) after win = %s", res.Outcome)
	}
	if res := g.Submit("0"); res.Outcome != OutcomeOutOfRange {
		t.Fatalf("Submit(0) after win = %s", res.Outcome)
	}
}

func TestStartResets(t *testing.T) {
	g := newWithSecret(t, DefaultConfig(), 42)
	g.Submit("10")
	g.Submit("42")

	if err := g.Start(Config{Min: 10, Max: 20}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	st := g.State()
	if st.Attempts != 0 || len(st.History) != 0 || st.Status != StatusInProgress {
		t.Fatalf("state after restart = %+v", st)
	}
	if st.Min != 10 || st.Max != 20 {
		t.Fatalf("range after restart = %d..%d", st.Min, st.Max)
	}
	if res := g.Submit("5"); res.Outcome != OutcomeOutOfRange {
		t.Fatalf("old range still active: %s", res.Outcome)
	}
}

func TestHistoryIsCopied(t *testing.T) {
	g := newWithSecret(t, DefaultConfig(), 42)
	res := g.Submit("10")
	res.History[0].Guess = 99

	if got := g.State().History[0].Guess; got != 10 {
		t.Fatalf("history aliased caller slice: %d", got)
	}
}

func TestScenarioSecret42(t *testing.T) {
	g := newWithSecret(t, Config{Min: 1, Max: 100}, 42)

	steps := []struct {
		raw      string
		want     Outcome
		attempts int
	}{
		{"50", OutcomeHigher, 1},
		{"abc", OutcomeInvalidInput, 1},
		{"42", OutcomeCorrect, 2},
		{"42", OutcomeGameAlreadyWon, 2},
	}
	for _, s := range steps {
		res := g.Submit(s.raw)
		if res.Outcome != s.want || res.Attempts != s.attempts {
			t.Fatalf("Submit(%q) = %s/%d, want %s/%d", s.raw, res.Outcome, res.Attempts, s.want, s.attempts)
		}
	}
}

func TestScenarioBounds(t *testing.T) {
	g, err := New(Config{Min: 1, Max: 100})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for raw, want := range map[string]Outcome{
		"0":   OutcomeOutOfRange,
		"101": OutcomeOutOfRange,
		"":    OutcomeInvalidInput,
	} {
		if res := g.Submit(raw); res.Outcome != want {
			t.Fatalf("Submit(%q) = %s, want %s", raw, res.Outcome, want)
		}
	}
	if st := g.State(); st.Attempts != 0 || len(st.History) != 0 {
		t.Fatalf("state mutated: %+v", st)
	}
}

func TestRecordString(t *testing.T) {
	tests := []struct {
		rec  Record
		want string
	}{
		{Record{Guess: 10, Outcome: OutcomeLower}, "10 (too low)"},
		{Record{Guess: 90, Outcome: OutcomeHigher}, "90 (too high)"},
		{Record{Guess: 42, Outcome: OutcomeCorrect}, "42 (correct!)"},
	}
	for _, tt := range tests {
		if got := tt.rec.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewAssignsDistinctIDs(t *testing.T) {
	a, _ := New(DefaultConfig())
	b, _ := New(DefaultConfig())
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("ids %q %q", a.ID, b.ID)
	}
	id := a.ID
	_ = a.Start(DefaultConfig())
	if a.ID != id {
		t.Fatalf("Start changed ID")
	}
}
