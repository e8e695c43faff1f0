// internal/tui/model.go
//
// Terminal presentation layer for `numguess play`.
// It forwards typed text to the engine verbatim on Enter, colours the
// message line by outcome, keeps an attempts counter and a scrolling
// history pane, and swaps guess input for a "new game" prompt once won.

package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numguess/internal/game"
)

const historyLines = 8

// --- Styles ---
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle()
	inputStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(12)
	guessBtn      = lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("#3CB371")).Foreground(lipgloss.Color("#FFFFFF"))
	newGameBtn    = lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("#4682B4")).Foreground(lipgloss.Color("#FFFFFF"))
	attemptsStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#808080"))
	historyStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(30).Height(historyLines)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	frameStyle    = lipgloss.NewStyle().Padding(1, 2)

	msgDefault = lipgloss.NewStyle()
	msgWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("#B38C00"))
	msgLow     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	msgHigh    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC143C"))
	msgSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#228B22"))
	msgError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
)

// Model is the bubbletea model wrapping one engine.
type Model struct {
	game  *game.Game
	cfg   game.Config
	input string

	msg      string
	msgStyle lipgloss.Style
}

// New wraps g; cfg is reused on every restart.
func New(g *game.Game, cfg game.Config) Model {
	m := Model{game: g, cfg: cfg}
	m.resetDisplay()
	return m
}

// Run starts a game with cfg and blocks until the player quits.
func Run(cfg game.Config, opts ...game.Option) error {
	m, err := Start(cfg, opts...)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Start builds a model around a fresh game. A zero cfg selects 1..100.
func Start(cfg game.Config, opts ...game.Option) (Model, error) {
	if cfg.IsZero() {
		cfg = game.DefaultConfig()
	}
	g, err := game.New(cfg, opts...)
	if err != nil {
		return Model{}, err
	}
	return New(g, cfg), nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	}

	if m.won() {
		if key.Type == tea.KeyEnter || key.String() == "n" {
			m.restart()
		}
		return m, nil
	}

	switch key.Type {
	case tea.KeyEnter:
		m.submit()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m *Model) submit() {
	res := m.game.Submit(m.input)
	log.Debug().Str("raw", m.input).Str("outcome", string(res.Outcome)).Int("attempts", res.Attempts).Msg("guess")
	m.input = ""

	st := m.game.State()
	switch res.Outcome {
	case game.OutcomeInvalidInput:
		m.setMessage("Invalid input, please enter a number.", msgError)
	case game.OutcomeOutOfRange:
		m.setMessage(fmt.Sprintf("Please enter a number between %d and %d!", st.Min, st.Max), msgWarning)
	case game.OutcomeLower:
		m.setMessage("Too low, try again!", msgLow)
	case game.OutcomeHigher:
		m.setMessage("Too high, try again!", msgHigh)
	case game.OutcomeCorrect:
		m.setMessage("Congratulations, you got it!", msgSuccess)
	case game.OutcomeGameAlreadyWon:
		m.setMessage("Already solved. Press n for a new game.", msgDefault)
	}
}

func (m *Model) restart() {
	if err := m.game.Start(m.cfg); err != nil {
		// cfg was accepted by game.New, so this only fires on misuse
		log.Error().Err(err).Msg("restart")
		m.setMessage(err.Error(), msgError)
		return
	}
	log.Debug().Msg("new game")
	m.resetDisplay()
}

func (m *Model) resetDisplay() {
	m.input = ""
	m.setMessage("Game started! Enter your guess.", msgDefault)
}

func (m *Model) setMessage(text string, style lipgloss.Style) {
	m.msg, m.msgStyle = text, style
}

func (m Model) won() bool { return m.game.State().Status == game.StatusWon }

func (m Model) View() string {
	st := m.game.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Guess a number between %d-%d", st.Min, st.Max)))
	b.WriteString("\n")

	if m.won() {
		b.WriteString(newGameBtn.Render("New game [n]"))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
			labelStyle.Render("Your guess: "),
			inputStyle.Render(m.input+"█"),
			" ",
			guessBtn.Render("Guess! [enter]"),
		))
	}
	b.WriteString("\n\n")

	b.WriteString(m.msgStyle.Render(m.msg))
	b.WriteString("\n")
	if st.Attempts > 0 {
		b.WriteString(attemptsStyle.Render(fmt.Sprintf("Attempts: %d", st.Attempts)))
	}
	b.WriteString("\n")

	b.WriteString(historyStyle.Render(historyTail(st.History, historyLines)))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("esc quit"))

	return frameStyle.Render(b.String())
}

// historyTail renders the newest n records, oldest first.
func historyTail(h []game.Record, n int) string {
	if len(h) > n {
		h = h[len(h)-n:]
	}
	lines := make([]string, len(h))
	for i, r := range h {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}
