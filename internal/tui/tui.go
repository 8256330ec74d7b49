// Package tui is the interactive terminal front end: a human plays the
// dice game through the same decision surface the automated policies use.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/youblewit/internal/dice"
	"github.com/lox/youblewit/internal/env"
	"github.com/lox/youblewit/internal/game"
	"github.com/lox/youblewit/internal/strategy"
)

// Config holds the settings for an interactive session.
type Config struct {
	Rules    game.Rules
	Seed     int64
	Opponent string // strategy name; empty plays the solo drill
	Logger   *log.Logger
}

// Model is the Bubble Tea model for interactive play.
type Model struct {
	config Config
	logger *log.Logger
	env    *env.Env

	logViewport viewport.Model
	gameLog     []string

	prevOppScore int
	over         bool
	result       string
	quitting     bool

	width       int
	height      int
	initialized bool

	glyphs [7]string
}

// New creates the interactive model. It returns an error when the opponent
// strategy name is unknown.
func New(config Config) (*Model, error) {
	rng := dice.NewRNG(config.Seed)

	var e *env.Env
	if config.Opponent != "" {
		opp, err := strategy.DefaultRegistry().New(config.Opponent, rng)
		if err != nil {
			return nil, err
		}
		e = env.New1v1(config.Rules, rng, config.Logger, opp)
	} else {
		e = env.New(config.Rules, rng, config.Logger)
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &Model{
		config:      config,
		logger:      config.Logger.WithPrefix("tui"),
		env:         e,
		logViewport: vp,
		glyphs:      dieGlyphs(),
	}
	m.appendLog(fmt.Sprintf("New game to %d. First bank needs %d or more.",
		config.Rules.TargetScore, config.Rules.MinFirstBank))
	m.appendLog("Press r to roll.")
	return m, nil
}

// dieGlyphs picks die faces for the terminal: unicode pips normally, plain
// digits on dumb terminals.
func dieGlyphs() [7]string {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return [7]string{"", "[1]", "[2]", "[3]", "[4]", "[5]", "[6]"}
	}
	return [7]string{"", "⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = msg.Width - 2
		logHeight := msg.Height - 10
		if logHeight < 3 {
			logHeight = 3
		}
		m.logViewport.Height = logHeight
		m.initialized = true
		m.refreshLog()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "up", "k":
			m.logViewport.ScrollUp(1)
		case "down", "j":
			m.logViewport.ScrollDown(1)
		case "n":
			if m.over {
				m.restart()
			}
		default:
			if !m.over {
				m.handleKey(msg.String())
			}
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) restart() {
	m.env.Reset()
	m.over = false
	m.result = ""
	m.prevOppScore = 0
	m.appendLog("")
	m.appendLog("New game. Press r to roll.")
}

// handleKey maps a key press to a game action and steps the environment.
// Keys that do not name a currently legal action are reported, not stepped,
// so a slip of the finger never ends the game.
func (m *Model) handleKey(key string) {
	action, ok := keyAction(key)
	if !ok {
		return
	}
	if !m.isLegal(action) {
		m.appendLog(WarningStyle.Render(fmt.Sprintf("%s is not available right now", action)))
		return
	}

	oppBefore := m.env.OpponentScore()
	unbankedBefore := m.env.Unbanked()

	result, err := m.env.Step(action)
	if err != nil {
		m.appendLog(ErrorStyle.Render(err.Error()))
		return
	}

	switch action {
	case env.ActionRoll:
		m.describeRoll()
		if m.env.Blown() {
			m.appendLog(ErrorStyle.Render(fmt.Sprintf("Blew it! %d points forfeited. Roll again.", unbankedBefore)))
		}
	case env.ActionBank:
		m.appendLog(SuccessStyle.Render(fmt.Sprintf("Banked %d, total %d.", unbankedBefore, m.env.Banked())))
		if opp := m.env.OpponentScore(); opp != oppBefore {
			m.appendLog(fmt.Sprintf("%s scored %d, total %d.", m.config.Opponent, opp-oppBefore, opp))
		}
	default:
		m.appendLog(fmt.Sprintf("Took %s for %d, turn total %d.",
			action, m.env.Unbanked()-unbankedBefore, m.env.Unbanked()))
		if m.env.MustRoll() {
			m.appendLog(WarningStyle.Render("Hot dice! All six are back; you must roll."))
		}
	}

	if result.Done {
		switch result.Result {
		case "win":
			m.appendLog(SuccessStyle.Render("You win!"))
			m.over = true
			m.result = "win"
		case "loss":
			m.appendLog(ErrorStyle.Render(fmt.Sprintf("%s reached the target first. You lose.", m.config.Opponent)))
			m.over = true
			m.result = "loss"
		}
	}
}

func keyAction(key string) (env.Action, bool) {
	switch key {
	case "r":
		return env.ActionRoll, true
	case "b":
		return env.ActionBank, true
	case "f":
		return env.ActionTakeFive, true
	case "o":
		return env.ActionTakeOne, true
	case "1", "2", "3", "4", "5", "6":
		return env.ActionTriple(int(key[0] - '0')), true
	}
	return 0, false
}

func (m *Model) isLegal(action env.Action) bool {
	for _, a := range m.env.LegalActions() {
		if a == action {
			return true
		}
	}
	return false
}

func (m *Model) describeRoll() {
	faces := m.env.Roll().Faces()
	parts := make([]string, len(faces))
	for i, f := range faces {
		parts[i] = m.glyphs[f]
	}
	m.appendLog("Rolled " + DiceStyle.Render(strings.Join(parts, " ")))
}

func (m *Model) appendLog(line string) {
	m.gameLog = append(m.gameLog, line)
	m.refreshLog()
}

func (m *Model) refreshLog() {
	m.logViewport.SetContent(LogStyle.Render(strings.Join(m.gameLog, "\n")))
	m.logViewport.GotoBottom()
}

// View renders the interface.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" YOU BLEW IT ") + "\n\n")

	scores := fmt.Sprintf("Banked %d   Turn %d", m.env.Banked(), m.env.Unbanked())
	if m.config.Opponent != "" {
		scores += fmt.Sprintf("   %s %d", m.config.Opponent, m.env.OpponentScore())
	}
	b.WriteString(ScoreStyle.Render(scores) + "\n")

	faces := m.env.Roll().Faces()
	parts := make([]string, len(faces))
	for i, f := range faces {
		parts[i] = m.glyphs[f]
	}
	b.WriteString(DiceStyle.Render(strings.Join(parts, " ")) + "\n\n")

	b.WriteString(m.logViewport.View() + "\n\n")

	if m.over {
		b.WriteString(ActionsStyle.Render("n new game, q quit"))
	} else {
		b.WriteString(ActionsStyle.Render(m.actionHints()))
	}
	b.WriteString("\n" + InfoStyle.Render("arrows scroll the log"))
	return b.String()
}

// actionHints renders the legal actions as key hints.
func (m *Model) actionHints() string {
	var hints []string
	for _, a := range m.env.LegalActions() {
		switch {
		case a == env.ActionRoll:
			hints = append(hints, "r roll")
		case a == env.ActionBank:
			hints = append(hints, "b bank")
		case a == env.ActionTakeFive:
			hints = append(hints, "f take a five")
		case a == env.ActionTakeOne:
			hints = append(hints, "o take a one")
		case a >= 1 && a <= 6:
			hints = append(hints, fmt.Sprintf("%d take triple %ds", int(a), int(a)))
		}
	}
	hints = append(hints, "q quit")
	return strings.Join(hints, ", ")
}

// Run starts the interactive session and blocks until it ends.
func Run(config Config) error {
	m, err := New(config)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
