package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/youblewit/internal/env"
	"github.com/lox/youblewit/internal/game"
)

func testModel(t *testing.T, opponent string) *Model {
	t.Helper()
	m, err := New(Config{
		Rules:    game.DefaultRules(),
		Seed:     42,
		Opponent: opponent,
		Logger:   log.New(io.Discard),
	})
	require.NoError(t, err)
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewRejectsUnknownOpponent(t *testing.T) {
	_, err := New(Config{
		Rules:    game.DefaultRules(),
		Opponent: "nope",
		Logger:   log.New(io.Discard),
	})
	assert.Error(t, err)
}

func TestInitialView(t *testing.T) {
	m := testModel(t, "threshold")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	assert.Contains(t, view, "YOU BLEW IT")
	assert.Contains(t, view, "threshold")
	assert.Contains(t, view, "r roll")
}

func TestRollKey(t *testing.T) {
	m := testModel(t, "")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	logLen := len(m.gameLog)
	m.Update(key("r"))

	assert.Greater(t, len(m.gameLog), logLen, "rolling must log the roll")
	assert.Equal(t, 6, m.env.DiceInPlay())
}

func TestIllegalKeyIsReported(t *testing.T) {
	m := testModel(t, "")

	// Banking from the fresh must-roll state is not offered; the state
	// must not change and the episode must not end.
	m.Update(key("b"))

	assert.False(t, m.over)
	assert.Equal(t, 0, m.env.Banked())
	last := m.gameLog[len(m.gameLog)-1]
	assert.Contains(t, last, "not available")
}

func TestUnboundKeyIgnored(t *testing.T) {
	m := testModel(t, "")
	logLen := len(m.gameLog)

	m.Update(key("x"))

	assert.Equal(t, logLen, len(m.gameLog))
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []string{"q", "esc", "ctrl+c"} {
		m := testModel(t, "")

		var msg tea.Msg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = key(k)
		}
		_, cmd := m.Update(msg)

		assert.True(t, m.quitting, "key %s must quit", k)
		assert.NotNil(t, cmd, "key %s must produce a quit command", k)
	}
}

func TestKeyActionMapping(t *testing.T) {
	tests := []struct {
		key    string
		action env.Action
	}{
		{"r", env.ActionRoll},
		{"b", env.ActionBank},
		{"f", env.ActionTakeFive},
		{"o", env.ActionTakeOne},
		{"1", env.ActionTriple(1)},
		{"6", env.ActionTriple(6)},
	}
	for _, tt := range tests {
		action, ok := keyAction(tt.key)
		require.True(t, ok, "key %s", tt.key)
		assert.Equal(t, tt.action, action, "key %s", tt.key)
	}

	if _, ok := keyAction("z"); ok {
		t.Error("z should not map to an action")
	}
}

func TestPlayThroughTurn(t *testing.T) {
	m := testModel(t, "")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	// Drive the model with its own hints: roll, then follow any legal
	// take until banking becomes available or the roll busts.
	m.Update(key("r"))
	for steps := 0; steps < 200 && !m.over; steps++ {
		legal := m.env.LegalActions()
		require.NotEmpty(t, legal)
		m.Update(key(actionKey(legal[0])))
	}

	view := m.View()
	assert.True(t, strings.Contains(view, "Banked") || m.over)
}

func actionKey(a env.Action) string {
	switch a {
	case env.ActionRoll:
		return "r"
	case env.ActionBank:
		return "b"
	case env.ActionTakeFive:
		return "f"
	case env.ActionTakeOne:
		return "o"
	default:
		return string(rune('0' + int(a)))
	}
}
