package tui

import (
	"strings"
	"testing"

	"pagetui/internal/action"
	"pagetui/internal/app"
	"pagetui/internal/component"
	"pagetui/internal/config"
	"pagetui/internal/frame"
	"pagetui/pkg/testutils"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type labelPage struct {
	component.Base
	label string
	seen  []action.Kind
}

func (p *labelPage) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	p.seen = append(p.seen, a.Kind)
	return action.Action{}, nil
}

func (p *labelPage) Draw(f *frame.Frame) {
	frame.Paragraph{Lines: []frame.Line{frame.Raw(p.label)}}.Render(f, p.Area)
}

func newModel(t *testing.T) (*Model, *labelPage, *labelPage) {
	t.Helper()
	cfg := config.Default()
	cfg.App.AppDataPath = t.TempDir()
	login := &labelPage{label: "sign in here"}
	home := &labelPage{label: "welcome home"}
	m := New(cfg, app.WithPages(map[types.Mode]component.Component{types.Login: login, types.Home: home}))
	t.Cleanup(m.Close)
	m.Init()
	return m, login, home
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelInitialization(t *testing.T) {
	m, _, _ := newModel(t)
	assert.Equal(t, "pagetui - Login", m.Title())
	assert.Empty(t, m.View(), "nothing to draw before the first size message")
}

func TestModelView(t *testing.T) {
	m, _, _ := newModel(t)
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	assert.False(t, isQuit(cmd))

	view := testutils.StripANSI(m.View())
	assert.Contains(t, view, "sign in here")
	assert.Len(t, strings.Split(view, "\n"), 10)
}

func TestModelTimers(t *testing.T) {
	m, login, _ := newModel(t)
	m.Update(tickMsg{})
	m.Update(frameMsg{})
	assert.Contains(t, login.seen, action.Tick)
	assert.Contains(t, login.seen, action.Render)
}

func TestModelTitleFollowsMode(t *testing.T) {
	m, _, _ := newModel(t)
	m.App().Queue().Send(action.NewChangeMode(types.Home))
	m.Update(readyMsg{})
	assert.Equal(t, "pagetui - Home", m.Title())

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	assert.Contains(t, testutils.StripANSI(m.View()), "welcome home")
}

func TestModelQuit(t *testing.T) {
	t.Run("ctrl+c", func(t *testing.T) {
		m, _, _ := newModel(t)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		assert.True(t, isQuit(cmd))
	})

	t.Run("confirmed", func(t *testing.T) {
		m, _, _ := newModel(t)
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		m.Update(runes("q"))
		require.Contains(t, testutils.StripANSI(m.View()), "Close Application?")

		m.Update(runes("l"))
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		_, cmd := m.Update(readyMsg{})
		assert.True(t, isQuit(cmd))
	})
}

func TestModelResume(t *testing.T) {
	m, login, _ := newModel(t)
	m.Update(tea.ResumeMsg{})
	assert.Contains(t, login.seen, action.Resume)
}
