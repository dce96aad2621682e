package components

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/config"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/state"
	"pagetui/pkg/testutils"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func newClock() *fakeClock { return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)} }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type recordingWatcher struct {
	dirs []string
}

func (w *recordingWatcher) Watch(dir string) error {
	w.dirs = append(w.dirs, dir)
	return nil
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func update(t *testing.T, c component.Component, a action.Action, ctx *component.Ctx) action.Action {
	t.Helper()
	out, err := c.Update(a, ctx)
	require.NoError(t, err)
	return out
}

func TestToastCountdown(t *testing.T) {
	clk := newClock()
	toast := NewToast(clk.Now)
	require.NoError(t, toast.RegisterConfigHandler(config.Default()))

	update(t, toast, action.NewToast("Saved", "all good"), nil)
	require.True(t, toast.Active())

	for i := 1; i <= 4; i++ {
		clk.Advance(time.Second)
		update(t, toast, action.Of(action.Render), nil)
		assert.True(t, toast.Active(), "toast gone after %d ticks", i)
	}
	clk.Advance(time.Second)
	update(t, toast, action.Of(action.Render), nil)
	assert.False(t, toast.Active())
}

func TestToastThrottledByClock(t *testing.T) {
	clk := newClock()
	toast := NewToast(clk.Now)
	require.NoError(t, toast.RegisterConfigHandler(config.Default()))
	update(t, toast, action.NewToast("Saved", ""), nil)

	for i := 0; i < 100; i++ {
		clk.Advance(10 * time.Millisecond)
		update(t, toast, action.Of(action.Render), nil)
	}
	m, ok := toast.Front()
	require.True(t, ok)
	assert.Equal(t, 4*time.Second, m.Duration)
}

func TestToastErrorAndClose(t *testing.T) {
	toast := NewToast(newClock().Now)
	require.NoError(t, toast.RegisterConfigHandler(config.Default()))

	update(t, toast, action.NewError("disk full"), nil)
	update(t, toast, action.NewToast("Second", "queued"), nil)
	m, ok := toast.Front()
	require.True(t, ok)
	assert.Equal(t, "Error", m.Title)
	assert.Equal(t, "disk full", m.Content)

	assert.Equal(t, action.CloseToast, toast.HandleKeyEvents(tea.KeyMsg{Type: tea.KeyEsc}).Kind)
	update(t, toast, action.Of(action.CloseToast), nil)
	m, _ = toast.Front()
	assert.Equal(t, "Second", m.Title)
}

func TestToastDraw(t *testing.T) {
	toast := NewToast(newClock().Now)
	require.NoError(t, toast.RegisterConfigHandler(config.Default()))
	toast.RegisterLayoutHandler(layout.NewRect(0, 0, 100, 40))
	assert.Equal(t, layout.NewRect(80, 0, 20, 6), toast.Area)

	update(t, toast, action.NewToast("Hi", "there"), nil)
	f := frame.New(100, 40)
	toast.Draw(f)
	assert.True(t, f.Contains("Hi (5s)"))
	assert.True(t, f.Contains("there"))
}

func TestPopup(t *testing.T) {
	t.Run("yes returns follow-up", func(t *testing.T) {
		p := NewPopup()
		follow := action.NewChangeMode(types.Home)
		update(t, p, action.NewPopup("Leave", "Go home?", &follow), nil)
		require.True(t, p.Active())

		assert.Equal(t, action.Forward, p.HandleKeyEvents(keyRunes("l")).Kind)
		update(t, p, action.Of(action.Forward), nil)
		assert.Equal(t, 1, p.Index())

		out := update(t, p, action.Of(action.SelectOption), nil)
		assert.Equal(t, follow, out)
		assert.False(t, p.Active())
	})

	t.Run("no pops and drops the follow-up", func(t *testing.T) {
		p := NewPopup()
		follow := action.Of(action.Quit)
		update(t, p, action.NewPopup("Quit", "Really?", &follow), nil)
		out := update(t, p, action.Of(action.SelectOption), nil)
		assert.True(t, out.IsNone())
		assert.False(t, p.Active())
	})

	t.Run("stack shows newest", func(t *testing.T) {
		p := NewPopup()
		update(t, p, action.NewPopup("First", "", nil), nil)
		update(t, p, action.NewPopup("Second", "", nil), nil)
		m, _ := p.Front()
		assert.Equal(t, "Second", m.Title)
		update(t, p, action.Of(action.ClosePopup), nil)
		m, _ = p.Front()
		assert.Equal(t, "First", m.Title)
	})

	t.Run("inactive ignores keys", func(t *testing.T) {
		p := NewPopup()
		assert.True(t, p.HandleKeyEvents(tea.KeyMsg{Type: tea.KeyEnter}).IsNone())
		assert.True(t, update(t, p, action.Of(action.SelectOption), nil).IsNone())
	})

	t.Run("draw", func(t *testing.T) {
		p := NewPopup()
		p.RegisterLayoutHandler(layout.NewRect(0, 0, 100, 40))
		follow := action.Of(action.Quit)
		update(t, p, action.NewPopup("Confirm", "Sure?", &follow), nil)
		f := frame.New(100, 40)
		p.Draw(f)
		assert.True(t, f.Contains("Confirm [x]"))
		assert.True(t, f.Contains("No  |  Yes"))
	})
}

func TestQuit(t *testing.T) {
	q := NewQuit()
	q.RegisterLayoutHandler(layout.NewRect(0, 0, 100, 40))
	update(t, q, action.Of(action.ToggleShowQuit), nil)
	require.True(t, q.Active())
	assert.Equal(t, 0, q.Index())

	f := frame.New(100, 40)
	q.Draw(f)
	assert.True(t, f.Contains("Close Application?"))

	update(t, q, action.Of(action.Back), nil)
	assert.Equal(t, 1, q.Index())
	out := update(t, q, action.Of(action.SelectOption), nil)
	assert.Equal(t, action.Quit, out.Kind)
	assert.False(t, q.Active())

	update(t, q, action.Of(action.ToggleShowQuit), nil)
	assert.True(t, update(t, q, action.Of(action.SelectOption), nil).IsNone())
	assert.False(t, q.Active())
}

func TestLoaderFrames(t *testing.T) {
	l := NewLoader("Processing")
	assert.Equal(t, "⡇", l.Frame())
	l.Tick()
	l.Tick()
	assert.Equal(t, "⡇", l.Frame())
	l.Tick()
	assert.Equal(t, "⠏", l.Frame())
	for i := 0; i < 21; i++ {
		l.Tick()
	}
	assert.Equal(t, "⡇", l.Frame())

	f := frame.New(30, 3)
	l.Render(f, f.Area(), frame.Style{})
	assert.True(t, f.Contains("⡇ Processing"))
}

func TestMenu(t *testing.T) {
	m := NewMenu()
	ctx := &component.Ctx{Mode: types.Chat}
	update(t, m, action.Of(action.ToggleNav), ctx)
	require.True(t, m.Active())
	mode, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, types.Chat, mode)

	assert.Equal(t, action.Forward, m.HandleKeyEvents(keyRunes("j")).Kind)
	update(t, m, action.Of(action.Forward), ctx)
	out := update(t, m, action.Of(action.SelectOption), ctx)
	assert.Equal(t, action.NewChangeMode(types.Blog), out)
	assert.False(t, m.Active())
}

func TestNavigation(t *testing.T) {
	n := NewNavigation()
	n.RegisterLayoutHandler(layout.NewRect(0, 0, 70, 3))

	tests := map[string]struct {
		from types.Mode
		kind action.Kind
		want types.Mode
	}{
		"next":           {types.Home, action.NextView, types.Chat},
		"previous wraps": {types.Home, action.PreviousView, types.Settings},
		"next wraps":     {types.Settings, action.NextView, types.Home},
		"off bar":        {types.Login, action.NextView, types.Home},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			out := update(t, n, action.Of(tc.kind), &component.Ctx{Mode: tc.from})
			assert.Equal(t, action.NewChangeMode(tc.want), out)
		})
	}

	t.Run("mouse", func(t *testing.T) {
		motion := tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionMotion}
		assert.True(t, n.HandleMouseEvents(motion).IsNone())
		assert.Equal(t, 0, n.Hover())

		click := tea.MouseMsg{X: 2, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
		assert.Equal(t, action.NewChangeMode(types.Home), n.HandleMouseEvents(click))

		n.HandleMouseEvents(tea.MouseMsg{X: 2, Y: 10, Action: tea.MouseActionMotion})
		assert.Equal(t, -1, n.Hover())
	})

	t.Run("draw", func(t *testing.T) {
		update(t, n, action.NewChangeMode(types.Blog), &component.Ctx{Mode: types.Blog})
		f := frame.New(70, 3)
		n.Draw(f)
		assert.True(t, f.Contains("[Blog]"))
		assert.True(t, f.Contains("Home"))
	})
}

func makeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644))
	return dir
}

func entryNames(p *Filepicker) []string {
	var out []string
	for _, e := range p.Entries() {
		out = append(out, e.Name)
	}
	return out
}

func TestFilepickerSidebar(t *testing.T) {
	dir := makeTree(t)
	w := &recordingWatcher{}
	p := NewFilepicker(PickerOptions{Start: dir, Watcher: w})
	require.NoError(t, p.RegisterConfigHandler(config.Default()))

	assert.Equal(t, dir, p.Dir())
	assert.Equal(t, []string{"..", "sub", "a.md"}, entryNames(p))
	assert.Equal(t, []string{dir}, w.dirs)

	p.HandleKeyEvents(keyRunes("."))
	assert.True(t, p.ShowHidden())
	assert.Contains(t, entryNames(p), ".hidden")
	p.HandleKeyEvents(keyRunes("."))
	assert.NotContains(t, entryNames(p), ".hidden")

	update(t, p, action.Of(action.Forward), nil)
	e, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "sub", e.Name)

	update(t, p, action.Of(action.Back), nil)
	update(t, p, action.Of(action.Back), nil)
	e, _ = p.Selected()
	assert.Equal(t, "a.md", e.Name, "Back wraps to the last entry")

	p.Select(1)
	assert.True(t, p.HandleKeyEvents(tea.KeyMsg{Type: tea.KeyEnter}).IsNone())
	assert.Equal(t, filepath.Join(dir, "sub"), p.Dir())
	assert.Equal(t, filepath.Join(dir, "sub"), w.dirs[len(w.dirs)-1])
}

func TestFilepickerFilter(t *testing.T) {
	dir := makeTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.mp3"), nil, 0o644))
	p := NewFilepicker(PickerOptions{Start: dir, Filter: (*config.AppConfiguration).MusicFilter})
	require.NoError(t, p.RegisterConfigHandler(config.Default()))
	assert.Equal(t, []string{"..", "sub", "song.mp3"}, entryNames(p))
}

func TestFilepickerMouse(t *testing.T) {
	dir := makeTree(t)
	p := NewFilepicker(PickerOptions{Start: dir})
	require.NoError(t, p.RegisterConfigHandler(config.Default()))
	p.RegisterLayoutHandler(layout.NewRect(0, 0, 30, 10))

	click := tea.MouseMsg{X: 2, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	p.HandleMouseEvents(click)
	e, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "a.md", e.Name)

	wheel := tea.MouseMsg{X: 2, Y: 3, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}
	assert.Equal(t, action.Forward, p.HandleMouseEvents(wheel).Kind)

	f := frame.New(30, 10)
	p.Draw(f)
	assert.True(t, f.Contains("> a.md"))
	assert.True(t, f.Contains("sub/"))
}

func TestFilepickerPopup(t *testing.T) {
	dir := makeTree(t)
	q := action.NewQueue()
	p := NewFilepicker(PickerOptions{Start: dir, Popup: true})
	p.RegisterActionHandler(q)
	require.NoError(t, p.RegisterConfigHandler(config.Default()))

	assert.False(t, p.Shown())
	assert.True(t, p.HandleKeyEvents(tea.KeyMsg{Type: tea.KeyEnter}).IsNone())

	update(t, p, action.Of(action.OpenFilepicker), nil)
	require.True(t, p.Shown())

	p.Select(2)
	assert.True(t, p.HandleKeyEvents(tea.KeyMsg{Type: tea.KeyEnter}).IsNone())
	sent := q.Drain()
	require.Len(t, sent, 1)
	assert.Equal(t, action.NewToast("Error", "Selected item is not a directory"), sent[0])

	// Forward from the sidebar flow does not move a popup picker.
	update(t, p, action.Of(action.Forward), nil)
	e, _ := p.Selected()
	assert.Equal(t, "a.md", e.Name)

	p.HandleKeyEvents(keyRunes("k"))
	out := p.HandleKeyEvents(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, action.Action{Kind: action.OpenFile, Text: filepath.Join(dir, "sub")}, out)
	assert.False(t, p.Shown())

	update(t, p, action.Of(action.OpenFilepicker), nil)
	p.HandleKeyEvents(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, p.Shown())
}

func TestFilepickerRefreshKeepsSelection(t *testing.T) {
	dir := makeTree(t)
	p := NewFilepicker(PickerOptions{Start: dir})
	require.NoError(t, p.RegisterConfigHandler(config.Default()))
	p.Select(2)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.md"), nil, 0o644))
	update(t, p, action.Action{Kind: action.Refresh, Text: dir}, nil)
	assert.Equal(t, []string{"..", "sub", "0.md", "a.md"}, entryNames(p))
	e, _ := p.Selected()
	assert.Equal(t, "a.md", e.Name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.md"), nil, 0o644))
	update(t, p, action.Action{Kind: action.Refresh, Text: "/elsewhere"}, nil)
	assert.NotContains(t, entryNames(p), "1.md")
}

func TestFilestatsScroll(t *testing.T) {
	content := testutils.Numbered(100)
	require.Equal(t, 100, LineCount(content))
	s := NewFilestats("notes", time.Now(), content, state.ScrollForContent(LineCount(content), 20))

	update(t, s, action.Of(action.Forward), nil)
	assert.Equal(t, 0, s.Scroll().Position, "not scrollable until toggled")

	update(t, s, action.Of(action.ToggleSidebar), nil)
	require.True(t, s.Scrollable())
	for i := 0; i < 200; i++ {
		update(t, s, action.Of(action.Forward), nil)
	}
	assert.Equal(t, 96, s.Scroll().Position, "reserved viewport before layout")

	s.RegisterLayoutHandler(layout.NewRect(0, 0, 60, 20))
	assert.Equal(t, 15, s.BodyHeight())
	assert.Equal(t, 15, s.Scroll().ViewSize)
	assert.Equal(t, 85, s.Scroll().Position, "clamped to the last full page")

	for i := 0; i < 50; i++ {
		update(t, s, action.Of(action.Forward), nil)
	}
	assert.Equal(t, 85, s.Scroll().Position)
	update(t, s, action.Of(action.Back), nil)
	assert.Equal(t, 84, s.Scroll().Position)
	update(t, s, action.Of(action.Forward), nil)

	f := frame.New(60, 20)
	s.Draw(f)
	assert.True(t, f.Contains("File: notes"))
	assert.True(t, f.Contains("line 86"))
	assert.True(t, f.Contains("line 100"), "last line is on screen")
	assert.False(t, f.Contains("line 85"))
}

func TestControlsClock(t *testing.T) {
	clk := newClock()
	c := NewControls(clk.Now)
	c.SetTrack("song.mp3")
	require.True(t, c.Playing())

	clk.Advance(2500 * time.Millisecond)
	update(t, c, action.Of(action.Tick), nil)
	assert.Equal(t, 2*time.Second, c.Elapsed())

	update(t, c, action.Of(action.PausePlay), nil)
	clk.Advance(3 * time.Second)
	update(t, c, action.Of(action.Tick), nil)
	assert.Equal(t, 2*time.Second, c.Elapsed())

	update(t, c, action.Of(action.PausePlay), nil)
	clk.Advance(time.Second)
	update(t, c, action.Of(action.Tick), nil)
	assert.Equal(t, 3*time.Second, c.Elapsed())

	assert.Equal(t, "01:15", FormatClock(75*time.Second))

	c.RegisterLayoutHandler(layout.NewRect(0, 0, 40, 5))
	f := frame.New(40, 5)
	c.Draw(f)
	assert.True(t, f.Contains("Now Playing: song.mp3"))
	assert.True(t, f.Contains("00:03"))
}

func TestWaveProgressWraps(t *testing.T) {
	w := NewWave(1)
	update(t, w, action.Of(action.Tick), nil)
	assert.InDelta(t, 0.01, w.Progress(), 1e-9)
	for i := 0; i < 99; i++ {
		update(t, w, action.Of(action.Tick), nil)
	}
	assert.Zero(t, w.Progress())
	assert.Len(t, w.Data(), wavePoints)
}

func TestHelpLines(t *testing.T) {
	h := NewHelp()
	require.NoError(t, h.RegisterConfigHandler(config.Default()))
	update(t, h, action.Of(action.ToggleShowHelp), &component.Ctx{Mode: types.Filebrowser})
	require.True(t, h.Active())

	text := strings.Join(h.Lines(0), "\n")
	assert.Contains(t, text, "ToggleSidebar")
	assert.Contains(t, text, "ToggleShowQuit")
	assert.NotContains(t, text, "\x1b[")

	assert.Equal(t, action.ToggleShowHelp, h.HandleKeyEvents(tea.KeyMsg{Type: tea.KeyEsc}).Kind)
}

func TestLogViewTail(t *testing.T) {
	cfg := config.Default()
	cfg.App.AppDataPath = t.TempDir()
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "[2024-01-01 12:00:00] INFO: line %d\n", i)
	}
	require.NoError(t, os.WriteFile(cfg.LogPath(), []byte(b.String()), 0o644))

	clk := newClock()
	l := NewLogView(clk.Now)
	require.NoError(t, l.RegisterConfigHandler(cfg))
	l.RegisterLayoutHandler(layout.NewRect(0, 0, 100, 20))
	update(t, l, action.Of(action.ToggleLog), nil)

	require.Len(t, l.Lines(), 40)
	sc := l.Scroll()
	assert.Equal(t, sc.Max-sc.ViewSize, sc.Position, "opens at the bottom")

	update(t, l, action.Of(action.ScrollUp), nil)
	assert.Equal(t, sc.Position-1, l.Scroll().Position)

	f, err := os.OpenFile(cfg.LogPath(), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("[2024-01-01 12:00:05] INFO: appended\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	update(t, l, action.Of(action.Tick), nil)
	assert.Len(t, l.Lines(), 40, "reload waits five seconds")
	clk.Advance(5 * time.Second)
	update(t, l, action.Of(action.Tick), nil)
	assert.Len(t, l.Lines(), 41)
}
