package components

import (
	"os"
	"strings"
	"time"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/config"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/state"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	logTailLines   = 500
	logReloadEvery = 5 * time.Second
)

// LogView tails the application log file in a centered overlay.
type LogView struct {
	component.Base
	path   string
	lines  []string
	scroll state.ScrollState
	shown  bool
	loaded time.Time
	now    Clock
}

func NewLogView(now Clock) *LogView {
	if now == nil {
		now = time.Now
	}
	return &LogView{now: now}
}

func (l *LogView) Active() bool { return l.shown }

func (l *LogView) Lines() []string { return l.lines }

func (l *LogView) Scroll() state.ScrollState { return l.scroll }

func (l *LogView) RegisterConfigHandler(cfg *config.AppConfiguration) error {
	l.Config = cfg
	l.path = cfg.LogPath()
	return nil
}

func (l *LogView) RegisterLayoutHandler(area layout.Rect) {
	l.Area = layout.Centered(area, 80, 75)
	l.scroll.SetViewSize(max(0, l.Area.Height-2))
}

func (l *LogView) HandleKeyEvents(key tea.KeyMsg) action.Action {
	if !l.shown {
		return action.Action{}
	}
	switch key.String() {
	case "esc", ":", "q":
		return action.Of(action.ToggleLog)
	case "j", "down":
		return action.Of(action.ScrollDown)
	case "k", "up":
		return action.Of(action.ScrollUp)
	}
	return action.Action{}
}

// reload reads the tail of the log file and keeps the view pinned to the
// bottom when it already was.
func (l *LogView) reload() {
	l.loaded = l.now()
	atBottom := l.scroll.Position >= l.scroll.Max-l.scroll.ViewSize

	data, err := os.ReadFile(l.path)
	if err != nil {
		l.lines = []string{"No log output yet: " + l.path}
	} else {
		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if len(lines) > logTailLines {
			lines = lines[len(lines)-logTailLines:]
		}
		l.lines = lines
	}

	l.scroll.Max = len(l.lines)
	if atBottom {
		l.scroll.ScrollBottom()
	} else {
		l.scroll.SetViewSize(l.scroll.ViewSize)
	}
}

func (l *LogView) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	if a.Kind == action.ToggleLog {
		l.shown = !l.shown
		if l.shown {
			l.reload()
			l.scroll.ScrollBottom()
		}
		return action.Action{}, nil
	}
	if !l.shown {
		return action.Action{}, nil
	}

	switch a.Kind {
	case action.Tick:
		if l.now().Sub(l.loaded) >= logReloadEvery {
			l.reload()
		}
	case action.ScrollDown, action.Forward:
		l.scroll.ScrollDown()
	case action.ScrollUp, action.Back:
		l.scroll.ScrollUp()
	}
	return action.Action{}, nil
}

func (l *LogView) Draw(f *frame.Frame) {
	if !l.shown {
		return
	}
	pal := l.Palette()
	block := frame.NewBlock("Log")
	block.BorderStyle = frame.Style{Fg: pal.Muted}

	frame.Clear(f, l.Area)
	lines := make([]frame.Line, len(l.lines))
	for i, s := range l.lines {
		lines[i] = frame.Raw(s)
	}
	frame.Paragraph{Lines: lines, Block: block, Scroll: l.scroll.Position}.Render(f, l.Area)
	frame.Scrollbar(f, block.Inner(l.Area), l.scroll.Scrollbar(), frame.Style{Fg: pal.Muted})
}
