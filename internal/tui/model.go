// Package tui hosts the application in a bubbletea program. The model
// turns terminal messages into app calls, drives the tick and frame timers,
// and renders the app's frame from View.
package tui

import (
	"time"

	"pagetui/internal/action"
	"pagetui/internal/app"
	"pagetui/internal/config"
	"pagetui/internal/frame"
	"pagetui/internal/log"

	tea "github.com/charmbracelet/bubbletea"
)

type (
	tickMsg  time.Time
	frameMsg time.Time
	// readyMsg reports that a background task queued an action.
	readyMsg struct{}
)

// Model is the bubbletea model wrapping an app.App.
type Model struct {
	app    *app.App
	cfg    *config.AppConfiguration
	width  int
	height int
	title  string
	done   chan struct{}
	closed bool
}

// New builds the application for cfg.
func New(cfg *config.AppConfiguration, opts ...app.Option) *Model {
	return &Model{
		app:  app.New(cfg, opts...),
		cfg:  cfg,
		done: make(chan struct{}),
	}
}

// App exposes the wrapped application.
func (m *Model) App() *app.App { return m.app }

// Title is the last window title sent to the terminal.
func (m *Model) Title() string { return m.title }

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	m.title = m.app.Title()
	return tea.Batch(tea.SetWindowTitle(m.title), m.tick(), m.frame(), m.wait())
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.TickInterval(), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) frame() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg { return frameMsg(t) })
}

// wait blocks until the queue has work or the model is closed.
func (m *Model) wait() tea.Cmd {
	ready, done := m.app.Queue().Ready(), m.done
	return func() tea.Msg {
		select {
		case <-ready:
			return readyMsg{}
		case <-done:
			return nil
		}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	q := m.app.Queue()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.app.Resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.exit()
		}
		m.app.HandleKey(msg)
	case tea.MouseMsg:
		m.app.HandleMouse(msg)
	case tickMsg:
		q.Send(action.Of(action.Tick))
		cmds = append(cmds, m.tick())
	case frameMsg:
		q.Send(action.Of(action.Render))
		cmds = append(cmds, m.frame())
	case readyMsg:
		cmds = append(cmds, m.wait())
	case tea.ResumeMsg:
		q.Send(action.Of(action.Resume))
	}

	if m.app.Step() {
		return m, m.exit()
	}
	if m.app.TakeSuspend() {
		log.Debug("Suspending")
		cmds = append(cmds, tea.Suspend)
	}
	if title := m.app.Title(); title != m.title {
		m.title = title
		cmds = append(cmds, tea.SetWindowTitle(title))
	}
	return m, tea.Batch(cmds...)
}

// exit releases background work and quits the program.
func (m *Model) exit() tea.Cmd {
	m.Close()
	return tea.Quit
}

// Close stops the application. It is safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	close(m.done)
	m.app.Close()
}

// View implements tea.Model
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	f := frame.New(m.width, m.height)
	m.app.Draw(f)
	return f.String()
}

// Run starts the program on the alternate screen with mouse support and
// blocks until it exits.
func Run(cfg *config.AppConfiguration) error {
	m := New(cfg)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
