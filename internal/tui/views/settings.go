package views

import (
	"slices"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/state"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// SettingsOptions are the entries of the settings menu.
var SettingsOptions = []string{
	"Background Color",
	"Foreground Color",
	"Font Size",
	"Font Family",
	"Privacy",
	"Account Color",
	"Language",
	"Notifications",
	"FAQ",
	"Support",
}

const supportText = "For support, please visit our website or contact us via email."

// Settings lists the settings menu and shows the highlighted entry.
type Settings struct {
	component.Base
	options  state.StatefulList[string]
	selected string
	list     layout.Rect
	details  layout.Rect
}

func NewSettings() *Settings {
	return &Settings{options: state.NewStatefulList(slices.Clone(SettingsOptions))}
}

// Selected returns the chosen option. Empty means none.
func (s *Settings) Selected() string { return s.selected }

// Highlighted returns the option under the cursor.
func (s *Settings) Highlighted() (string, bool) { return s.options.SelectedItem() }

func (s *Settings) RegisterLayoutHandler(area layout.Rect) {
	s.Area = area
	longest := 0
	for _, o := range SettingsOptions {
		longest = max(longest, runewidth.StringWidth(o))
	}
	cols := layout.Horizontal(layout.Length(longest+3), layout.Min(1)).Split(area)
	s.list, s.details = cols[0], cols[1]
}

func (s *Settings) HandleKeyEvents(key tea.KeyMsg) action.Action {
	return s.Keymap(types.Settings).Lookup(key)
}

func (s *Settings) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	switch a.Kind {
	case action.EnterNormal:
		s.Mode = types.Normal
		s.selected = ""
	case action.SelectOption:
		if o, ok := s.options.SelectedItem(); ok {
			s.selected = o
			s.Mode = types.Select
		}
	case action.Forward:
		if s.selected == "" {
			s.options.Next()
		}
	case action.Back:
		if s.selected == "" {
			s.options.Previous()
		}
	case action.Home:
		return action.NewChangeMode(types.Home), nil
	}
	return action.Action{}, nil
}

func (s *Settings) Draw(f *frame.Frame) {
	if s.Area.IsEmpty() {
		return
	}
	pal := s.Palette()
	items := make([]frame.Line, len(s.options.Items))
	for i, o := range s.options.Items {
		items[i] = frame.Raw(o)
	}
	highlight := frame.Style{Bold: true, Bg: pal.Warning, Fg: "15"}
	if s.selected != "" {
		highlight = frame.Style{Bold: true, Bg: pal.Info, Fg: "0"}
	}
	block := &frame.Block{Borders: false}
	idx, ok := s.options.Selected()
	if !ok {
		idx = -1
	}
	frame.List{Items: items, Block: block, HighlightStyle: highlight}.Render(f, s.list, idx)

	current, ok := s.options.SelectedItem()
	if !ok {
		frame.Clear(f, s.details)
		return
	}
	switch current {
	case "FAQ":
		frame.NewBlock("FAQ").Render(f, s.details)
	case "Support":
		frame.Paragraph{Lines: frame.Text(supportText), Block: frame.NewBlock("Support"), Wrap: true}.Render(f, s.details)
	default:
		frame.Paragraph{
			Lines: frame.Text("You selected: " + current),
			Block: frame.NewBlock("Details"),
			Wrap:  true,
		}.Render(f, s.details)
	}
}
