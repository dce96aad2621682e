package views

import (
	"strings"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/state"
	"pagetui/internal/tui/components"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// SignupItems are the steps of the profile form.
var SignupItems = []string{"Confirm", "Username", "Bio", "Tos", "Privacy"}

const (
	tosText     = "By creating an account you agree to use this service responsibly."
	privacyText = "Your profile is only shared with the people you chat with."
)

// Signup completes a newly registered profile.
type Signup struct {
	component.Base
	options  state.StatefulList[string]
	selected string
	username *components.TextField
	bio      *components.TextField
	header   layout.Rect
	tabs     layout.Rect
	content  layout.Rect
}

func NewSignup() *Signup {
	s := &Signup{
		options:  state.NewStatefulList(append([]string(nil), SignupItems...)),
		username: components.NewTextField("Username"),
		bio:      components.NewTextField("Bio"),
	}
	s.options.Select(0)
	return s
}

func (s *Signup) Selected() string { return s.selected }

func (s *Signup) Username() string { return s.username.Value() }

func (s *Signup) Bio() string { return s.bio.Value() }

func (s *Signup) RegisterLayoutHandler(area layout.Rect) {
	s.Area = area
	rows := layout.VerticalLayout(layout.Length(1), layout.Length(3), layout.Fill(1)).WithSpacing(1).Split(area)
	s.header, s.tabs, s.content = rows[0], rows[1], rows[2]
}

func (s *Signup) field() *components.TextField {
	switch s.selected {
	case "Username":
		return s.username
	case "Bio":
		return s.bio
	}
	return nil
}

func (s *Signup) HandleKeyEvents(key tea.KeyMsg) action.Action {
	if s.Mode == types.Insert {
		switch key.String() {
		case "esc", "enter":
			return action.Of(action.EnterNormal)
		}
		if fld := s.field(); fld != nil {
			fld.HandleKey(key)
		}
		return action.Action{}
	}
	return s.Keymap(types.Signup).Lookup(key)
}

func (s *Signup) Update(a action.Action, ctx *component.Ctx) (action.Action, error) {
	switch a.Kind {
	case action.EnterNormal:
		s.Mode = types.Normal
		s.selected = ""
	case action.SelectOption:
		o, ok := s.options.SelectedItem()
		if !ok {
			break
		}
		s.selected = o
		switch o {
		case "Username", "Bio":
			s.Mode = types.Insert
		case "Confirm":
			return s.confirm(ctx), nil
		default:
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

func (s *Signup) confirm(ctx *component.Ctx) action.Action {
	s.selected = ""
	name := strings.TrimSpace(s.username.Value())
	if name == "" {
		return action.NewToast("Validation Error", "Username is required.")
	}
	who := name
	if ctx != nil && ctx.Username != "" {
		who = ctx.Username
	}
	s.Send(action.NewToast("Welcome", "Profile saved for "+who))
	return action.NewChangeMode(types.Home)
}

func (s *Signup) Draw(f *frame.Frame) {
	if s.Area.IsEmpty() {
		return
	}
	pal := s.Palette()
	frame.Paragraph{
		Lines: []frame.Line{frame.Styled("Complete your profile", frame.Style{Fg: pal.Primary, Bold: true})},
		Align: frame.AlignCenter,
	}.Render(f, s.header)

	idx, _ := s.options.Selected()
	cells := make([]layout.Constraint, len(s.options.Items))
	for i := range cells {
		cells[i] = layout.Fill(1)
	}
	for i, area := range layout.Horizontal(cells...).WithSpacing(1).Split(s.tabs) {
		block := frame.NewBlock("")
		st := frame.Style{}
		if i == idx {
			st = frame.Style{Fg: pal.Warning, Bold: true}
			if s.selected != "" {
				st = frame.Style{Fg: pal.Info, Bold: true}
			}
			block.BorderStyle = st
		}
		frame.Paragraph{
			Lines: []frame.Line{frame.Styled(s.options.Items[i], st)},
			Block: block,
			Align: frame.AlignCenter,
		}.Render(f, area)
	}

	current, _ := s.options.SelectedItem()
	focus := frame.Style{Fg: pal.Warning}
	switch current {
	case "Username":
		s.username.Render(f, layout.NewRect(s.content.X, s.content.Y, s.content.Width, min(3, s.content.Height)), focus, s.Mode == types.Insert)
	case "Bio":
		s.bio.Render(f, layout.NewRect(s.content.X, s.content.Y, s.content.Width, min(3, s.content.Height)), focus, s.Mode == types.Insert)
	case "Tos":
		frame.Paragraph{Lines: frame.Text(tosText), Block: frame.NewBlock("Terms of Service"), Wrap: true}.Render(f, s.content)
	case "Privacy":
		frame.Paragraph{Lines: frame.Text(privacyText), Block: frame.NewBlock("Privacy"), Wrap: true}.Render(f, s.content)
	default:
		lines := []frame.Line{
			frame.Raw("Username: " + s.username.Value()),
			frame.Raw("Bio: " + s.bio.Value()),
			frame.Raw(""),
			frame.Styled("Press enter to confirm", frame.Style{Dim: true}),
		}
		frame.Paragraph{Lines: lines, Block: frame.NewBlock("Confirm")}.Render(f, s.content)
	}
}
