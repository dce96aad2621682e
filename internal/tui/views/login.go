package views

import (
	"context"

	"pagetui/internal/action"
	"pagetui/internal/auth"
	"pagetui/internal/component"
	"pagetui/internal/config"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/log"
	"pagetui/internal/tui/components"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// LoginItem is a focusable element of the login form.
type LoginItem int

const (
	ItemEmail LoginItem = iota
	ItemPassword
	ItemSubmit
	ItemSwitch
	ItemLocal
)

var loginItems = []LoginItem{ItemEmail, ItemPassword, ItemSubmit, ItemSwitch, ItemLocal}

// Login is the sign in form. It starts with the email field focused.
type Login struct {
	component.Base
	ctx      context.Context
	email    *components.TextField
	password *components.TextField
	loader   *components.Loader
	client   *auth.Client
	index    int
	areas    []layout.Rect
}

func NewLogin(opts Options) *Login {
	opts = opts.withDefaults()
	password := components.NewTextField("Password")
	password.Masked = true
	return &Login{
		Base:     component.Base{Mode: types.InsertUser},
		ctx:      opts.Context,
		email:    components.NewTextField("Email"),
		password: password,
		loader:   components.NewLoader("Signing in"),
	}
}

// Focused returns the highlighted form element.
func (l *Login) Focused() LoginItem { return loginItems[l.index] }

func (l *Login) Email() string { return l.email.Value() }

func (l *Login) Password() string { return l.password.Value() }

func (l *Login) RegisterConfigHandler(cfg *config.AppConfiguration) error {
	l.Config = cfg
	l.client = auth.NewClient(cfg.App.AuthURL)
	if cfg.App.Username != "" && l.email.Value() == "" {
		l.email.SetValue(cfg.App.Username)
	}
	if cfg.App.Password != "" && l.password.Value() == "" {
		l.password.SetValue(cfg.App.Password)
	}
	return nil
}

func (l *Login) RegisterLayoutHandler(area layout.Rect) {
	l.Area = area
	width := max(30, area.Width*2/5)
	cols := layout.Horizontal(layout.Fill(1), layout.Length(width), layout.Fill(1)).Split(area)
	rows := layout.VerticalLayout(
		layout.Fill(1), layout.Max(3), layout.Max(3), layout.Max(1), layout.Max(1), layout.Fill(1),
	).WithMargin(1).WithSpacing(1).Split(cols[1])
	buttons := layout.Horizontal(layout.Length(12), layout.Length(12)).WithSpacing(1).Split(rows[3])
	local := layout.Horizontal(layout.Max(24)).Split(rows[4])
	l.areas = []layout.Rect{rows[1], rows[2], buttons[0], buttons[1], local[0]}
}

func (l *Login) HandleKeyEvents(key tea.KeyMsg) action.Action {
	switch l.Mode {
	case types.Normal:
		if key.String() == "enter" {
			return action.Of(action.SelectItem)
		}
		return l.Keymap(types.Login).Lookup(key)
	case types.InsertUser:
		switch key.String() {
		case "esc":
			return action.Of(action.EnterNormal)
		case "enter", "tab":
			l.Send(action.NewCompleteInput(l.email.Value()))
			l.Mode = types.InsertPass
			l.index = int(ItemPassword)
			return action.Action{}
		}
		l.email.HandleKey(key)
	case types.InsertPass:
		switch key.String() {
		case "esc":
			return action.Of(action.EnterNormal)
		case "enter", "tab":
			l.Send(action.NewCompleteInput(l.password.Value()))
			l.index = int(ItemSubmit)
			return action.Of(action.EnterNormal)
		case "shift+tab":
			l.Send(action.NewCompleteInput(l.password.Value()))
			l.Mode = types.InsertUser
			l.index = int(ItemEmail)
			return action.Action{}
		}
		l.password.HandleKey(key)
	}
	return action.Action{}
}

func (l *Login) HandleMouseEvents(m tea.MouseMsg) action.Action {
	if !component.IsClick(m) || l.Mode == types.Processing {
		return action.Action{}
	}
	for i, area := range l.areas {
		if area.Contains(m.X, m.Y) {
			l.index = i
			return l.activate()
		}
	}
	return action.Action{}
}

// activate runs the focused element.
func (l *Login) activate() action.Action {
	switch l.Focused() {
	case ItemEmail:
		l.Mode = types.InsertUser
	case ItemPassword:
		l.Mode = types.InsertPass
	case ItemSubmit:
		return action.Of(action.Login)
	case ItemSwitch:
		return action.Of(action.Register)
	case ItemLocal:
		return action.Of(action.Home)
	}
	return action.Action{}
}

func (l *Login) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	switch a.Kind {
	case action.Render:
		if l.Mode == types.Processing {
			l.loader.Tick()
		}
	case action.Forward:
		if l.Mode == types.Normal {
			l.index = (l.index + 1) % len(loginItems)
		}
	case action.Back:
		if l.Mode == types.Normal {
			l.index = (l.index - 1 + len(loginItems)) % len(loginItems)
		}
	case action.EnterProcessing:
		l.Mode = types.Processing
		l.loader.Reset()
	case action.EnterNormal:
		l.Mode = types.Normal
	case action.Login:
		l.submit(false)
	case action.Register:
		l.submit(true)
	case action.Home:
		l.Mode = types.Normal
		return action.NewChangeMode(types.Home), nil
	case action.SelectItem:
		return l.activate(), nil
	}
	return action.Action{}, nil
}

// submit validates the form and sends the request in the background.
func (l *Login) submit(register bool) {
	creds := auth.Credentials{Email: l.email.Value(), Password: l.password.Value()}
	if err := creds.Validate(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Validation error")
		msg := "Not a valid email."
		if register {
			msg = "Failed to validate email."
		}
		l.Send(action.NewToast("Validation Error", msg))
		l.Send(action.Of(action.EnterNormal))
		return
	}
	if l.client == nil || l.Tx == nil {
		return
	}

	tx, client, ctx := l.Tx, l.client, l.ctx
	go func() {
		tx.Send(action.Of(action.EnterProcessing))
		request, next := client.Login, types.Home
		if register {
			request, next = client.Register, types.Signup
		}
		res, err := request(ctx, creds)
		switch {
		case err != nil:
			log.LogError(err, "Failed to login")
			tx.Send(action.NewToast("Validation Error", err.Error()))
			tx.Send(action.Of(action.EnterNormal))
		case res.OK():
			tx.Send(action.Of(action.EnterNormal))
			tx.Send(action.Action{Kind: action.LoggedIn, Text: creds.Email})
			tx.Send(action.NewChangeMode(next))
		default:
			log.LogError(res.Err(), "Failed to login")
			tx.Send(action.NewToast("Validation Error", res.Message))
			tx.Send(action.Of(action.EnterNormal))
		}
	}()
}

func (l *Login) button(f *frame.Frame, item LoginItem, label string) {
	pal := l.Palette()
	st := frame.Style{Bg: pal.Muted, Fg: "15"}
	if l.Focused() == item {
		st = frame.Style{Bg: pal.Warning, Fg: "15", Bold: true}
	}
	frame.Paragraph{
		Lines: []frame.Line{frame.Raw(label)},
		Align: frame.AlignCenter,
		Style: st,
	}.Render(f, l.areas[item])
}

func (l *Login) Draw(f *frame.Frame) {
	if len(l.areas) == 0 {
		return
	}
	pal := l.Palette()
	if l.Mode == types.Processing {
		l.loader.Render(f, l.areas[ItemPassword], frame.Style{Fg: pal.Primary})
		return
	}

	style := func(item LoginItem) frame.Style {
		if l.Focused() == item {
			return frame.Style{Fg: pal.Warning}
		}
		return frame.Style{}
	}
	l.email.Render(f, l.areas[ItemEmail], style(ItemEmail), l.Mode == types.InsertUser)
	l.password.Render(f, l.areas[ItemPassword], style(ItemPassword), l.Mode == types.InsertPass)
	l.button(f, ItemSubmit, "Sign In")
	l.button(f, ItemSwitch, "Register")
	l.button(f, ItemLocal, "Local Account")
}
