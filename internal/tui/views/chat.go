package views

import (
	"context"
	"slices"
	"sync"

	"pagetui/internal/action"
	"pagetui/internal/chat"
	"pagetui/internal/component"
	"pagetui/internal/config"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/log"
	"pagetui/internal/state"
	"pagetui/internal/tui/components"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultChatUser = "guest"

// Chat is a single room. Messages typed here are shown locally and, when a
// relay is configured, published to it.
type Chat struct {
	component.Base
	ctx       context.Context
	messages  state.StatefulList[chat.Message]
	input     *components.TextField
	showChats bool
	showUsers bool
	username  string

	mu      sync.Mutex
	relay   *chat.Relay
	dialing bool
	session int // bumped on disconnect, invalidates dials in flight

	chats, users, banner, body, inputArea layout.Rect
}

func NewChat(opts Options) *Chat {
	opts = opts.withDefaults()
	return &Chat{
		ctx:       opts.Context,
		messages:  state.NewStatefulList[chat.Message](nil),
		input:     components.NewTextField("Enter Input InputMode (Press / to start, ESC to finish)"),
		showChats: true,
		showUsers: true,
		username:  defaultChatUser,
	}
}

func (c *Chat) Messages() []chat.Message { return c.messages.Items }

func (c *Chat) ShowChats() bool { return c.showChats }

func (c *Chat) ShowUsers() bool { return c.showUsers }

// Connected reports whether a relay session is open.
func (c *Chat) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.relay != nil
}

func (c *Chat) RegisterConfigHandler(cfg *config.AppConfiguration) error {
	c.Config = cfg
	if cfg.App.Username != "" {
		c.username = cfg.App.Username
	}
	return nil
}

func (c *Chat) RegisterLayoutHandler(area layout.Rect) {
	c.Area = area
	c.layout()
}

func (c *Chat) layout() {
	var cs []layout.Constraint
	if c.showChats {
		cs = append(cs, layout.Percentage(18))
	}
	cs = append(cs, layout.Fill(1))
	if c.showUsers {
		cs = append(cs, layout.Percentage(15))
	}
	cols := layout.Horizontal(cs...).WithSpacing(1).Split(c.Area)

	c.chats, c.users = layout.Rect{}, layout.Rect{}
	center := cols[0]
	if c.showChats {
		c.chats, center = cols[0], cols[1]
	}
	if c.showUsers {
		c.users = cols[len(cols)-1]
	}
	rows := layout.VerticalLayout(layout.Length(2), layout.Fill(1), layout.Length(3)).Split(center)
	c.banner, c.body, c.inputArea = rows[0], rows[1], rows[2]
}

func (c *Chat) HandleKeyEvents(key tea.KeyMsg) action.Action {
	switch c.Mode {
	case types.Normal:
		return c.Keymap(types.Chat).Lookup(key)
	case types.Insert:
		switch key.String() {
		case "esc":
			return action.Of(action.EnterNormal)
		case "enter":
			if v := c.input.Value(); v != "" {
				c.Send(action.NewCompleteInput(v))
				c.input.Reset()
			}
			return action.Action{}
		}
		c.input.HandleKey(key)
	}
	return action.Action{}
}

func (c *Chat) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	switch a.Kind {
	case action.Forward:
		if c.Mode != types.Processing {
			c.messages.Next()
		}
	case action.Back:
		if c.Mode != types.Processing {
			c.messages.Previous()
		}
	case action.ToggleChats:
		c.showChats = !c.showChats
		c.layout()
	case action.ToggleUsers:
		c.showUsers = !c.showUsers
		c.layout()
	case action.EnterNormal:
		c.Mode = types.Normal
	case action.EnterInput:
		c.messages.Unselect()
		c.Mode = types.Insert
	case action.EnterProcessing:
		c.Mode = types.Processing
	case action.CompleteInput:
		m := chat.NewMessage(c.username, a.Text)
		c.messages.Push(m)
		c.publish(m)
	case action.ChatReceived:
		c.messages.Push(chat.FromAction(a))
	case action.LoggedIn:
		if a.Text != "" {
			c.username = a.Text
		}
		c.connect()
	case action.LoggedOut:
		c.disconnect()
	case action.Quit:
		c.disconnect()
	}
	return action.Action{}, nil
}

// connect dials the relay in the background. A failure is reported as an
// error toast and the chat stays local.
func (c *Chat) connect() {
	if c.Config == nil || c.Config.App.ChatURL == "" || c.Tx == nil {
		return
	}
	c.mu.Lock()
	if c.relay != nil || c.dialing {
		c.mu.Unlock()
		return
	}
	c.dialing = true
	session := c.session
	c.mu.Unlock()

	url, user, tx, ctx := c.Config.App.ChatURL, c.username, c.Tx, c.ctx
	go func() {
		r, err := chat.Dial(ctx, url, user, tx)

		c.mu.Lock()
		current := session == c.session
		if current {
			c.dialing = false
			if err == nil {
				c.relay = r
			}
		}
		c.mu.Unlock()

		if err != nil {
			if current {
				log.LogError(err, "Failed to connect to chat relay")
				tx.Send(action.NewError(err.Error()))
			}
			return
		}
		if !current {
			_ = r.Close()
			return
		}
		c.watch(r)
	}()
}

// watch forgets r once its read loop ends, so a relay closed by the server
// no longer counts as connected.
func (c *Chat) watch(r *chat.Relay) {
	<-r.Done()
	c.mu.Lock()
	lost := c.relay == r
	if lost {
		c.relay = nil
	}
	c.mu.Unlock()
	if lost {
		log.Warn("Chat relay connection lost")
	}
}

func (c *Chat) disconnect() {
	c.mu.Lock()
	c.session++
	c.dialing = false
	r := c.relay
	c.relay = nil
	c.mu.Unlock()
	if r != nil {
		go func() { _ = r.Close() }()
	}
}

func (c *Chat) publish(m chat.Message) {
	c.mu.Lock()
	r := c.relay
	c.mu.Unlock()
	if r == nil {
		return
	}
	tx := c.Tx
	go func() {
		if err := r.Publish(m); err != nil {
			log.LogError(err, "Failed to publish chat message")
			if tx != nil {
				tx.Send(action.NewError(err.Error()))
			}
		}
	}()
}

// senders returns the distinct senders in order of first message.
func (c *Chat) senders() []string {
	var out []string
	for _, m := range c.messages.Items {
		if !slices.Contains(out, m.Username) {
			out = append(out, m.Username)
		}
	}
	return out
}

func (c *Chat) Draw(f *frame.Frame) {
	if c.Area.IsEmpty() {
		return
	}
	pal := c.Palette()

	if c.showChats {
		block := frame.NewBlock("Chats")
		block.BorderStyle = frame.Style{Fg: pal.Border}
		frame.List{
			Items:           []frame.Line{frame.Raw("# general")},
			Block:           block,
			HighlightStyle:  frame.Style{Bold: true},
			HighlightSymbol: "> ",
		}.Render(f, c.chats, 0)
	}
	if c.showUsers {
		names := c.senders()
		items := make([]frame.Line, len(names))
		for i, n := range names {
			items[i] = frame.Raw(n)
		}
		block := frame.NewBlock("Users")
		block.BorderStyle = frame.Style{Fg: pal.Border}
		frame.List{Items: items, Block: block, Style: frame.Style{Fg: pal.Info}}.Render(f, c.users, -1)
	}

	status := "offline"
	if c.Connected() {
		status = "connected"
	}
	frame.Paragraph{
		Lines: []frame.Line{frame.Spans(
			frame.Span{Text: "# general", Style: frame.Style{Bold: true}},
			frame.Span{Text: "  " + c.username + " (" + status + ")", Style: frame.Style{Fg: pal.Muted}},
		)},
	}.Render(f, c.banner)

	items := make([]frame.Line, len(c.messages.Items))
	for i, m := range c.messages.Items {
		items[i] = frame.Spans(
			frame.Span{Text: m.Ctime.Format("15:04") + " ", Style: frame.Style{Fg: pal.Info}},
			frame.Span{Text: m.Username + ": ", Style: frame.Style{Fg: pal.Primary, Bold: true}},
			frame.Span{Text: m.Message},
		)
	}
	selected, ok := c.messages.Selected()
	if !ok {
		selected = -1
	}
	frame.List{
		Items:           items,
		Block:           &frame.Block{},
		HighlightStyle:  frame.Style{Bold: true},
		HighlightSymbol: "> ",
	}.Render(f, c.body, selected)

	st := frame.Style{}
	if c.Mode == types.Insert {
		st = frame.Style{Fg: pal.Warning}
	}
	c.input.Render(f, c.inputArea, st, c.Mode == types.Insert)
}
