package action

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Binding ties a key binding to the action it produces.
type Binding struct {
	key.Binding
	Action Action
}

// Keymap is an ordered set of bindings. The first match wins.
type Keymap []Binding

// Bind builds a binding for one or more keys in tea.KeyMsg.String() form.
// The help text is the action name.
func Bind(a Action, keys ...string) Binding {
	label := keys[0]
	if label == " " {
		label = "space"
	}
	return Binding{
		Binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, a.Kind.String())),
		Action:  a,
	}
}

// Lookup returns the action bound to msg, or None.
func (k Keymap) Lookup(msg tea.KeyMsg) Action {
	for _, b := range k {
		if key.Matches(msg, b.Binding) {
			return b.Action
		}
	}
	return Action{}
}

// Bindings exposes the key bindings for help rendering.
func (k Keymap) Bindings() []key.Binding {
	out := make([]key.Binding, 0, len(k))
	for _, b := range k {
		out = append(out, b.Binding)
	}
	return out
}

// ShortHelp implements help.KeyMap.
func (k Keymap) ShortHelp() []key.Binding {
	return k.Bindings()
}

// FullHelp implements help.KeyMap, four bindings per column.
func (k Keymap) FullHelp() [][]key.Binding {
	all := k.Bindings()
	var cols [][]key.Binding
	for len(all) > 0 {
		n := min(4, len(all))
		cols = append(cols, all[:n])
		all = all[n:]
	}
	return cols
}
