package types

import (
	"fmt"
	"strings"
)

// Mode identifies a page of the application. Exactly one Mode is current
// at any time.
type Mode int

const (
	// Login is the mode the application starts in
	Login Mode = iota
	Signup
	Home
	Chat
	Blog
	Filebrowser
	Music
	Map
	Settings
	// Global only keys the global keybinding table. It is never navigable.
	Global
)

// NavigableModes lists the pages reachable from the navigation bar and
// the menu, in display order.
var NavigableModes = []Mode{Home, Chat, Blog, Filebrowser, Music, Map, Settings}

var modeNames = map[Mode]string{
	Login:       "Login",
	Signup:      "Signup",
	Home:        "Home",
	Chat:        "Chat",
	Blog:        "Blog",
	Filebrowser: "Filebrowser",
	Music:       "Music",
	Map:         "Map",
	Settings:    "Settings",
	Global:      "Global",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a case-insensitive mode name back to its Mode.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}
	return Login, fmt.Errorf("unknown mode %q", name)
}

// MarshalText lets modes key config maps.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// InputMode is the input state of a single component.
type InputMode int

const (
	// Normal is the default mode; keys map to actions
	Normal InputMode = iota
	// Insert routes keys into a text field
	Insert
	OptionInput
	InsertUser
	InsertPass
	// Processing is shown while a background task runs
	Processing
	Submit
	Select
	Cancel
)

// ConfirmModes are the choices offered by confirmation prompts.
var ConfirmModes = []InputMode{Submit, Cancel}

var inputModeNames = []string{
	"Normal", "Insert", "OptionInput", "InsertUser", "InsertPass",
	"Processing", "Submit", "Select", "Cancel",
}

func (m InputMode) String() string {
	if int(m) >= 0 && int(m) < len(inputModeNames) {
		return inputModeNames[m]
	}
	return fmt.Sprintf("InputMode(%d)", int(m))
}

// CapturesText reports whether keys typed in this mode belong to a text
// field rather than to keybindings.
func (m InputMode) CapturesText() bool {
	switch m {
	case Insert, OptionInput, InsertUser, InsertPass:
		return true
	}
	return false
}
