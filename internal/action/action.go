// Package action defines the application-level events that flow between
// components and the queue that carries them to the dispatch loop.
package action

import (
	"fmt"
	"strings"
	"time"

	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind tags an Action.
type Kind int

// Action kinds. None is the zero value and means "no action".
const (
	None Kind = iota
	Tick
	Render
	Resize
	Mouse
	ToggleNav
	Suspend
	Resume
	Quit
	Refresh
	Error
	Back
	Forward
	ChangeMode
	NextView
	PreviousView
	PausePlay
	Settings
	Home
	SelectOption
	OpenFile
	SelectItem
	ClosePopup
	CloseToast
	ToggleShowHelp
	ToggleShowQuit
	ToggleUsers
	ToggleChats
	ToggleLog
	ToggleSidebar
	OpenFilepicker
	ScrollUp
	ScrollDown
	ScheduleIncrement
	ScheduleDecrement
	Increment
	Decrement
	CompleteInput
	Login
	Register
	Toast
	Popup
	EnterNormal
	EnterInput
	LoggedIn
	LoggedOut
	EnterInsert
	EnterProcessing
	Cycle
	Update
	ChatReceived
	Yank
)

var kindNames = [...]string{
	None:              "None",
	Tick:              "Tick",
	Render:            "Render",
	Resize:            "Resize",
	Mouse:             "Mouse",
	ToggleNav:         "ToggleNav",
	Suspend:           "Suspend",
	Resume:            "Resume",
	Quit:              "Quit",
	Refresh:           "Refresh",
	Error:             "Error",
	Back:              "Back",
	Forward:           "Forward",
	ChangeMode:        "ChangeMode",
	NextView:          "NextView",
	PreviousView:      "PreviousView",
	PausePlay:         "PausePlay",
	Settings:          "Settings",
	Home:              "Home",
	SelectOption:      "SelectOption",
	OpenFile:          "OpenFile",
	SelectItem:        "SelectItem",
	ClosePopup:        "ClosePopup",
	CloseToast:        "CloseToast",
	ToggleShowHelp:    "ToggleShowHelp",
	ToggleShowQuit:    "ToggleShowQuit",
	ToggleUsers:       "ToggleUsers",
	ToggleChats:       "ToggleChats",
	ToggleLog:         "ToggleLog",
	ToggleSidebar:     "ToggleSidebar",
	OpenFilepicker:    "OpenFilepicker",
	ScrollUp:          "ScrollUp",
	ScrollDown:        "ScrollDown",
	ScheduleIncrement: "ScheduleIncrement",
	ScheduleDecrement: "ScheduleDecrement",
	Increment:         "Increment",
	Decrement:         "Decrement",
	CompleteInput:     "CompleteInput",
	Login:             "Login",
	Register:          "Register",
	Toast:             "Toast",
	Popup:             "Popup",
	EnterNormal:       "EnterNormal",
	EnterInput:        "EnterInput",
	LoggedIn:          "LoggedIn",
	LoggedOut:         "LoggedOut",
	EnterInsert:       "EnterInsert",
	EnterProcessing:   "EnterProcessing",
	Cycle:             "Cycle",
	Update:            "Update",
	ChatReceived:      "ChatReceived",
	Yank:              "Yank",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a case-insensitive action name to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(k), nil
		}
	}
	return None, fmt.Errorf("unknown action %q", name)
}

// Action is one application event. Only the fields relevant to Kind are
// set: Text and Detail carry titles, bodies, errors and input; Count the
// step of Increment/Decrement; Mode the target of ChangeMode; Width and
// Height a Resize; Mouse the raw event; Follow the action a Popup runs on
// confirmation; ID and Time the identity of a received chat message.
type Action struct {
	Kind   Kind
	Text   string
	Detail string
	Count  int
	Mode   types.Mode
	Width  int
	Height int
	Mouse  tea.MouseMsg
	Follow *Action
	ID     string
	Time   time.Time
}

// Of returns a payload-free action.
func Of(k Kind) Action { return Action{Kind: k} }

// IsNone reports whether a is the empty action.
func (a Action) IsNone() bool { return a.Kind == None }

func (a Action) String() string {
	switch a.Kind {
	case Toast, Popup, ChatReceived:
		return fmt.Sprintf("%s(%q, %q)", a.Kind, a.Text, a.Detail)
	case Error, CompleteInput:
		return fmt.Sprintf("%s(%q)", a.Kind, a.Text)
	case Increment, Decrement:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Count)
	case ChangeMode:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Mode)
	case Resize:
		return fmt.Sprintf("%s(%d, %d)", a.Kind, a.Width, a.Height)
	}
	return a.Kind.String()
}

func NewToast(title, body string) Action {
	return Action{Kind: Toast, Text: title, Detail: body}
}

// NewPopup builds a Popup whose Yes choice runs follow. A nil follow gives
// an informational popup without choices.
func NewPopup(title, body string, follow *Action) Action {
	return Action{Kind: Popup, Text: title, Detail: body, Follow: follow}
}

func NewError(msg string) Action { return Action{Kind: Error, Text: msg} }

func NewChangeMode(m types.Mode) Action { return Action{Kind: ChangeMode, Mode: m} }

func NewIncrement(n int) Action { return Action{Kind: Increment, Count: n} }

func NewDecrement(n int) Action { return Action{Kind: Decrement, Count: n} }

func NewCompleteInput(s string) Action { return Action{Kind: CompleteInput, Text: s} }

func NewResize(w, h int) Action { return Action{Kind: Resize, Width: w, Height: h} }

func NewMouse(m tea.MouseMsg) Action { return Action{Kind: Mouse, Mouse: m} }

// NewChatReceived carries a remote message: its id, sender, text and
// creation time.
func NewChatReceived(id, user, msg string, at time.Time) Action {
	return Action{Kind: ChatReceived, ID: id, Text: user, Detail: msg, Time: at}
}
