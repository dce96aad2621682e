package config

// Default returns the configuration used when no file is present.
func Default() *AppConfiguration {
	cfg := &AppConfiguration{}

	cfg.App.LogLevel = "info"
	cfg.App.AppDataPath = defaultDataPath()
	cfg.App.PopupTimeout = 5
	cfg.App.AuthURL = "http://localhost:8080"
	cfg.App.TickRate = 15
	cfg.App.FrameRate = 30
	cfg.App.Theme = "default"

	cfg.Picker.Extensions = []string{}
	cfg.Picker.MusicExtensions = []string{"mp3", "wav", "flac", "ogg", "m4a"}

	cfg.Keybindings = DefaultKeybindings()
	return cfg
}

// DefaultKeybindings returns the built-in bindings keyed by mode name.
// Keys use the tea.KeyMsg string form.
func DefaultKeybindings() map[string]map[string]string {
	return map[string]map[string]string{
		"Global": {
			"q":      "ToggleShowQuit",
			":":      "ToggleLog",
			"ctrl+@": "ToggleShowHelp",
			"?":      "ToggleShowHelp",
			"x":      "ClosePopup",
			"tab":    "ToggleNav",
			"h":      "PreviousView",
			"l":      "NextView",
			"k":      "Back",
			"j":      "Forward",
			"ctrl+z": "Suspend",
		},
		"Settings": {
			"backspace": "Home",
			"enter":     "SelectOption",
			"esc":       "EnterNormal",
		},
		"Signup": {
			"backspace": "Home",
			"enter":     "SelectOption",
			"esc":       "EnterNormal",
		},
		"Chat": {
			"/": "EnterInput",
			"c": "ToggleChats",
			"u": "ToggleUsers",
			"k": "Back",
			"j": "Forward",
		},
		"Filebrowser": {
			"tab":   "ToggleSidebar",
			"enter": "SelectOption",
			"y":     "Yank",
		},
		"Music": {
			"tab":   "ToggleSidebar",
			" ":     "PausePlay",
			"o":     "OpenFilepicker",
			"enter": "SelectOption",
		},
		"Blog": {
			"tab":   "ToggleSidebar",
			"f":     "OpenFilepicker",
			"enter": "SelectOption",
		},
		"Login": {
			"shift+tab": "Back",
			"tab":       "Forward",
		},
		"Home": {
			"/": "EnterInsert",
			"+": "ScheduleIncrement",
			"-": "ScheduleDecrement",
		},
	}
}

// GetTheme returns a predefined palette by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) Palette {
	themes := map[string]Palette{
		"default": {
			Primary:  "213", // Purple
			Success:  "114", // Green
			Warning:  "220", // Yellow
			Error:    "196", // Red
			Info:     "39",  // Blue
			Emphasis: "212", // Light Pink
			Border:   "213",
			Muted:    "245",
		},
		"dark": {
			Primary:  "105",
			Success:  "78",
			Warning:  "214",
			Error:    "160",
			Info:     "33",
			Emphasis: "147",
			Border:   "105",
			Muted:    "240",
		},
		"light": {
			Primary:  "135",
			Success:  "150",
			Warning:  "222",
			Error:    "210",
			Info:     "117",
			Emphasis: "219",
			Border:   "135",
			Muted:    "250",
		},
		"monochrome": {
			Primary:  "245",
			Success:  "252",
			Warning:  "241",
			Error:    "255",
			Info:     "248",
			Emphasis: "255",
			Border:   "245",
			Muted:    "240",
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome"}
}
