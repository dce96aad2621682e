package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pagetui/internal/action"
	"pagetui/internal/config"
	"pagetui/internal/errors"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file with the given suffix
func createTestConfig(t *testing.T, suffix, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*"+suffix)
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validTOML = `
[app]
log_level = "debug"
app_data_path = "/tmp/pagetui-test"
popup_timeout = 3
tick_rate = 4.0
auth_url = "https://auth.example.com"

[picker]
show_hidden = true
extensions = ["md", "txt"]

[keybindings.Global]
"Q" = "Quit"

[keybindings.home]
"/" = "EnterInput"
`
	validYAML = `
app:
  username: someone@example.com
  frame_rate: 60
  start_mode: Home
keybindings:
  Filebrowser:
    "r": Refresh
`
	invalidSyntaxTOML = `
[app
log_level = "debug"
`
	invalidActionYAML = `
keybindings:
  Global:
    "z": Explode
`
	invalidTimeoutYAML = `
app:
  popup_timeout: -2
`
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5, cfg.App.PopupTimeout)
	assert.Equal(t, 5*time.Second, cfg.PopupDuration())
	assert.Equal(t, "http://localhost:8080", cfg.App.AuthURL)
	assert.Equal(t, float64(15), cfg.App.TickRate)
	assert.Equal(t, float64(30), cfg.App.FrameRate)
	assert.Equal(t, time.Second/30, cfg.FrameInterval())
	assert.Equal(t, filepath.Join(cfg.App.AppDataPath, "pagetui.log"), cfg.LogPath())

	mode, err := cfg.StartMode()
	require.NoError(t, err)
	assert.Equal(t, types.Login, mode)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().App, cfg.App)
}

func TestLoadTOML(t *testing.T) {
	cfg, err := config.LoadConfigFile(createTestConfig(t, ".toml", validTOML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "/tmp/pagetui-test", cfg.App.AppDataPath)
	assert.Equal(t, 3, cfg.App.PopupTimeout)
	assert.Equal(t, float64(4), cfg.App.TickRate)
	assert.Equal(t, float64(30), cfg.App.FrameRate, "unset fields keep defaults")
	assert.True(t, cfg.Picker.ShowHidden)
	assert.True(t, cfg.ExtensionFilter().Allows("notes.md"))
	assert.False(t, cfg.ExtensionFilter().Allows("song.mp3"))

	// User bindings merge over defaults, and mode names are canonicalized.
	assert.Equal(t, "Quit", cfg.Keybindings["Global"]["Q"])
	assert.Equal(t, "ToggleShowQuit", cfg.Keybindings["Global"]["q"])
	assert.Equal(t, "EnterInput", cfg.Keybindings["Home"]["/"])
}

func TestLoadYAML(t *testing.T) {
	cfg, err := config.LoadConfigFile(createTestConfig(t, ".yaml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, "someone@example.com", cfg.App.Username)
	assert.Equal(t, float64(60), cfg.App.FrameRate)
	mode, err := cfg.StartMode()
	require.NoError(t, err)
	assert.Equal(t, types.Home, mode)

	km := cfg.Keymap(types.Filebrowser)
	got := km.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, action.Refresh, got.Kind)
	got = km.Lookup(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, action.SelectOption, got.Kind)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]struct {
		suffix  string
		content string
		param   string
	}{
		"syntax":         {".toml", invalidSyntaxTOML, ""},
		"unknown action": {".yaml", invalidActionYAML, "keybindings.Global.z"},
		"bad timeout":    {".yaml", invalidTimeoutYAML, "app.popup_timeout"},
		"unsupported":    {".ini", "a=b", ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadConfigFile(createTestConfig(t, tc.suffix, tc.content))
			require.Error(t, err)
			var cerr *errors.ConfigError
			require.True(t, errors.As(err, &cerr))
			if tc.param != "" {
				assert.Equal(t, tc.param, cerr.Param())
				assert.True(t, errors.IsInvalidConfig(err))
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*config.AppConfiguration){
		"log level":  func(c *config.AppConfiguration) { c.App.LogLevel = "loud" },
		"tick rate":  func(c *config.AppConfiguration) { c.App.TickRate = 0 },
		"start mode": func(c *config.AppConfiguration) { c.App.StartMode = "Global" },
		"auth url":   func(c *config.AppConfiguration) { c.App.AuthURL = "localhost" },
		"chat url":   func(c *config.AppConfiguration) { c.App.ChatURL = "http://chat" },
		"glob":       func(c *config.AppConfiguration) { c.Picker.Extensions = []string{"[md"} },
		"mode name":  func(c *config.AppConfiguration) { c.Keybindings["Nowhere"] = map[string]string{"a": "Quit"} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(cfg)
			assert.True(t, errors.IsInvalidConfig(cfg.Validate()))
		})
	}

	var nilCfg *config.AppConfiguration
	assert.Error(t, nilCfg.Validate())
}

func TestSaveConfigRoundTrip(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "config"+ext)
			cfg := config.Default()
			cfg.App.Username = "saved@example.com"

			require.NoError(t, config.SaveConfig(cfg, path))
			loaded, err := config.LoadConfigFile(path)
			require.NoError(t, err)
			assert.Equal(t, "saved@example.com", loaded.App.Username)
			assert.Equal(t, cfg.Keybindings, loaded.Keybindings)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), config.ExpandPath("~/data"))
	assert.Equal(t, "/abs", config.ExpandPath("/abs"))
}

func TestThemes(t *testing.T) {
	for _, name := range config.ListThemes() {
		p := config.GetTheme(name)
		assert.NotEmpty(t, p.Primary, name)
	}
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("unknown"))
}
