package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"pagetui/internal/action"
	"pagetui/internal/errors"
	"pagetui/internal/files"
	"pagetui/pkg/types"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// AppName names the data directory, the log file and the window title.
const AppName = "pagetui"

// App holds runtime settings.
type App struct {
	LogLevel     string  `yaml:"log_level" toml:"log_level"`         // trace, debug, info, warn, error
	AppDataPath  string  `yaml:"app_data_path" toml:"app_data_path"` // log file and posts live here
	PopupTimeout int     `yaml:"popup_timeout" toml:"popup_timeout"` // toast lifetime in seconds
	Username     string  `yaml:"username" toml:"username"`           // prefills the login form
	Password     string  `yaml:"password" toml:"password"`
	AuthURL      string  `yaml:"auth_url" toml:"auth_url"`   // base URL of the auth service
	ChatURL      string  `yaml:"chat_url" toml:"chat_url"`   // websocket relay, empty disables it
	TickRate     float64 `yaml:"tick_rate" toml:"tick_rate"` // ticks per second
	FrameRate    float64 `yaml:"frame_rate" toml:"frame_rate"`
	StartMode    string  `yaml:"start_mode" toml:"start_mode"`
	Theme        string  `yaml:"theme" toml:"theme"`
}

// Picker holds file picker settings.
type Picker struct {
	ShowHidden      bool     `yaml:"show_hidden" toml:"show_hidden"`
	Extensions      []string `yaml:"extensions" toml:"extensions"`             // allow-list for the file browser
	MusicExtensions []string `yaml:"music_extensions" toml:"music_extensions"` // allow-list for the music player
}

// AppConfiguration is the whole configuration handed to every component.
type AppConfiguration struct {
	App         App                          `yaml:"app" toml:"app"`
	Picker      Picker                       `yaml:"picker" toml:"picker"`
	Keybindings map[string]map[string]string `yaml:"keybindings" toml:"keybindings"` // mode -> key -> action
}

// DefaultConfigPath returns ~/.pagetui/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(defaultDataPath(), "config.toml")
}

func defaultDataPath() string {
	return filepath.Join(files.HomeDir(), "."+AppName)
}

// ExpandPath replaces a leading "~" with the home directory.
func ExpandPath(path string) string {
	if path == "~" {
		return files.HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(files.HomeDir(), path[2:])
	}
	return path
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*AppConfiguration, error) {
	return LoadConfigFile(DefaultConfigPath())
}

// LoadConfigFile loads configuration from a specific file path. The
// format follows the extension: .toml, .yaml or .yml.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*AppConfiguration, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg AppConfiguration
	if err := decode(path, data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	cfg.merge(&tempCfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, into *AppConfiguration) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err := toml.Decode(string(data), into)
		return err
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, into)
	}
	return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
}

// merge copies the set fields of loaded over c.
func (c *AppConfiguration) merge(loaded *AppConfiguration) {
	a := loaded.App
	if a.LogLevel != "" {
		c.App.LogLevel = a.LogLevel
	}
	if a.AppDataPath != "" {
		c.App.AppDataPath = ExpandPath(a.AppDataPath)
	}
	if a.PopupTimeout != 0 {
		c.App.PopupTimeout = a.PopupTimeout
	}
	if a.Username != "" {
		c.App.Username = a.Username
	}
	if a.Password != "" {
		c.App.Password = a.Password
	}
	if a.AuthURL != "" {
		c.App.AuthURL = a.AuthURL
	}
	if a.ChatURL != "" {
		c.App.ChatURL = a.ChatURL
	}
	if a.TickRate != 0 {
		c.App.TickRate = a.TickRate
	}
	if a.FrameRate != 0 {
		c.App.FrameRate = a.FrameRate
	}
	if a.StartMode != "" {
		c.App.StartMode = a.StartMode
	}
	if a.Theme != "" {
		c.App.Theme = a.Theme
	}

	c.Picker.ShowHidden = loaded.Picker.ShowHidden
	if loaded.Picker.Extensions != nil {
		c.Picker.Extensions = loaded.Picker.Extensions
	}
	if loaded.Picker.MusicExtensions != nil {
		c.Picker.MusicExtensions = loaded.Picker.MusicExtensions
	}

	// User bindings win per key; defaults fill the rest.
	for mode, bindings := range loaded.Keybindings {
		canonical := mode
		if m, err := types.ParseMode(mode); err == nil {
			canonical = m.String()
		}
		if c.Keybindings[canonical] == nil {
			c.Keybindings[canonical] = map[string]string{}
		}
		for key, name := range bindings {
			c.Keybindings[canonical][key] = name
		}
	}
}

// Validate checks if the configuration is valid.
func (c *AppConfiguration) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.ConfigNotSet, nil)
	}
	invalid := func(param string, err error) error {
		return errors.NewConfigError("invalid configuration", param, errors.InvalidConfig, err)
	}

	if _, err := logrus.ParseLevel(c.App.LogLevel); err != nil {
		return invalid("app.log_level", err)
	}
	if c.App.PopupTimeout < 1 {
		return invalid("app.popup_timeout", fmt.Errorf("must be >= 1 second"))
	}
	if c.App.TickRate <= 0 {
		return invalid("app.tick_rate", fmt.Errorf("must be positive"))
	}
	if c.App.FrameRate <= 0 {
		return invalid("app.frame_rate", fmt.Errorf("must be positive"))
	}
	if _, err := c.StartMode(); err != nil {
		return invalid("app.start_mode", err)
	}
	if u, err := url.Parse(c.App.AuthURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("app.auth_url", fmt.Errorf("must be an absolute http(s) URL: %q", c.App.AuthURL))
	}
	if c.App.ChatURL != "" {
		if u, err := url.Parse(c.App.ChatURL); err != nil || (u.Scheme != "ws" && u.Scheme != "wss") {
			return invalid("app.chat_url", fmt.Errorf("must be a ws(s) URL: %q", c.App.ChatURL))
		}
	}
	if _, err := files.NewFilter(c.Picker.Extensions); err != nil {
		return invalid("picker.extensions", err)
	}
	if _, err := files.NewFilter(c.Picker.MusicExtensions); err != nil {
		return invalid("picker.music_extensions", err)
	}

	for mode, bindings := range c.Keybindings {
		if _, err := types.ParseMode(mode); err != nil {
			return invalid("keybindings."+mode, err)
		}
		for key, name := range bindings {
			if key == "" {
				return invalid("keybindings."+mode, fmt.Errorf("empty key"))
			}
			if _, err := action.ParseKind(name); err != nil {
				return invalid("keybindings."+mode+"."+key, err)
			}
		}
	}
	return nil
}

// StartMode returns the page the application opens on.
func (c *AppConfiguration) StartMode() (types.Mode, error) {
	if c.App.StartMode == "" {
		return types.Login, nil
	}
	m, err := types.ParseMode(c.App.StartMode)
	if err != nil {
		return types.Login, err
	}
	if m == types.Global {
		return types.Login, fmt.Errorf("%s is not a page", m)
	}
	return m, nil
}

// Keymap returns the bindings for mode, sorted by key for stable help
// output.
func (c *AppConfiguration) Keymap(mode types.Mode) action.Keymap {
	bindings := c.Keybindings[mode.String()]
	keys := make([]string, 0, len(bindings))
	for k := range bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	km := make(action.Keymap, 0, len(keys))
	for _, k := range keys {
		kind, err := action.ParseKind(bindings[k])
		if err != nil {
			continue
		}
		km = append(km, action.Bind(action.Of(kind), k))
	}
	return km
}

// ExtensionFilter is the file browser allow-list.
func (c *AppConfiguration) ExtensionFilter() files.Filter {
	f, _ := files.NewFilter(c.Picker.Extensions)
	return f
}

// MusicFilter is the music player allow-list.
func (c *AppConfiguration) MusicFilter() files.Filter {
	f, _ := files.NewFilter(c.Picker.MusicExtensions)
	return f
}

// DataPath joins parts under the application data directory.
func (c *AppConfiguration) DataPath(parts ...string) string {
	return filepath.Join(append([]string{c.App.AppDataPath}, parts...)...)
}

// LogPath is the file the logger writes and the log overlay tails.
func (c *AppConfiguration) LogPath() string {
	return c.DataPath(AppName + ".log")
}

// PopupDuration is the toast lifetime.
func (c *AppConfiguration) PopupDuration() time.Duration {
	if c == nil {
		return 5 * time.Second
	}
	return time.Duration(c.App.PopupTimeout) * time.Second
}

// TickInterval is the time between Tick actions.
func (c *AppConfiguration) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.App.TickRate)
}

// FrameInterval is the time between Render actions.
func (c *AppConfiguration) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.App.FrameRate)
}

// SaveConfig saves the configuration to the specified file, as TOML or
// YAML by extension. It creates parent directories if they don't exist.
func SaveConfig(cfg *AppConfiguration, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewFileError("failed to create config directory", dir, errors.FileCreateFailed, err)
	}

	data, err := Encode(cfg, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewFileError("failed to write config file", path, errors.FileCreateFailed, err)
	}
	return nil
}

// Encode renders cfg in the format matching path's extension.
func Encode(cfg *AppConfiguration, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config")
		}
		return data, nil
	default:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to marshal config")
		}
		return buf.Bytes(), nil
	}
}
