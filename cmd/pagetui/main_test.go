package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"pagetui/internal/config"

	"github.com/mattn/go-isatty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInit(t *testing.T) {
	tests := map[string]string{
		"toml": "config.toml",
		"yaml": "config.yaml",
	}
	for name, file := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", file)
			out, err := execute(t, "config", "init", path)
			require.NoError(t, err)
			assert.Contains(t, out, "Wrote default configuration to "+path)

			cfg, err := config.LoadConfigFile(path)
			require.NoError(t, err)
			assert.Equal(t, config.Default().App, cfg.App)
			assert.Equal(t, config.DefaultKeybindings(), cfg.Keybindings)

			_, err = execute(t, "config", "init", path)
			assert.ErrorContains(t, err, "already exists")
			_, err = execute(t, "config", "init", "--force", path)
			assert.NoError(t, err)
		})
	}
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  popup_timeout: 9\n"), 0o644))

	t.Run("file and flags", func(t *testing.T) {
		out, err := execute(t, "--config", path, "--log-level", "debug", "--username", "me@example.com", "config", "show")
		require.NoError(t, err)
		assert.Contains(t, out, `log_level = "debug"`)
		assert.Contains(t, out, "popup_timeout = 9")
		assert.Contains(t, out, `username = "me@example.com"`)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, "--config", path, "config", "show", "--format", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "popup_timeout: 9")
	})

	t.Run("invalid flag value", func(t *testing.T) {
		_, err := execute(t, "--config", path, "--tick-rate=-1", "config", "show")
		assert.ErrorContains(t, err, "app.tick_rate")
	})

	t.Run("broken file falls back to defaults", func(t *testing.T) {
		broken := filepath.Join(dir, "broken.toml")
		require.NoError(t, os.WriteFile(broken, []byte("[app\n"), 0o644))
		out, err := execute(t, "--config", broken, "config", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "Using default settings")
		assert.Contains(t, out, "popup_timeout = 5")
	})
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pagetui version dev\n", out)
}

func TestRootNeedsTerminal(t *testing.T) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		t.Skip("stdout is a terminal")
	}
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.toml"))
	assert.ErrorContains(t, err, "interactive terminal")
}
