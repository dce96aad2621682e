package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, m := range append(NavigableModes, Login, Signup, Global) {
		t.Run(m.String(), func(t *testing.T) {
			parsed, err := ParseMode(m.String())
			require.NoError(t, err)
			assert.Equal(t, m, parsed)
		})
	}

	parsed, err := ParseMode("filebrowser")
	require.NoError(t, err)
	assert.Equal(t, Filebrowser, parsed)

	_, err = ParseMode("nowhere")
	assert.Error(t, err)
}

func TestModeDefaults(t *testing.T) {
	var m Mode
	var im InputMode
	assert.Equal(t, Login, m)
	assert.Equal(t, Normal, im)
	assert.NotContains(t, NavigableModes, Global)
}

func TestCapturesText(t *testing.T) {
	assert.True(t, Insert.CapturesText())
	assert.True(t, InsertUser.CapturesText())
	assert.True(t, InsertPass.CapturesText())
	assert.False(t, Normal.CapturesText())
	assert.False(t, Select.CapturesText())
	assert.False(t, Processing.CapturesText())
}

func TestFileEntry(t *testing.T) {
	e := FileEntry{Name: "hello.md"}
	assert.Equal(t, "hello", e.Title())
	assert.Equal(t, "md", e.Ext())
	assert.False(t, e.IsHidden())
	assert.True(t, FileEntry{Name: ".git"}.IsHidden())
	assert.False(t, FileEntry{Name: ".."}.IsHidden())
}
