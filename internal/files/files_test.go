package files

import (
	"path/filepath"
	"strings"
	"testing"

	"pagetui/internal/errors"
	"pagetui/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(t *testing.T, dir string, opts ListOptions) []string {
	t.Helper()
	entries, err := List(dir, opts)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	f, err := NewFilter([]string{"md", "*.txt", "song_*.{mp3,wav}"})
	require.NoError(t, err)
	assert.True(t, f.Allows("README.MD"))
	assert.True(t, f.Allows("notes.txt"))
	assert.True(t, f.Allows("song_1.wav"))
	assert.False(t, f.Allows("song.mp3"))
	assert.False(t, f.Allows("image.png"))
	assert.Equal(t, []string{"*.md", "*.txt", "song_*.{mp3,wav}"}, f.Patterns())

	assert.True(t, Filter{}.Allows("anything.bin"))

	_, err = NewFilter([]string{"[unterminated"})
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFile(t, filepath.Join(dir, "b.md"), "b")
	testutils.WriteFile(t, filepath.Join(dir, "a.txt"), "a")
	testutils.WriteFile(t, filepath.Join(dir, "image.png"), "png")
	testutils.WriteFile(t, filepath.Join(dir, ".hidden.md"), "h")
	testutils.WriteFile(t, filepath.Join(dir, "zdir", "inner.md"), "i")
	testutils.WriteFile(t, filepath.Join(dir, ".config", "x"), "x")

	assert.Equal(t, []string{"..", "zdir", "a.txt", "b.md", "image.png"}, names(t, dir, ListOptions{}))
	assert.Equal(t, []string{"..", ".config", "zdir", ".hidden.md", "a.txt", "b.md", "image.png"},
		names(t, dir, ListOptions{ShowHidden: true}))
	assert.Equal(t, []string{"..", "zdir", "b.md"}, names(t, dir, ListOptions{Filter: MustFilter("md")}))
	assert.Equal(t, []string{"..", "zdir"}, names(t, dir, ListOptions{DirsOnly: true}))

	entries, err := List(dir, ListOptions{})
	require.NoError(t, err)
	assert.True(t, entries[0].IsDir)
	assert.Equal(t, filepath.Dir(dir), entries[0].Path)
}

func TestListMissing(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"), ListOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFile(t, filepath.Join(dir, "post.md"), "# Title\nbody")
	text, err := ReadText(filepath.Join(dir, "post.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Title\nbody", text)

	_, err = ReadText(filepath.Join(dir, "nope.md"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to read post file"))
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	testutils.WriteFile(t, path, strings.Repeat("x", 2048))

	d, err := Describe(path)
	require.NoError(t, err)
	assert.Equal(t, "2.0 kB", d.Size)
	assert.True(t, strings.HasPrefix(d.ContentType, "text/plain"))
	assert.Contains(t, d.Summary(), "2.0 kB · text/plain")

	d, err = Describe(dir)
	require.NoError(t, err)
	assert.Equal(t, "inode/directory", d.ContentType)

	_, err = Describe(filepath.Join(dir, "missing"))
	assert.True(t, errors.IsFileNotFound(err))
}
