// Package views holds the pages of the application. Each page is a
// component.Component composed from the widgets in the components
// package.
package views

import (
	"context"
	"time"

	"pagetui/internal/component"
	"pagetui/internal/files"
	"pagetui/internal/state"
	"pagetui/internal/tui/components"
	"pagetui/pkg/types"

	"github.com/atotto/clipboard"
)

// Options carries the shared collaborators pages are built with.
type Options struct {
	// Context bounds background work such as the chat relay.
	Context context.Context
	// Watcher follows the directory shown by sidebar pickers.
	Watcher components.DirWatcher
	Clock   components.Clock
	// Clipboard receives yanked paths.
	Clipboard func(string) error
	// Delay is how long scheduled counter changes wait.
	Delay time.Duration
}

func (o Options) withDefaults() Options {
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Clipboard == nil {
		o.Clipboard = clipboard.WriteAll
	}
	if o.Delay == 0 {
		o.Delay = time.Second
	}
	return o
}

// Default builds the page registry. Map has no page and renders NotFound.
func Default(opts Options) map[types.Mode]component.Component {
	opts = opts.withDefaults()
	return map[types.Mode]component.Component{
		types.Login:       NewLogin(opts),
		types.Signup:      NewSignup(),
		types.Home:        NewHome(opts),
		types.Chat:        NewChat(opts),
		types.Blog:        NewBlog(opts),
		types.Filebrowser: NewFilebrowser(opts),
		types.Music:       NewMusic(opts),
		types.Settings:    NewSettings(),
	}
}

// openEntry reads a file into a viewer sized for height rows.
func openEntry(e types.FileEntry, height int) (*components.Filestats, error) {
	content, err := files.ReadText(e.Path)
	if err != nil {
		return nil, err
	}
	stats := components.NewFilestats(e.Title(), e.Ctime, content,
		state.ScrollForContent(components.LineCount(content), height))
	if desc, err := files.Describe(e.Path); err == nil {
		stats.Desc = desc
	}
	return stats, nil
}
