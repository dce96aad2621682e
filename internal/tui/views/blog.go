package views

import (
	"time"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/config"
	"pagetui/internal/errors"
	"pagetui/internal/files"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/state"
	"pagetui/internal/tui/components"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

const noPosts = "# No posts found"

var postFilter = files.MustFilter("*.md")

// Blog reads markdown posts from a directory. The post list sits in a
// sidebar; the selected post is shown next to it.
type Blog struct {
	component.Base
	dir     string
	posts   state.StatefulList[types.FileEntry]
	rows    state.MouseListState
	content *components.Filestats
	chooser *components.Filepicker
	sidebar bool
	list    layout.Rect
}

func NewBlog(opts Options) *Blog {
	opts = opts.withDefaults()
	return &Blog{
		Base:    component.Base{Mode: types.Select},
		posts:   state.NewStatefulList[types.FileEntry](nil),
		rows:    state.NewMouseListState(0),
		content: components.NewFilestats("", time.Time{}, noPosts, state.NewScrollState(0)),
		chooser: components.NewFilepicker(components.PickerOptions{Popup: true}),
		sidebar: true,
	}
}

func (b *Blog) Dir() string { return b.dir }

func (b *Blog) Posts() []types.FileEntry { return b.posts.Items }

func (b *Blog) Content() *components.Filestats { return b.content }

func (b *Blog) Chooser() *components.Filepicker { return b.chooser }

func (b *Blog) RegisterActionHandler(tx action.Sender) {
	b.Tx = tx
	component.Group{b.content, b.chooser}.RegisterActionHandler(tx)
}

// RegisterConfigHandler loads the posts under the data directory.
func (b *Blog) RegisterConfigHandler(cfg *config.AppConfiguration) error {
	b.Config = cfg
	if err := (component.Group{b.content, b.chooser}).RegisterConfigHandler(cfg); err != nil {
		return err
	}
	return b.load(cfg.DataPath("posts"))
}

// load replaces the post list with the markdown files in dir and opens
// the first one.
func (b *Blog) load(dir string) error {
	entries, err := files.List(dir, files.ListOptions{Filter: postFilter})
	if err != nil {
		return errors.NewConfigError("Failed to read posts directory", dir, errors.ConfigNotFound, err)
	}
	var posts []types.FileEntry
	for _, e := range entries {
		if !e.IsDir {
			posts = append(posts, e)
		}
	}
	b.dir = dir
	b.posts.SetItems(posts)
	b.rows = state.NewMouseListState(len(posts))
	b.layoutRows()
	if len(posts) == 0 {
		return b.setContent(components.NewFilestats("", time.Time{}, noPosts, state.NewScrollState(0)))
	}
	b.posts.Select(0)
	return b.open()
}

func (b *Blog) RegisterLayoutHandler(area layout.Rect) {
	b.Area = area
	var main layout.Rect
	b.list, main = sidebarLayout(area, b.sidebar)
	b.layoutRows()
	b.content.RegisterLayoutHandler(main)
	b.chooser.RegisterLayoutHandler(area)
}

func (b *Blog) listBlock() *frame.Block {
	block := frame.NewBlock("Posts")
	block.BorderStyle = frame.Style{Fg: b.Palette().Border}
	return block
}

func (b *Blog) layoutRows() {
	b.rows.Areas = b.listBlock().Inner(b.list).Rows(b.rows.Max)
}

func (b *Blog) setContent(stats *components.Filestats) error {
	_, main := sidebarLayout(b.Area, b.sidebar)
	stats.RegisterActionHandler(b.Tx)
	if err := stats.RegisterConfigHandler(b.Config); err != nil {
		return err
	}
	stats.RegisterLayoutHandler(main)
	stats.SetScrollable(!b.sidebar)
	b.content = stats
	return nil
}

// open shows the selected post.
func (b *Blog) open() error {
	e, ok := b.posts.SelectedItem()
	if !ok {
		return nil
	}
	_, main := sidebarLayout(b.Area, b.sidebar)
	stats, err := openEntry(e, main.Height)
	if err != nil {
		return err
	}
	return b.setContent(stats)
}

func (b *Blog) HandleKeyEvents(key tea.KeyMsg) action.Action {
	if b.chooser.Shown() {
		return b.chooser.HandleKeyEvents(key)
	}
	if b.Mode == types.Select && sidebarKeys(key) {
		return action.Of(action.ToggleSidebar)
	}
	return b.Keymap(types.Blog).Lookup(key)
}

func (b *Blog) HandleMouseEvents(m tea.MouseMsg) action.Action {
	if b.chooser.Shown() {
		return b.chooser.HandleMouseEvents(m)
	}
	if !b.sidebar || !component.IsClick(m) {
		return action.Action{}
	}
	row := b.rows.Hit(m.X, m.Y)
	if row < 0 {
		return action.Action{}
	}
	sel, _ := b.posts.Selected()
	i := frame.ListOffset(sel, b.listBlock().Inner(b.list).Height) + row
	if i < b.posts.Len() {
		b.posts.Select(i)
		return action.Of(action.SelectOption)
	}
	return action.Action{}
}

func (b *Blog) Update(a action.Action, ctx *component.Ctx) (action.Action, error) {
	if _, err := b.chooser.Update(a, ctx); err != nil {
		return action.Action{}, err
	}
	if b.chooser.Shown() {
		return action.Action{}, nil
	}
	if _, err := b.content.Update(a, ctx); err != nil {
		return action.Action{}, err
	}

	switch a.Kind {
	case action.OpenFile:
		return action.Action{}, b.load(a.Text)
	case action.Refresh:
		if a.Text == b.dir {
			return action.Action{}, b.load(b.dir)
		}
	case action.Forward:
		if b.Mode == types.Select {
			b.content.ScrollTop()
			b.posts.Next()
		}
	case action.Back:
		if b.Mode == types.Select {
			b.content.ScrollTop()
			b.posts.Previous()
		}
	case action.SelectOption:
		return action.Action{}, b.open()
	case action.ToggleSidebar:
		b.sidebar = !b.sidebar
		if b.sidebar {
			b.Mode = types.Select
		} else {
			b.Mode = types.Normal
		}
		b.RegisterLayoutHandler(b.Area)
	}
	return action.Action{}, nil
}

func (b *Blog) Draw(f *frame.Frame) {
	if b.sidebar && !b.list.IsEmpty() {
		pal := b.Palette()
		items := make([]frame.Line, len(b.posts.Items))
		for i, p := range b.posts.Items {
			items[i] = frame.Raw(p.Title())
		}
		sel, ok := b.posts.Selected()
		if !ok {
			sel = -1
		}
		frame.List{
			Items:           items,
			Block:           b.listBlock(),
			HighlightStyle:  frame.Style{Fg: pal.Warning, Bold: true},
			HighlightSymbol: "> ",
		}.Render(f, b.list, sel)
	}
	b.content.Draw(f)
	b.chooser.Draw(f)
}
