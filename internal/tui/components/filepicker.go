package components

import (
	"path/filepath"
	"strings"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/config"
	"pagetui/internal/files"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/log"
	"pagetui/internal/state"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// DirWatcher is told about every directory the picker opens.
type DirWatcher interface {
	Watch(dir string) error
}

// PickerOptions configures a Filepicker.
type PickerOptions struct {
	// Filter picks the allow-list from the configuration. Nil uses the
	// file browser extensions.
	Filter func(*config.AppConfiguration) files.Filter
	// Popup turns the picker into a directory chooser drawn over its
	// parent. Enter on a directory returns OpenFile with its path.
	Popup bool
	// Start is the first directory listed. Empty means the home directory.
	Start   string
	Watcher DirWatcher
}

// Filepicker lists a directory. As a sidebar it moves on Forward/Back; as
// a popup it handles navigation keys itself.
type Filepicker struct {
	component.Base
	opts       PickerOptions
	dir        string
	entries    state.StatefulList[types.FileEntry]
	rows       state.MouseListState
	filter     files.Filter
	showHidden bool
	shown      bool
}

func NewFilepicker(opts PickerOptions) *Filepicker {
	return &Filepicker{
		opts:    opts,
		entries: state.NewStatefulList[types.FileEntry](nil),
		rows:    state.NewMouseListState(0),
		shown:   !opts.Popup,
	}
}

func (p *Filepicker) Dir() string { return p.dir }

func (p *Filepicker) Entries() []types.FileEntry { return p.entries.Items }

func (p *Filepicker) ShowHidden() bool { return p.showHidden }

// Shown reports whether a popup picker is open. Sidebar pickers are
// always shown.
func (p *Filepicker) Shown() bool { return p.shown }

func (p *Filepicker) Show(v bool) {
	p.shown = v
}

// Selected returns the highlighted entry.
func (p *Filepicker) Selected() (types.FileEntry, bool) {
	return p.entries.SelectedItem()
}

// Select highlights entry i.
func (p *Filepicker) Select(i int) {
	p.entries.Select(i)
}

// Load lists dir and selects its first entry. On failure the current
// listing is kept.
func (p *Filepicker) Load(dir string) error {
	entries, err := files.List(dir, files.ListOptions{ShowHidden: p.showHidden, Filter: p.filter})
	if err != nil {
		return err
	}
	prev := p.dir
	p.dir = dir
	p.entries.SetItems(entries)
	p.rows = state.NewMouseListState(len(entries))
	p.layoutRows()
	if len(entries) > 0 {
		p.entries.Select(0)
	}

	if p.opts.Watcher != nil && dir != prev {
		if err := p.opts.Watcher.Watch(dir); err != nil {
			log.LogWithFields(log.F("directory", dir), log.F("error", err)).Warn("Failed to watch directory")
		}
	}
	return nil
}

// reload lists the current directory again, keeping the selection on
// the same name when it still exists.
func (p *Filepicker) reload() error {
	name := ""
	if e, ok := p.Selected(); ok {
		name = e.Name
	}
	if err := p.Load(p.dir); err != nil {
		return err
	}
	for i, e := range p.entries.Items {
		if e.Name == name {
			p.entries.Select(i)
		}
	}
	return nil
}

func (p *Filepicker) RegisterConfigHandler(cfg *config.AppConfiguration) error {
	p.Config = cfg
	if p.opts.Filter != nil {
		p.filter = p.opts.Filter(cfg)
	} else {
		p.filter = cfg.ExtensionFilter()
	}
	p.showHidden = cfg.Picker.ShowHidden

	start := p.opts.Start
	if start == "" {
		start = files.HomeDir()
	}
	return p.Load(config.ExpandPath(start))
}

func (p *Filepicker) RegisterLayoutHandler(area layout.Rect) {
	if p.opts.Popup {
		area = layout.Centered(area, 60, 60)
	}
	p.Area = area
	p.layoutRows()
}

func (p *Filepicker) block() *frame.Block {
	b := frame.NewBlock(p.header())
	b.BorderStyle = frame.Style{Fg: p.Palette().Warning}
	return b
}

func (p *Filepicker) layoutRows() {
	p.rows.Areas = p.block().Inner(p.Area).Rows(p.rows.Max)
}

func (p *Filepicker) header() string {
	dir := p.dir
	if home := files.HomeDir(); home != "" && strings.HasPrefix(dir, home) {
		dir = "~" + strings.TrimPrefix(dir, home)
	}
	if p.showHidden {
		dir += " [hidden]"
	}
	return dir
}

func (p *Filepicker) offset() int {
	i, ok := p.entries.Selected()
	if !ok {
		return 0
	}
	return frame.ListOffset(i, p.block().Inner(p.Area).Height)
}

func (p *Filepicker) toggleHidden() {
	p.showHidden = !p.showHidden
	if err := p.reload(); err != nil {
		log.LogError(err, "Failed to reload directory")
	}
}

func (p *Filepicker) open(e types.FileEntry) {
	if err := p.Load(e.Path); err != nil {
		log.LogError(err, "Failed to open directory")
		p.Send(action.NewError(err.Error()))
	}
}

func (p *Filepicker) HandleKeyEvents(key tea.KeyMsg) action.Action {
	if !p.shown {
		return action.Action{}
	}
	if p.opts.Popup {
		return p.handlePopupKeys(key)
	}

	switch key.String() {
	case ".":
		p.toggleHidden()
	case "down":
		return action.Of(action.Forward)
	case "up":
		return action.Of(action.Back)
	case "enter":
		if e, ok := p.Selected(); ok && e.IsDir {
			p.open(e)
		}
	}
	return action.Action{}
}

func (p *Filepicker) handlePopupKeys(key tea.KeyMsg) action.Action {
	switch key.String() {
	case "esc":
		p.shown = false
	case ".":
		p.toggleHidden()
	case "j", "down":
		p.entries.Next()
	case "k", "up":
		p.entries.Previous()
	case "h", "left", "backspace":
		if parent := filepath.Dir(p.dir); parent != p.dir {
			p.open(types.FileEntry{Name: "..", Path: parent, IsDir: true})
		}
	case "l", "right":
		if e, ok := p.Selected(); ok && e.IsDir {
			p.open(e)
		}
	case "enter":
		e, ok := p.Selected()
		if !ok {
			break
		}
		if !e.IsDir {
			p.Send(action.NewToast("Error", "Selected item is not a directory"))
			break
		}
		p.shown = false
		return action.Action{Kind: action.OpenFile, Text: e.Path}
	}
	return action.Action{}
}

func (p *Filepicker) HandleMouseEvents(m tea.MouseMsg) action.Action {
	if !p.shown {
		return action.Action{}
	}
	switch m.Button {
	case tea.MouseButtonWheelDown:
		return action.Of(action.Forward)
	case tea.MouseButtonWheelUp:
		return action.Of(action.Back)
	}
	if !component.IsClick(m) {
		return action.Action{}
	}
	row := p.rows.Hit(m.X, m.Y)
	if row < 0 {
		return action.Action{}
	}
	i := p.offset() + row
	if i < p.entries.Len() {
		p.entries.Select(i)
		p.rows.Select(i)
	}
	return action.Action{}
}

func (p *Filepicker) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	switch a.Kind {
	case action.OpenFilepicker:
		if p.opts.Popup {
			p.shown = !p.shown
			if p.shown {
				return action.Action{}, p.reload()
			}
		}
	case action.Refresh:
		if a.Text == "" || a.Text == p.dir {
			return action.Action{}, p.reload()
		}
	case action.Forward:
		if !p.opts.Popup {
			p.entries.Next()
		}
	case action.Back:
		if !p.opts.Popup {
			p.entries.Previous()
		}
	}
	return action.Action{}, nil
}

func (p *Filepicker) Draw(f *frame.Frame) {
	if !p.shown || p.Area.IsEmpty() {
		return
	}
	pal := p.Palette()
	items := make([]frame.Line, len(p.entries.Items))
	for i, e := range p.entries.Items {
		switch {
		case e.IsDir:
			items[i] = frame.Styled(e.Name+"/", frame.Style{Fg: pal.Info})
		case e.IsHidden():
			items[i] = frame.Styled(e.Name, frame.Style{Fg: pal.Muted})
		default:
			items[i] = frame.Raw(e.Name)
		}
	}
	selected, ok := p.entries.Selected()
	if !ok {
		selected = -1
	}
	if p.opts.Popup {
		frame.Clear(f, p.Area)
	}
	frame.List{
		Items:           items,
		Block:           p.block(),
		HighlightStyle:  frame.Style{Fg: pal.Warning, Bold: true},
		HighlightSymbol: "> ",
	}.Render(f, p.Area, selected)
}
