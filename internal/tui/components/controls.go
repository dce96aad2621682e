package components

import (
	"fmt"
	"time"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
)

// defaultTrackLength is the gauge span when the track length is unknown.
const defaultTrackLength = 3 * time.Minute

// Controls is the music player transport: track name, play state and a
// clock that advances once per wall-clock second while playing.
type Controls struct {
	component.Base
	track   string
	length  time.Duration
	elapsed time.Duration
	playing bool
	last    time.Time
	now     Clock
}

func NewControls(now Clock) *Controls {
	if now == nil {
		now = time.Now
	}
	return &Controls{now: now, length: defaultTrackLength}
}

func (c *Controls) Playing() bool { return c.playing }

func (c *Controls) Elapsed() time.Duration { return c.elapsed }

func (c *Controls) Track() string { return c.track }

// SetTrack loads a track and starts playing it from the beginning.
func (c *Controls) SetTrack(name string) {
	c.track = name
	c.elapsed = 0
	c.playing = true
	c.last = c.now()
}

// FormatClock formats d as mm:ss.
func FormatClock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func (c *Controls) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	switch a.Kind {
	case action.PausePlay:
		c.playing = !c.playing
		c.last = c.now()
	case action.Tick:
		if !c.playing {
			break
		}
		now := c.now()
		for now.Sub(c.last) >= time.Second {
			c.elapsed += time.Second
			c.last = c.last.Add(time.Second)
		}
		if c.elapsed >= c.length {
			c.elapsed = 0
		}
	}
	return action.Action{}, nil
}

func (c *Controls) Draw(f *frame.Frame) {
	if c.Area.IsEmpty() {
		return
	}
	pal := c.Palette()
	track := c.track
	if track == "" {
		track = "nothing"
	}
	glyph := "▶"
	if !c.playing {
		glyph = "⏸"
	}
	block := frame.NewBlock("Now Playing: " + track)
	block.BorderStyle = frame.Style{Fg: pal.Border}
	block.Render(f, c.Area)

	inner := block.Inner(c.Area)
	rows := layout.VerticalLayout(layout.Fill(1), layout.Length(1)).Split(inner)
	frame.Paragraph{
		Lines: []frame.Line{frame.Styled(glyph+" "+FormatClock(c.elapsed)+" / "+FormatClock(c.length), frame.Style{Bold: true})},
		Align: frame.AlignCenter,
	}.Render(f, rows[0])
	frame.LineGauge{
		Ratio:         float64(c.elapsed) / float64(c.length),
		FilledStyle:   frame.Style{Fg: "5"},
		UnfilledStyle: frame.Style{Fg: pal.Muted},
	}.Render(f, rows[1])
}
