package components

import (
	"fmt"
	"math/rand/v2"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/frame"
)

const wavePoints = 200

// Wave draws a scrolling random spectrum and a progress ratio that
// advances by one percent per tick and wraps.
type Wave struct {
	component.Base
	data    []uint64
	percent int
	rng     *rand.Rand
}

func NewWave(seed uint64) *Wave {
	w := &Wave{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	w.data = make([]uint64, wavePoints)
	for i := range w.data {
		w.data[i] = w.rng.Uint64N(100)
	}
	return w
}

// Progress is the playback ratio in [0, 1).
func (w *Wave) Progress() float64 { return float64(w.percent) / 100 }

func (w *Wave) Data() []uint64 { return w.data }

func (w *Wave) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	if a.Kind != action.Tick {
		return action.Action{}, nil
	}
	w.percent = (w.percent + 1) % 100
	w.data = append(w.data[1:], w.rng.Uint64N(100))
	return action.Action{}, nil
}

func (w *Wave) Draw(f *frame.Frame) {
	if w.Area.IsEmpty() {
		return
	}
	pal := w.Palette()
	block := frame.NewBlock(fmt.Sprintf("Wave %3d%%", w.percent))
	block.BorderStyle = frame.Style{Fg: pal.Border}
	frame.Sparkline{Data: w.data, Max: 100, Block: block, Style: frame.Style{Fg: pal.Success}}.Render(f, w.Area)
}
