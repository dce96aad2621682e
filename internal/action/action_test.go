package action

import (
	"sync"
	"testing"

	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for k := Tick; k <= Yank; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err, k.String())
		assert.Equal(t, k, parsed)
	}

	parsed, err := ParseKind("toggleshowhelp")
	require.NoError(t, err)
	assert.Equal(t, ToggleShowHelp, parsed)

	_, err = ParseKind("Explode")
	assert.Error(t, err)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, `Toast("Error", "boom")`, NewToast("Error", "boom").String())
	assert.Equal(t, "ChangeMode(Home)", NewChangeMode(types.Home).String())
	assert.Equal(t, "Increment(1)", NewIncrement(1).String())
	assert.Equal(t, "Quit", Of(Quit).String())
	assert.True(t, Action{}.IsNone())
}

func TestQueueOrder(t *testing.T) {
	q := NewQueue()
	q.Send(Of(Tick))
	q.Send(Action{})
	q.Send(NewIncrement(2))
	q.Send(Of(Render))

	got := q.Drain()
	require.Len(t, got, 3)
	assert.Equal(t, Tick, got[0].Kind)
	assert.Equal(t, Increment, got[1].Kind)
	assert.Equal(t, Render, got[2].Kind)
	assert.Empty(t, q.Drain())
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers, each = 8, 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Send(NewIncrement(p*each + i))
			}
		}(p)
	}
	wg.Wait()

	got := q.Drain()
	require.Len(t, got, producers*each)

	// Per-producer order survives interleaving.
	last := make(map[int]int)
	for _, a := range got {
		p := a.Count / each
		if prev, ok := last[p]; ok {
			assert.Greater(t, a.Count, prev)
		}
		last[p] = a.Count
	}

	select {
	case <-q.Ready():
	default:
		t.Fatal("expected ready signal")
	}
}

func TestKeymapLookup(t *testing.T) {
	km := Keymap{
		Bind(Of(ToggleShowQuit), "q"),
		Bind(Of(ToggleShowHelp), "ctrl+@", "?"),
		Bind(Of(PausePlay), " "),
	}

	assert.Equal(t, ToggleShowQuit, km.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}).Kind)
	assert.Equal(t, ToggleShowHelp, km.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}).Kind)
	assert.Equal(t, PausePlay, km.Lookup(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}).Kind)
	assert.True(t, km.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}).IsNone())

	require.Len(t, km.Bindings(), 3)
	assert.Equal(t, "space", km.Bindings()[2].Help().Key)
	assert.Len(t, km.FullHelp(), 1)
}
