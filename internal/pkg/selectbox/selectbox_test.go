package selectbox

import (
	"testing"

	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/layer"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type change struct {
	value *string
	opt   *option.Option
}

type recorder struct {
	changes  []change
	inputs   []string
	scrolled []int
}

func (r *recorder) onChange(value *string, opt *option.Option) {
	r.changes = append(r.changes, change{value: value, opt: opt})
}

func (r *recorder) onInput(text string) { r.inputs = append(r.inputs, text) }

func (r *recorder) ScrollIntoView(index int) { r.scrolled = append(r.scrolled, index) }

func fruitOptions() []option.Option {
	return []option.Option{
		{Value: "apple", Label: "Apple"},
		{Value: "banana", Label: "Banana", Disabled: true},
		{Value: "cherry", Label: "Cherry"},
	}
}

func newSelect(t *testing.T, mutate func(*Config)) (*Select, *recorder, *Listeners, *layer.Service) {
	t.Helper()
	rec := &recorder{}
	doc := NewListeners()
	layers := layer.NewService(layer.DefaultBase, layer.DefaultStep)
	cfg := Config{
		Options:       fruitOptions(),
		ShowSearch:    true,
		AllowClear:    true,
		OnChange:      rec.onChange,
		OnInputChange: rec.onInput,
		Scroller:      rec,
		Document:      doc,
		Layers:        layers,
		Viewport:      FixedViewport{Above: 100, Below: 600},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg), rec, doc, layers
}

func assertClosed(t *testing.T, s *Select) {
	t.Helper()
	state := s.State()
	assert.False(t, state.IsOpen)
	assert.Empty(t, state.SearchTerm)
	assert.Equal(t, -1, state.HighlightedIndex)
	assert.False(t, state.IsKeyboardNav)
}

func TestSelect_InitialState(t *testing.T) {
	s, _, _, _ := newSelect(t, nil)
	assertClosed(t, s)
	assert.Equal(t, PositionBottom, s.State().Position)
	assert.Equal(t, 0, s.ZIndex())
}

func TestSelect_ArrowDownSkipsDisabled(t *testing.T) {
	s, rec, _, _ := newSelect(t, nil)

	s.ClickControl()
	require.True(t, s.State().IsOpen)
	assert.Equal(t, 0, s.State().HighlightedIndex)

	s.KeyDown(KeyArrowDown)
	s.KeyDown(KeyArrowDown)

	assert.Equal(t, 2, s.State().HighlightedIndex)
	assert.Equal(t, "Cherry", s.Filtered()[s.State().HighlightedIndex].Label)
	assert.True(t, s.State().IsKeyboardNav)
	assert.Equal(t, []int{0, 2}, rec.scrolled)
}

func TestSelect_EnterCommitsAndCloses(t *testing.T) {
	s, rec, doc, layers := newSelect(t, nil)

	s.KeyDown(KeyArrowDown)
	require.True(t, s.State().IsOpen)
	assert.Equal(t, 1, doc.Count())
	assert.Equal(t, 1, layers.Active())

	s.KeyDown(KeyArrowDown)
	s.KeyDown(KeyEnter)

	require.Len(t, rec.changes, 1)
	assert.Equal(t, "cherry", *rec.changes[0].value)
	assert.Equal(t, "Cherry", rec.changes[0].opt.Label)
	assert.Equal(t, "cherry", s.Value())
	assert.Equal(t, "Cherry", s.DisplayLabel())
	assertClosed(t, s)
	assert.Equal(t, 0, doc.Count())
	assert.Equal(t, 0, layers.Active())
	assert.Equal(t, "", rec.inputs[len(rec.inputs)-1])
}

func TestSelect_EnterWithoutValidHighlightKeepsOpen(t *testing.T) {
	s, rec, _, _ := newSelect(t, func(c *Config) {
		c.Options = []option.Option{{Value: "x", Label: "X", Disabled: true}}
	})

	s.ClickControl()
	assert.Equal(t, -1, s.State().HighlightedIndex)
	s.KeyDown(KeyEnter)

	assert.Empty(t, rec.changes)
	assert.True(t, s.State().IsOpen)
}

func TestSelect_CloseTriggersResetState(t *testing.T) {
	triggers := map[string]func(*Select, *Listeners){
		"escape":        func(s *Select, _ *Listeners) { s.KeyDown(KeyEscape) },
		"tab":           func(s *Select, _ *Listeners) { s.KeyDown(KeyTab) },
		"outside click": func(_ *Select, doc *Listeners) { doc.PointerDown() },
		"toggle":        func(s *Select, _ *Listeners) { s.ClickControl() },
		"external":      func(s *Select, _ *Listeners) { s.SetOpen(false) },
		"disabled":      func(s *Select, _ *Listeners) { s.SetDisabled(true) },
	}
	for name, trigger := range triggers {
		t.Run(name, func(t *testing.T) {
			s, rec, doc, layers := newSelect(t, nil)
			s.ClickControl()
			s.Type("err")
			s.KeyDown(KeyArrowDown)
			require.True(t, s.State().IsOpen)

			trigger(s, doc)

			assertClosed(t, s)
			assert.Equal(t, 0, doc.Count())
			assert.Equal(t, 0, layers.Active())
			assert.Equal(t, "", rec.inputs[len(rec.inputs)-1])
			assert.Empty(t, rec.changes)
		})
	}
}

func TestSelect_OpenSeedsSearchWithLabel(t *testing.T) {
	s, _, _, _ := newSelect(t, func(c *Config) { c.Value = "cherry" })

	s.FocusInput()

	assert.Equal(t, "Cherry", s.State().SearchTerm)
	require.Len(t, s.Filtered(), 1)
	assert.Equal(t, 0, s.State().HighlightedIndex)
}

func TestSelect_OpenWithoutSearchDoesNotSeed(t *testing.T) {
	s, rec, _, _ := newSelect(t, func(c *Config) {
		c.Value = "cherry"
		c.ShowSearch = false
	})

	s.ClickInput()
	assert.Empty(t, s.State().SearchTerm)
	assert.Len(t, s.Filtered(), 3)

	s.KeyDown(KeyEscape)
	assert.Empty(t, rec.inputs)
}

func TestSelect_DisabledDoesNotOpen(t *testing.T) {
	cases := map[string]func(s *Select){
		"click control": func(s *Select) { s.ClickControl() },
		"type":          func(s *Select) { s.Type("a") },
		"focus input":   func(s *Select) { s.FocusInput() },
		"click input":   func(s *Select) { s.ClickInput() },
		"arrow down":    func(s *Select) { assert.False(t, s.KeyDown(KeyArrowDown)) },
	}
	for name, act := range cases {
		t.Run(name, func(t *testing.T) {
			s, _, doc, layers := newSelect(t, func(c *Config) { c.Disabled = true })

			act(s)

			assert.False(t, s.State().IsOpen)
			assert.Zero(t, doc.Count())
			assert.Zero(t, layers.Active())
		})
	}
}

func TestSelect_TypeOpensAndFilters(t *testing.T) {
	s, rec, _, _ := newSelect(t, nil)

	s.Type("ch")

	assert.True(t, s.State().IsOpen)
	assert.Equal(t, "ch", s.State().SearchTerm)
	assert.Equal(t, []string{"ch"}, rec.inputs)
	require.Len(t, s.Filtered(), 1)
	assert.Equal(t, 0, s.State().HighlightedIndex)

	s.Type("zzz")
	assert.Empty(t, s.Filtered())
	assert.Equal(t, -1, s.State().HighlightedIndex)
}

func TestSelect_HoverSuppressedDuringKeyboardNav(t *testing.T) {
	s, _, _, _ := newSelect(t, nil)
	s.ClickControl()

	s.KeyDown(KeyArrowDown)
	assert.Equal(t, 2, s.State().HighlightedIndex)

	s.MouseEnter(0)
	assert.Equal(t, 2, s.State().HighlightedIndex)

	s.MouseMove()
	assert.False(t, s.State().IsKeyboardNav)
	s.MouseEnter(0)
	assert.Equal(t, 0, s.State().HighlightedIndex)

	s.MouseEnter(1)
	assert.Equal(t, 0, s.State().HighlightedIndex, "disabled option must not take the highlight")
}

func TestSelect_ClickOption(t *testing.T) {
	s, rec, _, _ := newSelect(t, nil)
	s.ClickControl()

	s.ClickOption(1)
	assert.Empty(t, rec.changes)
	assert.True(t, s.State().IsOpen)

	s.ClickOption(0)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, "apple", *rec.changes[0].value)
	assertClosed(t, s)
}

func TestSelect_Clear(t *testing.T) {
	s, rec, _, _ := newSelect(t, func(c *Config) { c.Value = "apple" })
	require.True(t, s.CanClear())

	s.Clear()

	require.Len(t, rec.changes, 1)
	assert.Nil(t, rec.changes[0].value)
	assert.Nil(t, rec.changes[0].opt)
	assert.Equal(t, "", s.Value())
	assert.Equal(t, []string{""}, rec.inputs)
	assert.False(t, s.CanClear())

	s.Clear()
	assert.Len(t, rec.changes, 1)
}

func TestSelect_ClearWhileOpenRehighlights(t *testing.T) {
	s, _, _, _ := newSelect(t, func(c *Config) { c.Value = "cherry" })
	s.ClickControl()
	s.Type("ch")
	require.True(t, s.State().IsOpen)

	s.Clear()

	assert.True(t, s.State().IsOpen)
	assert.Equal(t, "", s.State().SearchTerm)
	assert.Len(t, s.Filtered(), 3)
	assert.Equal(t, 0, s.State().HighlightedIndex)
}

func TestSelect_ClearUnavailable(t *testing.T) {
	cases := map[string]func(*Config){
		"no clear": func(c *Config) { c.AllowClear = false },
		"no value": func(c *Config) { c.Value = "" },
		"disabled": func(c *Config) { c.Disabled = true },
		"loading":  func(c *Config) { c.Loading = true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s, rec, _, _ := newSelect(t, func(c *Config) {
				c.Value = "apple"
				mutate(c)
			})
			s.Clear()
			assert.Empty(t, rec.changes)
		})
	}
}

func TestSelect_SetOptionsRevalidatesHighlight(t *testing.T) {
	s, _, _, _ := newSelect(t, func(c *Config) { c.Options = nil })
	s.ClickControl()
	assert.Equal(t, -1, s.State().HighlightedIndex)

	s.SetOptions([]option.Option{{Value: "a", Label: "A", Disabled: true}, {Value: "b", Label: "B"}})
	assert.Equal(t, 1, s.State().HighlightedIndex)

	s.SetOptions([]option.Option{{Value: "c", Label: "C", Disabled: true}})
	assert.Equal(t, -1, s.State().HighlightedIndex)
}

func TestSelect_Position(t *testing.T) {
	cases := []struct {
		name     string
		viewport Viewport
		want     Position
	}{
		{"plenty below", FixedViewport{Above: 500, Below: 400}, PositionBottom},
		{"tight below, more above", FixedViewport{Above: 500, Below: 100}, PositionTop},
		{"tight both, less above", FixedViewport{Above: 50, Below: 100}, PositionBottom},
		{"no viewport", nil, PositionBottom},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, _, _, _ := newSelect(t, func(cfg *Config) { cfg.Viewport = c.viewport })
			s.ClickControl()
			assert.Equal(t, c.want, s.State().Position)
		})
	}
}

func TestSelect_StackingBands(t *testing.T) {
	layers := layer.NewService(layer.DefaultBase, layer.DefaultStep)
	first := New(Config{Options: fruitOptions(), Layers: layers})
	second := New(Config{Options: fruitOptions(), Layers: layers})

	first.ClickControl()
	second.ClickControl()

	assert.Greater(t, second.ZIndex(), first.ZIndex())

	first.Dispose()
	second.Dispose()
	assert.Equal(t, 0, layers.Active())
}

func TestSelect_ClosedKeysIgnored(t *testing.T) {
	s, _, _, _ := newSelect(t, nil)
	assert.False(t, s.KeyDown(KeyArrowUp))
	assert.False(t, s.KeyDown(KeyEnter))
	assert.False(t, s.State().IsOpen)
}
