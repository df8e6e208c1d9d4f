package picker

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amulcse/pick/internal/tui"
)

func key(k tui.Key) tui.Event { return tui.Event{Key: k} }

func typeText(m interface{ Step(tui.Event) Outcome }, text string) {
	for _, r := range text {
		m.Step(tui.Rune(r))
	}
}

func newObjects(multi bool, labels ...string) *Machine[int] {
	m := NewMachine[int](NewSliceSource(labels), multi, byLabelThenKey, nil)
	m.SetRows(10)
	return m
}

func TestMachineUpDownClamp(t *testing.T) {
	m := newObjects(false, "a", "b", "c")

	assert.Equal(t, Continue, m.Step(key(tui.KeyUp)))
	assert.Equal(t, 0, m.Cursor(), "no-op at the top")

	m.Step(key(tui.KeyDown))
	m.Step(key(tui.KeyDown))
	m.Step(key(tui.KeyDown))
	assert.Equal(t, 2, m.Cursor(), "no-op at the bottom")

	m.Step(key(tui.KeyUp))
	assert.Equal(t, 1, m.Cursor())
}

func TestMachineTypingJumpsToFirstMatch(t *testing.T) {
	m := newObjects(false, "apple", "banana", "cherry", "blueberry")
	m.SetRows(2)
	m.Step(key(tui.KeyDown))
	m.Step(key(tui.KeyDown))
	m.Step(key(tui.KeyDown))
	require.Equal(t, 2, m.Scroll())

	typeText(m, "Be")
	assert.Equal(t, "Be", m.Query())
	assert.Equal(t, []string{"blueberry", "apple", "banana", "cherry"}, names(m.Display()))
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, 0, m.Scroll())

	m.Step(key(tui.KeyBackspace))
	assert.Equal(t, "B", m.Query())
	assert.Equal(t, []string{"banana", "blueberry", "apple", "cherry"}, names(m.Display()))
	assert.Equal(t, 0, m.Cursor())
}

func TestMachineNoMatchFallsBackToTop(t *testing.T) {
	m := newObjects(false, "a", "b")
	m.Step(key(tui.KeyDown))
	typeText(m, "zz")
	assert.Equal(t, 0, m.Cursor())
	assert.False(t, m.Display()[0].Match)
}

func TestMachineBackspace(t *testing.T) {
	m := newObjects(false, "café", "cafe")

	m.Step(key(tui.KeyBackspace))
	assert.Equal(t, "", m.Query(), "no-op on an empty query")

	typeText(m, "café")
	m.Step(key(tui.KeyBackspace))
	assert.Equal(t, "caf", m.Query(), "removes a whole rune")
}

func TestMachineTabCompletion(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		typed  string
		want   string
	}{
		{"common prefix", []string{"report.txt", "report_final.txt", "notes.md"}, "rep", "report"},
		{"unique prefix", []string{"notes.md", "report.txt"}, "no", "notes.md"},
		{"prefix equals query", []string{"report.txt", "reporter"}, "report", "report"},
		{"substring-only matches do not complete", []string{"my_report", "our_report"}, "rep", "rep"},
		{"empty query completes over everything", []string{"report.txt", "report_final.txt"}, "", "report"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newObjects(false, tt.labels...)
			typeText(m, tt.typed)
			m.Step(key(tui.KeyTab))
			assert.Equal(t, tt.want, m.Query())
			assert.True(t, m.Display()[m.Cursor()].Match || tt.want == tt.typed)
		})
	}
}

func TestMachineTabSkipsParentAndNonMatching(t *testing.T) {
	src := newTree("/w", map[string][]Entry[string]{
		"/w": {dirAt("/w", "src"), fileAt("/w", "setup.py"), fileAt("/w", "README")},
	})
	m := NewMachine[string](src, false, byKey[string], nil)
	m.SetRows(10)

	typeText(m, "s")
	m.Step(key(tui.KeyTab))
	assert.Equal(t, "s", m.Query(), "src and setup.py share only the query")

	typeText(m, "r")
	m.Step(key(tui.KeyTab))
	assert.Equal(t, "src", m.Query())
	assert.Equal(t, "src", m.Display()[m.Cursor()].Name.Text)
}

func TestMachineSpace(t *testing.T) {
	single := newObjects(false, "a b", "ab")
	typeText(single, "a")
	single.Step(key(tui.KeySpace))
	assert.Equal(t, "a ", single.Query(), "space is text in single mode")
	assert.Equal(t, 0, single.Selection().Len())

	multi := newObjects(true, "a b", "ab")
	multi.Step(key(tui.KeySpace))
	assert.Equal(t, "", multi.Query())
	assert.True(t, multi.Selection().Contains(0))
	multi.Step(key(tui.KeySpace))
	assert.False(t, multi.Selection().Contains(0), "second press deselects")
}

func TestMachineDirectoriesAreNotSelectable(t *testing.T) {
	src := newTree("/w", map[string][]Entry[string]{
		"/w": {dirAt("/w", "sub"), fileAt("/w", "f")},
	})
	m := NewMachine[string](src, true, byKey[string], nil)
	m.SetRows(10)

	m.Step(key(tui.KeySpace))
	m.Step(key(tui.KeyDown))
	m.Step(key(tui.KeySpace))
	assert.Equal(t, 0, m.Selection().Len())

	m.Step(key(tui.KeyDown))
	m.Step(key(tui.KeySpace))
	assert.True(t, m.Selection().Contains("/w/f"))
}

func TestMachineClear(t *testing.T) {
	multi := newObjects(true, "a", "b")
	multi.Step(key(tui.KeySpace))
	multi.Step(key(tui.KeyDown))
	multi.Step(key(tui.KeySpace))
	require.Equal(t, 2, multi.Selection().Len())

	assert.Equal(t, Continue, multi.Step(key(tui.KeyClear)))
	assert.Equal(t, 0, multi.Selection().Len())

	single := newObjects(false, "a")
	assert.Equal(t, Cancelled, single.Step(key(tui.KeyClear)), "Ctrl-C leaves a single-select picker")
	assert.Nil(t, single.Result())
}

func TestMachineConfirmSingle(t *testing.T) {
	m := newObjects(false, "b", "a", "c")
	m.Step(key(tui.KeyDown))

	require.Equal(t, Confirmed, m.Step(key(tui.KeyEnter)))
	assert.Equal(t, []Selected[int]{{Key: 1, Label: "a"}}, m.Result())
}

func TestMachineConfirmUnionsHighlighted(t *testing.T) {
	m := newObjects(true, "C", "B", "A")

	// select A and B, then confirm on C without toggling it
	m.Step(key(tui.KeyDown))
	m.Step(key(tui.KeySpace))
	m.Step(key(tui.KeyDown))
	m.Step(key(tui.KeySpace))
	m.Step(key(tui.KeyUp))
	m.Step(key(tui.KeyUp))
	require.Equal(t, "C", m.Display()[m.Cursor()].Name.Text)

	require.Equal(t, Confirmed, m.Step(key(tui.KeyEnter)))
	assert.Equal(t, []string{"A", "B", "C"}, labels(m.Result()))
	assert.Equal(t, []int{2, 1, 0}, []int{m.Result()[0].Key, m.Result()[1].Key, m.Result()[2].Key})
}

func TestMachineConfirmDoesNotDuplicateHighlighted(t *testing.T) {
	m := newObjects(true, "x", "y")
	m.Step(key(tui.KeySpace))

	require.Equal(t, Confirmed, m.Step(key(tui.KeyEnter)))
	assert.Equal(t, []string{"x"}, labels(m.Result()))
}

func TestMachineConfirmWithoutToggles(t *testing.T) {
	m := newObjects(true, "x", "y")
	m.Step(key(tui.KeyDown))

	require.Equal(t, Confirmed, m.Step(key(tui.KeyEnter)))
	assert.Equal(t, []string{"y"}, labels(m.Result()))
}

func TestMachineEqualLabelsStayDistinct(t *testing.T) {
	m := newObjects(true, "dup", "dup")
	m.Step(key(tui.KeySpace))
	m.Step(key(tui.KeyDown))

	require.Equal(t, Confirmed, m.Step(key(tui.KeyEnter)))
	require.Len(t, m.Result(), 2)
	assert.Equal(t, 0, m.Result()[0].Key)
	assert.Equal(t, 1, m.Result()[1].Key)
}

func TestMachineConfirmOnEmptyList(t *testing.T) {
	m := NewMachine[int](NewSliceSource(nil), true, nil, nil)
	m.SetRows(5)

	assert.NotPanics(t, func() {
		assert.Equal(t, Continue, m.Step(key(tui.KeyEnter)))
		assert.Equal(t, Continue, m.Step(key(tui.KeySpace)))
		assert.Equal(t, Continue, m.Step(key(tui.KeyDown)))
		assert.Equal(t, Continue, m.Step(key(tui.KeyTab)))
	})
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, 0, m.Scroll())
	assert.Empty(t, m.Visible())
}

func TestMachineDirectoryNavigationResets(t *testing.T) {
	src := newTree("/w", map[string][]Entry[string]{
		"/w": {
			dirAt("/w", "food"),
			dirAt("/w", "foobar"),
			fileAt("/w", "foo.txt"),
			fileAt("/w", "other"),
		},
		"/w/foobar": {fileAt("/w/foobar", "inner")},
	})
	m := NewMachine[string](src, true, byKey[string], nil)
	m.SetRows(10)

	typeText(m, "foo")
	m.Step(key(tui.KeyDown))
	m.Step(key(tui.KeyDown))
	m.Step(key(tui.KeySpace))
	m.Step(key(tui.KeyUp))
	require.Equal(t, "foo", m.Query())
	require.Equal(t, 2, m.Cursor())
	require.Equal(t, "foobar", m.Display()[2].Name.Text)

	assert.Equal(t, Continue, m.Step(key(tui.KeyEnter)))
	assert.Equal(t, []string{"/w/foobar"}, src.entered)
	assert.Equal(t, "", m.Query())
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, 0, m.Scroll())
	assert.Equal(t, []string{"..", "inner"}, names(m.Display()))
	assert.True(t, m.Selection().Contains("/w/foo.txt"), "navigation keeps the selection")
}

func TestMachineParentQuery(t *testing.T) {
	src := newTree("/w/sub", map[string][]Entry[string]{
		"/w/sub": {fileAt("/w/sub", "a..b")},
		"/w":     {dirAt("/w", "sub")},
	})
	m := NewMachine[string](src, false, byKey[string], nil)
	m.SetRows(10)

	typeText(m, "..")
	assert.Equal(t, 0, m.Cursor(), "the parent row wins for an exact '..'")
	assert.True(t, m.Display()[0].Match)

	assert.Equal(t, Continue, m.Step(key(tui.KeyEnter)))
	assert.Equal(t, []string{"/w"}, src.entered)
	assert.Equal(t, []string{"..", "sub"}, names(m.Display()))
}

func TestMachineCancel(t *testing.T) {
	src := newTree("/w", map[string][]Entry[string]{"/w": {fileAt("/w", "a")}})
	m := NewMachine[string](src, true, byKey[string], nil)
	m.SetRows(3)
	typeText(m, "a")
	m.Step(key(tui.KeySpace))

	assert.Equal(t, Cancelled, m.Step(key(tui.KeyCancel)))
	assert.Nil(t, m.Result())
	assert.Empty(t, src.entered)
}

func TestMachineResizeKeepsState(t *testing.T) {
	m := newObjects(false, "a", "b", "c", "d")
	m.Step(key(tui.KeyDown))
	m.Step(key(tui.KeyDown))

	assert.Equal(t, Continue, m.Step(key(tui.KeyResize)))
	assert.Equal(t, 2, m.Cursor())

	m.SetRows(1)
	assert.Equal(t, 2, m.Scroll())
	assert.Equal(t, []string{"c"}, names(m.Visible()))
}

func TestMachineZeroRows(t *testing.T) {
	m := newObjects(false, "a", "b", "c", "d", "e", "f", "g")
	m.SetRows(0)

	assert.NotPanics(t, func() {
		for range 5 {
			m.Step(key(tui.KeyDown))
		}
	})
	assert.Equal(t, 5, m.Cursor())
	assert.Equal(t, 5, m.Scroll())
	assert.Empty(t, m.Visible())

	m.SetRows(3)
	assert.LessOrEqual(t, m.Scroll(), m.Cursor())
	assert.LessOrEqual(t, m.Cursor(), m.Scroll()+m.Rows()-1)
	assert.Equal(t, []string{"f", "g"}, names(m.Visible()))

	m.SetRows(-4)
	assert.Equal(t, 0, m.Rows())
}

func TestMachineViewportInvariant(t *testing.T) {
	src := newTree("/w", map[string][]Entry[string]{"/w": nil, "/w/d": nil})
	for i := range 30 {
		name := fmt.Sprintf("item%02d", i)
		if i%7 == 0 {
			src.tree["/w"] = append(src.tree["/w"], dirAt("/w", name))
		} else {
			src.tree["/w"] = append(src.tree["/w"], fileAt("/w", name))
		}
	}

	events := []tui.Event{
		key(tui.KeyUp), key(tui.KeyDown), key(tui.KeyDown), key(tui.KeyDown),
		key(tui.KeyBackspace), key(tui.KeyTab), key(tui.KeySpace), key(tui.KeyClear),
		key(tui.KeyResize), tui.Rune('1'), tui.Rune('2'), tui.Rune('m'), tui.Rune('z'),
	}

	rng := rand.New(rand.NewPCG(7, 11))
	m := NewMachine[string](src, true, byKey[string], nil)
	for range 2000 {
		if rng.IntN(25) == 0 {
			m.SetRows(rng.IntN(8))
		}
		ev := events[rng.IntN(len(events))]
		require.Equal(t, Continue, m.Step(ev))

		require.GreaterOrEqual(t, m.Cursor(), 0)
		if n := len(m.Display()); n > 0 {
			require.Less(t, m.Cursor(), n)
		}
		if m.Rows() > 0 && len(m.Display()) > 0 {
			require.LessOrEqual(t, m.Scroll(), m.Cursor(), "event %s", ev)
			require.LessOrEqual(t, m.Cursor(), m.Scroll()+m.Rows()-1, "event %s", ev)
		}
	}
}
