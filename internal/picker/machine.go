package picker

import (
	"log/slog"
	"slices"
	"unicode/utf8"

	"github.com/amulcse/pick/internal/match"
	"github.com/amulcse/pick/internal/tui"
)

// Outcome is the result of feeding one event to a Machine.
type Outcome int

const (
	// Continue means the picker keeps running.
	Continue Outcome = iota
	// Confirmed means Result holds the chosen rows.
	Confirmed
	// Cancelled means the user gave up.
	Cancelled
)

// Machine owns the picker state: query, cursor, scroll offset and selection.
// It rebuilds the display list from its source whenever the query or the
// listing changes, and restores the viewport invariant after every event.
type Machine[K comparable] struct {
	src    Source[K]
	multi  bool
	order  func(a, b Selected[K]) int
	logger *slog.Logger

	query    string
	cursor   int
	scroll   int
	rows     int
	display  []Entry[K]
	selected *Selection[K]
	result   []Selected[K]
}

// NewMachine creates a machine over src. order sorts the confirmed rows.
func NewMachine[K comparable](src Source[K], multi bool, order func(a, b Selected[K]) int, logger *slog.Logger) *Machine[K] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if order == nil {
		order = ByLabel[K]
	}
	m := &Machine[K]{
		src:      src,
		multi:    multi,
		order:    order,
		logger:   logger,
		selected: NewSelection[K](),
	}
	m.display = Build(src, m.query)
	return m
}

// Query returns the current filter text.
func (m *Machine[K]) Query() string { return m.query }

// Cursor returns the index of the highlighted row.
func (m *Machine[K]) Cursor() int { return m.cursor }

// Scroll returns the index of the first visible row.
func (m *Machine[K]) Scroll() int { return m.scroll }

// Rows returns the visible row budget.
func (m *Machine[K]) Rows() int { return m.rows }

// Multi reports whether the machine runs in multi-select mode.
func (m *Machine[K]) Multi() bool { return m.multi }

// Display returns the current display list.
func (m *Machine[K]) Display() []Entry[K] { return m.display }

// Selection returns the multi-select set.
func (m *Machine[K]) Selection() *Selection[K] { return m.selected }

// Result returns the confirmed rows once Step reported Confirmed.
func (m *Machine[K]) Result() []Selected[K] { return m.result }

// Visible returns the rows inside the viewport.
func (m *Machine[K]) Visible() []Entry[K] { return Visible(m.display, m.scroll, m.rows) }

// IsSelected reports whether e is in the multi-select set.
func (m *Machine[K]) IsSelected(e Entry[K]) bool { return m.multi && m.selected.Contains(e.Key) }

// SetRows sets the visible row budget and re-derives the scroll offset.
// Negative budgets count as zero.
func (m *Machine[K]) SetRows(rows int) {
	m.rows = max(rows, 0)
	m.settle()
}

// Step applies one input event.
func (m *Machine[K]) Step(ev tui.Event) Outcome {
	switch ev.Key {
	case tui.KeyCancel:
		m.logger.Debug("picker cancelled", "query", m.query)
		return Cancelled

	case tui.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case tui.KeyDown:
		if m.cursor < len(m.display)-1 {
			m.cursor++
		}

	case tui.KeyRune:
		m.setQuery(m.query + string(ev.Rune))

	case tui.KeySpace:
		if !m.multi {
			m.setQuery(m.query + " ")
			break
		}
		m.toggle()

	case tui.KeyBackspace:
		if m.query != "" {
			_, size := utf8.DecodeLastRuneInString(m.query)
			m.setQuery(m.query[:len(m.query)-size])
		}

	case tui.KeyTab:
		if q, ok := match.Complete(m.query, m.candidates()); ok {
			m.setQuery(q)
		}

	case tui.KeyClear:
		if !m.multi {
			// Raw mode swallows SIGINT, so Ctrl-C is the way out.
			m.logger.Debug("picker cancelled", "query", m.query)
			return Cancelled
		}
		m.selected.Clear()

	case tui.KeyEnter:
		if out := m.confirm(); out != Continue {
			return out
		}
	}

	m.settle()
	return Continue
}

// setQuery replaces the query, rebuilds the list and jumps to the first match.
func (m *Machine[K]) setQuery(q string) {
	m.query = q
	m.display = Build(m.src, m.query)
	m.cursor = firstMatch(m.display, m.query)
	m.scroll = 0
}

// candidates returns the names Tab completes over.
func (m *Machine[K]) candidates() []string {
	var names []string
	for _, e := range m.display {
		if e.Match && !e.Parent {
			names = append(names, e.Name.Text)
		}
	}
	return names
}

func (m *Machine[K]) toggle() {
	if len(m.display) == 0 {
		return
	}
	e := m.display[m.cursor]
	if e.Dir {
		return
	}
	m.selected.Toggle(e.Key, e.Name.Text)
}

func (m *Machine[K]) confirm() Outcome {
	if len(m.display) == 0 {
		return Continue
	}
	e := m.display[m.cursor]

	if e.Dir {
		m.src.Enter(e)
		m.logger.Debug("entered directory", "key", e.Key, "selected", m.selected.Len())
		m.query = ""
		m.display = Build(m.src, m.query)
		m.cursor = 0
		m.scroll = 0
		return Continue
	}

	highlighted := Selected[K]{Key: e.Key, Label: e.Name.Text}
	if !m.multi {
		m.result = []Selected[K]{highlighted}
	} else {
		m.result = m.selected.Items(m.order)
		if !m.selected.Contains(e.Key) {
			m.result = append(m.result, highlighted)
			slices.SortFunc(m.result, m.order)
		}
	}
	m.logger.Debug("picker confirmed", "count", len(m.result))
	return Confirmed
}

// settle clamps the cursor to the display list and restores the viewport.
func (m *Machine[K]) settle() {
	m.cursor = min(m.cursor, len(m.display)-1)
	m.cursor = max(m.cursor, 0)
	m.scroll = Scroll(m.cursor, m.scroll, m.rows)
}
