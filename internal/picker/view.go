package picker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/amulcse/pick/internal/tui"
)

// Frame layout: prompt line, rule, list rows, rule, help line.
const (
	chromeRows = 4
	listTop    = 2
)

const (
	helpSingle = "↑/↓: Navigate  Tab: Complete  Enter: Select  Esc: Cancel"
	helpMulti  = "↑/↓: Navigate  Space: Toggle  Tab: Complete  Enter: Confirm  Esc: Cancel"
	clearHint  = "^C: clear"
)

// ListRows returns the list row budget for a screen height.
func ListRows(height int) int {
	return max(height-chromeRows, 0)
}

// paneWidth returns the width of the list pane. Multi-select mode gives the
// right 35% to the selection pane.
func paneWidth(width int, multi bool) int {
	if multi {
		return width * 65 / 100
	}
	return width
}

// Render draws one frame of m. header is the prompt line; the terminal cursor
// is parked at its end.
func Render[K comparable](s tui.Screen, m *Machine[K], header string) {
	width, height := s.Size()
	pane := paneWidth(width, m.Multi())
	rows := ListRows(height)

	s.Clear()

	header = tail(header, max(pane-1, 0))
	cursorX := s.DrawText(0, 0, header, tui.StyleNormal)

	rule := strings.Repeat("─", width)
	s.DrawText(0, 1, rule, tui.StyleDim)

	for i, e := range m.Visible() {
		drawEntry(s, m, e, m.Scroll()+i, listTop+i, pane)
	}

	if m.Multi() {
		drawSelection(s, m, pane, rows)
	}

	if height >= chromeRows {
		help := helpSingle
		if m.Multi() {
			help = helpMulti
		}
		s.DrawText(0, height-2, rule, tui.StyleDim)
		s.DrawText(center(help, width), height-1, help, tui.StyleDim)
	}

	s.ShowCursor(min(cursorX, max(pane-1, 0)), 0)
	s.Show()
}

func drawEntry[K comparable](s tui.Screen, m *Machine[K], e Entry[K], idx, y, pane int) {
	name := e.Name.Text
	if e.Dir {
		name += "/"
	}

	style := tui.StyleNormal
	switch {
	case m.IsSelected(e):
		style = tui.StyleSelected
	case !e.Match:
		style = tui.StyleDim
	}
	if e.Dir {
		style |= tui.StyleDir
	}

	gutter := "  "
	if idx == m.Cursor() {
		gutter = "> "
		style |= tui.StyleCursor
	}

	x := s.DrawText(0, y, gutter, style&tui.StyleCursor)
	s.DrawText(x, y, runewidth.Truncate(name, max(pane-x, 0), "…"), style)
}

func drawSelection[K comparable](s tui.Screen, m *Machine[K], pane, rows int) {
	x := pane + 2
	s.DrawText(x, 0, fmt.Sprintf("Selected (%d)", m.Selection().Len()), tui.StyleNormal)

	for i := 0; i < rows; i++ {
		s.DrawText(pane, listTop+i, "│", tui.StyleDim)
	}
	if rows == 0 {
		return
	}
	s.DrawText(x, listTop, clearHint, tui.StyleDim)

	labels := m.Selection().Labels()
	for i, label := range labels[:min(len(labels), rows-1)] {
		s.DrawText(x, listTop+1+i, label, tui.StyleNormal)
	}
}

// tail returns the rightmost part of text that fits in width columns.
func tail(text string, width int) string {
	for runewidth.StringWidth(text) > width {
		_, size := utf8.DecodeRuneInString(text)
		text = text[size:]
	}
	return text
}

func center(text string, width int) int {
	return max((width-runewidth.StringWidth(text))/2, 0)
}
