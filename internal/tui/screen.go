// Package tui provides the terminal surfaces the picker draws on: a raw ANSI
// terminal, a tcell screen, and a headless scripted surface for tests.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Style is a set of display attributes for a text run. Attributes combine:
// the cursor row keeps its directory or selection colors.
type Style uint8

const (
	StyleDir Style = 1 << iota
	StyleDim
	StyleSelected
	StyleCursor
)

// StyleNormal is plain text.
const StyleNormal Style = 0

// Screen is the render surface the picker loop draws on and reads keys from.
type Screen interface {
	// Init acquires the terminal (raw mode, alternate screen).
	Init() error

	// Fini restores the terminal. Safe to call multiple times.
	Fini()

	// Size returns the current geometry in cells.
	Size() (width, height int)

	// Clear blanks the pending frame.
	Clear()

	// DrawText draws text at a cell position and returns the columns used.
	// Text past the right edge is dropped.
	DrawText(x, y int, text string, style Style) int

	// ShowCursor parks the terminal cursor at a cell.
	ShowCursor(x, y int)

	// Show flushes the pending frame as one update.
	Show()

	// PollEvent blocks until the next input event.
	PollEvent() Event
}

type cell struct {
	r     rune
	style Style
}

// grid is an in-memory frame shared by the surfaces that compose their own
// output. Wide runes occupy two cells; the second holds a zero rune.
type grid struct {
	width  int
	height int
	cells  []cell
}

func (g *grid) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == g.width && height == g.height {
		return
	}
	g.width = width
	g.height = height
	g.cells = make([]cell, width*height)
	g.clear()
}

func (g *grid) clear() {
	for i := range g.cells {
		g.cells[i] = cell{r: ' '}
	}
}

func (g *grid) put(x, y int, text string, style Style) int {
	if y < 0 || y >= g.height || x < 0 {
		return 0
	}
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > g.width {
			break
		}
		g.cells[y*g.width+col] = cell{r: r, style: style}
		if w == 2 {
			g.cells[y*g.width+col+1] = cell{r: 0, style: style}
		}
		col += w
	}
	return col - x
}

// line returns row y as plain text with trailing blanks trimmed.
func (g *grid) line(y int) string {
	var b strings.Builder
	for x := 0; x < g.width; x++ {
		c := g.cells[y*g.width+x]
		if c.r == 0 {
			continue
		}
		b.WriteRune(c.r)
	}
	return strings.TrimRight(b.String(), " ")
}

// runs splits row y into maximal runs of equally styled cells. Trailing
// unstyled blanks are left out so a row never writes into the last column
// needlessly.
func (g *grid) runs(y int, fn func(text string, style Style)) {
	end := g.width
	for end > 0 {
		c := g.cells[y*g.width+end-1]
		if c.r != ' ' || c.style != StyleNormal {
			break
		}
		end--
	}

	var b strings.Builder
	current := StyleNormal
	for x := 0; x < end; x++ {
		c := g.cells[y*g.width+x]
		if c.r == 0 {
			continue
		}
		if c.style != current && b.Len() > 0 {
			fn(b.String(), current)
			b.Reset()
		}
		current = c.style
		b.WriteRune(c.r)
	}
	if b.Len() > 0 {
		fn(b.String(), current)
	}
}
