package tui

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Tcell draws through a tcell screen.
type Tcell struct {
	colors bool
	screen tcell.Screen

	stopSignal func()
	once       sync.Once
}

// NewTcell creates a tcell-backed surface. Nothing is acquired until Init.
func NewTcell(colors bool) *Tcell {
	return &Tcell{colors: colors}
}

func (t *Tcell) Init() error {
	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		t.screen = nil
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.SetStyle(tcell.StyleDefault)

	// tcell reports resizes itself
	t.stopSignal = watchSignals(nil, func(sig os.Signal) {
		t.Fini()
		os.Exit(exitCode(sig))
	})
	return nil
}

func (t *Tcell) Fini() {
	t.once.Do(func() {
		if t.screen == nil {
			return
		}
		if t.stopSignal != nil {
			t.stopSignal()
		}
		t.screen.Fini()
	})
}

func (t *Tcell) Size() (width, height int) {
	return t.screen.Size()
}

func (t *Tcell) Clear() {
	t.screen.Clear()
}

func (t *Tcell) DrawText(x, y int, text string, style Style) int {
	width, height := t.screen.Size()
	if y < 0 || y >= height || x < 0 {
		return 0
	}
	st := t.style(style)
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > width {
			break
		}
		t.screen.SetContent(col, y, r, nil, st)
		col += w
	}
	return col - x
}

func (t *Tcell) style(s Style) tcell.Style {
	st := tcell.StyleDefault
	if t.colors {
		switch {
		case s&StyleSelected != 0 && s&StyleDir != 0:
			st = st.Foreground(tcell.ColorTeal).Background(tcell.ColorNavy)
		case s&StyleSelected != 0:
			st = st.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
		case s&StyleDim != 0:
			st = st.Foreground(tcell.ColorGray)
		case s&StyleDir != 0:
			st = st.Foreground(tcell.ColorTeal)
		}
	}
	if s&StyleCursor != 0 {
		st = st.Reverse(true)
	}
	return st
}

func (t *Tcell) ShowCursor(x, y int) {
	t.screen.ShowCursor(x, y)
}

func (t *Tcell) Show() {
	t.screen.Show()
}

func (t *Tcell) PollEvent() Event {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			// Screen finalized
			return Event{Key: KeyCancel}
		case *tcell.EventResize:
			t.screen.Sync()
			return Event{Key: KeyResize}
		case *tcell.EventKey:
			if e := tcellKey(ev); e.Key != KeyNone {
				return e
			}
		}
	}
}

func tcellKey(ev *tcell.EventKey) Event {
	switch ev.Key() {
	case tcell.KeyEscape:
		return Event{Key: KeyCancel}
	case tcell.KeyUp, tcell.KeyCtrlP:
		return Event{Key: KeyUp}
	case tcell.KeyDown, tcell.KeyCtrlN:
		return Event{Key: KeyDown}
	case tcell.KeyTab:
		return Event{Key: KeyTab}
	case tcell.KeyEnter:
		return Event{Key: KeyEnter}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Key: KeyBackspace}
	case tcell.KeyCtrlC:
		return Event{Key: KeyClear}
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			return Event{}
		}
		if ev.Rune() == ' ' {
			return Event{Key: KeySpace}
		}
		return Rune(ev.Rune())
	}
	return Event{}
}
