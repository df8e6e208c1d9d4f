package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/cancelreader"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ANSI escape sequences
const (
	ansiClearEOL      = "\x1b[K"
	ansiClearScreen   = "\x1b[2J"
	ansiHome          = "\x1b[H"
	ansiHide          = "\x1b[?25l"
	ansiShow          = "\x1b[?25h"
	ansiCursorBlink   = "\x1b[1 q"
	ansiCursorDefault = "\x1b[0 q"
	ansiAltScreenOn   = "\x1b[?1049h"
	ansiAltScreenOff  = "\x1b[?1049l"
	ansiReset         = "\x1b[0m"
)

// ErrNotTerminal is returned by Init when no interactive terminal is available.
var ErrNotTerminal = errors.New("an interactive terminal is required")

// TerminalOptions configures a Terminal.
type TerminalOptions struct {
	// Colors enables colored output. Reverse video for the cursor row is
	// drawn either way when the terminal supports it.
	Colors bool

	// Width and Height override the reported geometry when positive.
	Width  int
	Height int
}

// Terminal draws on the controlling terminal with raw ANSI sequences.
// Input is read from /dev/tty when it can be opened, so stdin and stdout stay
// free for data; otherwise stdin and stderr are used.
type Terminal struct {
	opts TerminalOptions

	in       *os.File
	out      *os.File
	tty      *os.File
	oldState *term.State
	reader   cancelreader.CancelReader

	styles [StyleCursor << 1]lipgloss.Style

	frame   grid
	cursorX int
	cursorY int

	events     chan Event
	done       chan struct{}
	stopSignal func()

	once        sync.Once
	initialized bool
}

// NewTerminal creates a Terminal. Nothing is acquired until Init.
func NewTerminal(opts TerminalOptions) *Terminal {
	return &Terminal{
		opts:   opts,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

// Init puts the terminal in raw mode and switches to the alternate screen.
func (t *Terminal) Init() error {
	t.in, t.out = os.Stdin, os.Stderr
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		t.tty = tty
		t.in, t.out = tty, tty
	}

	if !term.IsTerminal(int(t.in.Fd())) || !term.IsTerminal(int(t.out.Fd())) {
		t.closeTTY()
		return ErrNotTerminal
	}

	reader, err := cancelreader.NewReader(t.in)
	if err != nil {
		t.closeTTY()
		return fmt.Errorf("open input reader: %w", err)
	}
	t.reader = reader

	oldState, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		t.reader.Close()
		t.closeTTY()
		return fmt.Errorf("enter raw mode: %w", err)
	}
	t.oldState = oldState
	t.initialized = true

	t.initStyles(t.out)

	fmt.Fprint(t.out, ansiAltScreenOn+ansiClearScreen+ansiHome+ansiCursorBlink)
	t.out.Sync()

	t.stopSignal = watchSignals(func() {
		select {
		case t.events <- Event{Key: KeyResize}:
		default:
		}
	}, func(sig os.Signal) {
		t.Fini()
		os.Exit(exitCode(sig))
	})

	go t.readLoop()
	return nil
}

func (t *Terminal) initStyles(w io.Writer) {
	renderer := lipgloss.NewRenderer(w, termenv.WithColorCache(true))
	for i := range t.styles {
		t.styles[i] = lipglossStyle(renderer, Style(i), t.opts.Colors)
	}
}

// lipglossStyle maps a Style to its terminal rendering.
func lipglossStyle(r *lipgloss.Renderer, s Style, colors bool) lipgloss.Style {
	st := r.NewStyle()
	if colors {
		switch {
		case s&StyleSelected != 0 && s&StyleDir != 0:
			st = st.Foreground(lipgloss.Color("6")).Background(lipgloss.Color("4"))
		case s&StyleSelected != 0:
			st = st.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
		case s&StyleDim != 0:
			st = st.Foreground(lipgloss.Color("8"))
		case s&StyleDir != 0:
			st = st.Foreground(lipgloss.Color("6"))
		}
	}
	if s&StyleCursor != 0 {
		st = st.Reverse(true)
	}
	return st
}

// Fini leaves raw mode and the alternate screen.
func (t *Terminal) Fini() {
	t.once.Do(func() {
		if !t.initialized {
			return
		}
		if t.stopSignal != nil {
			t.stopSignal()
		}
		t.stopInput()

		fmt.Fprint(t.out, ansiReset+ansiShow+ansiCursorDefault+ansiAltScreenOff)
		t.out.Sync()

		if t.oldState != nil {
			term.Restore(int(t.in.Fd()), t.oldState)
		}
		t.reader.Close()
		t.closeTTY()
	})
}

func (t *Terminal) closeTTY() {
	if t.tty != nil {
		t.tty.Close()
		t.tty = nil
	}
}

// stopInput ends readLoop whether it waits on a read or on a full queue.
func (t *Terminal) stopInput() {
	close(t.done)
	t.reader.Cancel()
}

func (t *Terminal) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := t.reader.Read(buf)
		if n > 0 {
			for _, ev := range Decode(buf[:n]) {
				if !t.send(ev) {
					return
				}
			}
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) {
				// Input is gone; there is nothing left to pick with.
				t.send(Event{Key: KeyCancel})
			}
			return
		}
	}
}

// send queues ev for PollEvent. It reports false once input has stopped.
func (t *Terminal) send(ev Event) bool {
	select {
	case t.events <- ev:
		return true
	case <-t.done:
		return false
	}
}

// Size returns the terminal geometry, honoring the configured overrides.
func (t *Terminal) Size() (width, height int) {
	width, height = t.opts.Width, t.opts.Height
	if width > 0 && height > 0 {
		return width, height
	}
	w, h := 80, 24
	if t.out != nil {
		if tw, th, err := term.GetSize(int(t.out.Fd())); err == nil {
			w, h = tw, th
		}
	}
	if width <= 0 {
		width = w
	}
	if height <= 0 {
		height = h
	}
	return width, height
}

// Clear blanks the pending frame and resizes it to the current geometry.
func (t *Terminal) Clear() {
	t.frame.resize(t.Size())
	t.frame.clear()
}

func (t *Terminal) DrawText(x, y int, text string, style Style) int {
	return t.frame.put(x, y, text, style)
}

func (t *Terminal) ShowCursor(x, y int) {
	t.cursorX, t.cursorY = x, y
}

// Show writes the whole frame with a single write.
func (t *Terminal) Show() {
	if !t.initialized {
		return
	}
	io.WriteString(t.out, t.render())
}

func (t *Terminal) render() string {
	var out strings.Builder
	out.WriteString(ansiHide)
	out.WriteString(ansiHome)
	for y := 0; y < t.frame.height; y++ {
		fmt.Fprintf(&out, "\x1b[%d;1H", y+1)
		t.frame.runs(y, func(text string, style Style) {
			if style == StyleNormal {
				out.WriteString(text)
				return
			}
			out.WriteString(t.styles[style].Render(text))
		})
		out.WriteString(ansiReset + ansiClearEOL)
	}
	fmt.Fprintf(&out, "\x1b[%d;%dH", t.cursorY+1, t.cursorX+1)
	out.WriteString(ansiShow)
	return out.String()
}

// PollEvent blocks until the next key or resize.
func (t *Terminal) PollEvent() Event {
	return <-t.events
}
