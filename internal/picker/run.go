package picker

import (
	"errors"
	"fmt"

	"github.com/amulcse/pick/internal/tui"
)

var (
	// ErrCancelled is returned when the user leaves the picker without choosing.
	ErrCancelled = errors.New("selection cancelled")

	// ErrNoItems is returned when there is nothing to pick from.
	ErrNoItems = errors.New("no items to pick from")
)

// Run acquires screen, drives m until it finishes and releases the screen on
// every exit path. header is called for every frame to build the prompt line.
func Run[K comparable](screen tui.Screen, m *Machine[K], header func() string) ([]Selected[K], error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	for {
		_, height := screen.Size()
		m.SetRows(ListRows(height))
		Render(screen, m, header())

		switch m.Step(screen.PollEvent()) {
		case Confirmed:
			return m.Result(), nil
		case Cancelled:
			return nil, ErrCancelled
		}
	}
}
