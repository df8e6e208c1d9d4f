// Package picker implements the interactive list picker: the display list
// builder, the viewport, the selection set and the key-driven state machine,
// plus the file and object shells that wire them to a tui.Screen.
package picker

import "github.com/amulcse/pick/internal/match"

// ParentName is the display name of the parent navigation row.
const ParentName = ".."

// Entry is one display row. Key is the identity used for selection; Name is
// the display text and never identifies the row.
type Entry[K comparable] struct {
	Key    K
	Name   match.Item
	Dir    bool
	Parent bool
	Match  bool
}

// Source supplies the raw rows a picker filters.
type Source[K comparable] interface {
	// Entries returns the rows of the current listing in natural order,
	// without the parent row.
	Entries() []Entry[K]

	// Parent returns the parent navigation row, if the listing has one.
	Parent() (Entry[K], bool)

	// Enter makes a directory row the current listing.
	Enter(e Entry[K])
}

// Selected is a chosen row: its identity and the label shown for it.
type Selected[K comparable] struct {
	Key   K
	Label string
}
