package picker

import (
	"cmp"
	"log/slog"
	"strings"

	"github.com/amulcse/pick/internal/tui"
)

// Options configures a picker shell.
type Options struct {
	Multi  bool
	Prompt string

	// Hidden lists entries whose name starts with a dot.
	Hidden bool

	Logger *slog.Logger
}

// PickFile browses the filesystem from start and returns the canonical paths
// of the chosen files, sorted.
func PickFile(screen tui.Screen, start string, opts Options) ([]string, error) {
	src := NewDirSource(start, opts.Hidden, opts.Logger)
	m := NewMachine[string](src, opts.Multi, byKey[string], opts.Logger)

	header := func() string {
		return opts.Prompt + strings.TrimSuffix(src.Dir(), "/") + "/" + m.Query()
	}
	chosen, err := Run(screen, m, header)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(chosen))
	for i, c := range chosen {
		paths[i] = c.Key
	}
	return paths, nil
}

// PickObject lets the user choose among labels and returns the positions of
// the chosen labels, ordered by label and then position.
func PickObject(screen tui.Screen, labels []string, opts Options) ([]int, error) {
	if len(labels) == 0 {
		return nil, ErrNoItems
	}
	m := NewMachine[int](NewSliceSource(labels), opts.Multi, byLabelThenKey, opts.Logger)

	header := func() string {
		return opts.Prompt + m.Query()
	}
	chosen, err := Run(screen, m, header)
	if err != nil {
		return nil, err
	}

	indexes := make([]int, len(chosen))
	for i, c := range chosen {
		indexes[i] = c.Key
	}
	return indexes, nil
}

func byKey[K cmp.Ordered](a, b Selected[K]) int {
	return cmp.Compare(a.Key, b.Key)
}

func byLabelThenKey(a, b Selected[int]) int {
	return cmp.Or(cmp.Compare(a.Label, b.Label), cmp.Compare(a.Key, b.Key))
}
