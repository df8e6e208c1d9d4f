package picker

import "strings"

// Build assembles the display list for query. The parent row comes first,
// followed by matching directories, matching files, non-matching directories
// and non-matching files. Each group keeps the source order.
func Build[K comparable](src Source[K], query string) []Entry[K] {
	raw := src.Entries()
	display := make([]Entry[K], 0, len(raw)+1)

	if parent, ok := src.Parent(); ok {
		parent.Dir = true
		parent.Parent = true
		parent.Match = query == "" || query == ParentName
		display = append(display, parent)
	}

	queryLower := strings.ToLower(query)
	var groups [4][]Entry[K]
	for _, e := range raw {
		e.Match = e.Name.Matches(queryLower)
		g := 0
		if !e.Match {
			g = 2
		}
		if !e.Dir {
			g++
		}
		groups[g] = append(groups[g], e)
	}
	for _, g := range groups {
		display = append(display, g...)
	}
	return display
}

// firstMatch returns the index the cursor jumps to after the query changes:
// the first matching non-parent row, or the parent row when the query names
// it. It falls back to 0.
func firstMatch[K comparable](display []Entry[K], query string) int {
	if query == ParentName {
		for i, e := range display {
			if e.Parent {
				return i
			}
		}
	}
	for i, e := range display {
		if e.Match && !e.Parent {
			return i
		}
	}
	return 0
}
