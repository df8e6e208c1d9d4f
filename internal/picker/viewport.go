package picker

// Scroll returns the scroll offset that keeps cursor inside a window of rows
// starting at scroll. A window without rows is treated as a single row, so the
// offset stays meaningful until the geometry recovers.
func Scroll(cursor, scroll, rows int) int {
	if rows < 1 {
		rows = 1
	}
	switch {
	case cursor < scroll:
		return cursor
	case cursor >= scroll+rows:
		return cursor - rows + 1
	}
	return scroll
}

// Visible returns the slice of items shown in a window of rows at scroll.
func Visible[T any](items []T, scroll, rows int) []T {
	if rows <= 0 || scroll < 0 || scroll >= len(items) {
		return nil
	}
	return items[scroll:min(scroll+rows, len(items))]
}
