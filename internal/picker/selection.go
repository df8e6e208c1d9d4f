package picker

import (
	"cmp"
	"slices"
)

// Selection is the set of rows chosen in multi-select mode, keyed by identity.
// It lives for the whole picker run.
type Selection[K comparable] struct {
	items map[K]string
}

// NewSelection creates an empty selection.
func NewSelection[K comparable]() *Selection[K] {
	return &Selection[K]{items: make(map[K]string)}
}

// Toggle adds key when absent and removes it when present. It reports whether
// key is selected afterwards.
func (s *Selection[K]) Toggle(key K, label string) bool {
	if _, ok := s.items[key]; ok {
		delete(s.items, key)
		return false
	}
	s.items[key] = label
	return true
}

// Clear empties the selection.
func (s *Selection[K]) Clear() {
	clear(s.items)
}

// Contains reports whether key is selected.
func (s *Selection[K]) Contains(key K) bool {
	_, ok := s.items[key]
	return ok
}

// Len returns the number of selected rows.
func (s *Selection[K]) Len() int {
	return len(s.items)
}

// Items returns the selected rows sorted by order.
func (s *Selection[K]) Items(order func(a, b Selected[K]) int) []Selected[K] {
	out := make([]Selected[K], 0, len(s.items))
	for k, label := range s.items {
		out = append(out, Selected[K]{Key: k, Label: label})
	}
	slices.SortFunc(out, order)
	return out
}

// Labels returns the selected labels in lexical order.
func (s *Selection[K]) Labels() []string {
	out := make([]string, 0, len(s.items))
	for _, label := range s.items {
		out = append(out, label)
	}
	slices.Sort(out)
	return out
}

// ByLabel orders rows by label.
func ByLabel[K comparable](a, b Selected[K]) int {
	return cmp.Compare(a.Label, b.Label)
}
