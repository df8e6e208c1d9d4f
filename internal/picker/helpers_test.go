package picker

import (
	"path"

	"github.com/amulcse/pick/internal/match"
)

// treeSource is an in-memory directory tree rooted at "/".
type treeSource struct {
	cwd     string
	tree    map[string][]Entry[string]
	entered []string
}

func newTree(cwd string, tree map[string][]Entry[string]) *treeSource {
	return &treeSource{cwd: cwd, tree: tree}
}

func (t *treeSource) Entries() []Entry[string] {
	return t.tree[t.cwd]
}

func (t *treeSource) Parent() (Entry[string], bool) {
	if t.cwd == "/" {
		return Entry[string]{}, false
	}
	return Entry[string]{Key: path.Dir(t.cwd), Name: match.New(ParentName)}, true
}

func (t *treeSource) Enter(e Entry[string]) {
	t.cwd = e.Key
	t.entered = append(t.entered, e.Key)
}

func fileAt(dir, name string) Entry[string] {
	return Entry[string]{Key: path.Join(dir, name), Name: match.New(name)}
}

func dirAt(dir, name string) Entry[string] {
	return Entry[string]{Key: path.Join(dir, name), Name: match.New(name), Dir: true}
}

func names[K comparable](entries []Entry[K]) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name.Text
	}
	return out
}

func labels[K comparable](chosen []Selected[K]) []string {
	out := make([]string, len(chosen))
	for i, c := range chosen {
		out[i] = c.Label
	}
	return out
}
