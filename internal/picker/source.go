package picker

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/amulcse/pick/internal/config"
	"github.com/amulcse/pick/internal/match"
)

// DirSource lists the children of a working directory. Rows are keyed by
// their canonical path so a selection survives navigation.
type DirSource struct {
	dir     string
	hidden  bool
	logger  *slog.Logger
	entries []Entry[string]
}

// NewDirSource opens a listing at start. A start that is empty, missing or
// not a directory falls back to the current working directory.
func NewDirSource(start string, hidden bool, logger *slog.Logger) *DirSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &DirSource{hidden: hidden, logger: logger}
	s.dir = s.startDir(start)
	s.load()
	return s
}

func (s *DirSource) startDir(start string) string {
	if start != "" {
		path := config.ExpandPath(start)
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			return canonical(path)
		}
		s.logger.Debug("start directory unusable, using working directory", "path", start, "error", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		s.logger.Debug("working directory unavailable", "error", err)
		return string(filepath.Separator)
	}
	return canonical(wd)
}

// Dir returns the resolved working directory.
func (s *DirSource) Dir() string {
	return s.dir
}

func (s *DirSource) Entries() []Entry[string] {
	return s.entries
}

func (s *DirSource) Parent() (Entry[string], bool) {
	parent := filepath.Dir(s.dir)
	if parent == s.dir {
		return Entry[string]{}, false
	}
	return Entry[string]{Key: parent, Name: match.New(ParentName), Dir: true}, true
}

func (s *DirSource) Enter(e Entry[string]) {
	s.dir = e.Key
	s.load()
}

// load reads the working directory. Only directories and regular files are
// listed, with symlinks followed. A listing that cannot be read is empty.
func (s *DirSource) load() {
	s.entries = nil
	children, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Debug("cannot list directory", "dir", s.dir, "error", err)
		return
	}

	for _, child := range children {
		name := child.Name()
		if !s.hidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(s.dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			continue
		}
		s.entries = append(s.entries, Entry[string]{
			Key:  canonical(path),
			Name: match.New(name),
			Dir:  info.IsDir(),
		})
	}
}

// canonical resolves path to an absolute, symlink-free form. It returns the
// absolute path when resolution fails.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// SliceSource lists a fixed collection keyed by position.
type SliceSource struct {
	entries []Entry[int]
}

// NewSliceSource creates a source over display labels. Escape sequences and
// line breaks are removed so every label fits on one row.
func NewSliceSource(labels []string) *SliceSource {
	s := &SliceSource{entries: make([]Entry[int], len(labels))}
	for i, label := range labels {
		s.entries[i] = Entry[int]{Key: i, Name: match.New(Sanitize(label))}
	}
	return s
}

func (s *SliceSource) Entries() []Entry[int] {
	return s.entries
}

func (s *SliceSource) Parent() (Entry[int], bool) {
	return Entry[int]{}, false
}

// Enter is a no-op: a flat collection has no directories.
func (s *SliceSource) Enter(Entry[int]) {}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// Sanitize makes text safe to draw on a single row.
func Sanitize(text string) string {
	return ansi.Strip(lineBreaks.Replace(text))
}
