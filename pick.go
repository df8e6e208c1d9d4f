// Package pick provides interactive terminal pickers: a filesystem browser
// that returns chosen paths, and a picker over any slice of values.
package pick

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/amulcse/pick/internal/config"
	"github.com/amulcse/pick/internal/logging"
	"github.com/amulcse/pick/internal/picker"
	"github.com/amulcse/pick/internal/tui"
)

var (
	// ErrCancelled is returned when the user leaves a picker without choosing.
	ErrCancelled = picker.ErrCancelled

	// ErrNoItems is returned by Object for an empty collection.
	ErrNoItems = picker.ErrNoItems
)

// Options tunes a picker. Zero values fall back to the user configuration.
type Options struct {
	// Multi enables multi-select: Space toggles files, Ctrl-C clears.
	Multi bool

	// Prompt is shown before the query.
	Prompt string

	// Surface selects the renderer, "ansi" or "tcell".
	Surface string

	// Keys replays a key script instead of reading the terminal, using the
	// same syntax as the --keys flag (UP,DOWN,TYPE=abc,ENTER or raw bytes).
	// The picker cancels when the script runs out.
	Keys string

	// Width and Height override the terminal geometry.
	Width  int
	Height int

	// Logger receives debug logs. Defaults to the configured log file.
	Logger *slog.Logger
}

// File lets the user browse from startDir and returns the canonical paths of
// the chosen files, sorted. A startDir that is empty or not a directory falls
// back to the working directory.
func File(startDir string, opts Options) ([]string, error) {
	env, err := setup(opts)
	if err != nil {
		return nil, err
	}
	defer env.close()

	prompt := opts.Prompt
	if prompt == "" {
		prompt = env.cfg.Prompts.File
	}
	return picker.PickFile(env.screen, startDir, picker.Options{
		Multi:  opts.Multi,
		Prompt: prompt,
		Hidden: env.cfg.Hidden,
		Logger: env.logger,
	})
}

// Object lets the user choose among items, each shown as display(item), and
// returns the chosen items ordered by display text. Items with equal text
// stay distinct and keep their relative order.
//
// Pointers, maps and channels are told apart by reference: one listed more
// than once comes back once. Other values are told apart by their position
// in items, so equal values listed twice can both be returned.
func Object[T any](items []T, display func(T) string, opts Options) ([]T, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if display == nil {
		display = func(item T) string { return fmt.Sprint(item) }
	}

	env, err := setup(opts)
	if err != nil {
		return nil, err
	}
	defer env.close()

	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = display(item)
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = env.cfg.Prompts.Object
	}
	indexes, err := picker.PickObject(env.screen, labels, picker.Options{
		Multi:  opts.Multi,
		Prompt: prompt,
		Logger: env.logger,
	})
	if err != nil {
		return nil, err
	}

	chosen := make([]T, 0, len(indexes))
	seen := make(map[reference]bool)
	for _, idx := range indexes {
		if ref, ok := referenceOf(items[idx]); ok {
			if seen[ref] {
				continue
			}
			seen[ref] = true
		}
		chosen = append(chosen, items[idx])
	}
	return chosen, nil
}

// reference identifies what a reference-kind value points at.
type reference struct {
	typ  reflect.Type
	addr uintptr
}

func referenceOf(item any) (reference, bool) {
	v := reflect.ValueOf(item)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return reference{typ: v.Type(), addr: v.Pointer()}, true
	}
	return reference{}, false
}

// environment is what one picker run needs besides its data.
type environment struct {
	cfg      *config.Config
	logger   *slog.Logger
	screen   tui.Screen
	closeLog func() error
}

func (e *environment) close() {
	e.closeLog()
}

func setup(opts Options) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Surface != "" {
		cfg.Surface = opts.Surface
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if opts.Width > 0 {
		cfg.Width = opts.Width
	}
	if opts.Height > 0 {
		cfg.Height = opts.Height
	}

	env := &environment{cfg: cfg, logger: opts.Logger, closeLog: func() error { return nil }}
	if env.logger == nil {
		logger, closeLog, err := logging.New(cfg.Log)
		if err != nil {
			return nil, err
		}
		env.logger, env.closeLog = logger, closeLog
	}

	env.screen = newScreen(cfg, opts.Keys)
	env.logger.Debug("picker starting", "surface", cfg.Surface, "scripted", opts.Keys != "")
	return env, nil
}

func newScreen(cfg *config.Config, keys string) tui.Screen {
	if keys != "" {
		width, height := cfg.Width, cfg.Height
		if width <= 0 {
			width = 80
		}
		if height <= 0 {
			height = 24
		}
		return tui.NewScript(width, height, tui.ParseKeys(keys)...)
	}
	if cfg.Surface == config.SurfaceTcell {
		return tui.NewTcell(cfg.Colors)
	}
	return tui.NewTerminal(tui.TerminalOptions{
		Colors: cfg.Colors,
		Width:  cfg.Width,
		Height: cfg.Height,
	})
}
