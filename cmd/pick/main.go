// Package main is the entry point for the pick CLI
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amulcse/pick"
	"github.com/amulcse/pick/internal/config"
)

// Exit codes
const (
	exitOK        = 0
	exitCancelled = 1
	exitError     = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, pick.ErrCancelled):
		return exitCancelled
	default:
		fmt.Fprintf(stderr, "pick: %v\n", err)
		return exitError
	}
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	var opts pick.Options

	root := &cobra.Command{
		Use:           "pick",
		Short:         "Interactive terminal picker for files and lines",
		Long:          "pick shows a live-filtered list in the terminal and prints what you choose, one per line.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.Multi, "multi", "m", false, "select several entries (Space toggles, Ctrl-C clears)")
	flags.StringVarP(&opts.Prompt, "prompt", "p", "", "prompt shown before the query")
	flags.StringVar(&opts.Surface, "surface", "", "renderer: ansi or tcell")
	flags.StringVar(&opts.Keys, "keys", "", "replay a key script instead of reading the terminal")
	flags.IntVar(&opts.Width, "width", 0, "override terminal width")
	flags.IntVar(&opts.Height, "height", 0, "override terminal height")
	for _, name := range []string{"keys", "width", "height"} {
		_ = flags.MarkHidden(name)
	}

	root.AddCommand(
		newFileCmd(&opts),
		newObjectCmd(&opts, stdin),
		newVersionCmd(),
	)
	return root
}

func newFileCmd(opts *pick.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "file [dir]",
		Short: "Browse the filesystem and print the chosen paths",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := ""
			if len(args) == 1 {
				start = args[0]
			}
			paths, err := pick.File(start, *opts)
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), paths)
		},
	}
}

func newObjectCmd(opts *pick.Options, stdin io.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "object [item...]",
		Short: "Choose among the given items, or the lines of stdin, and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			items := args
			if len(items) == 0 {
				var err error
				if items, err = readLines(stdin); err != nil {
					return err
				}
			}
			chosen, err := pick.Object(items, func(s string) string { return s }, *opts)
			if err != nil {
				return err
			}
			return printLines(cmd.OutOrStdout(), chosen)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			if config.BuildTime != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "pick %s (built %s)\n", config.Version, config.BuildTime)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "pick %s\n", config.Version)
			}
		},
	}
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return lines, nil
}

func printLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
