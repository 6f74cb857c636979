package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/therealolds/Tai/internal/viewer"
)

func newModenaCmd() *cobra.Command {
	var (
		interactive bool
		width       int
	)
	cmd := &cobra.Command{
		Use:   "modena [topic]",
		Short: "Browse the Made in Modena notes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if width <= 0 {
				width = terminalWidth(out)
			}
			v := viewer.New(viewer.Modena)
			if len(args) == 1 {
				if err := v.Select(args[0]); err != nil {
					return err
				}
			}
			if interactive {
				return browse(cmd.InOrStdin(), out, v, width)
			}
			return viewer.Render(out, v.View(), width)
		},
	}
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Navigate topics from standard input")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width in columns (default: terminal width)")
	return cmd
}

// browse runs the interactive loop: a number opens a topic, "b" goes back
// to the catalog, "q" or end of input quits. Titles are accepted too.
func browse(in io.Reader, out io.Writer, v *viewer.Viewer, width int) error {
	sc := bufio.NewScanner(in)
	for {
		if err := viewer.Render(out, v.View(), width); err != nil {
			return err
		}
		if v.View().State == viewer.StateDetail {
			fmt.Fprint(out, "\n[b] back  [q] quit\n")
		}
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		line := strings.TrimSpace(sc.Text())
		var err error
		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit":
			return nil
		case "b", "back":
			v.Back()
			continue
		}
		if n, convErr := strconv.Atoi(line); convErr == nil {
			err = v.SelectIndex(n - 1)
		} else {
			err = v.Select(line)
		}
		if err != nil {
			fmt.Fprintf(out, "%v\n\n", err)
		}
	}
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return viewer.DefaultWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return viewer.DefaultWidth
	}
	return cols
}
