package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown on the terminal. When stdout is not a
// terminal, or rendering fails, the raw markdown is printed instead so
// the output stays pipeable.
func printMarkdown(text string) {
	if fi, err := os.Stdout.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		fmt.Print(text)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(text)
		return
	}
	out, err := r.Render(text)
	if err != nil {
		fmt.Print(text)
		return
	}
	fmt.Print(out)
}
