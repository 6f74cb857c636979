package viewer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// DefaultWidth is used when the output width is unknown.
const DefaultWidth = 80

// Render writes v as plain text, wrapping topic text to width columns.
func Render(w io.Writer, v View, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	var b strings.Builder
	switch v.State {
	case StateCatalog:
		fmt.Fprintf(&b, "%s\n\n", v.Heading)
		for i, title := range v.Titles {
			fmt.Fprintf(&b, "%2d. %s\n", i+1, title)
		}
	case StateDetail:
		fmt.Fprintf(&b, "%s\n\n", v.Topic.Title)
		if v.Topic.Text != "" {
			b.WriteString(wordwrap.WrapString(v.Topic.Text, uint(width)))
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
