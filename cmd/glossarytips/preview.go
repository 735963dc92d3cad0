package main

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/alnah/go-glossary/internal/course"
)

// previewStyle is the chroma style used for terminal output.
const previewStyle = "monokai"

// newPreviewHook returns a change hook that prints each enriched body to w,
// syntax highlighted unless color is false.
func newPreviewHook(w io.Writer, color bool) func(course.Change) {
	formatter := "terminal256"
	if !color {
		formatter = "noop"
	}

	return func(c course.Change) {
		fmt.Fprintf(w, "--- %s (%s): %d added, %d refreshed\n", c.Title, c.URL, c.Added, c.Refreshed)
		if err := quick.Highlight(w, c.After, "html", formatter, previewStyle); err != nil {
			// Highlighting is cosmetic; fall back to the raw body
			fmt.Fprint(w, c.After)
		}
		fmt.Fprintln(w)
	}
}
