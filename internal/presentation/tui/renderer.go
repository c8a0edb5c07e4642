package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// When the terminal cannot be styled the raw markdown passes through.
func NewRenderer() func(string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	return func(markdown string) string {
		if err != nil || r == nil {
			return markdown
		}
		out, rerr := r.Render(markdown)
		if rerr != nil {
			return markdown
		}
		return out
	}
}
