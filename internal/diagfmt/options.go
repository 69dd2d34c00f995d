// Package diagfmt renders compiler diagnostics and conversion results for
// people: the --debug caret view, the ignored and unhandled message blocks,
// per-file summaries and the JSON run report.
package diagfmt

import "github.com/fatih/color"

// Options configures rendering.
type Options struct {
	Color bool
	// Debug enables the caret view and the ignored-message blocks.
	// Unhandled messages are always shown.
	Debug bool
	// Path prefixes each caret header when several files share a stream.
	Path string
}

// paint returns a colour that honours enabled regardless of the global
// color.NoColor setting.
func paint(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
