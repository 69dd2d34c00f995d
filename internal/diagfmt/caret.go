package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fltc/internal/diag"
	"fltc/internal/driver"
	"fltc/internal/rewrite"
	"fltc/internal/source"
)

// Caret writes the debug view of d. Every location whose line is present in
// src prints as a header, the line and an underline: dots up to the token
// and stars across it.
//
//	line 3 - wrong type argument to unary minus
//	  return -y;
//	.........*
//
// Columns are bytes, the underline is laid out by display width so wide
// runes stay aligned. Tabs are copied through.
func Caret(w io.Writer, d *diag.Diagnostic, src map[int]string, opts Options) {
	header := paint(opts.Color, color.FgCyan)
	mark := paint(opts.Color, color.FgRed, color.Bold)
	for _, loc := range d.Locations {
		ext, err := source.Resolve(loc)
		if err != nil {
			continue
		}
		line, ok := src[ext.Line]
		if !ok {
			continue
		}
		label := fmt.Sprintf("line %d", ext.Line+1)
		if opts.Path != "" {
			label = opts.Path + ": " + label
		}
		lead, stars := Underline(line, ext.Start, ext.End)
		fmt.Fprintf(w, "%s - %s\n%s\n%s%s\n", header.Sprint(label), d.Message, line, lead, mark.Sprint(stars))
	}
}

// Underline returns the dotted lead and the starred span for the inclusive
// byte range [start, end] of line. The span is at least one column wide.
func Underline(line string, start, end int) (lead, stars string) {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	var b strings.Builder
	prefix := line[:min(start, len(line))]
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(".", runewidth.RuneWidth(r)))
	}
	if start > len(line) {
		b.WriteString(strings.Repeat(".", start-len(line)))
	}

	width := 0
	if start < len(line) {
		width = runewidth.StringWidth(line[start:min(end+1, len(line))])
	}
	if overhang := end + 1 - max(len(line), start); overhang > 0 {
		width += overhang
	}
	return b.String(), strings.Repeat("*", max(width, 1))
}

// Ignored writes the block shown for a diagnostic that is benign and never
// edits.
func Ignored(w io.Writer, d *diag.Diagnostic, opts Options) {
	tag := paint(opts.Color, color.FgYellow, color.Bold)
	fmt.Fprintf(w, "%s\n%s\n", tag.Sprint("*** WARNING: ignored message ***"), diag.FormatShort([]diag.Diagnostic{*d}, true))
}

// Unhandled writes the block shown for a diagnostic no rewrite could act on.
func Unhandled(w io.Writer, d *diag.Diagnostic, err error, opts Options) {
	tag := paint(opts.Color, color.FgRed, color.Bold)
	fmt.Fprintf(w, "%s\n%s\n", tag.Sprint("*** ERROR: unhandled message ***"), diag.FormatShort([]diag.Diagnostic{*d}, true))
	if err != nil {
		fmt.Fprintf(w, "reason: %v\n", err)
	}
}

// Event renders one driver diagnostic event. Lines an earlier diagnostic of
// the same pass already edited are not shown again.
func Event(w io.Writer, ev *driver.DiagnosticEvent, opts Options) {
	if opts.Debug && ev.Outcome != rewrite.Claimed {
		Caret(w, ev.Diagnostic, ev.Source, opts)
	}
	switch ev.Outcome {
	case rewrite.Ignored:
		if opts.Debug {
			Ignored(w, ev.Diagnostic, opts)
		}
	case rewrite.Unhandled:
		Unhandled(w, ev.Diagnostic, ev.Err, opts)
	}
}
