package diag

import (
	"fmt"
	"strings"

	"fltc/internal/source"
)

// FormatShort renders diagnostics one per line as
// "<kind> <line>:<start>-<end> <message>", columns 1-based and inclusive.
// Locations that cannot be resolved print as "?". Children are indented
// beneath their parent when includeNotes is set.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	var b strings.Builder
	for i := range diags {
		writeShort(&b, &diags[i], "", includeNotes)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeShort(b *strings.Builder, d *Diagnostic, indent string, includeNotes bool) {
	fmt.Fprintf(b, "%s%s %s %s\n", indent, d.Kind, locationLabel(d.Locations), sanitizeMessage(d.Message))
	if !includeNotes {
		return
	}
	for i := range d.Children {
		writeShort(b, &d.Children[i], indent+"  ", includeNotes)
	}
}

func locationLabel(locs []source.Location) string {
	if len(locs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(locs))
	for _, loc := range locs {
		ext, err := source.Resolve(loc)
		if err != nil {
			parts = append(parts, "?")
			continue
		}
		parts = append(parts, fmt.Sprintf("%d:%d-%d", ext.Line+1, ext.Start+1, ext.End+1))
	}
	return strings.Join(parts, ",")
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
