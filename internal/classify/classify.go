// Package classify maps compiler diagnostics onto rewrite categories.
package classify

import (
	"golang.org/x/text/unicode/norm"

	"fltc/internal/diag"
)

// Result is the classifier's verdict for one diagnostic.
type Result struct {
	Category Category
	// Inert is set when the category is recognized but not active in the
	// phase the diagnostic was reported in.
	Inert bool
}

// Drives reports whether the result should reach a rewrite action.
func (r Result) Drives() bool {
	return !r.Inert && r.Category != Ignored
}

// Classify picks the category for d. Notes never drive an edit. Exact message
// matches are tried before the ordered pattern rules.
func Classify(d *diag.Diagnostic, phase Phase) Result {
	if d.Kind == diag.KindNote {
		return Result{Category: Ignored}
	}
	// Identifiers are echoed byte for byte, so a decomposed é in the source
	// arrives as e plus a combining mark, which \p{L} does not match.
	msg := norm.NFC.String(d.Message)
	cat := match(msg, d.Kind)
	return Result{Category: cat, Inert: !cat.ActiveIn(phase)}
}

func match(msg string, kind diag.Kind) Category {
	if cat, ok := exact[msg]; ok {
		return cat
	}
	for _, r := range rules {
		if r.warningOnly && kind == diag.KindError {
			continue
		}
		if r.re.MatchString(msg) {
			return r.cat
		}
	}
	return Unhandled
}
