// Package rewrite turns classified diagnostics into line edits.
//
// Each action resolves the diagnostic's locations, refuses to touch a line
// another action already claimed this pass, and either edits, merges an
// adjacent line for the next pass, or reports the diagnostic as unhandled.
package rewrite

import (
	"fltc/internal/classify"
	"fltc/internal/diag"
	"fltc/internal/source"
)

// Apply performs the action selected by r for d.
func Apply(p *Pass, d *diag.Diagnostic, r classify.Result) (Outcome, error) {
	switch {
	case r.Inert:
		return Inert, nil
	case r.Category == classify.Ignored:
		return Ignored, nil
	case r.Category == classify.Unhandled:
		return unhandled("no rule matches %q", d.Message)
	}

	if lo, hi, ok := source.LineRange(d.Locations); ok && anyClaimed(p.Claimed, lo, hi) {
		return Claimed, nil
	}
	exts, err := source.ResolveAll(d.Locations)
	if err != nil {
		return unhandled("%v", err)
	}
	for _, e := range exts {
		if !p.Lines.Valid(e.Line) {
			return unhandled("line %d is outside the buffer", e.Line+1)
		}
		if e.End >= len(p.Lines.At(e.Line)) {
			return unhandled("column %d is past the end of line %d", e.End+1, e.Line+1)
		}
	}

	switch r.Category {
	case classify.NonConstantInitializer:
		return foldInitializer(p, exts)
	case classify.InvalidInitializer:
		return unhandled("invalid initializer")
	case classify.Extension:
		return extension(p, exts)
	case classify.UnaryMinus:
		return unaryMinus(p, exts)
	case classify.UnaryPlus:
		return unaryPlus(p, exts)
	case classify.Increment:
		return step(p, exts, "increment")
	case classify.Decrement:
		return step(p, exts, "decrement")
	case classify.CastToFLT:
		return removeCast(p, exts, fltCast)
	case classify.CastToInteger:
		return removeCast(p, exts, integerCast)
	case classify.Arithmetic:
		return binary(p, exts, arithmetic)
	case classify.Comparison:
		return binary(p, exts, comparison)
	case classify.FirstOperand:
		return firstOperand(p, exts)
	case classify.SecondOperand:
		return secondOperand(p, exts)
	case classify.AssignToInteger:
		return assignment(p, exts, "flt_ftol")
	case classify.AssignToFLT:
		return assignment(p, exts, "flt_ltof")
	case classify.IncompatibleArgument:
		return argument(p, exts)
	case classify.PrintfFormat:
		return printfArgument(p, exts)
	case classify.ScanfFormat:
		return scanfArgument(p, exts)
	case classify.ConflictingBuiltin:
		return conflictingBuiltin(p, d, exts)
	}
	return unhandled("no action for category %s", r.Category)
}

func expectLocations(exts []source.Extent, n int) error {
	if len(exts) != n {
		_, err := unhandled("expected %d location(s), got %d", n, len(exts))
		return err
	}
	return nil
}
