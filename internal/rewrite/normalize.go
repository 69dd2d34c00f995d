package rewrite

import (
	"fltc/internal/diag"
	"fltc/internal/source"
	"fltc/internal/splice"
)

// JoinMultiline collapses every diagnostic that spans several lines onto its
// first line. All lines of the range are claimed, so the diagnostic itself
// is acted on only after the compiler reports it again against the merged
// line. Ranges that touch an already claimed line are left for the next
// pass. It returns the number of ranges merged.
func JoinMultiline(p *Pass, diags []diag.Diagnostic) int {
	merged := 0
	for i := range diags {
		lo, hi, ok := source.LineRange(diags[i].Locations)
		if !ok || lo == hi {
			continue
		}
		if anyClaimed(p.Claimed, lo, hi) {
			continue
		}
		if err := splice.MergeRange(p.Lines, p.Claimed, lo, hi); err != nil {
			continue
		}
		merged++
	}
	return merged
}

func anyClaimed(s *source.LineSet, lo, hi int) bool {
	for l := lo; l <= hi; l++ {
		if s.Has(l) {
			return true
		}
	}
	return false
}
