package splice

import (
	"errors"
	"fmt"
	"strings"

	"fltc/internal/source"
)

// ErrNoAdjacent is returned when a merge would reach past either end of the
// buffer.
var ErrNoAdjacent = errors.New("no adjacent line to merge")

// MergeNext appends the trimmed text of line i+1 to line i with a single
// space, blanks line i+1 and claims both lines.
func MergeNext(lines *source.Lines, claimed *source.LineSet, i int) error {
	j := i + 1
	if !lines.Valid(i) || !lines.Valid(j) {
		return fmt.Errorf("merge %d with next: %w", i, ErrNoAdjacent)
	}
	lines.Set(i, lines.At(i)+" "+strings.TrimSpace(lines.At(j)))
	lines.Set(j, "")
	claimed.Add(i, j)
	return nil
}

// MergePrevious appends the trimmed text of line i to line i-1 with a single
// space, blanks line i and claims both lines.
func MergePrevious(lines *source.Lines, claimed *source.LineSet, i int) error {
	j := i - 1
	if !lines.Valid(i) || !lines.Valid(j) {
		return fmt.Errorf("merge %d with previous: %w", i, ErrNoAdjacent)
	}
	lines.Set(j, lines.At(j)+" "+strings.TrimSpace(lines.At(i)))
	lines.Set(i, "")
	claimed.Add(i, j)
	return nil
}

// MergeRange concatenates lines lo+1..hi onto lo, trimmed and space-joined,
// blanks them and claims the whole range.
func MergeRange(lines *source.Lines, claimed *source.LineSet, lo, hi int) error {
	if !lines.Valid(lo) || !lines.Valid(hi) || lo > hi {
		return fmt.Errorf("merge %d..%d: %w", lo, hi, ErrNoAdjacent)
	}
	var b strings.Builder
	b.WriteString(lines.At(lo))
	claimed.Add(lo)
	for l := lo + 1; l <= hi; l++ {
		b.WriteByte(' ')
		b.WriteString(strings.TrimSpace(lines.At(l)))
		lines.Set(l, "")
		claimed.Add(l)
	}
	lines.Set(lo, b.String())
	return nil
}
