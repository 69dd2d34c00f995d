package source

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// ErrMalformedLocation reports a location whose points disagree on the
// source line, or that carries no usable point at all.
var ErrMalformedLocation = errors.New("malformed location")

// Extent is a resolved token span inside the current line buffer.
type Extent struct {
	Line  int // 0-based line index
	Start int // 0-based byte column
	End   int // 0-based byte column, inclusive
}

// Len returns the number of bytes covered by the extent.
func (e Extent) Len() int {
	return e.End - e.Start + 1
}

func (e Extent) String() string {
	return fmt.Sprintf("%d:%d-%d", e.Line, e.Start, e.End)
}

// Before reports whether e starts strictly before o.
func (e Extent) Before(o Extent) bool {
	if e.Line != o.Line {
		return e.Line < o.Line
	}
	return e.Start < o.Start
}

// After reports whether e starts strictly after o.
func (e Extent) After(o Extent) bool {
	return o.Before(e)
}

// Text returns the bytes of line covered by the extent, clamped to the
// line length.
func (e Extent) Text(line string) string {
	start, end := e.Start, e.End+1
	if start < 0 {
		start = 0
	}
	if end > len(line) {
		end = len(line)
	}
	if start >= end {
		return ""
	}
	return line[start:end]
}

// Resolve converts a compiler location into an Extent by taking the
// min/max byte column across whichever points are present.
func Resolve(loc Location) (Extent, error) {
	points := loc.Points()
	if len(points) == 0 {
		return Extent{}, fmt.Errorf("%w: no points", ErrMalformedLocation)
	}
	ext := Extent{Line: -1, Start: -1, End: -1}
	for _, p := range points {
		if p.Line == 0 || p.ByteColumn == 0 {
			return Extent{}, fmt.Errorf("%w: zero line or column", ErrMalformedLocation)
		}
		line, err := safecast.Conv[int](p.Line - 1)
		if err != nil {
			return Extent{}, fmt.Errorf("line overflow: %w", err)
		}
		col, err := safecast.Conv[int](p.ByteColumn - 1)
		if err != nil {
			return Extent{}, fmt.Errorf("column overflow: %w", err)
		}
		if ext.Line < 0 {
			ext = Extent{Line: line, Start: col, End: col}
			continue
		}
		if line != ext.Line {
			return Extent{}, fmt.Errorf("%w: points on lines %d and %d", ErrMalformedLocation, ext.Line+1, line+1)
		}
		ext.Start = min(ext.Start, col)
		ext.End = max(ext.End, col)
	}
	return ext, nil
}

// ResolveAll resolves every location, failing on the first malformed one.
func ResolveAll(locs []Location) ([]Extent, error) {
	out := make([]Extent, 0, len(locs))
	for i, loc := range locs {
		ext, err := Resolve(loc)
		if err != nil {
			return nil, fmt.Errorf("location %d: %w", i, err)
		}
		out = append(out, ext)
	}
	return out, nil
}

// LineRange returns the smallest and largest 0-based line index named by
// any point of any location. ok is false when no point is present.
func LineRange(locs []Location) (lo, hi int, ok bool) {
	for _, loc := range locs {
		for _, p := range loc.Points() {
			if p.Line == 0 {
				continue
			}
			line, err := safecast.Conv[int](p.Line - 1)
			if err != nil {
				continue
			}
			if !ok {
				lo, hi, ok = line, line, true
				continue
			}
			lo = min(lo, line)
			hi = max(hi, line)
		}
	}
	return lo, hi, ok
}
