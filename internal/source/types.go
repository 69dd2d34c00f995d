package source

type (
	// Flags encodes metadata about how input content was normalized.
	Flags uint8
)

const (
	// HadBOM indicates a UTF-8 byte order mark was stripped.
	HadBOM Flags = 1 << iota
	// NormalizedCRLF indicates \r\n line endings were rewritten to \n.
	NormalizedCRLF
)

// Point is a single compiler-reported position.
type Point struct {
	Line       uint32 // 1-based
	ByteColumn uint32 // 1-based, counted in bytes
}

// Location is the compiler's (possibly partial) idea of a token span.
// At least one of the three points is expected to be present.
type Location struct {
	Caret  *Point
	Start  *Point
	Finish *Point
}

// Points returns the present points in caret, start, finish order.
func (l Location) Points() []Point {
	out := make([]Point, 0, 3)
	for _, p := range []*Point{l.Caret, l.Start, l.Finish} {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// At builds a location whose points all sit on one line, spanning the
// 1-based byte columns [start, finish].
func At(line, start, finish uint32) Location {
	return Location{
		Caret:  &Point{Line: line, ByteColumn: start},
		Start:  &Point{Line: line, ByteColumn: start},
		Finish: &Point{Line: line, ByteColumn: finish},
	}
}
