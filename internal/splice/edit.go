package splice

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"fltc/internal/source"
)

// ErrOverlap is returned when two edits for one line touch the same bytes.
var ErrOverlap = errors.New("overlapping edits")

// ErrOutOfRange is returned when an edit does not fit inside its line.
var ErrOutOfRange = errors.New("edit out of range")

// Edit replaces Del bytes at byte offset At with Text. Columns always refer
// to the line as it was before any edit of the same batch.
type Edit struct {
	At   int
	Del  int
	Text string

	seq int
}

// Insert builds an insertion edit.
func Insert(at int, text string) Edit {
	return Edit{At: at, Text: text}
}

// Replace builds an edit replacing the bytes of ext with text.
func Replace(ext source.Extent, text string) Edit {
	return Edit{At: ext.Start, Del: ext.Len(), Text: text}
}

// Apply applies edits to line. Edits are validated in ascending position
// order and then applied from the rightmost to the leftmost, so no edit
// shifts the offsets of one still waiting. Insertions that share a
// position keep the order they were given in.
func Apply(line string, edits ...Edit) (string, error) {
	ordered := make([]Edit, len(edits))
	for i, e := range edits {
		e.seq = i
		ordered[i] = e
	}
	if err := validate(line, ordered); err != nil {
		return line, err
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].At != ordered[j].At {
			return ordered[i].At > ordered[j].At
		}
		return ordered[i].seq > ordered[j].seq
	})
	out := line
	for _, e := range ordered {
		out = out[:e.At] + e.Text + out[e.At+e.Del:]
	}
	return out, nil
}

func validate(line string, edits []Edit) error {
	asc := slices.Clone(edits)
	sort.SliceStable(asc, func(i, j int) bool {
		if asc[i].At != asc[j].At {
			return asc[i].At < asc[j].At
		}
		return asc[i].seq < asc[j].seq
	})
	end := 0
	for i, e := range asc {
		if e.At < 0 || e.Del < 0 || e.At+e.Del > len(line) {
			return fmt.Errorf("%w: %d+%d in line of %d bytes", ErrOutOfRange, e.At, e.Del, len(line))
		}
		if i > 0 && e.At < end {
			return fmt.Errorf("%w: edit at %d overlaps edit ending at %d", ErrOverlap, e.At, end)
		}
		end = e.At + e.Del
	}
	return nil
}

// Batch collects edits for several lines and applies them all or none.
type Batch struct {
	lines *source.Lines
	edits map[int][]Edit
	order []int
}

// NewBatch starts an empty batch against lines.
func NewBatch(lines *source.Lines) *Batch {
	return &Batch{lines: lines, edits: make(map[int][]Edit)}
}

// Add queues edits for line.
func (b *Batch) Add(line int, edits ...Edit) *Batch {
	if _, ok := b.edits[line]; !ok {
		b.order = append(b.order, line)
	}
	b.edits[line] = append(b.edits[line], edits...)
	return b
}

// Lines returns the line indexes touched by the batch.
func (b *Batch) Lines() []int {
	return slices.Clone(b.order)
}

// Commit applies every queued edit and claims the touched lines. Nothing is
// written when any line's edits fail validation.
func (b *Batch) Commit(claimed *source.LineSet) error {
	results := make(map[int]string, len(b.order))
	for _, l := range b.order {
		if !b.lines.Valid(l) {
			return fmt.Errorf("line %d: %w", l, ErrOutOfRange)
		}
		out, err := Apply(b.lines.At(l), b.edits[l]...)
		if err != nil {
			return fmt.Errorf("line %d: %w", l, err)
		}
		results[l] = out
	}
	for _, l := range b.order {
		b.lines.Set(l, results[l])
		claimed.Add(l)
	}
	return nil
}
