package source

import (
	"os"
	"slices"
	"sort"
	"strings"
)

// Lines is the line buffer the rewrite engine edits. Slots are addressed by
// stable index: within a pass a slot's text may be replaced or emptied but
// the number of slots never changes. Empty slots are dropped only by
// Compact, which the driver calls between passes.
type Lines struct {
	slots []string
}

// NewLines builds a buffer from already-split lines.
func NewLines(lines []string) *Lines {
	return &Lines{slots: slices.Clone(lines)}
}

// Split builds a buffer from raw content, one slot per \n-separated line.
func Split(content []byte) *Lines {
	if len(content) == 0 {
		return &Lines{}
	}
	text := strings.TrimSuffix(string(content), "\n")
	return &Lines{slots: strings.Split(text, "\n")}
}

// Load reads a file from disk, strips a BOM, normalizes CRLF and splits it.
func Load(path string) (*Lines, Flags, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	content, flags := Normalize(content)
	return Split(content), flags, nil
}

// Len returns the number of slots.
func (b *Lines) Len() int {
	return len(b.slots)
}

// Valid reports whether i addresses a slot.
func (b *Lines) Valid(i int) bool {
	return i >= 0 && i < len(b.slots)
}

// At returns the text in slot i, or "" for an invalid index.
func (b *Lines) At(i int) string {
	if !b.Valid(i) {
		return ""
	}
	return b.slots[i]
}

// Set replaces the text in slot i. Out of range indexes are ignored.
func (b *Lines) Set(i int, text string) {
	if !b.Valid(i) {
		return
	}
	b.slots[i] = text
}

// Compact drops empty slots and returns the new length.
func (b *Lines) Compact() int {
	b.slots = slices.DeleteFunc(b.slots, func(s string) bool { return s == "" })
	return len(b.slots)
}

// Slice returns a copy of all slots.
func (b *Lines) Slice() []string {
	return slices.Clone(b.slots)
}

// Bytes joins the slots with \n, the form handed to the compiler.
func (b *Lines) Bytes() []byte {
	return []byte(strings.Join(b.slots, "\n"))
}

func (b *Lines) String() string {
	return strings.Join(b.slots, "\n")
}

// LineSet is the set of line indexes claimed during one pass.
type LineSet struct {
	m map[int]struct{}
}

// NewLineSet returns an empty set.
func NewLineSet() *LineSet {
	return &LineSet{m: make(map[int]struct{})}
}

// Add marks the given lines.
func (s *LineSet) Add(lines ...int) {
	for _, l := range lines {
		s.m[l] = struct{}{}
	}
}

// Has reports whether line was marked.
func (s *LineSet) Has(line int) bool {
	_, ok := s.m[line]
	return ok
}

// Any reports whether any of the lines was marked.
func (s *LineSet) Any(lines ...int) bool {
	for _, l := range lines {
		if s.Has(l) {
			return true
		}
	}
	return false
}

// Len returns the number of marked lines.
func (s *LineSet) Len() int {
	return len(s.m)
}

// Empty reports whether nothing was marked.
func (s *LineSet) Empty() bool {
	return len(s.m) == 0
}

// Sorted returns the marked lines in ascending order.
func (s *LineSet) Sorted() []int {
	out := make([]int, 0, len(s.m))
	for l := range s.m {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}
