package testkit

import (
	"fmt"
	"strings"

	"fltc/internal/source"
)

// CheckBufferInvariants verifies the shape a buffer must have at a pass
// boundary:
// 1) no slot is empty (Compact ran)
// 2) no slot contains a newline (merges join with a space)
func CheckBufferInvariants(lines *source.Lines) error {
	if lines == nil {
		return fmt.Errorf("nil buffer")
	}
	for i := range lines.Len() {
		text := lines.At(i)
		if text == "" {
			return fmt.Errorf("slot %d is empty after compaction", i)
		}
		if strings.ContainsRune(text, '\n') {
			return fmt.Errorf("slot %d contains a newline: %q", i, text)
		}
	}
	return nil
}

// CheckDisjoint verifies that no line index appears in more than one of
// the given claim sets.
func CheckDisjoint(sets ...[]int) error {
	owner := make(map[int]int)
	for i, set := range sets {
		for _, line := range set {
			if prev, ok := owner[line]; ok && prev != i {
				return fmt.Errorf("line %d claimed by actions %d and %d", line, prev, i)
			}
			owner[line] = i
		}
	}
	return nil
}
