package rewrite

import (
	"errors"
	"fmt"
)

// ErrUnhandled wraps every reason a diagnostic could not be acted on.
var ErrUnhandled = errors.New("unhandled diagnostic")

// Outcome is what applying one diagnostic did to the pass.
type Outcome uint8

const (
	// Applied edited one or more lines.
	Applied Outcome = iota
	// Deferred merged an adjacent line; the edit happens next pass.
	Deferred
	// Claimed did nothing because a target line was already edited.
	Claimed
	// Ignored diagnostics are benign and never edit.
	Ignored
	// Inert diagnostics are recognized but not active in this phase.
	Inert
	// Unhandled diagnostics keep the pass from converging.
	Unhandled
)

var outcomeNames = [...]string{
	Applied:   "applied",
	Deferred:  "deferred",
	Claimed:   "claimed",
	Ignored:   "ignored",
	Inert:     "inert",
	Unhandled: "unhandled",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Edited reports whether the outcome changed the buffer.
func (o Outcome) Edited() bool {
	return o == Applied || o == Deferred
}

func unhandled(format string, args ...any) (Outcome, error) {
	return Unhandled, fmt.Errorf("%w: %s", ErrUnhandled, fmt.Sprintf(format, args...))
}
