package driver

import (
	"time"

	"fltc/internal/classify"
)

// PassStatus reports whether a pass started or finished.
type PassStatus int

const (
	// PassStart indicates that a compile pass has begun.
	PassStart PassStatus = iota
	PassEnd
)

// PassEvent describes a pass boundary.
type PassEvent struct {
	Phase   classify.Phase
	Pass    int // global pass number
	Status  PassStatus
	Edited  int // lines claimed by the pass, set on PassEnd
	Failed  int // unhandled diagnostics, set on PassEnd
	Elapsed time.Duration
}

// PassObserver receives pass events emitted during Run.
type PassObserver func(PassEvent)
