package driver

import (
	"fltc/internal/classify"
	"fltc/internal/rewrite"
	"fltc/internal/source"
)

// MaxPasses is the pass budget of each phase.
const MaxPasses = 50

// State is the position of a run in the two-phase fixed-point loop.
type State uint8

const (
	Phase1Scanning State = iota
	Phase1Converged
	Phase2Scanning
	Phase2Converged
	Exhausted
)

var stateNames = [...]string{
	Phase1Scanning:  "phase1-scanning",
	Phase1Converged: "phase1-converged",
	Phase2Scanning:  "phase2-scanning",
	Phase2Converged: "phase2-converged",
	Exhausted:       "exhausted",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Done reports whether the run reached a terminal state.
func (s State) Done() bool {
	return s == Phase2Converged || s == Exhausted
}

// RunState is everything a conversion run carries from one pass to the
// next. It is owned by a single Run call.
type RunState struct {
	Lines *source.Lines
	Subs  *rewrite.SubstitutionLog

	// Pass is the global pass number. It keeps counting across phases and
	// names the per-pass artifacts.
	Pass int
	// PhasePass counts passes of the current phase against MaxPasses.
	PhasePass int
	Phase     classify.Phase
	State     State
}

// NewRunState starts a run over lines in the structural phase.
func NewRunState(lines *source.Lines) *RunState {
	return &RunState{
		Lines: lines,
		Subs:  &rewrite.SubstitutionLog{},
		Phase: classify.PhaseStructural,
		State: Phase1Scanning,
	}
}

// advance moves a converged phase forward.
func (st *RunState) advance() {
	switch st.State {
	case Phase1Scanning:
		st.State = Phase1Converged
	case Phase1Converged:
		st.State = Phase2Scanning
		st.Phase = classify.PhaseFolding
		st.PhasePass = 0
	case Phase2Scanning:
		st.State = Phase2Converged
	}
}
