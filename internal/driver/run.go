// Package driver runs the compile/classify/rewrite loop to its fixed point
// and orchestrates whole-file and multi-file conversions around it.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fltc/internal/classify"
	"fltc/internal/diag"
	"fltc/internal/observ"
	"fltc/internal/rewrite"
	"fltc/internal/source"
	"fltc/internal/trace"
)

// ErrExhausted is returned when a phase uses up its pass budget without
// reaching a fixed point.
var ErrExhausted = errors.New("pass budget exhausted")

// Compiler compiles the current buffer and reports its diagnostics. pass is
// the global pass number and may be used to name artifacts.
type Compiler interface {
	Diagnose(ctx context.Context, pass int, lines *source.Lines) ([]diag.Diagnostic, error)
}

// DiagnosticEvent reports what one pass did with one diagnostic.
type DiagnosticEvent struct {
	Pass       int
	Phase      classify.Phase
	Diagnostic *diag.Diagnostic
	Result     classify.Result
	Outcome    rewrite.Outcome
	Err        error
	// Source holds the lines named by the diagnostic as they were before
	// the action ran, keyed by 0-based index.
	Source map[int]string
}

// DiagnosticObserver receives one event per top-level diagnostic.
type DiagnosticObserver func(DiagnosticEvent)

// Options tune a run. The zero value is valid.
type Options struct {
	Tracer       trace.Tracer
	Timer        *observ.Timer
	OnPass       PassObserver
	OnDiagnostic DiagnosticObserver
}

// Failure is a diagnostic the last pass could not act on.
type Failure struct {
	Diagnostic diag.Diagnostic
	Err        error
}

// Result summarizes a finished run.
type Result struct {
	State       State
	Passes      int    // global pass count
	PhasePasses [2]int // passes spent in the structural and folding phases
	Edits       int    // lines claimed over the whole run
	Ignored     int
	// Failures are the unhandled diagnostics of the final pass. They are
	// empty after convergence.
	Failures []Failure
}

// Converged reports whether both phases reached a fixed point.
func (r Result) Converged() bool {
	return r.State == Phase2Converged
}

// passStats is the tally of one pass.
type passStats struct {
	diagnostics int
	merged      int
	edited      int
	ignored     int
	failures    []Failure
}

func (s passStats) converged() bool {
	return s.edited == 0 && len(s.failures) == 0
}

// Run drives st through both phases. It stops at the first phase that
// converges with nothing edited and nothing unhandled, or fails with
// ErrExhausted once a phase has spent MaxPasses passes. Compiler errors
// abort the run.
func Run(ctx context.Context, st *RunState, comp Compiler, opts Options) (Result, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "run", trace.SpanFrom(ctx))

	var res Result
	for !st.State.Done() {
		if st.State == Phase1Converged {
			st.advance()
			continue
		}
		phaseSpan := trace.Begin(tracer, trace.ScopePhase, "phase:"+st.Phase.String(), runSpan)
		last, err := runPhase(ctx, st, comp, opts, tracer, phaseSpan, &res)
		res.PhasePasses[phaseIndex(st.Phase)] = st.PhasePass
		if err != nil {
			phaseSpan.End(err.Error())
			res.State = st.State
			res.Passes = st.Pass
			res.Failures = last.failures
			runSpan.WithExtra("passes", fmt.Sprint(st.Pass)).End(st.State.String())
			return res, err
		}
		phaseSpan.WithExtra("passes", fmt.Sprint(st.PhasePass)).End("converged")
		st.advance()
	}

	res.State = st.State
	res.Passes = st.Pass
	runSpan.WithExtra("passes", fmt.Sprint(st.Pass)).End(st.State.String())
	return res, nil
}

func phaseIndex(p classify.Phase) int {
	if p == classify.PhaseFolding {
		return 1
	}
	return 0
}

// runPhase loops passes until one converges or the budget is spent.
func runPhase(ctx context.Context, st *RunState, comp Compiler, opts Options, tracer trace.Tracer, parent *trace.Span, res *Result) (passStats, error) {
	var last passStats
	for {
		if err := ctx.Err(); err != nil {
			return last, err
		}
		if st.PhasePass >= MaxPasses {
			st.State = Exhausted
			return last, fmt.Errorf("%w: %s phase did not converge after %d passes", ErrExhausted, st.Phase, MaxPasses)
		}
		st.Pass++
		st.PhasePass++

		stats, err := runPass(ctx, st, comp, opts, tracer, parent)
		if err != nil {
			return last, err
		}
		last = stats
		res.Edits += stats.edited
		res.Ignored += stats.ignored
		if stats.converged() {
			return last, nil
		}
	}
}

// runPass is one complete sweep: diagnose, join multiline ranges, act on
// every diagnostic once, then compact the buffer.
func runPass(ctx context.Context, st *RunState, comp Compiler, opts Options, tracer trace.Tracer, parent *trace.Span) (passStats, error) {
	var stats passStats
	name := fmt.Sprintf("pass:%02d", st.Pass)
	span := trace.Begin(tracer, trace.ScopePass, name, parent)
	timerIdx := -1
	if opts.Timer != nil {
		timerIdx = opts.Timer.Begin(name)
	}
	started := time.Now()
	if opts.OnPass != nil {
		opts.OnPass(PassEvent{Phase: st.Phase, Pass: st.Pass, Status: PassStart})
	}

	diags, err := comp.Diagnose(ctx, st.Pass, st.Lines)
	if err != nil {
		span.End(err.Error())
		if opts.Timer != nil {
			opts.Timer.End(timerIdx, "compiler failed")
		}
		return stats, fmt.Errorf("pass %d: %w", st.Pass, err)
	}
	bag := diag.NewBag(diags)
	stats.diagnostics = bag.Len()

	p := rewrite.NewPass(st.Lines, st.Subs, st.Phase)
	stats.merged = rewrite.JoinMultiline(p, diags)

	for i := range diags {
		d := &diags[i]
		r := classify.Classify(d, st.Phase)
		var before map[int]string
		if opts.OnDiagnostic != nil {
			before = snapshot(st.Lines, d)
		}
		out, err := rewrite.Apply(p, d, r)
		switch out {
		case rewrite.Ignored:
			stats.ignored++
		case rewrite.Unhandled:
			stats.failures = append(stats.failures, Failure{Diagnostic: *d, Err: err})
		}
		trace.Point(tracer, trace.ScopeDiagnostic, span, r.Category.String(), out.String())
		if opts.OnDiagnostic != nil {
			opts.OnDiagnostic(DiagnosticEvent{
				Pass:       st.Pass,
				Phase:      st.Phase,
				Diagnostic: d,
				Result:     r,
				Outcome:    out,
				Err:        err,
				Source:     before,
			})
		}
	}

	stats.edited = p.Claimed.Len()
	st.Lines.Compact()

	note := fmt.Sprintf("%d diagnostics, %d lines edited, %d unhandled", stats.diagnostics, stats.edited, len(stats.failures))
	span.WithExtra("diagnostics", fmt.Sprint(stats.diagnostics)).
		WithExtra("errors", fmt.Sprint(bag.Count(diag.KindError))).
		WithExtra("merged", fmt.Sprint(stats.merged)).
		WithExtra("edited", fmt.Sprint(stats.edited)).
		WithExtra("unhandled", fmt.Sprint(len(stats.failures))).
		End("")
	if opts.Timer != nil {
		opts.Timer.End(timerIdx, note)
	}
	if opts.OnPass != nil {
		opts.OnPass(PassEvent{
			Phase:   st.Phase,
			Pass:    st.Pass,
			Status:  PassEnd,
			Edited:  stats.edited,
			Failed:  len(stats.failures),
			Elapsed: time.Since(started),
		})
	}
	return stats, nil
}

// snapshot copies the lines a diagnostic points at.
func snapshot(lines *source.Lines, d *diag.Diagnostic) map[int]string {
	lo, hi, ok := source.LineRange(d.Locations)
	if !ok {
		return nil
	}
	out := make(map[int]string, hi-lo+1)
	for i := lo; i <= hi; i++ {
		if lines.Valid(i) {
			out[i] = lines.At(i)
		}
	}
	return out
}
