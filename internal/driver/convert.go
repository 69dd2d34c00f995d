package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fltc/internal/audit"
	"fltc/internal/cache"
	"fltc/internal/cc"
	"fltc/internal/emit"
	"fltc/internal/observ"
	"fltc/internal/prep"
	"fltc/internal/source"
	"fltc/internal/trace"
)

// Backend is the compiler a file conversion runs against: it preprocesses
// the input once and then diagnoses every pass.
type Backend interface {
	prep.Preprocessor
	Compiler
}

// BackendFactory opens a backend inside ws. include is the input file's
// directory.
type BackendFactory func(ws *cc.Workspace, include string) Backend

// FileOptions configure whole-file conversions.
type FileOptions struct {
	GCC         *cc.GCC
	Backend     BackendFactory // default: a cc.Session on GCC
	ToolVersion string
	// KeepArtifacts names the directory the per-pass files are kept in.
	// Empty means a temporary directory removed after the run.
	KeepArtifacts string
	Cache         *cache.Disk
	Audit         bool
	Timings       bool
	Tracer        trace.Tracer

	OnPass       func(path string, ev PassEvent)
	OnDiagnostic func(path string, ev DiagnosticEvent)
	Now          func() time.Time
}

// FileResult is the outcome of converting one file.
type FileResult struct {
	Path     string
	Output   string
	Run      Result
	Cached   bool
	Findings []audit.Finding
	Timing   *observ.Report
	// Artifacts is set when the per-pass files were kept.
	Artifacts string
	Err       error
}

// OK reports whether the file converted.
func (r *FileResult) OK() bool {
	return r.Err == nil
}

func (o *FileOptions) backend(ws *cc.Workspace, include string) Backend {
	if o.Backend != nil {
		return o.Backend(ws, include)
	}
	return cc.NewSession(o.GCC, ws, include)
}

func (o *FileOptions) cacheKey(code []byte) cache.Digest {
	in := KeyInputFor(o.GCC, o.ToolVersion, code)
	return cache.Key(in)
}

// KeyInputFor collects what a cached conversion depends on.
func KeyInputFor(g *cc.GCC, tool string, code []byte) cache.KeyInput {
	in := cache.KeyInput{Tool: tool, Source: code}
	if g != nil {
		in.Compiler = g.Version
		in.Extra = g.Extra
	}
	return in
}

// ConvertFile runs the whole pipeline on one file: normalisation, both
// engine phases, serialisation and the optional audit. Failures are
// reported in FileResult.Err.
func ConvertFile(ctx context.Context, path string, opts FileOptions) (res FileResult) {
	res.Path = path
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.FromContext(ctx)
	}
	span := trace.BeginFile(tracer, path)
	defer func() {
		detail := "ok"
		if res.Err != nil {
			detail = res.Err.Error()
		}
		span.End(detail)
	}()

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
		defer func() {
			report := timer.Report()
			res.Timing = &report
		}()
	}

	// #nosec G304 -- path is a user-supplied input file
	raw, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	code, _ := source.Normalize(raw)

	key := opts.cacheKey(code)
	if opts.Cache != nil {
		if e, ok, err := opts.Cache.Get(key); err == nil && ok {
			res.Output = e.Output
			res.Cached = true
			res.Run = Result{State: Phase2Converged, Passes: e.Passes, Edits: e.Edits}
			auditOutput(ctx, &res, opts, timer)
			return res
		}
	}

	ws, err := cc.NewWorkspace(opts.KeepArtifacts)
	if err != nil {
		res.Err = err
		return res
	}
	defer ws.Close()
	if ws.Keep() {
		res.Artifacts = ws.Dir
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		res.Err = err
		return res
	}
	be := opts.backend(ws, dir)

	idx := timer.Begin("preprocess")
	lines, err := prep.Normalize(ctx, code, be)
	timer.End(idx, "")
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}

	st := NewRunState(lines)
	runOpts := Options{Tracer: tracer, Timer: timer}
	if opts.OnPass != nil {
		runOpts.OnPass = func(ev PassEvent) { opts.OnPass(path, ev) }
	}
	if opts.OnDiagnostic != nil {
		runOpts.OnDiagnostic = func(ev DiagnosticEvent) { opts.OnDiagnostic(path, ev) }
	}
	ctx = trace.WithSpan(ctx, span)
	res.Run, err = Run(ctx, st, be, runOpts)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	idx = timer.Begin("serialize")
	res.Output = emit.Serialize(st.Lines, st.Subs, emit.Options{Version: opts.ToolVersion, Now: now()})
	timer.End(idx, "")

	auditOutput(ctx, &res, opts, timer)

	if opts.Cache != nil {
		_ = opts.Cache.Put(key, &cache.Entry{
			Path:      path,
			Output:    res.Output,
			Passes:    res.Run.Passes,
			Edits:     res.Run.Edits,
			Converted: now(),
		})
	}
	return res
}

// auditOutput records residue findings. An audit that cannot parse is
// skipped, it never fails the conversion.
func auditOutput(ctx context.Context, res *FileResult, opts FileOptions, timer *observ.Timer) {
	if !opts.Audit {
		return
	}
	idx := timer.Begin("audit")
	findings, err := audit.Check(ctx, []byte(res.Output))
	timer.End(idx, fmt.Sprintf("%d findings", len(findings)))
	if err == nil {
		res.Findings = findings
	}
}
