package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"fltc/internal/cache"
	"fltc/internal/cc"
	"fltc/internal/diagfmt"
	"fltc/internal/discover"
	"fltc/internal/driver"
	"fltc/internal/trace"
	"fltc/internal/version"
)

const conversionFailure = `*** ERROR: conversion failure ***
Ensure the input has no errors or warnings when compiled normally.
Rerun with debug enabled and review STDERR output.
Also review the generated __FLT_TMP_* files for more information (--keep-artifacts).
`

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <file.c|dir>...",
	Short: "Convert C sources to FLT",
	Long: `Convert C sources so they use FLT and flt_* instead of float and double.

Each input is written to <name>-flt.c next to it, or to --output when a
single file is given ("-" writes to stdout). Directories are searched for
*.c files, honouring .gitignore.

Requirements:
  - gcc v9.0 or later; the -fdiagnostics-format=json option is used
  - the target compiler should support an unsigned 32-bit integer type
  - the source code should be ANSI C or later, K&R is not supported

Limitations:
  - FLT corresponds to IEEE 754 single precision. Double precision literals,
    variables and functions are converted to FLT and flt_* as well; C only
    requires double to be at least as precise as float.
  - long double is left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringP("output", "o", "", "output file for a single input (- for stdout)")
	f.BoolP("debug", "d", false, "show every diagnostic with its line and a caret underline")
	f.StringP("extra", "x", "", "extra options passed to gcc when preprocessing")
	f.String("cc", "", "gcc executable (default gcc, or [compiler].path)")
	f.Int("jobs", 0, "files converted in parallel (0 = number of CPUs)")
	f.String("ui", "auto", "progress view for several files (auto|on|off)")
	f.String("keep-artifacts", "", "keep the per-pass __FLT_TMP_* files in `DIR`")
	f.Bool("no-cache", false, "do not read or write the conversion cache")
	f.Bool("no-audit", false, "skip the check for leftover float and double")
	f.String("report", "", "write a JSON run report to `FILE` (- for stdout)")
}

type convertSettings struct {
	output   string
	debug    bool
	extra    []string
	cc       string
	jobs     int
	ui       autoSwitch
	keep     string
	cache    bool
	audit    bool
	report   string
	suffix   string
	quiet    bool
	timings  bool
	manifest string
}

// loadConvertSettings merges fltc.toml with the command line. Flags win.
func loadConvertSettings(cmd *cobra.Command) (convertSettings, error) {
	var s convertSettings
	manifest, ok, err := loadProjectManifest(".")
	if err != nil {
		return s, err
	}
	cfg := projectConfig{}
	if ok {
		cfg = manifest.Config
		s.manifest = manifest.Path
	}
	s.cc = cfg.Compiler.Path
	s.extra = append(s.extra, cfg.Compiler.Extra...)
	s.suffix = cfg.Output.Suffix
	s.cache = cfg.cacheEnabled()

	f := cmd.Flags()
	if s.output, err = f.GetString("output"); err != nil {
		return s, err
	}
	if s.debug, err = f.GetBool("debug"); err != nil {
		return s, err
	}
	extra, err := f.GetString("extra")
	if err != nil {
		return s, err
	}
	s.extra = append(s.extra, strings.Fields(extra)...)
	if f.Changed("cc") {
		if s.cc, err = f.GetString("cc"); err != nil {
			return s, err
		}
	}
	if s.jobs, err = f.GetInt("jobs"); err != nil {
		return s, err
	}
	uiStr, err := f.GetString("ui")
	if err != nil {
		return s, err
	}
	if s.ui, err = parseSwitch("ui", uiStr); err != nil {
		return s, err
	}
	if s.keep, err = f.GetString("keep-artifacts"); err != nil {
		return s, err
	}
	noCache, err := f.GetBool("no-cache")
	if err != nil {
		return s, err
	}
	if noCache {
		s.cache = false
	}
	noAudit, err := f.GetBool("no-audit")
	if err != nil {
		return s, err
	}
	s.audit = !noAudit
	if s.report, err = f.GetString("report"); err != nil {
		return s, err
	}
	if s.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return s, err
	}
	if s.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return s, err
	}
	if s.suffix == "" {
		s.suffix = discover.DefaultSuffix
	}
	return s, nil
}

// outputFor is where the conversion of input goes.
func (s *convertSettings) outputFor(input string) string {
	if s.output != "" {
		return s.output
	}
	return discover.OutputPath(input, s.suffix)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	errOut := cmd.ErrOrStderr()

	s, err := loadConvertSettings(cmd)
	if err != nil {
		return err
	}
	paths, err := discover.Inputs(args, s.suffix)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no C sources found in %s", strings.Join(args, " "))
	}
	if s.output != "" && len(paths) > 1 {
		return fmt.Errorf("--output needs exactly one input, got %d", len(paths))
	}

	g, err := cc.Find(ctx, s.cc)
	if err != nil {
		reportCompiler(errOut, g, err)
		return errReported
	}
	g.Extra = s.extra

	var disk *cache.Disk
	if s.cache {
		if disk, err = cache.Open("fltc"); err != nil && !s.quiet {
			fmt.Fprintf(errOut, "fltc: cache disabled: %v\n", err)
		}
	}

	useColor, err := colorEnabled(cmd, os.Stderr)
	if err != nil {
		return err
	}
	render := diagfmt.Options{Color: useColor, Debug: s.debug}
	// the progress view draws on stderr
	useUI := len(paths) > 1 && !s.debug && !s.quiet && s.ui.enabledFor(os.Stderr)

	tracer := trace.FromContext(ctx)
	log := newDiagLog(errOut, useUI)
	opts := driver.FileOptions{
		GCC:           g,
		ToolVersion:   version.Version,
		KeepArtifacts: s.keep,
		Cache:         disk,
		Audit:         s.audit,
		Timings:       s.timings,
		Tracer:        tracer,
		OnDiagnostic: func(path string, ev driver.DiagnosticEvent) {
			ro := render
			if len(paths) > 1 {
				ro.Path = path
			}
			var buf bytes.Buffer
			diagfmt.Event(&buf, &ev, ro)
			log.write(path, buf.Bytes())
		},
	}

	var results []driver.FileResult
	if useUI {
		results, err = runConvertWithUI(ctx, paths, s.jobs, opts)
	} else {
		results, err = driver.ConvertFiles(ctx, paths, s.jobs, opts, nil)
	}
	log.flush(paths)
	if err != nil {
		return err
	}

	exhausted := false
	for i := range results {
		res := &results[i]
		out := s.outputFor(res.Path)
		if res.OK() {
			if err := writeOutput(cmd.OutOrStdout(), out, res.Output); err != nil {
				res.Err = err
			}
		}
		switch {
		case errors.Is(res.Err, driver.ErrExhausted):
			exhausted = true
			diagfmt.Summary(errOut, res, "", render)
			if res.Artifacts != "" {
				fmt.Fprintf(errOut, "artifacts kept in %s\n", res.Artifacts)
			}
		case !res.OK():
			diagfmt.Summary(errOut, res, "", render)
		case !s.quiet && out != "-":
			diagfmt.Summary(errOut, res, out, render)
		}
		if s.timings && res.Timing != nil {
			fmt.Fprint(errOut, res.Timing.Summary())
		}
	}

	if s.report != "" {
		report := diagfmt.BuildReport(results, s.outputFor)
		if err := writeReport(cmd.OutOrStdout(), s.report, report); err != nil {
			return err
		}
	}

	if exhausted {
		fmt.Fprint(errOut, conversionFailure)
		if err := dumpExhausted(errOut, trace.RingOf(tracer), results); err != nil {
			return err
		}
	}
	if driver.Failed(results) > 0 {
		return errReported
	}
	return nil
}

// dumpExhausted prints the traced passes of every file that ran out of
// passes, one file at a time.
func dumpExhausted(w io.Writer, ring *trace.RingTracer, results []driver.FileResult) error {
	if ring == nil {
		return nil
	}
	for i := range results {
		if !errors.Is(results[i].Err, driver.ErrExhausted) {
			continue
		}
		fmt.Fprintf(w, "last trace events for %s:\n", results[i].Path)
		if err := ring.Dump(w, trace.FormatText, results[i].Path); err != nil {
			return err
		}
	}
	return nil
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "-" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func writeReport(stdout io.Writer, path string, report diagfmt.RunReport) error {
	if path == "-" {
		return diagfmt.JSON(stdout, report)
	}
	// #nosec G304 -- path comes from the --report flag
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := diagfmt.JSON(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// diagLog serialises diagnostic output from concurrent conversions. While
// the progress view owns the terminal it holds each file's output back.
type diagLog struct {
	mu   sync.Mutex
	w    io.Writer
	hold bool
	bufs map[string]*bytes.Buffer
}

func newDiagLog(w io.Writer, hold bool) *diagLog {
	return &diagLog{w: w, hold: hold, bufs: make(map[string]*bytes.Buffer)}
}

func (l *diagLog) write(path string, p []byte) {
	if len(p) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.hold {
		_, _ = l.w.Write(p)
		return
	}
	buf, ok := l.bufs[path]
	if !ok {
		buf = &bytes.Buffer{}
		l.bufs[path] = buf
	}
	buf.Write(p)
}

// flush writes held output in input order.
func (l *diagLog) flush(paths []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range paths {
		if buf, ok := l.bufs[p]; ok {
			_, _ = l.w.Write(buf.Bytes())
			delete(l.bufs, p)
		}
	}
}

// reportCompiler prints why gcc cannot be used.
func reportCompiler(w io.Writer, g *cc.GCC, err error) {
	if errors.Is(err, cc.ErrCompilerTooOld) && g != nil {
		fmt.Fprintf(w, "*** ERROR: gcc version is not supported ***\n"+
			"fltc requires gcc v9.0 or later to be installed and accessible.\n"+
			"Currently installed is gcc v%s.\n", g.Version)
		return
	}
	fmt.Fprintf(w, "*** ERROR: gcc is not available ***\n"+
		"fltc requires gcc v9.0 or later to be installed and accessible.\n")
	if !errors.Is(err, cc.ErrCompilerMissing) {
		fmt.Fprintf(w, "%v\n", err)
	}
}
