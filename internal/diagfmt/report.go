package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"fltc/internal/diag"
	"fltc/internal/driver"
	"fltc/internal/observ"
)

// FileReport is the JSON form of one file's conversion.
type FileReport struct {
	Path        string         `json:"path"`
	Output      string         `json:"output,omitempty"`
	State       string         `json:"state"`
	Passes      int            `json:"passes"`
	PhasePasses [2]int         `json:"phase_passes"`
	Edits       int            `json:"edits"`
	Ignored     int            `json:"ignored,omitempty"`
	Cached      bool           `json:"cached,omitempty"`
	Artifacts   string         `json:"artifacts,omitempty"`
	Unhandled   []string       `json:"unhandled,omitempty"`
	Audit       []string       `json:"audit,omitempty"`
	Error       string         `json:"error,omitempty"`
	Timing      *observ.Report `json:"timing,omitempty"`
}

// RunReport is the root of the JSON output of a convert run.
type RunReport struct {
	Files  []FileReport `json:"files"`
	Count  int          `json:"count"`
	Failed int          `json:"failed"`
}

// NewFileReport builds the report of res. output is where the converted code
// was written and may be empty.
func NewFileReport(res *driver.FileResult, output string) FileReport {
	fr := FileReport{
		Path:        res.Path,
		State:       res.Run.State.String(),
		Passes:      res.Run.Passes,
		PhasePasses: res.Run.PhasePasses,
		Edits:       res.Run.Edits,
		Ignored:     res.Run.Ignored,
		Cached:      res.Cached,
		Artifacts:   res.Artifacts,
		Timing:      res.Timing,
	}
	if res.OK() {
		fr.Output = output
	} else {
		fr.Error = res.Err.Error()
	}
	for _, f := range res.Run.Failures {
		line := diag.FormatShort([]diag.Diagnostic{f.Diagnostic}, false)
		if f.Err != nil {
			line += ": " + f.Err.Error()
		}
		fr.Unhandled = append(fr.Unhandled, line)
	}
	for _, f := range res.Findings {
		fr.Audit = append(fr.Audit, f.String())
	}
	return fr
}

// BuildReport collects the reports of results. outputOf maps an input path
// to the path its output was written to; nil leaves Output empty.
func BuildReport(results []driver.FileResult, outputOf func(string) string) RunReport {
	report := RunReport{Files: make([]FileReport, 0, len(results))}
	for i := range results {
		out := ""
		if outputOf != nil {
			out = outputOf(results[i].Path)
		}
		report.Files = append(report.Files, NewFileReport(&results[i], out))
	}
	report.Count = len(report.Files)
	report.Failed = driver.Failed(results)
	return report
}

// JSON writes report indented.
func JSON(w io.Writer, report RunReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// Summary writes the one-line human result of a file followed by its audit
// findings.
func Summary(w io.Writer, res *driver.FileResult, output string, opts Options) {
	ok := paint(opts.Color, color.FgGreen, color.Bold)
	bad := paint(opts.Color, color.FgRed, color.Bold)
	warn := paint(opts.Color, color.FgYellow)

	name := res.Path
	if !res.OK() {
		fmt.Fprintf(w, "%s %s: %v\n", bad.Sprint("✗"), name, res.Err)
		return
	}
	detail := fmt.Sprintf("%d passes, %d edits", res.Run.Passes, res.Run.Edits)
	if res.Cached {
		detail = "cached"
	}
	fmt.Fprintf(w, "%s %s -> %s (%s)\n", ok.Sprint("✓"), name, output, detail)
	for _, f := range res.Findings {
		fmt.Fprintf(w, "  %s %s:%s\n", warn.Sprint("warning:"), filepath.Base(output), f)
	}
}
