package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fltc/internal/cc"
	"fltc/internal/driver"
	"fltc/internal/trace"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEncodeCommand(t *testing.T) {
	out, err := execute(t, "encode", "1.5", "--", "-2")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "0x3FC00000 /* 1.5 */\n0xC0000000 /* -2 */\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestEncodeRejectsNonNumerals(t *testing.T) {
	if _, err := execute(t, "encode", "0x10"); err == nil {
		t.Fatal("expected an error for a hex argument")
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload buildReport
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if payload.Tool != "fltc" || payload.Version == "" || len(payload.Header) != 12 {
		t.Fatalf("payload = %+v", payload)
	}
	if payload.GitCommit != "" || payload.Go != "" {
		t.Fatalf("extras shown without flags: %+v", payload)
	}
}

func TestBuildReportFull(t *testing.T) {
	r := newBuildReport(true, true, true)
	if r.GitCommit == "" || r.GitMessage == "" || r.BuildDate == "" || r.Go == "" {
		t.Fatalf("report = %+v", r)
	}
	var buf bytes.Buffer
	r.pretty(&buf)
	for _, want := range []string{"flt.h:   " + r.Header, "commit:  ", "go:      go"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("pretty output lacks %q:\n%s", want, buf.String())
		}
	}
}

func writeManifest(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", manifestName, err)
	}
	return path
}

func TestLoadProjectManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[compiler]
path = "gcc-12"
extra = ["-DTARGET", "-Iinclude"]

[output]
suffix = "-soft"

[cache]
enabled = false
`)
	nested := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := loadProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("loadProjectManifest: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	cfg := m.Config
	if cfg.Compiler.Path != "gcc-12" || strings.Join(cfg.Compiler.Extra, " ") != "-DTARGET -Iinclude" {
		t.Fatalf("compiler = %+v", cfg.Compiler)
	}
	if cfg.Output.Suffix != "-soft" || cfg.cacheEnabled() {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestLoadProjectManifestMissing(t *testing.T) {
	_, ok, err := loadProjectManifest(t.TempDir())
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestLoadProjectConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"unknown key", "[compiler]\npath = \"gcc\"\nflags = 1\n", "unknown keys: compiler.flags"},
		{"bad suffix", "[output]\nsuffix = \"a/b\"\n", "[output].suffix"},
		{"not toml", "[compiler\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.data)
			_, err := loadProjectConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestCacheEnabledByDefault(t *testing.T) {
	if !(projectConfig{}).cacheEnabled() {
		t.Fatal("cache should default to enabled")
	}
}

func TestOutputFor(t *testing.T) {
	s := convertSettings{suffix: "-flt"}
	if got := s.outputFor("dir/prog.c"); got != "dir/prog-flt.c" {
		t.Fatalf("got %q", got)
	}
	s.output = "-"
	if got := s.outputFor("dir/prog.c"); got != "-" {
		t.Fatalf("got %q", got)
	}
}

func TestParseSwitch(t *testing.T) {
	tests := map[string]autoSwitch{
		"":       switchAuto,
		"AUTO":   switchAuto,
		"on":     switchOn,
		"always": switchOn,
		" off ":  switchOff,
		"never":  switchOff,
	}
	for in, want := range tests {
		got, err := parseSwitch("ui", in)
		if err != nil || got != want {
			t.Errorf("parseSwitch(%q) = %q, %v", in, got, err)
		}
	}
	_, err := parseSwitch("ui", "sometimes")
	if err == nil || !strings.Contains(err.Error(), "--ui") {
		t.Errorf("err = %v", err)
	}
	if !switchOn.enabledFor(os.Stderr) || switchOff.enabledFor(os.Stderr) {
		t.Error("on and off must not depend on the terminal")
	}
}

func TestDumpExhaustedKeepsEachFileApart(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	for _, path := range []string{"a.c", "b.c"} {
		f := trace.BeginFile(ring, path)
		trace.Begin(ring, trace.ScopePass, "pass:50", f).End("")
		f.End("")
	}
	results := []driver.FileResult{
		{Path: "a.c"},
		{Path: "b.c", Err: fmt.Errorf("b.c: %w", driver.ErrExhausted)},
	}
	var buf bytes.Buffer
	if err := dumpExhausted(&buf, ring, results); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "last trace events for b.c:\n") || strings.Contains(out, "a.c") {
		t.Fatalf("dump:\n%s", out)
	}
	if strings.Count(out, "pass:50") != 2 {
		t.Fatalf("expected begin and end of b.c's pass:\n%s", out)
	}
	if err := dumpExhausted(&buf, nil, results); err != nil {
		t.Fatal(err)
	}
}

func TestTraceDestinationImpliesDetail(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	t.Cleanup(func() {
		_ = flags.Set("trace", "")
		_ = flags.Set("trace-level", "off")
		flags.Lookup("trace").Changed = false
		flags.Lookup("trace-level").Changed = false
	})
	if err := flags.Set("trace", "-"); err != nil {
		t.Fatal(err)
	}
	cfg, err := traceConfig(rootCmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level != trace.LevelDetail || cfg.OutputPath != "-" || cfg.Format != trace.FormatAuto {
		t.Fatalf("cfg = %+v", cfg)
	}
	if err := flags.Set("trace-level", "off"); err != nil {
		t.Fatal(err)
	}
	if cfg, err = traceConfig(rootCmd); err != nil || cfg.Level != trace.LevelOff {
		t.Fatalf("explicit off: cfg = %+v, err = %v", cfg, err)
	}
}

func TestDiagLogHoldsUntilFlush(t *testing.T) {
	var out bytes.Buffer
	l := newDiagLog(&out, true)
	l.write("b.c", []byte("b1\n"))
	l.write("a.c", []byte("a1\n"))
	l.write("b.c", []byte("b2\n"))
	if out.Len() != 0 {
		t.Fatalf("held output leaked: %q", out.String())
	}
	l.flush([]string{"a.c", "b.c"})
	if out.String() != "a1\nb1\nb2\n" {
		t.Fatalf("got %q", out.String())
	}

	out.Reset()
	direct := newDiagLog(&out, false)
	direct.write("a.c", []byte("now\n"))
	if out.String() != "now\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestReportCompiler(t *testing.T) {
	tests := []struct {
		name string
		g    *cc.GCC
		err  error
		want []string
	}{
		{
			name: "missing",
			err:  fmt.Errorf("%w: not found", cc.ErrCompilerMissing),
			want: []string{"*** ERROR: gcc is not available ***", "requires gcc v9.0"},
		},
		{
			name: "too old",
			g:    &cc.GCC{Version: "8.5.0"},
			err:  fmt.Errorf("%w: old", cc.ErrCompilerTooOld),
			want: []string{"*** ERROR: gcc version is not supported ***", "Currently installed is gcc v8.5.0."},
		},
		{
			name: "other",
			err:  errors.New("permission denied"),
			want: []string{"*** ERROR: gcc is not available ***", "permission denied"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportCompiler(&buf, tt.g, tt.err)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output %q lacks %q", buf.String(), w)
				}
			}
		})
	}
}

func TestConvertRequiresSingleInputForOutput(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.c", "b.c"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("float x;\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	_, err := execute(t, "convert", "-o", "out.c", dir)
	if err == nil || !strings.Contains(err.Error(), "exactly one input") {
		t.Fatalf("err = %v", err)
	}
}
