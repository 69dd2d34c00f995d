package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2b"

	"fltc/internal/cc"
	"fltc/internal/version"
)

const versionTagline = "floats for machines that never had them"

// buildReport is what `fltc version` prints. Header is a fingerprint of
// the embedded flt.h: two builds with the same header emit code for the
// same runtime library.
type buildReport struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	Header     string `json:"flt_h"`
	Go         string `json:"go,omitempty"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var versionFlags struct {
	format  string
	hash    bool
	message bool
	date    bool
	full    bool
}

func init() {
	f := versionCmd.Flags()
	f.BoolVar(&versionFlags.hash, "hash", false, "include git commit hash")
	f.BoolVar(&versionFlags.message, "message", false, "include git commit message")
	f.BoolVar(&versionFlags.date, "date", false, "include build timestamp and Go version")
	f.BoolVar(&versionFlags.full, "full", false, "include everything")
	f.StringVar(&versionFlags.format, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the fltc version and the flt.h it embeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(versionFlags.format)
		if format != "pretty" && format != "json" {
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFlags.format)
		}
		r := newBuildReport(versionFlags.hash || versionFlags.full,
			versionFlags.message || versionFlags.full,
			versionFlags.date || versionFlags.full)
		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		}
		r.pretty(cmd.OutOrStdout())
		return nil
	},
}

func newBuildReport(hash, message, date bool) buildReport {
	r := buildReport{
		Tool:    "fltc",
		Version: strings.TrimSpace(version.Version),
		Tagline: versionTagline,
		Header:  headerFingerprint(),
	}
	if r.Version == "" {
		r.Version = "dev"
	}
	if hash {
		r.GitCommit = orUnknown(version.GitCommit)
	}
	if message {
		r.GitMessage = orUnknown(version.GitMessage)
	}
	if date {
		r.BuildDate = orUnknown(version.BuildDate)
		r.Go = runtime.Version()
	}
	return r
}

func (r *buildReport) pretty(out io.Writer) {
	v := r.Version
	if v == version.Version {
		v = version.Colored()
	}
	fmt.Fprintf(out, "fltc %s: %s\n", v, versionTagline)
	fmt.Fprintf(out, "flt.h:   %s\n", r.Header)
	for _, line := range [][2]string{
		{"commit", r.GitCommit},
		{"message", r.GitMessage},
		{"built", r.BuildDate},
		{"go", r.Go},
	} {
		if line[1] != "" {
			fmt.Fprintf(out, "%-8s %s\n", line[0]+":", line[1])
		}
	}
}

// headerFingerprint is the first 12 hex digits of the BLAKE2b-256 digest
// of the embedded flt.h.
func headerFingerprint() string {
	data, err := cc.Header(cc.HeaderRuntime)
	if err != nil {
		return "missing"
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:6])
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
