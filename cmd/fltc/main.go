package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fltc/internal/version"
)

// errReported marks a failure whose explanation has already been printed.
var errReported = errors.New("reported")

var traceCleanup = func() {}

var rootCmd = &cobra.Command{
	Use:   "fltc",
	Short: "Convert C code to use FLT and flt_* instead of float and double",
	Long: `fltc rewrites C sources that use float and double into code that uses the
FLT type and the flt_* software floating point library, for targets without
hardware floating point. It drives gcc as an oracle: every pass compiles the
current code, and each diagnostic gcc reports names a spot that needs a
rewrite, until the code compiles cleanly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := colorEnabled(cmd, os.Stderr)
		if err != nil {
			return err
		}
		color.NoColor = !enabled
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		traceCleanup()
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to FILE (- for stderr, .ndjson for JSON lines)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace event format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring buffer")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		traceCleanup()
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "fltc: %v\n", err)
		}
		os.Exit(1)
	}
}
