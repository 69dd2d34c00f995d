package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"fltc/internal/trace"
)

// traceConfig reads the persistent --trace* flags. A destination given
// without a level traces every pass.
func traceConfig(cmd *cobra.Command) (trace.Config, error) {
	flags := cmd.Root().PersistentFlags()
	var cfg trace.Config
	var err error
	if cfg.OutputPath, err = flags.GetString("trace"); err != nil {
		return cfg, err
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return cfg, err
	}
	if cfg.Level, err = trace.ParseLevel(levelStr); err != nil {
		return cfg, err
	}
	if cfg.Level == trace.LevelOff && cfg.OutputPath != "" && !flags.Changed("trace-level") {
		cfg.Level = trace.LevelDetail
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return cfg, err
	}
	if cfg.Mode, err = trace.ParseMode(modeStr); err != nil {
		return cfg, err
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return cfg, err
	}
	if cfg.Format, err = trace.ParseFormat(formatStr); err != nil {
		return cfg, err
	}
	if cfg.RingSize, err = flags.GetInt("trace-ring-size"); err != nil {
		return cfg, err
	}
	if cfg.Heartbeat, err = flags.GetDuration("trace-heartbeat"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupTracing attaches the configured tracer to the command's context and
// returns the function that flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, err := traceConfig(cmd)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if !tracer.Enabled() {
		return func() {}, nil
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := tracer.Flush(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
			}
			if err := tracer.Close(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
			}
		})
	}, nil
}
