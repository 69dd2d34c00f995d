package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fltc/internal/cache"
	"fltc/internal/cc"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that gcc and the cache are usable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		manifest, ok, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		name := ""
		if ok {
			fmt.Fprintf(out, "project: %s\n", manifest.Path)
			name = manifest.Config.Compiler.Path
		}
		if cmd.Flags().Changed("cc") {
			name, _ = cmd.Flags().GetString("cc")
		}

		g, err := cc.Find(cmd.Context(), name)
		if err != nil {
			reportCompiler(cmd.ErrOrStderr(), g, err)
			return errReported
		}
		fmt.Fprintf(out, "gcc: %s (v%s, minimum %s)\n", g.Path, g.Version, cc.MinVersion)

		disk, err := cache.Open("fltc")
		if err != nil {
			fmt.Fprintf(out, "cache: unavailable: %v\n", err)
			return nil
		}
		fmt.Fprintf(out, "cache: %s\n", disk.Dir())
		return nil
	},
}

func init() {
	doctorCmd.Flags().String("cc", "", "gcc executable to check (default gcc)")
}
