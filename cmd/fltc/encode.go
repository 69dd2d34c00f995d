package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fltc/internal/literal"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <number>...",
	Short: "Print the FLT constant for decimal numbers",
	Example: `  fltc encode 1.5 1e-3
  0x3FC00000 /* 1.5 */
  0x3A83126F /* 1e-3 */

  fltc encode -- -2
  0xC0000000 /* -2 */`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			enc, err := literal.Encode(arg)
			if err != nil {
				return fmt.Errorf("encode %q: %w", arg, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), enc)
		}
		return nil
	},
}
