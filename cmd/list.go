package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stevehiehn/multitest/internal/engine"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every test that would run, without running it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, printer, err := runMode(cmd, engine.ModeList)
		if err != nil {
			return err
		}

		printer.Bold("%d tests listed", result.Listed)
		if result.Ignored > 0 {
			printer.Bold("%d tests ignored", result.Ignored)
		}
		if len(result.Failures) > 0 {
			printer.Red("Invalid tests (%d):", len(result.Failures))
			for _, name := range result.Failures {
				printer.Red("  %s", name)
			}
			return errTestsFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
