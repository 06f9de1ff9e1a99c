package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stevehiehn/multitest/internal/engine"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and every file it includes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, printer, err := runMode(cmd, engine.ModeValidate)
		if err != nil {
			return err
		}
		if len(result.Failures) > 0 {
			printer.Red("Validation failed: %d invalid tests", len(result.Failures))
			return errTestsFailed
		}
		printer.Green("Configuration is valid (%d tests).", result.Listed+result.Ignored)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
