package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stevehiehn/multitest/internal/engine"
)

func runTests(cmd *cobra.Command, args []string) error {
	result, printer, err := runMode(cmd, engine.ModeRun)
	if err != nil {
		return err
	}
	result.Summary(printer)
	if !result.IsSuccess() {
		return errTestsFailed
	}
	return nil
}
