package cmd

import (
	"context"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/multitest/internal/ctxlog"
	"github.com/stevehiehn/multitest/internal/engine"
	mterrors "github.com/stevehiehn/multitest/internal/errors"
	"github.com/stevehiehn/multitest/internal/output"
	"github.com/stevehiehn/multitest/internal/report"
)

var modeNames = map[engine.Mode]string{
	engine.ModeRun:      "run",
	engine.ModeList:     "list",
	engine.ModeValidate: "validate",
}

// compileFilter returns nil for an empty expression.
func compileFilter(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &mterrors.RunError{
			Type:    mterrors.InvalidFilter,
			Message: "invalid --filter expression",
			Err:     err,
		}
	}
	return re, nil
}

// runMode loads and processes the whole configuration tree in the given
// mode. It returns the result together with the printer used, so callers
// can print their own summary.
func runMode(cmd *cobra.Command, mode engine.Mode) (*engine.Result, *output.Printer, error) {
	filter, err := compileFilter(filterExpr)
	if err != nil {
		return nil, nil, err
	}

	printer := output.New(cmd.ErrOrStderr(), colorMode)
	rc := engine.NewRunContext(mode, filter, printer)
	rc.Stdout = cmd.OutOrStdout()
	rc.Stderr = cmd.ErrOrStderr()

	logger := ctxlog.New(logLevel, cmd.ErrOrStderr()).With("mode", modeNames[mode])
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	started := time.Now()
	result, path, runErr := engine.Root(ctx, rc, configPath)

	if reportPath != "" {
		rep := report.New(rc.RunID, path, modeNames[mode], started, result, runErr)
		if err := report.Write(reportPath, rep); err != nil {
			printer.Red("Error: %v", err)
		} else {
			logger.Info("report written", "path", reportPath, "run_id", rc.RunID)
		}
	}

	return result, printer, runErr
}
