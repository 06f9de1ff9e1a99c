package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/multitest/internal/output"
)

// version is set at build time with -ldflags "-X".
var version = "dev"

var (
	configPath string
	filterExpr string
	colorMode  = output.ColorAuto
	logLevel   string
	reportPath string
)

// errTestsFailed signals a completed run whose verdict is failure. The
// summary has already been printed.
var errTestsFailed = errors.New("tests failed")

var rootCmd = &cobra.Command{
	Use:           "multitest",
	Short:         "Runs multiple tests",
	Long:          "multitest expands the test matrix described in multitest.toml and runs every test as a child process.",
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTests,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Select a configuration file instead of searching for a multitest.toml file")
	flags.StringVar(&filterExpr, "filter", "", "Only run tests whose name matches the regular expression")
	flags.Var(&colorMode, "color", "When to use color in the output (always, auto, never)")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level for structured logs on stderr (debug, info, warn, error)")
	flags.StringVar(&reportPath, "report", "", "Write a run report to this file (.json, .yaml or .yml)")

	_ = rootCmd.RegisterFlagCompletionFunc("color", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(output.ColorAlways), string(output.ColorAuto), string(output.ColorNever)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.MarkPersistentFlagFilename("config", "toml", "yaml", "yml")
}

// Execute runs the root command and exits 1 on any failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errTestsFailed) {
			output.New(rootCmd.ErrOrStderr(), colorMode).Red("Error: %v", err)
		}
		os.Exit(1)
	}
}
