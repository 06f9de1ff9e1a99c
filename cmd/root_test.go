package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mterrors "github.com/stevehiehn/multitest/internal/errors"
)

const matrixConfig = `
[[tests]]
name = "t-{{n}}"
command = ["echo", "{{n}}"]
  [tests.variables]
  n = ["x", "y"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "multitest.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the root command with every persistent flag set explicitly,
// since cobra keeps flag values between executions.
func run(t *testing.T, config, filter, report string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(args,
		"--config", config,
		"--filter", filter,
		"--color", "never",
		"--report", report,
		"--log-level", "warn",
	))
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRunSucceeds(t *testing.T) {
	stdout, stderr, err := run(t, writeConfig(t, matrixConfig), "", "")
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", stdout)
	assert.Contains(t, stderr, "Successes (2/2):\n  t-x\n  t-y\n")
}

func TestRunFailureVerdict(t *testing.T) {
	_, stderr, err := run(t, writeConfig(t, `
[[tests]]
name = "fails"
command = ["false"]
`), "", "")
	assert.ErrorIs(t, err, errTestsFailed)
	assert.Contains(t, stderr, "Failures (1/1):")
}

func TestRunNothingMatchedIsFailure(t *testing.T) {
	_, stderr, err := run(t, writeConfig(t, matrixConfig), "^zzz$", "")
	assert.ErrorIs(t, err, errTestsFailed)
	assert.Contains(t, stderr, "2 tests ignored")
	assert.Contains(t, stderr, "No tests executed")
}

func TestRunRejectsInvalidFilter(t *testing.T) {
	_, _, err := run(t, writeConfig(t, matrixConfig), "([", "")
	assert.ErrorIs(t, err, mterrors.Kind(mterrors.InvalidFilter))
}

func TestRunMissingConfig(t *testing.T) {
	_, _, err := run(t, filepath.Join(t.TempDir(), "absent.toml"), "", "")
	assert.ErrorIs(t, err, mterrors.Kind(mterrors.LoadError))
}

func TestRunWritesReport(t *testing.T) {
	reportFile := filepath.Join(t.TempDir(), "report.json")
	_, _, err := run(t, writeConfig(t, matrixConfig), "", reportFile)
	require.NoError(t, err)

	data, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	var rep struct {
		RunID     string `json:"run_id"`
		Success   bool   `json:"success"`
		Successes int    `json:"successes"`
		Tests     []struct {
			Name string `json:"name"`
		} `json:"tests"`
	}
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.NotEmpty(t, rep.RunID)
	assert.True(t, rep.Success)
	assert.Equal(t, 2, rep.Successes)
	require.Len(t, rep.Tests, 2)
	assert.Equal(t, "t-y", rep.Tests[1].Name)
}

func TestListPrintsInstances(t *testing.T) {
	stdout, stderr, err := run(t, writeConfig(t, matrixConfig), "", "", "list")
	require.NoError(t, err)
	assert.Equal(t, "t-x: echo x\nt-y: echo y\n", stdout)
	assert.NotContains(t, stderr, "t-x: echo x")
	assert.Contains(t, stderr, "2 tests listed")
}

func TestValidateAcceptsConfig(t *testing.T) {
	_, stderr, err := run(t, writeConfig(t, matrixConfig), "", "", "validate")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Configuration is valid (2 tests).")
}

func TestValidateRejectsTemplateErrors(t *testing.T) {
	_, stderr, err := run(t, writeConfig(t, `
[[tests]]
name = "{% if %}"
command = ["true"]
`), "", "", "validate")
	assert.ErrorIs(t, err, errTestsFailed)
	assert.Contains(t, stderr, "Validation failed: 1 invalid tests")
}

func TestColorFlagRejectsUnknownValue(t *testing.T) {
	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"validate", "--color", "sometimes"})
	err := rootCmd.ExecuteContext(context.Background())
	assert.Error(t, err)
	require.NoError(t, colorMode.Set("never"))
}
