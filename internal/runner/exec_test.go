package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, proc Process) (*Result, string) {
	t.Helper()
	var stdout bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &bytes.Buffer{}
	return Run(context.Background(), proc), stdout.String()
}

func TestRunEchoHello(t *testing.T) {
	r, out := run(t, Process{Command: []string{"echo", "hello"}})
	assert.True(t, r.Success())
	assert.Equal(t, "hello", strings.TrimSpace(out))
}

func TestRunNonZeroExitCode(t *testing.T) {
	r, _ := run(t, Process{Command: []string{"sh", "-c", "exit 42"}})
	assert.False(t, r.Success())
	assert.Equal(t, 42, r.ExitCode)
	assert.Equal(t, "exit code 42", r.Reason())
}

func TestRunMissingExecutable(t *testing.T) {
	r, _ := run(t, Process{Command: []string{"multitest-definitely-missing-binary"}})
	assert.False(t, r.Success())
	require.Error(t, r.LaunchErr)
	assert.Contains(t, r.Reason(), "multitest-definitely-missing-binary")
}

func TestRunKilledBySignal(t *testing.T) {
	r, _ := run(t, Process{Command: []string{"sh", "-c", "kill -9 $$"}})
	assert.False(t, r.Success())
	assert.True(t, r.Signaled)
	assert.Equal(t, "no exit code", r.Reason())
}

func TestRunInDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), nil, 0o644))

	r, out := run(t, Process{Command: []string{"ls"}, Dir: dir})
	assert.True(t, r.Success())
	assert.Equal(t, "marker", strings.TrimSpace(out))
}

func TestRunClearEnvLaterPairWins(t *testing.T) {
	t.Setenv("MULTITEST_INHERITED", "yes")

	r, out := run(t, Process{
		Command:  []string{"env"},
		ClearEnv: true,
		Env:      [][2]string{{"A", "1"}, {"A", "2"}},
	})
	require.True(t, r.Success())
	assert.Equal(t, "A=2", strings.TrimSpace(out))
}

func TestRunInheritsAndOverridesEnv(t *testing.T) {
	t.Setenv("MULTITEST_INHERITED", "yes")
	t.Setenv("MULTITEST_OVERRIDE", "old")

	r, out := run(t, Process{
		Command: []string{"sh", "-c", `echo "$MULTITEST_INHERITED $MULTITEST_OVERRIDE"`},
		Env:     [][2]string{{"MULTITEST_OVERRIDE", "new"}},
	})
	require.True(t, r.Success())
	assert.Equal(t, "yes new", strings.TrimSpace(out))
}

func TestRunEmptyCommand(t *testing.T) {
	r := Run(context.Background(), Process{})
	assert.False(t, r.Success())
	assert.Error(t, r.LaunchErr)
}
