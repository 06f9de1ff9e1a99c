package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Process describes one child process to launch.
type Process struct {
	Command  []string // argv; Command[0] is the executable
	Env      [][2]string
	ClearEnv bool
	Dir      string
	Stdout   io.Writer // defaults to os.Stdout
	Stderr   io.Writer // defaults to os.Stderr
}

// Result holds the outcome of a child process.
type Result struct {
	ExitCode int
	// LaunchErr is set when the process could not be started.
	LaunchErr error
	// Signaled is true when the process ended without an exit code.
	Signaled bool
}

// Success reports whether the process started and exited with status 0.
func (r *Result) Success() bool {
	return r.LaunchErr == nil && !r.Signaled && r.ExitCode == 0
}

// Reason describes a failed result.
func (r *Result) Reason() string {
	switch {
	case r.LaunchErr != nil:
		return r.LaunchErr.Error()
	case r.Signaled:
		return "no exit code"
	case r.ExitCode != 0:
		return fmt.Sprintf("exit code %d", r.ExitCode)
	default:
		return ""
	}
}

// Run starts the command and blocks until it exits.
func Run(ctx context.Context, proc Process) *Result {
	if len(proc.Command) == 0 {
		return &Result{LaunchErr: errors.New("empty command")}
	}

	cmd := exec.CommandContext(ctx, proc.Command[0], proc.Command[1:]...)
	cmd.Dir = proc.Dir
	cmd.Env = environ(proc)
	cmd.Stdout = proc.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = proc.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return &Result{}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.Exited() {
			return &Result{ExitCode: -1, Signaled: true}
		}
		return &Result{ExitCode: exitErr.ExitCode()}
	}
	return &Result{ExitCode: -1, LaunchErr: err}
}

// environ builds the child environment. exec.Cmd keeps the last value of a
// duplicated key, so declared pairs override inherited ones and each other
// in order.
func environ(proc Process) []string {
	var env []string
	if proc.ClearEnv {
		env = make([]string, 0, len(proc.Env))
	} else {
		env = os.Environ()
	}
	for _, kv := range proc.Env {
		env = append(env, kv[0]+"="+kv[1])
	}
	return env
}
