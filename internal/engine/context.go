package engine

import (
	"context"
	"io"
	"os"
	"regexp"

	"github.com/google/uuid"
	"github.com/stevehiehn/multitest/internal/output"
	"github.com/stevehiehn/multitest/internal/runner"
)

// RunContext holds state shared by every scope of one run.
type RunContext struct {
	RunID  string
	Mode   Mode
	Filter *regexp.Regexp // nil runs everything
	Out    *output.Printer

	// Stdout and Stderr receive child process output and the list mode
	// listing; nil means the process's own streams.
	Stdout io.Writer
	Stderr io.Writer

	// Exec starts one child process. Tests replace it to observe launches.
	Exec func(ctx context.Context, proc runner.Process) *runner.Result
}

// NewRunContext creates a new execution context.
func NewRunContext(mode Mode, filter *regexp.Regexp, out *output.Printer) *RunContext {
	return &RunContext{
		RunID:  uuid.New().String(),
		Mode:   mode,
		Filter: filter,
		Out:    out,
		Exec:   runner.Run,
	}
}

func (rc *RunContext) stdout() io.Writer {
	if rc.Stdout == nil {
		return os.Stdout
	}
	return rc.Stdout
}
