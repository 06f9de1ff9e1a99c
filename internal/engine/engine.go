package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/stevehiehn/multitest/internal/config"
	"github.com/stevehiehn/multitest/internal/ctxlog"
	mterrors "github.com/stevehiehn/multitest/internal/errors"
	"github.com/stevehiehn/multitest/internal/matrix"
	"github.com/stevehiehn/multitest/internal/runner"
)

// Mode controls execution behavior.
type Mode int

const (
	ModeRun Mode = iota
	// ModeList prints every instance that would run.
	ModeList
	// ModeValidate expands every instance silently.
	ModeValidate
)

// Root runs the configuration at explicitPath, or the multitest.toml found
// by searching upward from the working directory. It returns the path that
// was used.
func Root(ctx context.Context, rc *RunContext, explicitPath string) (*Result, string, error) {
	path := explicitPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", mterrors.NewDirectoryError("", "getting the working directory", err)
		}
		path, err = config.Find(wd)
		if err != nil {
			return nil, "", err
		}
	}
	result, err := Execute(ctx, rc, path)
	return result, path, err
}

// Execute runs every test of the configuration file at path, then every
// included file in match order. Scopes never change the process working
// directory: each one passes its own directory to the processes it starts
// and to the include patterns it resolves.
func Execute(ctx context.Context, rc *RunContext, path string) (*Result, error) {
	return execute(ctx, rc, path, nil)
}

func execute(ctx context.Context, rc *RunContext, path string, ancestors []string) (*Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, mterrors.NewDirectoryError(path, "resolving configuration path", err)
	}
	if slices.Contains(ancestors, abs) {
		return nil, &mterrors.RunError{
			Type:    mterrors.LoadError,
			Path:    abs,
			Message: "include cycle: " + strings.Join(append(slices.Clone(ancestors), abs), " -> "),
			Hint:    "A configuration file cannot include itself, directly or through other includes",
		}
	}

	scope, err := config.LoadFile(abs)
	if err != nil {
		return nil, err
	}

	log := ctxlog.FromContext(ctx).With("run_id", rc.RunID, "config", scope.Path)
	log.Debug("entering scope", "dir", scope.Dir, "tests", len(scope.Declarations), "includes", len(scope.Includes))

	result := &Result{}
	for _, decl := range scope.Declarations {
		instances, err := instantiate(decl)
		if err != nil {
			// Without rendered names the filter falls back to the raw name template.
			if rc.Filter != nil && !rc.Filter.MatchString(decl.Name) {
				log.Debug("ignoring invalid declaration", "test", decl.Name, "error", err)
				rc.Out.Bold("Test %s ignored", decl.Name)
				result.record(Record{Name: decl.Name, File: scope.Path, Outcome: OutcomeIgnored, Detail: err.Error()})
				continue
			}
			var re *mterrors.RunError
			if errors.As(err, &re) {
				re.Path = scope.Path
			}
			rc.Out.Red("Error: %v", err)
			result.record(Record{
				Name:    decl.Name,
				File:    scope.Path,
				Outcome: OutcomeFailure,
				Detail:  err.Error(),
			})
			continue
		}
		log.Debug("expanded declaration", "test", decl.Name, "instances", len(instances))
		for _, inst := range instances {
			rc.runInstance(ctx, scope, inst, result)
		}
	}

	chain := append(slices.Clone(ancestors), abs)
	for _, include := range scope.Includes {
		rc.Out.Bold("Including %s", include)
		sub, err := execute(ctx, rc, include, chain)
		if err != nil {
			return nil, err
		}
		result.Merge(sub)
	}
	if len(scope.Includes) > 0 {
		rc.Out.Bold("Going back to %s", scope.Path)
	}

	log.Debug("leaving scope", "successes", len(result.Successes), "failures", len(result.Failures), "ignored", result.Ignored)
	return result, nil
}

func instantiate(decl config.Declaration) ([]matrix.Instance, error) {
	b, err := matrix.Compile(decl)
	if err != nil {
		return nil, err
	}
	return matrix.Expand(b, decl.Variables)
}

func (rc *RunContext) runInstance(ctx context.Context, scope *config.Scope, inst matrix.Instance, result *Result) {
	rec := Record{Name: inst.Name, File: scope.Path, Command: inst.String()}

	if rc.Filter != nil && !rc.Filter.MatchString(inst.Name) {
		rc.Out.Bold("Test %s ignored", inst.Name)
		rec.Outcome = OutcomeIgnored
		result.record(rec)
		return
	}

	switch rc.Mode {
	case ModeList:
		fmt.Fprintf(rc.stdout(), "%s: %s\n", inst.Name, inst)
		fallthrough
	case ModeValidate:
		rec.Outcome = OutcomeListed
		result.record(rec)
		return
	}

	rc.Out.Bold("Running test %s (%s)", inst.Name, inst)

	env := make([][2]string, len(inst.Env))
	for i, e := range inst.Env {
		env[i] = [2]string{e.Name, e.Value}
	}

	start := time.Now()
	res := rc.Exec(ctx, runner.Process{
		Command:  inst.Command,
		Env:      env,
		ClearEnv: inst.ClearEnv,
		Dir:      scope.Dir,
		Stdout:   rc.Stdout,
		Stderr:   rc.Stderr,
	})
	rec.Duration = time.Since(start).Round(time.Millisecond).String()

	if res.Success() {
		rc.Out.Green("Test %s was successful", inst.Name)
		rec.Outcome = OutcomeSuccess
	} else {
		rc.Out.Red("Test %s failed: %s", inst.Name, res.Reason())
		rec.Outcome = OutcomeFailure
		rec.Detail = res.Reason()
	}
	result.record(rec)

	ctxlog.FromContext(ctx).Debug("test finished", "run_id", rc.RunID, "test", inst.Name, "outcome", rec.Outcome, "duration", rec.Duration)
}
