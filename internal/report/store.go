// Package report writes the machine-readable summary of a run.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stevehiehn/multitest/internal/engine"
)

// Report is the persisted outcome of one run.
type Report struct {
	RunID     string          `json:"run_id" yaml:"run_id"`
	Config    string          `json:"config" yaml:"config"`
	Mode      string          `json:"mode" yaml:"mode"`
	Started   time.Time       `json:"started" yaml:"started"`
	Finished  time.Time       `json:"finished" yaml:"finished"`
	Success   bool            `json:"success" yaml:"success"`
	Error     string          `json:"error,omitempty" yaml:"error,omitempty"`
	Successes int             `json:"successes" yaml:"successes"`
	Failures  int             `json:"failures" yaml:"failures"`
	Ignored   int             `json:"ignored" yaml:"ignored"`
	Tests     []engine.Record `json:"tests" yaml:"tests"`
}

// New builds a report from a finished run. result may be nil when the run
// stopped on a configuration error.
func New(runID, config, mode string, started time.Time, result *engine.Result, runErr error) *Report {
	r := &Report{
		RunID:    runID,
		Config:   config,
		Mode:     mode,
		Started:  started,
		Finished: time.Now(),
		Tests:    []engine.Record{},
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	if result != nil {
		r.Success = runErr == nil && result.IsSuccess()
		r.Successes = len(result.Successes)
		r.Failures = len(result.Failures)
		r.Ignored = result.Ignored
		if result.Records != nil {
			r.Tests = result.Records
		}
	}
	return r
}

// Write stores the report at path, as YAML for .yaml/.yml and indented JSON
// otherwise.
func Write(path string, r *Report) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(r)
	default:
		data, err = json.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
