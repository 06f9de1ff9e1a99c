package engine

import "github.com/stevehiehn/multitest/internal/output"

// Outcome is what happened to one test instance.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomeIgnored Outcome = "ignored"
	OutcomeListed  Outcome = "listed"
)

// Record describes one outcome for the run report.
type Record struct {
	Name     string  `json:"name" yaml:"name"`
	File     string  `json:"file" yaml:"file"`
	Outcome  Outcome `json:"outcome" yaml:"outcome"`
	Command  string  `json:"command,omitempty" yaml:"command,omitempty"`
	Detail   string  `json:"detail,omitempty" yaml:"detail,omitempty"`
	Duration string  `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Result accumulates outcomes across a configuration file and its includes.
type Result struct {
	Ignored   int      `json:"ignored" yaml:"ignored"`
	Successes []string `json:"successes" yaml:"successes"`
	Failures  []string `json:"failures" yaml:"failures"`
	Listed    int      `json:"listed,omitempty" yaml:"listed,omitempty"`
	Records   []Record `json:"records,omitempty" yaml:"records,omitempty"`
}

// Merge appends other's outcomes after r's.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Ignored += other.Ignored
	r.Listed += other.Listed
	r.Successes = append(r.Successes, other.Successes...)
	r.Failures = append(r.Failures, other.Failures...)
	r.Records = append(r.Records, other.Records...)
}

// Merge returns a new Result holding a's outcomes followed by b's.
func Merge(a, b *Result) *Result {
	out := &Result{}
	out.Merge(a)
	out.Merge(b)
	return out
}

// Total is the number of executed tests.
func (r *Result) Total() int {
	return len(r.Successes) + len(r.Failures)
}

// IsSuccess reports whether at least one test ran and none failed.
func (r *Result) IsSuccess() bool {
	return len(r.Failures) == 0 && r.Total() > 0
}

func (r *Result) record(rec Record) {
	switch rec.Outcome {
	case OutcomeSuccess:
		r.Successes = append(r.Successes, rec.Name)
	case OutcomeFailure:
		r.Failures = append(r.Failures, rec.Name)
	case OutcomeIgnored:
		r.Ignored++
	case OutcomeListed:
		r.Listed++
	}
	r.Records = append(r.Records, rec)
}

// Summary prints successes, failures, the ignored count and, when nothing
// ran, a notice saying so.
func (r *Result) Summary(p *output.Printer) {
	total := r.Total()

	if len(r.Successes) > 0 {
		p.Green("Successes (%d/%d):", len(r.Successes), total)
		for _, name := range r.Successes {
			p.Green("  %s", name)
		}
	}

	if len(r.Failures) > 0 {
		p.Red("Failures (%d/%d):", len(r.Failures), total)
		for _, name := range r.Failures {
			p.Red("  %s", name)
		}
	}

	if r.Ignored > 0 {
		p.Bold("%d tests ignored", r.Ignored)
	}

	if total == 0 {
		p.Red("No tests executed")
	}
}
