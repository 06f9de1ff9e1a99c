package matrix

import (
	"strings"

	"github.com/alessio/shellescape"
)

// EnvVar is a rendered environment variable assignment.
type EnvVar struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Instance is one fully rendered test, ready to run.
type Instance struct {
	Name     string   `json:"name" yaml:"name"`
	Command  []string `json:"command" yaml:"command"`
	Env      []EnvVar `json:"env,omitempty" yaml:"env,omitempty"`
	ClearEnv bool     `json:"clear_env,omitempty" yaml:"clear_env,omitempty"`
}

// String formats the instance as a shell command line, environment
// assignments first.
func (i Instance) String() string {
	parts := make([]string, 0, len(i.Env)+len(i.Command))
	for _, e := range i.Env {
		parts = append(parts, shellescape.Quote(e.Name)+"="+shellescape.Quote(e.Value))
	}
	for _, arg := range i.Command {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}
