package config

// FileName is the configuration file searched for when no explicit path is
// given.
const FileName = "multitest.toml"

// Declaration is one authored test entry before variable expansion.
// Every string field is a template.
type Declaration struct {
	Name      string
	Command   []string // never empty
	ClearEnv  bool
	Env       []EnvPair
	Variables []Variable
}

// EnvPair is one environment variable assignment. Later pairs with the same
// name win.
type EnvPair struct {
	Name  string
	Value string
}

// Variable is a named, ordered list of values. Values keep their decoded
// shape (string, int64, float64, bool, []any, map[string]any).
type Variable struct {
	Name   string
	Values []any
}

// Scope is one parsed configuration file.
type Scope struct {
	Path         string // absolute path of the file
	Dir          string // directory tests and includes run from
	Declarations []Declaration
	Includes     []string // matched include files, in match order
}
