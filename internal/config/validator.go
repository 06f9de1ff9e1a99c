package config

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// buildScope turns a decoded document into declarations and include
// patterns. All problems in the file are collected and returned together.
func buildScope(doc *document) ([]Declaration, []string, error) {
	var problems []error

	var decls []Declaration
	if raw, ok := doc.root["tests"]; ok {
		tests, ok := tableList(raw)
		if !ok {
			problems = append(problems, errors.New("tests must be an array of tables"))
		}
		order := doc.varOrder
		if len(order) != len(tests) {
			order = nil
		}
		for i, test := range tests {
			var written []string
			if order != nil {
				written = order[i]
			}
			decl, errs := buildDeclaration(i, test, written)
			problems = append(problems, errs...)
			decls = append(decls, decl)
		}
	}

	var patterns []string
	if raw, ok := doc.root["includes"]; ok {
		list, ok := raw.([]any)
		if !ok {
			problems = append(problems, errors.New("includes must be an array of strings"))
		}
		for _, item := range list {
			pattern, ok := item.(string)
			if !ok {
				problems = append(problems, fmt.Errorf("includes must be strings, got %v", item))
				continue
			}
			patterns = append(patterns, pattern)
		}
	}

	if len(problems) > 0 {
		return nil, nil, errors.Join(problems...)
	}
	return decls, patterns, nil
}

func buildDeclaration(index int, test map[string]any, varOrder []string) (Declaration, []error) {
	var (
		decl     Declaration
		problems []error
	)

	label := fmt.Sprintf("test #%d", index+1)
	switch name := test["name"].(type) {
	case string:
		decl.Name = name
		label = fmt.Sprintf("test %q", name)
	case nil:
		problems = append(problems, fmt.Errorf("%s has no name", label))
	default:
		problems = append(problems, fmt.Errorf("%s: name must be a string", label))
	}

	switch command := test["command"].(type) {
	case nil:
		problems = append(problems, fmt.Errorf("%s has no command", label))
	case []any:
		if len(command) == 0 {
			problems = append(problems, fmt.Errorf("%s has an empty command", label))
		}
		for i, arg := range command {
			s, ok := arg.(string)
			if !ok {
				problems = append(problems, fmt.Errorf("invalid command for %s: argument %d is not a string", label, i))
				continue
			}
			decl.Command = append(decl.Command, s)
		}
	default:
		problems = append(problems, fmt.Errorf("invalid command for %s: must be an array of strings", label))
	}

	if raw, ok := test["clear_env"]; ok {
		clearEnv, ok := raw.(bool)
		if !ok {
			problems = append(problems, fmt.Errorf("%s: clear_env must be a boolean", label))
		}
		decl.ClearEnv = clearEnv
	}

	if raw, ok := test["env"]; ok {
		entries, ok := tableList(raw)
		if !ok {
			problems = append(problems, fmt.Errorf("%s: env must be an array of tables", label))
		}
		for _, entry := range entries {
			pair, err := buildEnvPair(label, entry)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			decl.Env = append(decl.Env, pair)
		}
	}

	if raw, ok := test["variables"]; ok {
		table, ok := raw.(map[string]any)
		if !ok {
			problems = append(problems, fmt.Errorf("%s: variables must be a table", label))
		}
		for _, name := range variableNames(table, varOrder) {
			values, ok := table[name].([]any)
			if !ok {
				problems = append(problems, fmt.Errorf("%s: the values of variable %q must be an array", label, name))
				continue
			}
			decl.Variables = append(decl.Variables, Variable{Name: name, Values: values})
		}
	}

	return decl, problems
}

func buildEnvPair(label string, entry map[string]any) (EnvPair, error) {
	name, hasName := entry["name"].(string)
	value, hasValue := entry["value"].(string)
	switch {
	case hasName && hasValue:
		return EnvPair{Name: name, Value: value}, nil
	case hasName:
		return EnvPair{}, fmt.Errorf("%s: environment variable %q without a value", label, name)
	case hasValue:
		return EnvPair{}, fmt.Errorf("%s: environment variable with value %q without a name", label, value)
	default:
		return EnvPair{}, fmt.Errorf("%s: environment variable with neither a name nor a value", label)
	}
}

// variableNames lists the keys of table in written order. Names the decoder
// could not place are appended in sorted order.
func variableNames(table map[string]any, written []string) []string {
	names := make([]string, 0, len(table))
	for _, name := range written {
		if _, ok := table[name]; ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	var rest []string
	for name := range table {
		if !slices.Contains(names, name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// tableList accepts both decoder shapes for an array of tables.
func tableList(v any) ([]map[string]any, bool) {
	switch list := v.(type) {
	case []map[string]any:
		return list, true
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			out = append(out, m)
		}
		return out, true
	default:
		return nil, false
	}
}
