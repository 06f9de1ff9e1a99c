// Package matrix turns test declarations into concrete test instances by
// enumerating every combination of their variables.
package matrix

import (
	"fmt"

	"github.com/stevehiehn/multitest/internal/config"
	mterrors "github.com/stevehiehn/multitest/internal/errors"
	"github.com/stevehiehn/multitest/internal/template"
)

// Renderer is a compiled template.
type Renderer interface {
	Render(ctx template.Context) (string, error)
	Source() string
}

// EnvTemplate is a compiled environment variable assignment.
type EnvTemplate struct {
	Name  Renderer
	Value Renderer
}

// Binding is a declaration with every template field compiled.
type Binding struct {
	Name     Renderer
	Command  []Renderer
	Env      []EnvTemplate
	ClearEnv bool
}

// Compile compiles every template of d. The first field that fails to
// compile aborts the whole declaration.
func Compile(d config.Declaration) (*Binding, error) {
	name, err := compileField(d.Name, "name", d.Name)
	if err != nil {
		return nil, err
	}

	b := &Binding{Name: name, ClearEnv: d.ClearEnv}

	for i, arg := range d.Command {
		tpl, err := compileField(d.Name, fmt.Sprintf("command[%d]", i), arg)
		if err != nil {
			return nil, err
		}
		b.Command = append(b.Command, tpl)
	}

	for i, pair := range d.Env {
		envName, err := compileField(d.Name, fmt.Sprintf("env[%d].name", i), pair.Name)
		if err != nil {
			return nil, err
		}
		envValue, err := compileField(d.Name, fmt.Sprintf("env[%d].value", i), pair.Value)
		if err != nil {
			return nil, err
		}
		b.Env = append(b.Env, EnvTemplate{Name: envName, Value: envValue})
	}

	return b, nil
}

func compileField(test, field, src string) (Renderer, error) {
	tpl, err := template.Compile(src)
	if err != nil {
		return nil, &mterrors.RunError{
			Type:     mterrors.CompileError,
			Test:     test,
			Field:    field,
			Template: src,
			Message:  "invalid template",
			Err:      err,
		}
	}
	return tpl, nil
}
