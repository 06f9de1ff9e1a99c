package matrix

import (
	"fmt"
	"maps"

	"github.com/stevehiehn/multitest/internal/config"
	mterrors "github.com/stevehiehn/multitest/internal/errors"
	"github.com/stevehiehn/multitest/internal/template"
)

// Expand renders b once per combination of variable values. Variables are
// iterated in order, each one's values in order, depth first, so the first
// variable changes slowest. A variable with no values yields no instances.
// Any render failure discards every instance of the declaration.
func Expand(b *Binding, vars []config.Variable) ([]Instance, error) {
	var out []Instance
	if err := expand(b, vars, template.Context{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func expand(b *Binding, vars []config.Variable, ctx template.Context, out *[]Instance) error {
	if len(vars) == 0 {
		inst, err := b.render(ctx)
		if err != nil {
			return err
		}
		*out = append(*out, inst)
		return nil
	}

	current := vars[0]
	for _, value := range current.Values {
		ctx[current.Name] = template.Normalize(value)
		if err := expand(b, vars[1:], ctx, out); err != nil {
			return err
		}
	}
	return nil
}

func (b *Binding) render(ctx template.Context) (Instance, error) {
	name, err := renderField(b.Name, ctx, b.Name.Source(), "name")
	if err != nil {
		return Instance{}, err
	}

	// Command and env templates may refer to the rendered test name.
	scope := maps.Clone(ctx)
	scope["name"] = name

	inst := Instance{
		Name:     name,
		Command:  make([]string, 0, len(b.Command)),
		ClearEnv: b.ClearEnv,
	}
	for i, tpl := range b.Command {
		arg, err := renderField(tpl, scope, name, fmt.Sprintf("command[%d]", i))
		if err != nil {
			return Instance{}, err
		}
		inst.Command = append(inst.Command, arg)
	}
	for i, env := range b.Env {
		envName, err := renderField(env.Name, scope, name, fmt.Sprintf("env[%d].name", i))
		if err != nil {
			return Instance{}, err
		}
		envValue, err := renderField(env.Value, scope, name, fmt.Sprintf("env[%d].value", i))
		if err != nil {
			return Instance{}, err
		}
		inst.Env = append(inst.Env, EnvVar{Name: envName, Value: envValue})
	}
	return inst, nil
}

func renderField(tpl Renderer, ctx template.Context, test, field string) (string, error) {
	s, err := tpl.Render(maps.Clone(ctx))
	if err != nil {
		return "", &mterrors.RunError{
			Type:     mterrors.RenderError,
			Test:     test,
			Field:    field,
			Template: tpl.Source(),
			Message:  "rendering failed",
			Err:      err,
		}
	}
	return s, nil
}
