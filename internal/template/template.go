// Package template compiles and renders the Liquid templates used in test
// names, command arguments and environment variables.
package template

import (
	"fmt"
	"maps"
	"time"

	"github.com/osteele/liquid"
)

var engine = liquid.NewEngine()

// Context maps variable names to their current values.
type Context map[string]any

// Template is a pre-parsed template. Rendering never fails on undefined
// variables; they render as the empty string.
type Template struct {
	source string
	tpl    *liquid.Template
}

// Compile parses src. Only syntax errors are reported.
func Compile(src string) (*Template, error) {
	tpl, err := engine.ParseString(src)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &Template{source: src, tpl: tpl}, nil
}

// Render renders the template against a shallow copy of ctx, so tags that
// assign variables cannot change the caller's context.
func (t *Template) Render(ctx Context) (string, error) {
	bindings := liquid.Bindings(maps.Clone(ctx))
	if bindings == nil {
		bindings = liquid.Bindings{}
	}
	out, err := t.tpl.RenderString(bindings)
	if err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}
	return out, nil
}

// Source returns the template text as written.
func (t *Template) Source() string {
	return t.source
}

// Normalize converts a decoded configuration value into something Liquid
// can index and print. Tables become maps, arrays of tables become plain
// slices and datetimes become their string form.
func Normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = Normalize(inner)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = Normalize(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = Normalize(inner)
		}
		return out
	case int:
		return int64(val)
	case time.Time:
		return formatTime(val)
	case fmt.Stringer:
		return val.String()
	default:
		return v
	}
}

// TOML local dates and times decode into these named zones.
func formatTime(t time.Time) string {
	switch t.Location().String() {
	case "date-local":
		return t.Format("2006-01-02")
	case "time-local":
		return t.Format("15:04:05.999999999")
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	default:
		return t.Format(time.RFC3339Nano)
	}
}
