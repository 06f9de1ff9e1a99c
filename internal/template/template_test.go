package template

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVariables(t *testing.T) {
	tpl, err := Compile("hello {{name}}")
	require.NoError(t, err)

	out, err := tpl.Render(Context{"name": "world"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestRenderMultipleVariables(t *testing.T) {
	tpl, err := Compile("{{os}}-{{arch}}")
	require.NoError(t, err)

	out, err := tpl.Render(Context{"os": "linux", "arch": "amd64"})
	require.NoError(t, err)
	assert.Equal(t, "linux-amd64", out)
}

func TestRenderUndefinedVariableIsEmpty(t *testing.T) {
	tpl, err := Compile("a{{missing}}b")
	require.NoError(t, err)

	out, err := tpl.Render(Context{})
	require.NoError(t, err)
	assert.Equal(t, "ab", out)
}

func TestRenderNilContext(t *testing.T) {
	tpl, err := Compile("plain string")
	require.NoError(t, err)

	out, err := tpl.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "plain string", out)
}

func TestRenderEmptyString(t *testing.T) {
	tpl, err := Compile("")
	require.NoError(t, err)

	out, err := tpl.Render(Context{})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRenderStructuredValues(t *testing.T) {
	tpl, err := Compile("{{target.os}}/{{flags[1]}}")
	require.NoError(t, err)

	ctx := Context{
		"target": Normalize(map[string]any{"os": "linux"}),
		"flags":  Normalize([]any{"-a", "-b"}),
	}
	out, err := tpl.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, "linux/-b", out)
}

func TestRenderDoesNotMutateContext(t *testing.T) {
	tpl, err := Compile("{% assign x = 'changed' %}{{x}}")
	require.NoError(t, err)

	ctx := Context{"x": "original"}
	out, err := tpl.Render(ctx)
	require.NoError(t, err)
	assert.Equal(t, "changed", out)
	assert.Equal(t, "original", ctx["x"])
}

func TestCompileRejectsSyntaxErrors(t *testing.T) {
	_, err := Compile("{% if x %}unterminated")
	assert.Error(t, err)
}

func TestSourceIsPreserved(t *testing.T) {
	tpl, err := Compile("t-{{n}}")
	require.NoError(t, err)
	assert.Equal(t, "t-{{n}}", tpl.Source())
}

func TestNormalize(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got := Normalize(map[string]any{
		"n":      1,
		"when":   ts,
		"tables": []map[string]any{{"k": "v"}},
	})
	assert.Equal(t, map[string]any{
		"n":      int64(1),
		"when":   "2024-01-02T03:04:05Z",
		"tables": []any{map[string]any{"k": "v"}},
	}, got)
}

func TestNormalizeLocalTimes(t *testing.T) {
	tests := []struct {
		zone string
		when time.Time
		want string
	}{
		{"date-local", time.Date(1979, 5, 27, 0, 0, 0, 0, time.FixedZone("date-local", 0)), "1979-05-27"},
		{"time-local", time.Date(0, 1, 1, 7, 32, 0, 500_000_000, time.FixedZone("time-local", 0)), "07:32:00.5"},
		{"datetime-local", time.Date(1979, 5, 27, 7, 32, 0, 0, time.FixedZone("datetime-local", 0)), "1979-05-27T07:32:00"},
		{"offset", time.Date(1979, 5, 27, 7, 32, 0, 0, time.FixedZone("", -8*3600)), "1979-05-27T07:32:00-08:00"},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.when))
		})
	}
}
