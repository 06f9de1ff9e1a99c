package errors

import "fmt"

// Error type constants
const (
	LoadError      = "LOAD_ERROR"
	CompileError   = "COMPILE_ERROR"
	RenderError    = "RENDER_ERROR"
	DirectoryError = "DIRECTORY_ERROR"
	NotFound       = "CONFIG_NOT_FOUND"
	InvalidFilter  = "INVALID_FILTER"
)

// RunError is a structured error raised while loading or expanding a
// configuration.
type RunError struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Path     string `json:"path,omitempty"`
	Test     string `json:"test,omitempty"`
	Field    string `json:"field,omitempty"`
	Template string `json:"template,omitempty"`
	Hint     string `json:"hint,omitempty"`
	Err      error  `json:"-"`
}

func (e *RunError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s template %q: %s", e.Field, e.Template, msg)
	}
	if e.Test != "" {
		msg = fmt.Sprintf("test %q: %s", e.Test, msg)
	}
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Type, e.Path, msg)
	}
	return fmt.Sprintf("[%s] %s", e.Type, msg)
}

func (e *RunError) Unwrap() error { return e.Err }

// Is reports whether target is a RunError of the same type, so callers can
// match on kind with errors.Is(err, &RunError{Type: LoadError}).
func (e *RunError) Is(target error) bool {
	t, ok := target.(*RunError)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.Message == "" && t.Path == ""
}

func NewLoadError(path, msg string, err error) *RunError {
	return &RunError{Type: LoadError, Path: path, Message: msg, Err: err}
}

func NewDirectoryError(path, msg string, err error) *RunError {
	return &RunError{Type: DirectoryError, Path: path, Message: msg, Err: err}
}

// Kind returns a zero RunError for the given type, usable as an errors.Is
// target.
func Kind(typ string) *RunError {
	return &RunError{Type: typ}
}
