package config

import (
	"os"
	"path/filepath"
	"strings"

	mterrors "github.com/stevehiehn/multitest/internal/errors"
)

// document is a decoded configuration file: the generic value tree plus,
// per test, the variable names in the order they were written.
type document struct {
	root     map[string]any
	varOrder [][]string
}

// LoadFile reads, parses and validates a configuration file and resolves
// its include patterns.
func LoadFile(path string) (*Scope, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, mterrors.NewDirectoryError(path, "resolving configuration path", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, mterrors.NewLoadError(abs, "reading configuration", err)
	}
	return Load(abs, data)
}

// Load parses configuration bytes as if they were read from path. Relative
// include patterns resolve against the directory of path.
func Load(path string, data []byte) (*Scope, error) {
	doc, err := decode(path, data)
	if err != nil {
		return nil, mterrors.NewLoadError(path, "parsing configuration", err)
	}

	decls, patterns, err := buildScope(doc)
	if err != nil {
		return nil, mterrors.NewLoadError(path, "invalid configuration", err)
	}

	dir := filepath.Dir(path)
	includes, err := ResolveIncludes(dir, patterns)
	if err != nil {
		return nil, mterrors.NewLoadError(path, "resolving includes", err)
	}

	return &Scope{
		Path:         path,
		Dir:          dir,
		Declarations: decls,
		Includes:     includes,
	}, nil
}

func decode(path string, data []byte) (*document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeTOML(data)
	}
}
