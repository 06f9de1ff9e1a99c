package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveIncludes expands each pattern relative to dir, in order. The
// matches of one pattern are sorted by path. An invalid pattern or an I/O
// error while matching fails the whole resolution.
func ResolveIncludes(dir string, patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := glob(dir, pattern)
		if err != nil {
			return nil, err
		}
		slices.Sort(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

func glob(dir, pattern string) ([]string, error) {
	slashed := path.Clean(filepath.ToSlash(pattern))

	// os.DirFS cannot reach outside dir, so absolute and parent-relative
	// patterns are matched against the real filesystem.
	if filepath.IsAbs(pattern) || slashed == ".." || strings.HasPrefix(slashed, "../") {
		full := pattern
		if !filepath.IsAbs(pattern) {
			full = filepath.Join(escapeMeta(dir), pattern)
		}
		if !doublestar.ValidatePathPattern(full) {
			return nil, fmt.Errorf("invalid include glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
		matches, err := doublestar.FilepathGlob(full, doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("matching include %q: %w", pattern, err)
		}
		return matches, nil
	}

	if !doublestar.ValidatePattern(slashed) {
		return nil, fmt.Errorf("invalid include glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	matches, err := doublestar.Glob(os.DirFS(dir), slashed, doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("matching include %q: %w", pattern, err)
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return out, nil
}

func escapeMeta(s string) string {
	if filepath.Separator == '\\' {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
