package config

import (
	"os"
	"path/filepath"

	mterrors "github.com/stevehiehn/multitest/internal/errors"
)

// Find walks from startDir up to the filesystem root and returns the first
// multitest.toml it sees.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", mterrors.NewDirectoryError(startDir, "resolving start directory", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &mterrors.RunError{
				Type:    mterrors.NotFound,
				Message: FileName + " not found",
				Hint:    "Run from a directory containing " + FileName + " or pass --config",
			}
		}
		dir = parent
	}
}
