package config

import (
	"os"

	"github.com/cockroachdb/errors"
)

// EnsureConfigFile writes Defaults() to path unless a file already exists
// there. It reports whether a new file was created.
func EnsureConfigFile(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := SaveAtomic(path, Defaults()); err != nil {
		return false, err
	}
	return true, nil
}
