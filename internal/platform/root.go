package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// MarkerDir flags a directory as a scribe root when no config file is present.
const MarkerDir = ".scribe"

// ErrRootNotFound is returned by FindRoot when no marker exists up to the filesystem root.
var ErrRootNotFound = errors.New("scribe root not found")

// FindRoot walks upwards from startDir looking for a scribe.yaml file or a
// .scribe directory and returns the absolute path of the first match.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if hasFile(dir, ConfigFileName) || hasFile(dir, MarkerDir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
