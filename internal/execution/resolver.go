package execution

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"tlaunch/internal/config"
)

// Resolver maps test identifiers to executable paths
type Resolver struct {
	binDir   string
	lookPath func(string) (string, error)
}

// NewResolver creates a Resolver using the configured binary directory,
// falling back to PATH when none is set
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		binDir:   cfg.GetBinDir(),
		lookPath: exec.LookPath,
	}
}

// Resolve returns the executable path for a test identifier. Identifiers
// containing a path separator are used as given.
func (r *Resolver) Resolve(name string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		if err := checkExecutable(name); err != nil {
			return "", err
		}
		return name, nil
	}

	if r.binDir != "" {
		p := filepath.Join(r.binDir, name)
		if err := checkExecutable(p); err != nil {
			return "", err
		}
		return p, nil
	}

	p, err := r.lookPath(name)
	if err != nil {
		return "", &BinaryNotFoundError{Name: name, Err: err}
	}
	return p, nil
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &BinaryNotFoundError{Name: path, Err: err}
	}
	if info.IsDir() {
		return &BinaryNotFoundError{Name: path, Err: errors.New("is a directory")}
	}
	return nil
}
