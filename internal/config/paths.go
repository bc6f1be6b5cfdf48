package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the project.
type Paths struct {
	Root       string
	Config     string
	MarketFile string
	LogFile    string
	Snapshots  string
}

// DetectProjectRoot walks up from the current working directory looking
// for a directory that contains vaultdesk.json. Returns the absolute path
// or an error if not found.
func DetectProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return findRoot(dir)
}

func findRoot(dir string) (string, error) {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root without finding the config file.
			return "", fmt.Errorf("%s not found in any parent directory", FileName)
		}
		dir = parent
	}
}

// NewPaths creates a Paths struct with all files resolved relative to the
// project root, using the loaded config when available.
func NewPaths(root string) *Paths {
	d := Default()
	p := &Paths{
		Root:       root,
		Config:     filepath.Join(root, FileName),
		MarketFile: filepath.Join(root, d.MarketFile),
		LogFile:    filepath.Join(root, d.Logging.File),
		Snapshots:  filepath.Join(root, "snapshots"),
	}

	mu.RLock()
	cfg := globalCfg
	mu.RUnlock()

	if cfg != nil {
		if cfg.MarketFile != "" {
			p.MarketFile = joinRoot(root, cfg.MarketFile)
		}
		if cfg.Logging.File != "" {
			p.LogFile = joinRoot(root, cfg.Logging.File)
		}
	}
	return p
}

func joinRoot(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// EnsureDirectories creates the log and snapshot directories if they do
// not already exist.
func EnsureDirectories(p *Paths) error {
	for _, d := range []string{filepath.Dir(p.LogFile), p.Snapshots} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}
	return nil
}
