package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".tavola"

// Paths holds resolved filesystem paths for Tavola data.
type Paths struct {
	Base    string // ~/.tavola
	Config  string // ~/.tavola/config.yaml
	History string // ~/.tavola/history.db
	Logs    string // ~/.tavola/logs
}

// ResolvePaths computes all standard paths from the home directory.
// If TAVOLA_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("TAVOLA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:    base,
		Config:  filepath.Join(base, "config.yaml"),
		History: filepath.Join(base, "history.db"),
		Logs:    filepath.Join(base, "logs"),
	}, nil
}

// EnsureDirs creates the standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.Base, p.Logs} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}
