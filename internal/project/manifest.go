// Package project locates and reads the ferrite.toml manifest that
// configures a check-script tree.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded ferrite.toml plus its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the ferrite.toml schema. Every field is optional;
// zero values mean "use the CLI default".
type Config struct {
	Check CheckConfig `toml:"check"`
}

type CheckConfig struct {
	MaxDiagnostics int    `toml:"max-diagnostics"`
	Jobs           int    `toml:"jobs"`
	Color          string `toml:"color"`
	Cache          bool   `toml:"cache"`
}

// Find walks up from startDir looking for ferrite.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "ferrite.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest governing startDir.
// ok is false when no manifest exists, which is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Check.Color != "" {
		switch cfg.Check.Color {
		case "auto", "on", "off":
		default:
			return nil, true, fmt.Errorf("%s: [check].color must be auto, on or off", path)
		}
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}
