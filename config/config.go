// Package config resolves DE_GEDCOM_PATH and DE_SCRIPTS_PATH search paths
// and loads the optional YAML config file cmd/deadends reads its defaults
// from (spec.md §6 "External interfaces"). Grounded on query/config.go's
// load-from-file-or-default shape, adapted from JSON to YAML (a teacher
// dependency, gopkg.in/yaml.v3) and from a single fixed path to the
// colon-separated PATH-style search spec.md's environment variables use.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults cmd/deadends falls back to when a flag isn't
// given explicitly.
type Config struct {
	GedcomPath  []string `yaml:"gedcom_path"`
	ScriptsPath []string `yaml:"scripts_path"`
	OutputMode  string   `yaml:"output_mode"` // "unbuffered", "buffered", or "pagemode"
}

// DefaultConfig returns a Config with no search-path entries and
// unbuffered output, matching this package's own zero-configuration
// behavior when no environment variables or config file are present.
func DefaultConfig() *Config {
	return &Config{OutputMode: "unbuffered"}
}

// Load builds a Config by layering, in increasing priority: compiled-in
// defaults, a YAML config file (configPath if non-empty, else the first of
// ./deadends.yaml, ~/.deadends/config.yaml, ~/.config/deadends/config.yaml
// that exists), then the DE_GEDCOM_PATH/DE_SCRIPTS_PATH environment
// variables (spec.md §6 names these as the canonical override).
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if path, ok := resolveConfigFile(configPath); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if env := os.Getenv("DE_GEDCOM_PATH"); env != "" {
		cfg.GedcomPath = SplitSearchPath(env)
	}
	if env := os.Getenv("DE_SCRIPTS_PATH"); env != "" {
		cfg.ScriptsPath = SplitSearchPath(env)
	}
	return cfg, nil
}

func resolveConfigFile(configPath string) (string, bool) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath, true
		}
		return "", false
	}
	candidates := []string{"./deadends.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".deadends", "config.yaml"),
			filepath.Join(home, ".config", "deadends", "config.yaml"),
		)
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, true
		}
	}
	return "", false
}

// SplitSearchPath splits a colon-separated search path into its non-empty
// components, the convention DE_GEDCOM_PATH and DE_SCRIPTS_PATH both use.
func SplitSearchPath(path string) []string {
	var out []string
	for _, part := range strings.Split(path, ":") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ResolveFile searches dirs in order for name, returning the first path
// that exists. If dirs is empty, name is checked as given (relative to the
// working directory).
func ResolveFile(dirs []string, name string) (string, bool) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err == nil {
			return name, true
		}
		return "", false
	}
	if len(dirs) == 0 {
		if _, err := os.Stat(name); err == nil {
			return name, true
		}
		return "", false
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
