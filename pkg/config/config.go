// Package config loads run configuration from TOML, YAML, or JSON files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for mire.
type Config struct {
	// Analysis settings
	Analysis AnalysisConfig `koanf:"analysis"`

	// Metric weight overrides, keyed by metric id
	Weights map[string]float64 `koanf:"weights"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// AnalysisConfig controls how the run executes.
type AnalysisConfig struct {
	Workers     int `koanf:"workers"`      // 0 means min(4, NumCPU)
	TimeoutSecs int `koanf:"timeout_secs"` // per-file budget, 0 disables
	MaxFiles    int `koanf:"max_files"`    // 0 means unlimited
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns"`
	Extensions []string `koanf:"extensions"`
	Dirs       []string `koanf:"dirs"`
	Gitignore  bool     `koanf:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format   string `koanf:"format"` // text, json, markdown
	Color    bool   `koanf:"color"`
	Verbose  bool   `koanf:"verbose"`
	TopFiles int    `koanf:"top_files"` // worst files shown in reports
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Workers:     0,
			TimeoutSecs: 0,
			MaxFiles:    0,
		},
		Weights: map[string]float64{},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*_test.py",
				"*.test.js",
				"*.test.ts",
				"*.spec.js",
				"*.spec.ts",
				"*.min.js",
			},
			Extensions: []string{
				".lock",
				".map",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				".mire",
				"dist",
				"build",
				"__pycache__",
				".venv",
				"venv",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format:   "text",
			Color:    true,
			Verbose:  false,
			TopFiles: 10,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"mire.toml",
		"mire.yaml",
		"mire.yml",
		"mire.json",
		".mire.toml",
		".mire.yaml",
		".mire.yml",
		".mire.json",
	}

	searchDirs := []string{".", ".mire"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}
