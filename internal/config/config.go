// Package config loads the resource limits and pattern-miner defaults
// that bound the core's work, grounded on devlog's YAML-backed
// internal/config package: a typed struct with sane defaults, merged
// with a `.zenithrc.yaml` found in the working directory or the user's
// home directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/frasasu/zenith/pkgs/parser"
	"github.com/frasasu/zenith/pkgs/pattern"
)

const FileName = ".zenithrc.yaml"

// Limits bundles every configurable bound named in spec.md sections 5
// and 4.9.
type Limits struct {
	MaxDepth          int  `yaml:"max_depth"`
	MaxTokenCount     int  `yaml:"max_token_count"`
	MaxSequenceLength int  `yaml:"max_sequence_length"`
	PatternMinLength  int  `yaml:"pattern_min_length"`
	PatternTopK       int  `yaml:"pattern_top_k"`
	StrictValidation  bool `yaml:"strict_validation"`
}

// Default returns the spec's built-in defaults.
func Default() Limits {
	d := parser.DefaultLimits()
	return Limits{
		MaxDepth:          d.MaxDepth,
		MaxTokenCount:     d.MaxTokenCount,
		MaxSequenceLength: pattern.DefaultMaxSequenceLength,
		PatternMinLength:  pattern.DefaultMinLength,
		PatternTopK:       pattern.DefaultTopK,
		StrictValidation:  false,
	}
}

// ParserLimits narrows Limits to the subset the parser understands.
func (l Limits) ParserLimits() parser.Limits {
	return parser.Limits{MaxDepth: l.MaxDepth, MaxTokenCount: l.MaxTokenCount}
}

// PatternOptions narrows Limits to the subset the pattern miner
// understands.
func (l Limits) PatternOptions() pattern.Options {
	return pattern.Options{
		MinLength:         l.PatternMinLength,
		TopK:              l.PatternTopK,
		MaxSequenceLength: l.MaxSequenceLength,
	}
}

// Load reads .zenithrc.yaml from the working directory, falling back
// to the user's home directory, and overlays it on Default(). A
// missing file is not an error; a malformed one is.
func Load() (Limits, error) {
	limits := Default()

	path, ok := findConfigFile()
	if !ok {
		return limits, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &limits); err != nil {
		return Limits{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return limits, nil
}

func findConfigFile() (string, bool) {
	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, FileName)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, FileName)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
