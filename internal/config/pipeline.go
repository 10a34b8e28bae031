// Package config provides configuration helpers for companion-go
// commands: a YAML pipeline file plus env-var fallbacks.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default preview server port.
const DefaultPreviewPort = "8090"

// ModelConfig names one model image to search for.
type ModelConfig struct {
	ID   int    `yaml:"id"`
	Path string `yaml:"path"`
}

// SourceConfig selects the frame source. Exactly one of Images, Video or
// Device should be set; Images wins when several are.
type SourceConfig struct {
	Images []string `yaml:"images"`
	Video  string   `yaml:"video"`
	Device *int     `yaml:"device"`
}

// MatchingConfig tunes the feature matching processor.
type MatchingConfig struct {
	Detector   string  `yaml:"detector"`
	Matcher    string  `yaml:"matcher"`
	Ratio      float64 `yaml:"ratio"`
	MinMatches int     `yaml:"min_matches"`
}

// Pipeline is the full configuration of a processing run.
type Pipeline struct {
	Source   SourceConfig   `yaml:"source"`
	Models   []ModelConfig  `yaml:"models"`
	Matching MatchingConfig `yaml:"matching"`
	Cascade  string         `yaml:"cascade"`

	PreviewPort string `yaml:"preview_port"`
	LogLevel    string `yaml:"log_level"`
}

// Load reads and validates a pipeline file.
func Load(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline config: %w", err)
	}

	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pipeline config: %w", err)
	}

	if p.PreviewPort == "" {
		p.PreviewPort = DefaultPreviewPort
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}

	if len(p.Source.Images) == 0 && p.Source.Video == "" && p.Source.Device == nil {
		return nil, fmt.Errorf("pipeline config %s: no frame source", path)
	}
	if len(p.Models) == 0 && p.Cascade == "" {
		return nil, fmt.Errorf("pipeline config %s: no models and no cascade", path)
	}
	for i, m := range p.Models {
		if m.Path == "" {
			return nil, fmt.Errorf("pipeline config %s: model %d has no path", path, i)
		}
	}

	return &p, nil
}

// PreviewPort returns the preview port from the COMPANION_PREVIEW_PORT
// env var, falling back to the provided default.
func PreviewPort(fallback string) string {
	if port := os.Getenv("COMPANION_PREVIEW_PORT"); port != "" {
		return port
	}
	if fallback != "" {
		return fallback
	}
	return DefaultPreviewPort
}

// LogLevel returns the log level from the COMPANION_LOG_LEVEL env var,
// falling back to the provided default.
func LogLevel(fallback string) string {
	if level := os.Getenv("COMPANION_LOG_LEVEL"); level != "" {
		return level
	}
	if fallback != "" {
		return fallback
	}
	return "info"
}
