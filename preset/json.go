// Package preset loads mapping presets: JSON files that adjust the
// planner options and extend the variation vocabulary. The recognizer
// tables stay immutable configuration — a preset is applied once at
// construction time, never mutated afterwards.
package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/cwbudde/algo-samplemap/analyze"
	"github.com/cwbudde/algo-samplemap/mapping"
)

// File is the JSON schema for mapping presets.
type File struct {
	ConfidenceThreshold *float32           `json:"confidence_threshold"`
	FillGaps            *bool              `json:"fill_gaps"`
	Spatial             map[string]string  `json:"spatial"`
	Dynamics            map[string]float32 `json:"dynamics"`
	Articulations       map[string]string  `json:"articulations"`
}

// Config is a fully resolved preset: planner options plus the extra
// vocabulary rules to feed the analyzer.
type Config struct {
	Options mapping.Options
	Rules   []analyze.Rule
}

// NewDefaultConfig creates a config with default options and no extra
// vocabulary.
func NewDefaultConfig() *Config {
	return &Config{Options: *mapping.NewDefaultOptions()}
}

// LoadJSON loads a preset JSON file and applies it on top of the
// default config.
func LoadJSON(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	cfg := NewDefaultConfig()
	if err := ApplyFile(cfg, &f); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFile applies a parsed preset file onto an existing config.
func ApplyFile(dst *Config, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination config")
	}
	if f == nil {
		return nil
	}

	if f.ConfidenceThreshold != nil {
		if *f.ConfidenceThreshold < 0 || *f.ConfidenceThreshold > 1 {
			return fmt.Errorf("confidence_threshold must be in [0,1]")
		}
		dst.Options.ConfidenceThreshold = *f.ConfidenceThreshold
	}
	if f.FillGaps != nil {
		dst.Options.FillGaps = *f.FillGaps
	}

	// Vocabulary maps are applied in sorted token order so the rule
	// table comes out the same on every load.
	for _, token := range sortedKeys(f.Spatial) {
		position := f.Spatial[token]
		if token == "" {
			return fmt.Errorf("spatial vocabulary token must not be empty")
		}
		tag := analyze.Tag{Kind: analyze.TagSpatial}
		switch position {
		case "close":
			tag.Spatial = analyze.SpatialClose
		case "distant":
			tag.Spatial = analyze.SpatialDistant
		default:
			return fmt.Errorf("spatial[%q] must be \"close\" or \"distant\", got %q", token, position)
		}
		dst.Rules = append(dst.Rules, analyze.Rule{Token: token, Tag: tag})
	}

	for _, token := range sortedKeys(f.Dynamics) {
		level := f.Dynamics[token]
		if token == "" {
			return fmt.Errorf("dynamics vocabulary token must not be empty")
		}
		if level < 0 || level > 1 {
			return fmt.Errorf("dynamics[%q] level must be in [0,1], got %v", token, level)
		}
		dst.Rules = append(dst.Rules, analyze.Rule{
			Token: token,
			Tag:   analyze.Tag{Kind: analyze.TagDynamic, Level: level},
		})
	}

	for _, token := range sortedKeys(f.Articulations) {
		name := f.Articulations[token]
		if token == "" || name == "" {
			return fmt.Errorf("articulation entries must not be empty (token %q, name %q)", token, name)
		}
		dst.Rules = append(dst.Rules, analyze.Rule{
			Token: token,
			Tag:   analyze.Tag{Kind: analyze.TagArticulation, Name: name},
		})
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
