package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-samplemap/analyze"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	return path
}

func TestLoadJSONAppliesOptionsAndVocabulary(t *testing.T) {
	path := writePreset(t, `{
  "confidence_threshold": 0.8,
  "fill_gaps": false,
  "spatial": {
    "ambient": "distant",
    "spot": "close"
  },
  "dynamics": {
    "ghost": 0.1
  },
  "articulations": {
    "harmon": "harmon-mute"
  }
}`)

	cfg, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if cfg.Options.ConfidenceThreshold != 0.8 {
		t.Fatalf("confidence_threshold mismatch: %v", cfg.Options.ConfidenceThreshold)
	}
	if cfg.Options.FillGaps {
		t.Fatalf("fill_gaps override lost")
	}
	if len(cfg.Rules) != 4 {
		t.Fatalf("expected 4 vocabulary rules, got %d: %+v", len(cfg.Rules), cfg.Rules)
	}

	c := analyze.NewClassifierWithRules(cfg.Rules)
	tags := c.Classify("Horn_F3_ambient.wav")
	found := false
	for _, tag := range tags {
		if tag.Kind == analyze.TagSpatial && tag.Spatial == analyze.SpatialDistant {
			found = true
		}
	}
	if !found {
		t.Fatalf("preset vocabulary not effective: %v", tags)
	}
}

func TestLoadJSONKeepsDefaultsWhenFieldsAbsent(t *testing.T) {
	cfg, err := LoadJSON(writePreset(t, `{}`))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if cfg.Options.ConfidenceThreshold != 0.5 || !cfg.Options.FillGaps {
		t.Fatalf("defaults not preserved: %+v", cfg.Options)
	}
	if len(cfg.Rules) != 0 {
		t.Fatalf("unexpected rules: %+v", cfg.Rules)
	}
}

func TestLoadJSONRejectsBadThreshold(t *testing.T) {
	if _, err := LoadJSON(writePreset(t, `{"confidence_threshold": 1.5}`)); err == nil {
		t.Fatalf("expected error for out-of-range threshold")
	}
}

func TestLoadJSONRejectsBadSpatialPosition(t *testing.T) {
	if _, err := LoadJSON(writePreset(t, `{"spatial": {"side": "sideways"}}`)); err == nil {
		t.Fatalf("expected error for unknown spatial position")
	}
}

func TestLoadJSONRejectsBadDynamicLevel(t *testing.T) {
	if _, err := LoadJSON(writePreset(t, `{"dynamics": {"huge": 2.0}}`)); err == nil {
		t.Fatalf("expected error for out-of-range dynamic level")
	}
}

func TestApplyFileNilDestination(t *testing.T) {
	if err := ApplyFile(nil, &File{}); err == nil {
		t.Fatalf("expected error for nil destination")
	}
	cfg := NewDefaultConfig()
	if err := ApplyFile(cfg, nil); err != nil {
		t.Fatalf("nil file should be a no-op, got %v", err)
	}
}
