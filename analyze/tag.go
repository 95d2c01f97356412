package analyze

import (
	"encoding/json"
	"fmt"
)

// TagKind identifies the variation axis a tag belongs to.
type TagKind int

const (
	TagSpatial TagKind = iota
	TagDynamic
	TagRoundRobin
	TagArticulation
)

func (k TagKind) String() string {
	switch k {
	case TagSpatial:
		return "spatial"
	case TagDynamic:
		return "dynamic"
	case TagRoundRobin:
		return "round_robin"
	case TagArticulation:
		return "articulation"
	default:
		return "unknown"
	}
}

// SpatialPosition distinguishes mic-position variations.
type SpatialPosition int

const (
	SpatialClose SpatialPosition = iota
	SpatialDistant
)

func (p SpatialPosition) String() string {
	if p == SpatialClose {
		return "close"
	}
	return "distant"
}

// Dynamic anchor levels for named dynamics vocabulary.
const (
	DynamicSoft   float32 = 0.25
	DynamicMedium float32 = 0.5
	DynamicLoud   float32 = 0.9
)

// Tag is one recognized variation role extracted from a filename.
// Kind selects which of the remaining fields are meaningful:
// Spatial for TagSpatial, Level and/or Ordinal for TagDynamic,
// Ordinal for TagRoundRobin, Name for TagArticulation. Ordinals are
// 1-based; zero means no numbered variation.
type Tag struct {
	Kind    TagKind
	Spatial SpatialPosition
	Level   float32
	Ordinal int
	Name    string
}

// MarshalJSON renders the tag in its compact string form, which is
// what the plan report wants ("spatial:close", "round_robin:2", ...).
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t Tag) String() string {
	switch t.Kind {
	case TagSpatial:
		return "spatial:" + t.Spatial.String()
	case TagDynamic:
		if t.Ordinal > 0 {
			return fmt.Sprintf("dynamic:vel%d", t.Ordinal)
		}
		return fmt.Sprintf("dynamic:%.2f", t.Level)
	case TagRoundRobin:
		return fmt.Sprintf("round_robin:%d", t.Ordinal)
	case TagArticulation:
		return "articulation:" + t.Name
	default:
		return "unknown"
	}
}
