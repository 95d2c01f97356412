package analyze

import (
	"regexp"
	"strconv"
	"strings"
)

// Rule maps a vocabulary token to a variation tag. Matching is a
// case-insensitive substring search inside each delimiter-split token
// of the filename.
type Rule struct {
	Token string
	Tag   Tag
}

// defaultRules is the built-in vocabulary, ordered most specific
// first within each axis. The table is read-only after construction
// so a single Classifier is safe to share across worker goroutines.
var defaultRules = []Rule{
	// Spatial / mic position.
	{Token: "close", Tag: Tag{Kind: TagSpatial, Spatial: SpatialClose}},
	{Token: "near", Tag: Tag{Kind: TagSpatial, Spatial: SpatialClose}},
	{Token: "dry", Tag: Tag{Kind: TagSpatial, Spatial: SpatialClose}},
	{Token: "direct", Tag: Tag{Kind: TagSpatial, Spatial: SpatialClose}},
	{Token: "distant", Tag: Tag{Kind: TagSpatial, Spatial: SpatialDistant}},
	{Token: "far", Tag: Tag{Kind: TagSpatial, Spatial: SpatialDistant}},
	{Token: "wet", Tag: Tag{Kind: TagSpatial, Spatial: SpatialDistant}},
	{Token: "room", Tag: Tag{Kind: TagSpatial, Spatial: SpatialDistant}},
	{Token: "reverb", Tag: Tag{Kind: TagSpatial, Spatial: SpatialDistant}},

	// Named dynamics.
	{Token: "pianissimo", Tag: Tag{Kind: TagDynamic, Level: DynamicSoft}},
	{Token: "soft", Tag: Tag{Kind: TagDynamic, Level: DynamicSoft}},
	{Token: "pp", Tag: Tag{Kind: TagDynamic, Level: DynamicSoft}},
	{Token: "mezzopiano", Tag: Tag{Kind: TagDynamic, Level: DynamicMedium}},
	{Token: "medium", Tag: Tag{Kind: TagDynamic, Level: DynamicMedium}},
	{Token: "mp", Tag: Tag{Kind: TagDynamic, Level: DynamicMedium}},
	{Token: "fortissimo", Tag: Tag{Kind: TagDynamic, Level: DynamicLoud}},
	{Token: "loud", Tag: Tag{Kind: TagDynamic, Level: DynamicLoud}},
	{Token: "ff", Tag: Tag{Kind: TagDynamic, Level: DynamicLoud}},

	// Articulations, long form before short form.
	{Token: "sustain", Tag: Tag{Kind: TagArticulation, Name: "sustain"}},
	{Token: "sus", Tag: Tag{Kind: TagArticulation, Name: "sustain"}},
	{Token: "staccato", Tag: Tag{Kind: TagArticulation, Name: "staccato"}},
	{Token: "stacc", Tag: Tag{Kind: TagArticulation, Name: "staccato"}},
	{Token: "pizzicato", Tag: Tag{Kind: TagArticulation, Name: "pizzicato"}},
	{Token: "pizz", Tag: Tag{Kind: TagArticulation, Name: "pizzicato"}},
	{Token: "tremolo", Tag: Tag{Kind: TagArticulation, Name: "tremolo"}},
	{Token: "trem", Tag: Tag{Kind: TagArticulation, Name: "tremolo"}},
	{Token: "vibrato", Tag: Tag{Kind: TagArticulation, Name: "vibrato"}},
	{Token: "vib", Tag: Tag{Kind: TagArticulation, Name: "vibrato"}},
	{Token: "muted", Tag: Tag{Kind: TagArticulation, Name: "muted"}},
	{Token: "mute", Tag: Tag{Kind: TagArticulation, Name: "muted"}},
	{Token: "open", Tag: Tag{Kind: TagArticulation, Name: "open"}},
	{Token: "legato", Tag: Tag{Kind: TagArticulation, Name: "legato"}},
	{Token: "smooth", Tag: Tag{Kind: TagArticulation, Name: "legato"}},
}

// Numbered variations: round robins, velocity layers and takes carry
// an index that the substring table cannot express.
var (
	reRoundRobin = regexp.MustCompile(`^(?:rr|round|take|tk)[-_ ]?([0-9]+)$`)
	reVelocity   = regexp.MustCompile(`^(?:vel|layer|lyr)[-_ ]?([0-9]+)$`)
)

// Classifier extracts variation tags from filenames using an
// immutable vocabulary table.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier with the built-in vocabulary.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules}
}

// NewClassifierWithRules appends caller-supplied vocabulary after the
// built-in table. The extra rules are copied; later mutation of the
// argument does not affect the classifier.
func NewClassifierWithRules(extra []Rule) *Classifier {
	rules := make([]Rule, 0, len(defaultRules)+len(extra))
	rules = append(rules, defaultRules...)
	rules = append(rules, extra...)
	return &Classifier{rules: rules}
}

// Classify returns every variation tag recognized in fileName.
// Zero, one or several tags are all normal outcomes; no confidence is
// attached because a token either matches the vocabulary or it does
// not. The extension is ignored.
func (c *Classifier) Classify(fileName string) []Tag {
	var tags []Tag
	for _, token := range splitTokens(stripExtension(fileName)) {
		lower := strings.ToLower(token)

		// Ordinal zero means "no numbered variation" on a Tag, so
		// zero-numbered tokens are ignored rather than folded into it.
		if m := reRoundRobin.FindStringSubmatch(lower); m != nil {
			if idx, err := strconv.Atoi(m[1]); err == nil && idx > 0 {
				tags = appendUnique(tags, Tag{Kind: TagRoundRobin, Ordinal: idx})
			}
			continue
		}
		if m := reVelocity.FindStringSubmatch(lower); m != nil {
			if idx, err := strconv.Atoi(m[1]); err == nil && idx > 0 {
				tags = appendUnique(tags, Tag{Kind: TagDynamic, Ordinal: idx})
			}
			continue
		}

		matched := map[TagKind]bool{}
		for _, r := range c.rules {
			// One tag per axis per token: "pizzicato" should not also
			// match "pizz".
			if matched[r.Tag.Kind] {
				continue
			}
			if strings.Contains(lower, r.Token) {
				tags = appendUnique(tags, r.Tag)
				matched[r.Tag.Kind] = true
			}
		}
	}
	return tags
}

func appendUnique(tags []Tag, t Tag) []Tag {
	for _, have := range tags {
		if have == t {
			return tags
		}
	}
	return append(tags, t)
}

func stripExtension(fileName string) string {
	if i := strings.LastIndexByte(fileName, '.'); i > 0 {
		return fileName[:i]
	}
	return fileName
}

// splitTokens cuts a filename stem at the usual sample-library
// delimiters. Hyphens are delimiters too except when they glue a
// negative octave to a note letter; the parser handles that case on
// the unsplit stem, so splitting here is safe.
func splitTokens(stem string) []string {
	return strings.FieldsFunc(stem, func(r rune) bool {
		switch r {
		case '_', '-', ' ', '.', '(', ')', '[', ']':
			return true
		}
		return false
	})
}
