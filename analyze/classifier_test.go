package analyze

import (
	"testing"
)

func hasTag(tags []Tag, want Tag) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func TestClassifySpatial(t *testing.T) {
	c := NewClassifier()
	for _, file := range []string{"C0_Close.wav", "Piano_C3_near.wav", "gtr_dry.wav", "horn_direct.wav"} {
		tags := c.Classify(file)
		if !hasTag(tags, Tag{Kind: TagSpatial, Spatial: SpatialClose}) {
			t.Fatalf("Classify(%q) = %v, want close spatial tag", file, tags)
		}
	}
	for _, file := range []string{"C0_Distant.wav", "far_mic.wav", "hall_wet.wav", "Piano_room.wav"} {
		tags := c.Classify(file)
		if !hasTag(tags, Tag{Kind: TagSpatial, Spatial: SpatialDistant}) {
			t.Fatalf("Classify(%q) = %v, want distant spatial tag", file, tags)
		}
	}
}

func TestClassifyDynamics(t *testing.T) {
	c := NewClassifier()
	cases := []struct {
		file string
		want Tag
	}{
		{"Cello_G2_pp.wav", Tag{Kind: TagDynamic, Level: DynamicSoft}},
		{"Cello_G2_soft.wav", Tag{Kind: TagDynamic, Level: DynamicSoft}},
		{"Cello_G2_mp.wav", Tag{Kind: TagDynamic, Level: DynamicMedium}},
		{"Cello_G2_ff.wav", Tag{Kind: TagDynamic, Level: DynamicLoud}},
		{"Cello_G2_fortissimo.wav", Tag{Kind: TagDynamic, Level: DynamicLoud}},
		{"Cello_G2_vel96.wav", Tag{Kind: TagDynamic, Ordinal: 96}},
		{"Cello_G2_layer2.wav", Tag{Kind: TagDynamic, Ordinal: 2}},
	}
	for _, cs := range cases {
		tags := c.Classify(cs.file)
		if !hasTag(tags, cs.want) {
			t.Fatalf("Classify(%q) = %v, want %v", cs.file, tags, cs.want)
		}
	}
}

func TestClassifyRoundRobin(t *testing.T) {
	c := NewClassifier()
	cases := []struct {
		file string
		want int
	}{
		{"Snare_D1_rr1.wav", 1},
		{"Snare_D1_round12.wav", 12},
		{"Snare_D1_take3.wav", 3},
	}
	for _, cs := range cases {
		tags := c.Classify(cs.file)
		if !hasTag(tags, Tag{Kind: TagRoundRobin, Ordinal: cs.want}) {
			t.Fatalf("Classify(%q) = %v, want round robin %d", cs.file, tags, cs.want)
		}
	}
}

func TestClassifyZeroNumberedTokensIgnored(t *testing.T) {
	c := NewClassifier()
	for _, file := range []string{"Cello_G2_vel0.wav", "Snare_D1_rr0.wav"} {
		for _, tag := range c.Classify(file) {
			if tag.Ordinal != 0 {
				t.Fatalf("Classify(%q) produced numbered tag %v", file, tag)
			}
			if tag.Kind == TagDynamic || tag.Kind == TagRoundRobin {
				t.Fatalf("Classify(%q) = %v, zero-numbered token must not tag", file, tag)
			}
		}
	}

	// A 1-based ordinal renders distinctly from a level-zero dynamic.
	numbered := Tag{Kind: TagDynamic, Ordinal: 1}
	level := Tag{Kind: TagDynamic, Level: 0}
	if numbered.String() == level.String() {
		t.Fatalf("ordinal and level tags render identically: %q", numbered.String())
	}
}

func TestClassifyArticulations(t *testing.T) {
	c := NewClassifier()
	cases := []struct {
		file string
		want string
	}{
		{"Violin_G5_sustain.wav", "sustain"},
		{"Violin_G5_stacc.wav", "staccato"},
		{"Violin_G5_pizzicato.wav", "pizzicato"},
		{"Trumpet_C5_muted.wav", "muted"},
		{"Trumpet_C5_open.wav", "open"},
		{"Violin_G5_trem.wav", "tremolo"},
	}
	for _, cs := range cases {
		tags := c.Classify(cs.file)
		if !hasTag(tags, Tag{Kind: TagArticulation, Name: cs.want}) {
			t.Fatalf("Classify(%q) = %v, want articulation %q", cs.file, tags, cs.want)
		}
	}
}

func TestClassifyMultipleAxes(t *testing.T) {
	c := NewClassifier()
	tags := c.Classify("Piano_C4_close_ff.wav")
	if !hasTag(tags, Tag{Kind: TagSpatial, Spatial: SpatialClose}) {
		t.Fatalf("missing spatial tag: %v", tags)
	}
	if !hasTag(tags, Tag{Kind: TagDynamic, Level: DynamicLoud}) {
		t.Fatalf("missing dynamic tag: %v", tags)
	}
}

func TestClassifyNothing(t *testing.T) {
	c := NewClassifier()
	if tags := c.Classify("Piano_C4.wav"); len(tags) != 0 {
		t.Fatalf("expected no tags, got %v", tags)
	}
}

func TestClassifyLongFormBeatsShortForm(t *testing.T) {
	c := NewClassifier()
	tags := c.Classify("Violin_G5_pizzicato.wav")
	count := 0
	for _, tag := range tags {
		if tag.Kind == TagArticulation {
			count++
		}
	}
	// "pizzicato" contains "pizz"; only one articulation tag may come
	// out of the token.
	if count != 1 {
		t.Fatalf("expected a single articulation tag, got %v", tags)
	}
}

func TestClassifierCustomRules(t *testing.T) {
	c := NewClassifierWithRules([]Rule{
		{Token: "harmon", Tag: Tag{Kind: TagArticulation, Name: "harmon-mute"}},
	})
	tags := c.Classify("Trumpet_C5_harmon.wav")
	if !hasTag(tags, Tag{Kind: TagArticulation, Name: "harmon-mute"}) {
		t.Fatalf("custom rule did not match: %v", tags)
	}
	// Built-in vocabulary still applies.
	if !hasTag(c.Classify("Trumpet_C5_open.wav"), Tag{Kind: TagArticulation, Name: "open"}) {
		t.Fatalf("built-in vocabulary lost")
	}
}
