package analyze

import (
	"testing"

	"github.com/cwbudde/algo-samplemap/notes"
)

func TestParseExplicitOctaveTokens(t *testing.T) {
	p := NewParser()
	cases := []struct {
		file string
		want string
		conf float32
	}{
		{"Piano_C4.wav", "C4", ConfidenceExplicit},
		{"Strings_Bb2.wav", "A#2", ConfidenceExplicit},
		{"C0_Close.wav", "C0", ConfidenceExplicit},
		{"pad-f#3-soft.wav", "F#3", ConfidenceExplicit},
		{"Sub C-1.wav", "C-1", ConfidenceExplicit},
		{"Violin G5 sustain.aif", "G5", ConfidenceExplicit},
		{"Csharp4_take2.wav", "C#4", ConfidenceWordAccidental},
		{"Organ_Bflat3.wav", "A#3", ConfidenceWordAccidental},
		{"Piano_C#.wav", "C#4", ConfidenceNoOctave},
		{"mix_b.wav", "B4", ConfidenceNoOctave},
	}
	for _, c := range cases {
		n, conf, ok := p.Parse(c.file)
		if !ok {
			t.Fatalf("Parse(%q) found no note", c.file)
		}
		if n.Name() != c.want {
			t.Fatalf("Parse(%q) = %s, want %s", c.file, n.Name(), c.want)
		}
		if conf != c.conf {
			t.Fatalf("Parse(%q) confidence = %v, want %v", c.file, conf, c.conf)
		}
	}
}

func TestParseNoMatchIsNormal(t *testing.T) {
	p := NewParser()
	for _, file := range []string{
		"loop_final_mix.wav",
		"kick_punchy.wav",
		"PianoC4.wav", // note token must be delimited
		"808.wav",
		"",
	} {
		if n, conf, ok := p.Parse(file); ok || conf != 0 {
			t.Fatalf("Parse(%q) = (%v, %v, %v), want no match", file, n, conf, ok)
		}
	}
}

func TestParseLeftmostExplicitWins(t *testing.T) {
	p := NewParser()
	n, conf, ok := p.Parse("D2_to_G5.wav")
	if !ok || conf != ConfidenceExplicit {
		t.Fatalf("expected explicit match, got conf %v ok %v", conf, ok)
	}
	if n.Name() != "D2" {
		t.Fatalf("expected leftmost note D2, got %s", n.Name())
	}

	// An explicit-octave token beats an earlier octave-less one.
	n, conf, ok = p.Parse("A_section_E3.wav")
	if !ok || conf != ConfidenceExplicit {
		t.Fatalf("expected explicit match, got conf %v ok %v", conf, ok)
	}
	if n.Name() != "E3" {
		t.Fatalf("expected explicit E3 over bare A, got %s", n.Name())
	}
}

func TestParseOutOfRangeIsUnresolved(t *testing.T) {
	p := NewParser()
	// A9 would be note 129. The match is real, so the parser must not
	// fall back to guessing some other token; the file is unresolved.
	if n, conf, ok := p.Parse("Bell_A9.wav"); ok || conf != 0 {
		t.Fatalf("Parse(Bell_A9) = (%v, %v, %v), want unresolved", n, conf, ok)
	}
}

func TestParseSharpPreferredOverFlatSpelling(t *testing.T) {
	p := NewParser()
	sharp, _, ok1 := p.Parse("Strings_A#2.wav")
	flat, _, ok2 := p.Parse("Strings_Bb2.wav")
	if !ok1 || !ok2 {
		t.Fatalf("expected both spellings to parse")
	}
	if sharp != flat {
		t.Fatalf("A#2 and Bb2 must resolve to the same note: %d vs %d", sharp, flat)
	}
	if sharp != notes.Note(46) || sharp.Name() != "A#2" {
		t.Fatalf("canonical spelling wrong: %d %s", sharp, sharp.Name())
	}
}
