package analyze

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-samplemap/notes"
)

// Parse confidence per recognizer pattern, most specific first.
const (
	ConfidenceExplicit       float32 = 0.95 // letter+accidental+octave token
	ConfidenceWordAccidental float32 = 0.85 // "sharp"/"flat" spelled out
	ConfidenceNoOctave       float32 = 0.5  // letter+accidental, octave assumed
)

// defaultOctave is assumed when a note token carries no octave digit.
const defaultOctave = 4

// Note tokens must be delimited; "C4" inside "PianoC4" is not a note.
// The optional '-' in front of the octave admits the lowest octave,
// e.g. "C-1".
var (
	reExplicitNote = regexp.MustCompile(`(?i)(?:^|[^0-9a-z])([a-g])([#b])?(-?[0-9]{1,2})(?:$|[^0-9a-z])`)
	reBareNote     = regexp.MustCompile(`(?i)(?:^|[^0-9a-z])([a-g])([#b])?(?:$|[^0-9a-z])`)
	wordAccidental = strings.NewReplacer(
		"sharp", "#", "Sharp", "#", "SHARP", "#",
		"flat", "b", "Flat", "b", "FLAT", "b",
	)
)

// Parser extracts a root note candidate from sample filenames. It
// holds only compiled immutable patterns and is safe for concurrent
// use.
type Parser struct{}

// NewParser creates a filename parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse scans fileName (extension ignored) for a note token and
// returns the note, a confidence score and whether anything matched.
// Patterns are tried most specific first and only the leftmost match
// of the winning pattern is used, so ties between an explicit-octave
// token and an octave-less token always favor the explicit one.
//
// No match is a normal outcome, reported as ok=false with confidence
// zero. A token whose octave puts the note outside 0..127 also
// resolves to ok=false: the failure stays local to this file.
func (p *Parser) Parse(fileName string) (notes.Note, float32, bool) {
	stem := stripExtension(fileName)

	if n, matched, ok := matchExplicit(stem); matched {
		if !ok {
			return 0, 0, false
		}
		return n, ConfidenceExplicit, true
	}

	// Spelled-out accidentals re-run the explicit pattern on a
	// substituted stem ("Csharp4" -> "C#4").
	substituted := wordAccidental.Replace(stem)
	if substituted != stem {
		if n, matched, ok := matchExplicit(substituted); matched {
			if !ok {
				return 0, 0, false
			}
			return n, ConfidenceWordAccidental, true
		}
	}

	if m := reBareNote.FindStringSubmatch(stem); m != nil {
		n, err := notes.FromName(m[1][0], accidentalOf(m[2]), defaultOctave)
		if err != nil {
			return 0, 0, false
		}
		return n, ConfidenceNoOctave, true
	}

	return 0, 0, false
}

// matchExplicit reports whether the explicit-octave pattern matched
// and whether the match resolved to a playable note. A match whose
// octave falls outside the keyboard is real but unusable; reporting
// it as matched keeps the caller from falling through to a weaker
// pattern and guessing a different note.
func matchExplicit(stem string) (n notes.Note, matched, ok bool) {
	m := reExplicitNote.FindStringSubmatch(stem)
	if m == nil {
		return 0, false, false
	}
	octave, err := strconv.Atoi(m[3])
	if err != nil {
		return 0, false, false
	}
	n, err = notes.FromName(m[1][0], accidentalOf(m[2]), octave)
	if err != nil {
		return 0, true, false
	}
	return n, true, true
}

func accidentalOf(s string) notes.Accidental {
	switch s {
	case "#":
		return notes.Sharp
	case "b", "B":
		return notes.Flat
	default:
		return notes.Natural
	}
}
