// Package notes maps between note names and MIDI note numbers.
//
// The anchor is fixed at middle C: the note named "C" in octave 4 is
// note 60 (scientific pitch notation, octaves -1..9). Shifting this
// anchor by one octave would change every downstream key range and
// transposition, so it is deliberately not configurable.
package notes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Note is a MIDI note number in 0..127.
type Note int

const (
	// MinNote and MaxNote bound the keyboard domain.
	MinNote Note = 0
	MaxNote Note = 127

	// MiddleC is the note named "C4".
	MiddleC Note = 60
)

// Accidental modifies a note letter by a semitone.
type Accidental int

const (
	Natural Accidental = iota
	Sharp
	Flat
)

var (
	ErrOutOfRange    = errors.New("note out of range 0..127")
	ErrBadLetter     = errors.New("note letter must be A..G")
	ErrBadAccidental = errors.New("unknown accidental")
)

// Semitone offsets of the natural letters from C.
var letterOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Canonical spelling per pitch class, sharps preferred over flats so
// that name round-trips are deterministic.
var pitchClassNames = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// FromName converts a note letter, accidental and octave into a Note.
// The octave follows scientific pitch notation, so FromName('C',
// Natural, 4) is 60 and FromName('C', Natural, -1) is 0.
func FromName(letter byte, accidental Accidental, octave int) (Note, error) {
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	offset, ok := letterOffsets[letter]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadLetter, string(letter))
	}
	switch accidental {
	case Natural:
	case Sharp:
		offset++
	case Flat:
		offset--
	default:
		return 0, fmt.Errorf("%w: %d", ErrBadAccidental, accidental)
	}

	n := (octave+1)*12 + offset
	if n < int(MinNote) || n > int(MaxNote) {
		return 0, fmt.Errorf("%w: %s octave %d", ErrOutOfRange, string(letter), octave)
	}
	return Note(n), nil
}

// Valid reports whether n lies inside the keyboard domain.
func (n Note) Valid() bool {
	return n >= MinNote && n <= MaxNote
}

// Name returns the canonical spelling of n, e.g. "C4", "A#2", "C-1".
// Flat spellings are never produced; Bb2 and A#2 both print as "A#2".
func (n Note) Name() string {
	return fmt.Sprintf("%s%d", pitchClassNames[((n%12)+12)%12], n.Octave())
}

// Octave returns the scientific octave of n (-1 for note 0).
func (n Note) Octave() int {
	return int(n)/12 - 1
}

// Letter returns the note letter of the canonical spelling of n.
func (n Note) Letter() byte {
	return pitchClassNames[n.PitchClass()][0]
}

// Accidental returns the accidental of the canonical spelling of n,
// which is never Flat.
func (n Note) Accidental() Accidental {
	if len(pitchClassNames[n.PitchClass()]) > 1 {
		return Sharp
	}
	return Natural
}

// PitchClass returns the semitone offset of n from C, in 0..11.
func (n Note) PitchClass() int {
	return (int(n)%12 + 12) % 12
}

// Parse converts a token like "C#4", "Bb2" or "c-1" into a Note.
// Letters are case-insensitive; the accidental is optional.
func Parse(s string) (Note, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("note name %q too short", s)
	}
	letter := s[0]
	rest := s[1:]
	accidental := Natural
	if len(rest) > 0 {
		switch rest[0] {
		case '#':
			accidental = Sharp
			rest = rest[1:]
		case 'b', 'B':
			// Only a flat when digits still follow, so "B2" stays B natural.
			if len(rest) > 1 && (rest[1] == '-' || (rest[1] >= '0' && rest[1] <= '9')) {
				accidental = Flat
				rest = rest[1:]
			}
		}
	}
	// Spelled-out accidentals, e.g. "Csharp4".
	lower := strings.ToLower(rest)
	if strings.HasPrefix(lower, "sharp") {
		accidental = Sharp
		rest = rest[len("sharp"):]
	} else if strings.HasPrefix(lower, "flat") {
		accidental = Flat
		rest = rest[len("flat"):]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("note name %q: bad octave: %v", s, err)
	}
	return FromName(letter, accidental, octave)
}
