// Package pitch computes playback ratios for transposing a sample
// from its recorded root note to an arbitrary target note.
package pitch

import (
	"math"

	"github.com/cwbudde/algo-approx"
	"github.com/cwbudde/algo-samplemap/notes"
)

// Ratio returns the playback-rate multiplier that shifts a sample
// recorded at root so it sounds at target, with an additional fine
// tune in cents (1/100 semitone):
//
//	ratio = 2^((semitones*100 + cents) / 1200)
//
// Ratio(n, n, 0) is exactly 1.0 and one octave up is 2.0. The
// function is total; non-finite cents propagate as NaN/Inf and are
// the caller's responsibility to validate.
func Ratio(root, target notes.Note, fineTuneCents float64) float64 {
	totalCents := float64(target-root)*100 + fineTuneCents
	return math.Exp2(totalCents / 1200)
}

// RatioFast is the low-precision variant for interactive preview,
// trading exactness for the fast exp approximation used by the
// rendering code. Error stays well below a cent across the keyboard.
func RatioFast(root, target notes.Note, fineTuneCents float32) float32 {
	const ln2 = 0.69314718055994530942
	totalCents := float32(target-root)*100 + fineTuneCents
	return approx.FastExp(totalCents / 1200 * ln2)
}

// Cents returns the signed size of ratio in cents, the inverse of
// Ratio for a fixed root. Used for display of transposition amounts.
func Cents(ratio float64) float64 {
	return 1200 * math.Log2(ratio)
}
