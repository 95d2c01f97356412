package mapping

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-samplemap/notes"
)

// Range is a contiguous, inclusive span of keys served by one root
// note. Lo <= Root <= Hi always holds.
type Range struct {
	Root notes.Note `json:"root"`
	Lo   notes.Note `json:"lo"`
	Hi   notes.Note `json:"hi"`
}

// AllocateRanges assigns key ranges to the given root notes.
// Duplicates are collapsed and the input is not modified.
//
// With fillGaps, neighboring roots split the gap between them at the
// midpoint — the lower root keeps the extra key when the gap is odd —
// and the outermost roots extend to the ends of the keyboard, so the
// ranges partition 0..127 exactly. Without fillGaps every range
// collapses to its root note and the gaps stay unmapped.
//
// The allocation is closed-form and deterministic; overlapping output
// would be a programming defect, so the result is verified and a
// violation panics rather than being reported as an error.
func AllocateRanges(roots []notes.Note, fillGaps bool) []Range {
	distinct := dedupeSorted(roots)
	if len(distinct) == 0 {
		return nil
	}

	out := make([]Range, len(distinct))
	for i, root := range distinct {
		lo, hi := root, root
		if fillGaps {
			if i == 0 {
				lo = notes.MinNote
			} else {
				prev := distinct[i-1]
				lo = prev + (root-prev)/2 + 1
			}
			if i == len(distinct)-1 {
				hi = notes.MaxNote
			} else {
				next := distinct[i+1]
				hi = next - (next-root+1)/2
			}
		}
		out[i] = Range{Root: root, Lo: lo, Hi: hi}
	}

	verifyRanges(out, fillGaps)
	return out
}

func dedupeSorted(roots []notes.Note) []notes.Note {
	distinct := make([]notes.Note, 0, len(roots))
	seen := make(map[notes.Note]bool, len(roots))
	for _, n := range roots {
		if !seen[n] {
			seen[n] = true
			distinct = append(distinct, n)
		}
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i] < distinct[j] })
	return distinct
}

// verifyRanges re-checks the allocation invariants: each range
// contains its root, ranges are strictly increasing without overlap,
// and in fill mode they cover the keyboard without holes.
func verifyRanges(ranges []Range, fillGaps bool) {
	for i, r := range ranges {
		if r.Lo > r.Root || r.Root > r.Hi {
			panic(fmt.Sprintf("mapping: range %d does not contain its root: %+v", i, r))
		}
		if i == 0 {
			continue
		}
		prev := ranges[i-1]
		if fillGaps {
			if r.Lo != prev.Hi+1 {
				panic(fmt.Sprintf("mapping: gap or overlap between %+v and %+v", prev, r))
			}
		} else if r.Lo <= prev.Hi {
			panic(fmt.Sprintf("mapping: overlap between %+v and %+v", prev, r))
		}
	}
	if fillGaps && len(ranges) > 0 {
		if ranges[0].Lo != notes.MinNote || ranges[len(ranges)-1].Hi != notes.MaxNote {
			panic(fmt.Sprintf("mapping: fill allocation does not span the keyboard: %+v", ranges))
		}
	}
}
