// Package mapping builds a keyboard mapping plan from analyzed
// sample candidates: it groups same-note variations into layers,
// allocates non-overlapping key ranges over the detected notes and
// surfaces anything that needs human review.
package mapping

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-samplemap/analyze"
	"github.com/cwbudde/algo-samplemap/notes"
)

// LayerKind classifies how the members of a layer group differ.
type LayerKind int

const (
	LayerSingle LayerKind = iota
	LayerVelocity
	LayerSpatial
	LayerRoundRobin
	LayerArticulation
)

func (k LayerKind) String() string {
	switch k {
	case LayerSingle:
		return "single"
	case LayerVelocity:
		return "velocity"
	case LayerSpatial:
		return "spatial"
	case LayerRoundRobin:
		return "round_robin"
	case LayerArticulation:
		return "articulation"
	default:
		return "unknown"
	}
}

// MarshalText lets plan JSON carry readable kinds.
func (k LayerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// LayerGroup is a set of samples intentionally mapped to the same key
// range and root note. Member order is discovery order and carries no
// musical meaning.
type LayerGroup struct {
	Root    notes.Note          `json:"root"`
	Kind    LayerKind           `json:"kind"`
	Members []analyze.Candidate `json:"members"`
}

// Entry is one mapped key range. Entries never overlap unless they
// intentionally share a root (conflicting singletons awaiting review).
type Entry struct {
	Root          notes.Note  `json:"root"`
	Lo            notes.Note  `json:"lo"`
	Hi            notes.Note  `json:"hi"`
	FineTuneCents float64     `json:"fine_tune_cents"`
	Group         *LayerGroup `json:"group"`
}

// Conflict records candidates that share a root note but carry mixed
// or missing variation tags, so they could not be merged into one
// layer group automatically.
type Conflict struct {
	Root    notes.Note          `json:"root"`
	Members []analyze.Candidate `json:"members"`
	Reason  string              `json:"reason"`
}

// Plan is the engine's output: entries ordered by root note, plus the
// buckets that need caller attention. Unresolved candidates had no
// confident note; skipped ones hit a preserved existing mapping.
type Plan struct {
	Entries    []Entry             `json:"entries"`
	Conflicts  []Conflict          `json:"conflicts,omitempty"`
	Unresolved []analyze.Candidate `json:"unresolved,omitempty"`
	Skipped    []analyze.Candidate `json:"skipped,omitempty"`
}

// Options controls one planning pass.
type Options struct {
	// ConfidenceThreshold excludes weak note detections from mapping;
	// candidates below it land in the unresolved bucket.
	ConfidenceThreshold float32
	// FillGaps extends ranges to cover the keys between detected notes.
	FillGaps bool
	// PreserveExisting lists root notes already mapped by a prior plan;
	// candidates resolving to them are skipped instead of remapped.
	PreserveExisting []notes.Note
}

// NewDefaultOptions creates the default planning options.
func NewDefaultOptions() *Options {
	return &Options{
		ConfidenceThreshold: 0.5,
		FillGaps:            true,
	}
}

// BuildPlan runs the single-threaded reduction over a batch of
// analyzed candidates. Per-file problems never fail the batch; the
// only error is structural misuse of the options.
func BuildPlan(candidates []analyze.Candidate, opts *Options) (*Plan, error) {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	if opts.ConfidenceThreshold < 0 || opts.ConfidenceThreshold > 1 {
		return nil, fmt.Errorf("confidence_threshold must be in [0,1], got %v", opts.ConfidenceThreshold)
	}

	preserved := make(map[notes.Note]bool, len(opts.PreserveExisting))
	for _, n := range opts.PreserveExisting {
		preserved[n] = true
	}

	plan := &Plan{}

	// Partition: resolved by note, unresolved and preserved aside.
	// Iteration over candidates keeps discovery order inside groups.
	byNote := make(map[notes.Note][]analyze.Candidate)
	var order []notes.Note
	for _, c := range candidates {
		switch {
		case !c.Detected || c.Confidence < opts.ConfidenceThreshold:
			plan.Unresolved = append(plan.Unresolved, c)
		case preserved[c.Note]:
			plan.Skipped = append(plan.Skipped, c)
		default:
			if _, seen := byNote[c.Note]; !seen {
				order = append(order, c.Note)
			}
			byNote[c.Note] = append(byNote[c.Note], c)
		}
	}
	if len(byNote) == 0 {
		return plan, nil
	}

	ranges := AllocateRanges(order, opts.FillGaps)
	rangeOf := make(map[notes.Note]Range, len(ranges))
	for _, r := range ranges {
		rangeOf[r.Root] = r
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	for _, root := range order {
		members := byNote[root]
		r := rangeOf[root]

		groups, conflict := layerGroups(root, members)
		if conflict != nil {
			plan.Conflicts = append(plan.Conflicts, *conflict)
		}
		for _, g := range groups {
			plan.Entries = append(plan.Entries, Entry{
				Root:  root,
				Lo:    r.Lo,
				Hi:    r.Hi,
				Group: g,
			})
		}
	}
	return plan, nil
}

// layerGroups merges the candidates sharing one root note. Members
// tagged on exactly one common axis form a single layer group of that
// kind. Mixed or missing tag families are not merged silently: every
// member becomes its own singleton entry on the shared range and a
// conflict is reported for review.
func layerGroups(root notes.Note, members []analyze.Candidate) ([]*LayerGroup, *Conflict) {
	if len(members) == 1 {
		return []*LayerGroup{{Root: root, Kind: LayerSingle, Members: members}}, nil
	}

	kind, ok := sharedAxis(members)
	if ok {
		return []*LayerGroup{{Root: root, Kind: kind, Members: members}}, nil
	}

	singles := make([]*LayerGroup, len(members))
	for i, m := range members {
		singles[i] = &LayerGroup{Root: root, Kind: LayerSingle, Members: []analyze.Candidate{m}}
	}
	return singles, &Conflict{
		Root:    root,
		Members: members,
		Reason:  "members share a root note but not a single variation axis",
	}
}

// sharedAxis reports the one tag axis common to every member, if any.
func sharedAxis(members []analyze.Candidate) (LayerKind, bool) {
	kinds := make(map[analyze.TagKind]bool)
	for _, m := range members {
		if len(m.Tags) == 0 {
			return LayerSingle, false
		}
		for _, t := range m.Tags {
			kinds[t.Kind] = true
		}
	}
	if len(kinds) != 1 {
		return LayerSingle, false
	}
	for k := range kinds {
		return layerKindOf(k), true
	}
	return LayerSingle, false
}

func layerKindOf(k analyze.TagKind) LayerKind {
	switch k {
	case analyze.TagSpatial:
		return LayerSpatial
	case analyze.TagDynamic:
		return LayerVelocity
	case analyze.TagRoundRobin:
		return LayerRoundRobin
	case analyze.TagArticulation:
		return LayerArticulation
	default:
		return LayerSingle
	}
}
