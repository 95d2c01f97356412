// Package analyze turns sample filenames into mapping candidates: a
// detected root note with a confidence score plus a set of variation
// tags (mic position, dynamics, round robin, articulation). It never
// opens the files; names are all it needs.
package analyze

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-samplemap/notes"
)

// Input pairs an opaque source handle with the filename to analyze.
// The handle is never interpreted, only carried through to the
// resulting candidate.
type Input struct {
	SourceID string
	FileName string
}

// Candidate is the per-file analysis result. It is immutable after
// creation; the planner only reads it.
type Candidate struct {
	SourceID   string     `json:"source_id"`
	FileName   string     `json:"file_name"`
	Note       notes.Note `json:"note"`
	Detected   bool       `json:"detected"`
	Confidence float32    `json:"confidence"`
	Tags       []Tag      `json:"tags,omitempty"`
}

// Analyzer combines the filename parser and the variation classifier.
// Its recognizer tables are immutable, so one Analyzer may serve any
// number of goroutines.
type Analyzer struct {
	parser     *Parser
	classifier *Classifier
}

// NewAnalyzer creates an analyzer with the default recognizer tables.
func NewAnalyzer() *Analyzer {
	return &Analyzer{parser: NewParser(), classifier: NewClassifier()}
}

// NewAnalyzerWithRules creates an analyzer whose classifier carries
// extra vocabulary rules on top of the built-in table.
func NewAnalyzerWithRules(extra []Rule) *Analyzer {
	return &Analyzer{parser: NewParser(), classifier: NewClassifierWithRules(extra)}
}

// Analyze builds the candidate record for a single file.
func (a *Analyzer) Analyze(sourceID, fileName string) Candidate {
	c := Candidate{
		SourceID: sourceID,
		FileName: fileName,
		Tags:     a.classifier.Classify(fileName),
	}
	if n, conf, ok := a.parser.Parse(fileName); ok {
		c.Note = n
		c.Confidence = conf
		c.Detected = true
	}
	return c
}

// AnalyzeAll analyzes a batch on a pool of worker goroutines. Results
// keep the input order, one candidate per input. The per-file work is
// pure and order-independent; only this map phase is parallel, the
// grouping and allocation reduction stays single-threaded in the
// mapping package.
//
// Cancelling ctx does not abort the batch: files not yet analyzed
// come back as unresolved candidates (no note, confidence zero), so
// the caller still receives one atomic result set.
func (a *Analyzer) AnalyzeAll(ctx context.Context, inputs []Input, workers int) []Candidate {
	out := make([]Candidate, len(inputs))
	if len(inputs) == 0 {
		return out
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	var next int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&next, 1)) - 1
				if i >= len(inputs) {
					return
				}
				if ctx.Err() != nil {
					// Cancelled files become unresolved, never dropped.
					out[i] = Candidate{SourceID: inputs[i].SourceID, FileName: inputs[i].FileName}
					continue
				}
				out[i] = a.Analyze(inputs[i].SourceID, inputs[i].FileName)
			}
		}()
	}
	wg.Wait()
	return out
}
