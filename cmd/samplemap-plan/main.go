// samplemap-plan scans a directory of samples (or takes filenames as
// arguments) and prints the mapping plan the engine proposes: key
// ranges, layer groups, conflicts and the files that need manual
// assignment.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-samplemap/analyze"
	"github.com/cwbudde/algo-samplemap/mapping"
	"github.com/cwbudde/algo-samplemap/preset"
)

var audioExtensions = map[string]bool{
	".wav": true, ".aif": true, ".aiff": true, ".flac": true, ".ogg": true,
}

func main() {
	dir := flag.String("dir", "", "Directory to scan for sample files (alternative to filename args)")
	presetPath := flag.String("preset", "", "Mapping preset JSON file (optional)")
	threshold := flag.Float64("threshold", -1, "Confidence threshold override in [0,1] (-1 keeps the preset/default value)")
	fillGaps := flag.Bool("fill-gaps", true, "Extend key ranges to fill gaps between detected notes")
	workers := flag.Int("workers", 0, "Analysis worker count (0 = GOMAXPROCS)")
	output := flag.String("output", "", "Write the plan as JSON to this path instead of stdout")
	flag.Parse()

	cfg := preset.NewDefaultConfig()
	if *presetPath != "" {
		loaded, err := preset.LoadJSON(*presetPath)
		if err != nil {
			die("loading preset %q: %v", *presetPath, err)
		}
		cfg = loaded
	}
	cfg.Options.FillGaps = *fillGaps
	if *threshold >= 0 {
		cfg.Options.ConfidenceThreshold = float32(*threshold)
	}

	names, err := collectFiles(*dir, flag.Args())
	if err != nil {
		die("%v", err)
	}
	if len(names) == 0 {
		die("no sample files given (use -dir or filename arguments)")
	}

	inputs := make([]analyze.Input, len(names))
	for i, name := range names {
		inputs[i] = analyze.Input{SourceID: uuid.NewString(), FileName: name}
	}

	w := *workers
	if w == 0 {
		w = runtime.GOMAXPROCS(0)
	}
	analyzer := analyze.NewAnalyzerWithRules(cfg.Rules)
	candidates := analyzer.AnalyzeAll(context.Background(), inputs, w)

	plan, err := mapping.BuildPlan(candidates, &cfg.Options)
	if err != nil {
		die("planning failed: %v", err)
	}

	printSummary(plan)

	if *output != "" {
		if err := writeJSON(*output, plan); err != nil {
			die("writing %q: %v", *output, err)
		}
		fmt.Printf("Plan written to %s\n", *output)
	} else {
		b, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			die("encoding plan: %v", err)
		}
		fmt.Println(string(b))
	}
}

func collectFiles(dir string, args []string) ([]string, error) {
	if dir == "" {
		return args, nil
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("use either -dir or filename arguments, not both")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if audioExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func printSummary(plan *mapping.Plan) {
	fmt.Printf("Mapped %d entries, %d conflicts, %d unresolved, %d skipped\n",
		len(plan.Entries), len(plan.Conflicts), len(plan.Unresolved), len(plan.Skipped))
	for _, e := range plan.Entries {
		fmt.Printf("  %-4s  %s..%s  %-12s %d file(s)\n",
			e.Root.Name(), e.Lo.Name(), e.Hi.Name(), e.Group.Kind, len(e.Group.Members))
	}
	for _, c := range plan.Conflicts {
		fmt.Printf("  conflict at %s: %d files need review\n", c.Root.Name(), len(c.Members))
	}
	for _, u := range plan.Unresolved {
		fmt.Printf("  unresolved: %s\n", u.FileName)
	}
}

func writeJSON(path string, plan *mapping.Plan) error {
	b, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
