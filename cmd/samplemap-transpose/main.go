// samplemap-transpose renders a sample at a different pitch by
// resampling it with the mapping engine's playback ratio. It is an
// offline stand-in for the playback collaborator: read the root note,
// compute the ratio, shift, write the result.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-samplemap/analyze"
	"github.com/cwbudde/algo-samplemap/internal/wavio"
	"github.com/cwbudde/algo-samplemap/notes"
	"github.com/cwbudde/algo-samplemap/pitch"
)

func main() {
	input := flag.String("input", "", "Input WAV file")
	rootName := flag.String("root", "", "Root note of the sample, e.g. C4 (default: parsed from the filename)")
	targetName := flag.String("target", "", "Target note to render, e.g. G4")
	cents := flag.Float64("cents", 0, "Fine tune in cents on top of the semitone shift")
	output := flag.String("output", "", "Output WAV file (default: <input>_<target>.wav)")
	flag.Parse()

	if *input == "" || *targetName == "" {
		fmt.Fprintln(os.Stderr, "usage: samplemap-transpose -input sample.wav -target G4 [-root C4] [-cents 12.5]")
		os.Exit(2)
	}

	target, err := notes.Parse(*targetName)
	if err != nil {
		die("invalid target note: %v", err)
	}

	var root notes.Note
	if *rootName != "" {
		root, err = notes.Parse(*rootName)
		if err != nil {
			die("invalid root note: %v", err)
		}
	} else {
		n, conf, ok := analyze.NewParser().Parse(filepath.Base(*input))
		if !ok {
			die("no note found in %q, pass -root explicitly", filepath.Base(*input))
		}
		root = n
		fmt.Printf("Detected root %s from filename (confidence %.2f)\n", root.Name(), conf)
	}

	ratio := pitch.Ratio(root, target, *cents)
	fmt.Printf("Transposing %s -> %s (%+.1f cents): ratio %.6f\n",
		root.Name(), target.Name(), pitch.Cents(ratio), ratio)

	samples, sampleRate, err := wavio.ReadMono(*input)
	if err != nil {
		die("reading %q: %v", *input, err)
	}
	const fullScale = 1 << 15
	for i := range samples {
		samples[i] /= fullScale
	}

	shifted, err := wavio.ResampleRatio(samples, sampleRate, ratio)
	if err != nil {
		die("resampling: %v", err)
	}

	out := *output
	if out == "" {
		ext := filepath.Ext(*input)
		out = fmt.Sprintf("%s_%s%s", (*input)[:len(*input)-len(ext)], target.Name(), ext)
	}

	data := wavio.ToFloat32(shifted)
	for i, v := range data {
		if v > 1 {
			data[i] = 1
		} else if v < -1 {
			data[i] = -1
		}
	}
	if err := wavio.WriteMono(out, data, sampleRate); err != nil {
		die("writing %q: %v", out, err)
	}
	fmt.Printf("Wrote %s (%d frames at %d Hz)\n", out, len(data), sampleRate)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
