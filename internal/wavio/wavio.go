// Package wavio reads and writes the mono WAV files handled by the
// transposition tool. The mapping engine itself never touches sample
// data; this lives under internal so it stays that way.
package wavio

import (
	"fmt"
	"os"
	"path/filepath"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// ReadMono decodes a WAV file into float64 samples, folding
// multi-channel material down to mono by averaging.
func ReadMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}
	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		out[i] = sum / float64(ch)
	}
	return out, buf.Format.SampleRate, nil
}

// WriteMono encodes float32 samples as a 16-bit mono WAV file,
// creating parent directories as needed.
func WriteMono(path string, data []float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	defer enc.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	return enc.Write(buf)
}

// ResampleRatio renders samples shifted by a playback ratio at their
// original rate. Playing r times faster raises the pitch by r, so the
// data is resampled to rate/r and the frame count scales by 1/r. A
// ratio of 1 returns the input unchanged.
func ResampleRatio(samples []float64, sampleRate int, ratio float64) ([]float64, error) {
	if ratio == 1.0 {
		return samples, nil
	}
	r, err := dspresample.NewForRates(
		float64(sampleRate),
		float64(sampleRate)/ratio,
		dspresample.WithQuality(dspresample.QualityBest),
	)
	if err != nil {
		return nil, err
	}
	return r.Process(samples), nil
}

// ToFloat32 narrows a sample buffer for encoding.
func ToFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}
