package waveform

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// decode rate for peak extraction; peaks only need coarse amplitude
const extractSampleRate = 8000

// FromMedia decodes the audio track of a media file to mono PCM and reduces
// it to one normalized peak amplitude per msPerPoint window, matching the
// sample-per-quantum series the layout engine consumes.
func FromMedia(ctx context.Context, path string, msPerPoint int64) ([]float64, error) {
	if msPerPoint <= 0 {
		return nil, fmt.Errorf("ms per point must be positive, got %d", msPerPoint)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("media file not found: %s", path)
	}

	buf := &bytes.Buffer{}
	err := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"f":      "s16le",
			"acodec": "pcm_s16le",
			"ac":     1,
			"ar":     extractSampleRate,
			"vn":     "",
		}).
		WithOutput(buf, io.Discard).
		Silent(true).
		Run()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	samples := decodePCM16(buf.Bytes())
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio samples decoded from %s", path)
	}

	window := int(extractSampleRate * msPerPoint / 1000)
	return Peaks(samples, window), nil
}

// Peaks reduces raw samples to one peak per window of the given size and
// rescales the result so the loudest window maps to 1.0.
func Peaks(samples []float64, window int) []float64 {
	if window <= 0 || len(samples) == 0 {
		return nil
	}

	count := (len(samples) + window - 1) / window
	peaks := make([]float64, 0, count)

	maxPeak := 0.0
	for start := 0; start < len(samples); start += window {
		end := start + window
		if end > len(samples) {
			end = len(samples)
		}

		peak := 0.0
		for _, s := range samples[start:end] {
			if a := math.Abs(s); a > peak {
				peak = a
			}
		}
		if peak > maxPeak {
			maxPeak = peak
		}
		peaks = append(peaks, peak)
	}

	if maxPeak > 0 {
		for i := range peaks {
			peaks[i] /= maxPeak
		}
	}

	return peaks
}

func decodePCM16(data []byte) []float64 {
	samples := make([]float64, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		v := int16(binary.LittleEndian.Uint16(data[i:]))
		samples = append(samples, float64(v)/32768)
	}
	return samples
}
