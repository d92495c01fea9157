package waveform

import (
	"math"
	"strings"
	"testing"
)

func TestPeaks(t *testing.T) {
	samples := []float64{
		0.1, -0.4, 0.2, 0.0, // window peak 0.4
		0.0, 0.8, -0.1, 0.3, // window peak 0.8
		-0.2, 0.1, // partial window, peak 0.2
	}

	peaks := Peaks(samples, 4)
	if len(peaks) != 3 {
		t.Fatalf("expected 3 peaks, got %d", len(peaks))
	}

	// normalized so the loudest window is 1.0
	want := []float64{0.5, 1.0, 0.25}
	for i := range want {
		if math.Abs(peaks[i]-want[i]) > 1e-9 {
			t.Errorf("peak %d: got %v, want %v", i, peaks[i], want[i])
		}
	}
}

func TestPeaksSilence(t *testing.T) {
	peaks := Peaks([]float64{0, 0, 0, 0}, 2)
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d", len(peaks))
	}
	for i, p := range peaks {
		if p != 0 {
			t.Errorf("peak %d: got %v, want 0", i, p)
		}
	}
}

func TestPeaksDegenerateInput(t *testing.T) {
	if got := Peaks(nil, 4); got != nil {
		t.Errorf("expected nil for empty samples, got %v", got)
	}
	if got := Peaks([]float64{0.5}, 0); got != nil {
		t.Errorf("expected nil for zero window, got %v", got)
	}
}

func TestParseJSON(t *testing.T) {
	samples, err := ParseJSON(strings.NewReader(`{"waveform": [0.1, 0.5, 1.0]}`))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if len(samples) != 3 || samples[1] != 0.5 {
		t.Errorf("unexpected samples: %v", samples)
	}
}

func TestParseJSONMissingField(t *testing.T) {
	if _, err := ParseJSON(strings.NewReader(`{"peaks": [1]}`)); err == nil {
		t.Fatal("expected error for missing waveform field")
	}
}

func TestParseJSONMalformed(t *testing.T) {
	if _, err := ParseJSON(strings.NewReader(`{"waveform": [`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var sb strings.Builder
	if err := WriteJSON(&sb, []float64{0, 0.25, 1}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	samples, err := ParseJSON(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if len(samples) != 3 || samples[2] != 1 {
		t.Errorf("unexpected samples after round trip: %v", samples)
	}
}
