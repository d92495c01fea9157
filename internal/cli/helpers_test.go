package cli

import (
	"testing"

	"github.com/cueline/cueline/internal/timeline"
)

func TestParseBoundary(t *testing.T) {
	tests := []struct {
		in      string
		want    timeline.Boundary
		wantErr bool
	}{
		{"start", timeline.BoundaryStart, false},
		{"end", timeline.BoundaryEnd, false},
		{"START", timeline.BoundaryStart, false},
		{" end ", timeline.BoundaryEnd, false},
		{"middle", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBoundary(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseBoundary(%q): expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseBoundary(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseBoundary(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCueAtUsesDisplayOrder(t *testing.T) {
	cues := []timeline.Cue{
		{Start: 5000, End: 6000, Text: "later"},
		{Start: 1000, End: 2000, Text: "earlier"},
	}

	first, err := cueAt(cues, 0)
	if err != nil {
		t.Fatalf("cueAt failed: %v", err)
	}
	if first.Text != "earlier" {
		t.Errorf("display index 0 should be the earliest cue, got %q", first.Text)
	}

	if _, err := cueAt(cues, 2); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if _, err := cueAt(cues, -1); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestFormatMs(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "00:00:00.000"},
		{1500, "00:00:01.500"},
		{61250, "00:01:01.250"},
		{3600000, "01:00:00.000"},
		{-500, "-00:00:00.500"},
	}

	for _, tt := range tests {
		if got := formatMs(tt.in); got != tt.want {
			t.Errorf("formatMs(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
