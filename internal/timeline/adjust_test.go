package timeline

import (
	"errors"
	"testing"
)

func TestRoundTo100(t *testing.T) {
	tests := []struct {
		in   int64
		want int64
	}{
		{0, 0},
		{100, 100},
		{149, 100},
		{150, 200},
		{151, 200},
		{-50, -100},
		{-49, 0},
		{-150, -200},
		{2450, 2500},
	}

	for _, tt := range tests {
		if got := RoundTo100(tt.in); got != tt.want {
			t.Errorf("RoundTo100(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAdjustTimingEndCollision(t *testing.T) {
	cues := []Cue{
		{Start: 1000, End: 2000, Text: "one"},
		{Start: 2000, End: 3000, Text: "two"},
	}

	updated, err := AdjustTiming(cues, cues[0], BoundaryEnd, 500)
	if err != nil {
		t.Fatalf("AdjustTiming failed: %v", err)
	}

	if updated[0].End != 2500 {
		t.Errorf("got end %d, want 2500", updated[0].End)
	}
	if updated[1].Start != 2500 {
		t.Errorf("neighbor start not clamped: got %d, want 2500", updated[1].Start)
	}
	if updated[0].End != updated[1].Start {
		t.Errorf(
			"boundary not shared after collision: %d != %d",
			updated[0].End,
			updated[1].Start,
		)
	}

	// input must be untouched
	if cues[1].Start != 2000 {
		t.Errorf("input slice mutated: %d", cues[1].Start)
	}
}

func TestAdjustTimingStartCollision(t *testing.T) {
	cues := []Cue{
		{Start: 1000, End: 2000, Text: "one"},
		{Start: 2000, End: 3000, Text: "two"},
	}

	updated, err := AdjustTiming(cues, cues[1], BoundaryStart, -500)
	if err != nil {
		t.Fatalf("AdjustTiming failed: %v", err)
	}

	if updated[1].Start != 1500 {
		t.Errorf("got start %d, want 1500", updated[1].Start)
	}
	if updated[0].End != 1500 {
		t.Errorf("previous cue end not trimmed: got %d, want 1500", updated[0].End)
	}
}

func TestAdjustTimingMovingAwayLeavesNeighbor(t *testing.T) {
	cues := []Cue{
		{Start: 1000, End: 2000, Text: "one"},
		{Start: 2000, End: 3000, Text: "two"},
	}

	updated, err := AdjustTiming(cues, cues[0], BoundaryEnd, -300)
	if err != nil {
		t.Fatalf("AdjustTiming failed: %v", err)
	}
	if updated[0].End != 1700 {
		t.Errorf("got end %d, want 1700", updated[0].End)
	}
	if updated[1].Start != 2000 || updated[1].End != 3000 {
		t.Errorf("neighbor touched: %+v", updated[1])
	}
}

func TestAdjustTimingStartClampedToZero(t *testing.T) {
	cues := []Cue{{Start: 300, End: 2000, Text: "one"}}

	updated, err := AdjustTiming(cues, cues[0], BoundaryStart, -1000)
	if err != nil {
		t.Fatalf("AdjustTiming failed: %v", err)
	}
	if updated[0].Start != 0 {
		t.Errorf("got start %d, want 0", updated[0].Start)
	}
}

func TestAdjustTimingQuantizes(t *testing.T) {
	cues := []Cue{{Start: 1000, End: 2000, Text: "one"}}

	updated, err := AdjustTiming(cues, cues[0], BoundaryEnd, 250)
	if err != nil {
		t.Fatalf("AdjustTiming failed: %v", err)
	}
	// 2250 rounds half away from zero to 2300
	if updated[0].End != 2300 {
		t.Errorf("got end %d, want 2300", updated[0].End)
	}
}

func TestAdjustTimingRejectsInversion(t *testing.T) {
	tests := []struct {
		name     string
		boundary Boundary
		delta    int64
	}{
		{"start past end", BoundaryStart, 1200},
		{"start onto end", BoundaryStart, 1000},
		{"end before start", BoundaryEnd, -1200},
		{"end onto start", BoundaryEnd, -1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cues := []Cue{{Start: 1000, End: 2000, Text: "one"}}
			_, err := AdjustTiming(cues, cues[0], tt.boundary, tt.delta)
			if !errors.Is(err, ErrRejectedAdjustment) {
				t.Fatalf("expected ErrRejectedAdjustment, got %v", err)
			}
			if cues[0].Start != 1000 || cues[0].End != 2000 {
				t.Errorf("collection mutated on rejection: %+v", cues[0])
			}
		})
	}
}

func TestAdjustTimingCueNotFound(t *testing.T) {
	cues := []Cue{{Start: 1000, End: 2000, Text: "one"}}
	stale := Cue{Start: 1000, End: 2000, Text: "edited elsewhere"}

	_, err := AdjustTiming(cues, stale, BoundaryEnd, 100)
	if !errors.Is(err, ErrCueNotFound) {
		t.Errorf("expected ErrCueNotFound, got %v", err)
	}
}

func TestAdjustTimingMatchesByValueNotIndex(t *testing.T) {
	// storage order differs from display order; the target must be found
	// after the sort
	cues := []Cue{
		{Start: 5000, End: 6000, Text: "later"},
		{Start: 1000, End: 2000, Text: "earlier"},
	}

	updated, err := AdjustTiming(
		cues,
		Cue{Start: 1000, End: 2000, Text: "earlier"},
		BoundaryEnd,
		300,
	)
	if err != nil {
		t.Fatalf("AdjustTiming failed: %v", err)
	}
	if updated[0].Text != "earlier" || updated[0].End != 2300 {
		t.Errorf("wrong cue adjusted: %+v", updated[0])
	}
}
