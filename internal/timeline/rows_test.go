package timeline

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func flatWaveform(n int) []float64 {
	wave := make([]float64, n)
	for i := range wave {
		wave[i] = 0.5
	}
	return wave
}

func TestBuildRowsPartition(t *testing.T) {
	tests := []struct {
		name         string
		points       int
		pointsPerRow int
		wantRows     int
	}{
		{"evenly divisible", 300, 100, 3},
		{"partial final row", 250, 100, 3},
		{"single partial row", 40, 150, 1},
		{"one point", 1, 150, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{BarWidth: 10, PointsPerRow: tt.pointsPerRow, MsPerPoint: 100}
			rows, err := BuildRows(flatWaveform(tt.points), nil, cfg)
			if err != nil {
				t.Fatalf("BuildRows failed: %v", err)
			}
			if len(rows) != tt.wantRows {
				t.Fatalf("expected %d rows, got %d", tt.wantRows, len(rows))
			}

			totalPoints := 0
			for i, row := range rows {
				totalPoints += row.PointCount
				if row.PointCount <= 0 {
					t.Errorf("row %d: zero-length row emitted", i)
				}
				if i > 0 && rows[i-1].EndTime != row.StartTime {
					t.Errorf(
						"row %d: not contiguous: previous ends %d, starts %d",
						i,
						rows[i-1].EndTime,
						row.StartTime,
					)
				}
			}
			if totalPoints != tt.points {
				t.Errorf(
					"point counts sum to %d, want %d",
					totalPoints,
					tt.points,
				)
			}
		})
	}
}

func TestBuildRowsGeometry(t *testing.T) {
	cfg := Config{BarWidth: 10, PointsPerRow: 100, MsPerPoint: 100}
	rows, err := BuildRows(flatWaveform(250), nil, cfg)
	if err != nil {
		t.Fatalf("BuildRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.StartPoint != 0 || first.PointCount != 100 {
		t.Errorf("row 0: got startPoint=%d pointCount=%d", first.StartPoint, first.PointCount)
	}
	if first.StartTime != 0 || first.EndTime != 10000 {
		t.Errorf("row 0: got span %d-%d, want 0-10000", first.StartTime, first.EndTime)
	}
	if first.Width != 1000 {
		t.Errorf("row 0: got width %v, want 1000", first.Width)
	}

	last := rows[2]
	if last.StartPoint != 200 || last.PointCount != 50 {
		t.Errorf("row 2: got startPoint=%d pointCount=%d", last.StartPoint, last.PointCount)
	}
	if last.EndTime != 25000 {
		t.Errorf("row 2: got endTime %d, want 25000", last.EndTime)
	}
	if last.Width != 500 {
		t.Errorf("row 2: got width %v, want 500", last.Width)
	}
}

func TestBuildRowsDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cues := []Cue{
		{Start: 5000, End: 7000, Text: "b"},
		{Start: 5000, End: 6000, Text: "a"},
		{Start: 0, End: 1000, Text: "c"},
	}
	wave := flatWaveform(400)

	first, err := BuildRows(wave, cues, cfg)
	if err != nil {
		t.Fatalf("BuildRows failed: %v", err)
	}
	second, err := BuildRows(wave, cues, cfg)
	if err != nil {
		t.Fatalf("BuildRows failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different output")
	}
}

func TestBuildRowsStableTieOrder(t *testing.T) {
	cfg := DefaultConfig()
	cues := []Cue{
		{Start: 5000, End: 7000, Text: "first"},
		{Start: 5000, End: 6000, Text: "second"},
	}
	rows, err := BuildRows(flatWaveform(150), cues, cfg)
	if err != nil {
		t.Fatalf("BuildRows failed: %v", err)
	}

	subs := rows[0].Subtitles
	if len(subs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(subs))
	}
	if subs[0].Text != "first" || subs[1].Text != "second" {
		t.Errorf(
			"tie order not preserved: got %q, %q",
			subs[0].Text,
			subs[1].Text,
		)
	}
}

func TestBuildRowsSingleAssignment(t *testing.T) {
	// cue spans well past its starting row but must appear exactly once
	cfg := Config{BarWidth: 10, PointsPerRow: 150, MsPerPoint: 100}
	cues := []Cue{{ID: "long", Start: 5000, End: 25000, Text: "spanning"}}

	rows, err := BuildRows(flatWaveform(300), cues, cfg)
	if err != nil {
		t.Fatalf("BuildRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if len(rows[0].Subtitles) != 1 {
		t.Fatalf("expected 1 segment in row 0, got %d", len(rows[0].Subtitles))
	}
	if len(rows[1].Subtitles) != 0 {
		t.Errorf("cue duplicated into row 1")
	}

	seg := rows[0].Subtitles[0]
	if seg.Width != 2000 {
		t.Errorf("got segment width %v, want 2000", seg.Width)
	}
	if seg.Width <= rows[0].Width {
		t.Errorf(
			"expected segment (%vpx) to overflow its row (%vpx)",
			seg.Width,
			rows[0].Width,
		)
	}
}

func TestBuildRowsPreTimelineCues(t *testing.T) {
	cfg := DefaultConfig()
	cues := []Cue{
		{Start: -500, End: 2000, Text: "straddles zero"},
		{Start: -3000, End: -1000, Text: "entirely before"},
	}

	rows, err := BuildRows(flatWaveform(150), cues, cfg)
	if err != nil {
		t.Fatalf("BuildRows failed: %v", err)
	}

	subs := rows[0].Subtitles
	if len(subs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(subs))
	}
	if subs[0].Text != "straddles zero" {
		t.Errorf("wrong cue kept: %q", subs[0].Text)
	}
	if subs[0].StartOffset != 0 {
		t.Errorf("negative start should pin offset to 0, got %v", subs[0].StartOffset)
	}
}

func TestBuildRowsClampsPastEnd(t *testing.T) {
	// waveform covers 0-15000ms; a cue starting beyond that lands in the
	// last row instead of vanishing
	cfg := DefaultConfig()
	cues := []Cue{{Start: 20000, End: 22000, Text: "late"}}

	rows, err := BuildRows(flatWaveform(150), cues, cfg)
	if err != nil {
		t.Fatalf("BuildRows failed: %v", err)
	}

	last := rows[len(rows)-1]
	if len(last.Subtitles) != 1 {
		t.Fatalf("expected late cue in last row, got %d segments", len(last.Subtitles))
	}
}

func TestBuildRowsSynthesizedIDs(t *testing.T) {
	cfg := DefaultConfig()
	cues := []Cue{
		{Start: 3000, End: 4000, Text: "second"},
		{ID: "custom", Start: 1000, End: 2000, Text: "first"},
	}

	rows, err := BuildRows(flatWaveform(150), cues, cfg)
	if err != nil {
		t.Fatalf("BuildRows failed: %v", err)
	}

	subs := rows[0].Subtitles
	if len(subs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(subs))
	}
	if subs[0].ID != "custom" {
		t.Errorf("explicit id lost: got %q", subs[0].ID)
	}
	if subs[1].ID != "subtitle-1" {
		t.Errorf("got synthesized id %q, want subtitle-1", subs[1].ID)
	}
}

func TestBuildRowsSegmentOffset(t *testing.T) {
	cfg := Config{BarWidth: 8, PointsPerRow: 150, MsPerPoint: 100}
	cues := []Cue{{Start: 16000, End: 18000, Text: "row 1"}}

	rows, err := BuildRows(flatWaveform(300), cues, cfg)
	if err != nil {
		t.Fatalf("BuildRows failed: %v", err)
	}

	subs := rows[1].Subtitles
	if len(subs) != 1 {
		t.Fatalf("expected segment in row 1, got %d", len(subs))
	}
	// (16000-15000)/100 * 8 = 80px into the row
	if math.Abs(subs[0].StartOffset-80) > 1e-9 {
		t.Errorf("got offset %v, want 80", subs[0].StartOffset)
	}
}

func TestBuildRowsEmptyWaveform(t *testing.T) {
	rows, err := BuildRows(nil, []Cue{{Start: 0, End: 1000, Text: "x"}}, DefaultConfig())
	if err != nil {
		t.Fatalf("BuildRows failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows without a waveform, got %d", len(rows))
	}
}

func TestBuildRowsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero points per row", Config{BarWidth: 8, PointsPerRow: 0, MsPerPoint: 100}},
		{"negative bar width", Config{BarWidth: -1, PointsPerRow: 150, MsPerPoint: 100}},
		{"zero ms per point", Config{BarWidth: 8, PointsPerRow: 150, MsPerPoint: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRows(flatWaveform(10), nil, tt.cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
