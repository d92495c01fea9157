package timeline

import (
	"fmt"
	"sort"
)

// BuildRows partitions the waveform into rows of cfg.PointsPerRow samples and
// assigns each cue to the single row containing its start time. Cues that end
// before the timeline begins are dropped; cues starting at or past the end of
// the last row are clamped into it so they stay visible and editable.
func BuildRows(waveform []float64, cues []Cue, cfg Config) ([]Row, error) {
	if cfg.PointsPerRow <= 0 || cfg.BarWidth <= 0 || cfg.MsPerPoint <= 0 {
		return nil, fmt.Errorf(
			"%w: bar_width=%v points_per_row=%d ms_per_point=%d",
			ErrInvalidConfig,
			cfg.BarWidth,
			cfg.PointsPerRow,
			cfg.MsPerPoint,
		)
	}

	if len(waveform) == 0 {
		return nil, nil
	}

	rows := partitionRows(len(waveform), cfg)

	sorted := make([]Cue, len(cues))
	copy(sorted, cues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	for i, cue := range sorted {
		idx := rowIndexFor(rows, cfg, cue.Start)
		if idx < 0 {
			if cue.Start < rows[0].StartTime {
				// Pre-timeline cue: anchors to row 0 unless it ends before
				// the timeline even begins.
				if cue.End < rows[0].StartTime {
					continue
				}
				idx = 0
			} else {
				idx = len(rows) - 1
			}
		}

		row := &rows[idx]
		row.Subtitles = append(row.Subtitles, makeSegment(cue, i, row, cfg))
	}

	return rows, nil
}

func partitionRows(totalPoints int, cfg Config) []Row {
	rowCount := (totalPoints + cfg.PointsPerRow - 1) / cfg.PointsPerRow
	rows := make([]Row, 0, rowCount)

	for startPoint := 0; startPoint < totalPoints; startPoint += cfg.PointsPerRow {
		pointCount := cfg.PointsPerRow
		if startPoint+pointCount > totalPoints {
			pointCount = totalPoints - startPoint
		}

		startTime := int64(startPoint) * cfg.MsPerPoint
		rows = append(rows, Row{
			StartTime:  startTime,
			EndTime:    startTime + int64(pointCount)*cfg.MsPerPoint,
			StartPoint: startPoint,
			PointCount: pointCount,
			Width:      float64(pointCount) * cfg.BarWidth,
		})
	}

	return rows
}

// index of the row whose [StartTime, EndTime) interval contains start, or -1
func rowIndexFor(rows []Row, cfg Config, start int64) int {
	if start < rows[0].StartTime || start >= rows[len(rows)-1].EndTime {
		return -1
	}
	// rows are contiguous and, except the last, all span the same duration
	return int(start / (int64(cfg.PointsPerRow) * cfg.MsPerPoint))
}

// Segment width is intentionally not clipped to the row: a cue outlasting the
// row span overflows into the next row's horizontal space, since the cue is
// never duplicated into later rows.
func makeSegment(cue Cue, sortedIndex int, row *Row, cfg Config) Segment {
	id := cue.ID
	if id == "" {
		id = fmt.Sprintf("subtitle-%d", sortedIndex)
	}

	offset := float64(cue.Start-row.StartTime) / float64(cfg.MsPerPoint) * cfg.BarWidth
	if offset < 0 {
		offset = 0
	}

	return Segment{
		ID:          id,
		Start:       cue.Start,
		End:         cue.End,
		Text:        cue.Text,
		StartOffset: offset,
		Width:       float64(cue.End-cue.Start) / float64(cfg.MsPerPoint) * cfg.BarWidth,
	}
}
