package timeline

import (
	"fmt"
	"math"
	"sort"
)

// RoundTo100 quantizes a millisecond value to the nearest 100ms, rounding
// halves away from zero.
func RoundTo100(ms int64) int64 {
	return int64(math.Round(float64(ms)/100)) * 100
}

// AdjustTiming nudges one boundary of the target cue by deltaMs, quantized to
// 100ms. The target is located by (start, end, text) value match since array
// positions shift across sorts. When the move shrinks the gap to a neighbor,
// the neighbor's overlapping boundary is trimmed so cues never overlap; moving
// away from a neighbor never touches it.
//
// On success the full updated collection is returned, sorted by start. The
// input slice is left unchanged.
func AdjustTiming(cues []Cue, target Cue, boundary Boundary, deltaMs int64) ([]Cue, error) {
	sorted := make([]Cue, len(cues))
	copy(sorted, cues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	idx := findCue(sorted, target)
	if idx < 0 {
		return nil, fmt.Errorf(
			"%w: no cue matching %d-%dms %q",
			ErrCueNotFound,
			target.Start,
			target.End,
			target.Text,
		)
	}

	cue := &sorted[idx]

	switch boundary {
	case BoundaryStart:
		newStart := RoundTo100(cue.Start + deltaMs)
		if newStart < 0 {
			newStart = 0
		}
		if newStart >= cue.End {
			return nil, fmt.Errorf(
				"%w: start %dms would cross end %dms",
				ErrRejectedAdjustment,
				newStart,
				cue.End,
			)
		}
		// moving earlier can run into the previous cue; the previous cue is
		// truncated, never the one being edited
		if deltaMs < 0 && idx > 0 && sorted[idx-1].End > newStart {
			sorted[idx-1].End = newStart
		}
		cue.Start = newStart

	case BoundaryEnd:
		newEnd := RoundTo100(cue.End + deltaMs)
		if newEnd <= cue.Start {
			return nil, fmt.Errorf(
				"%w: end %dms would cross start %dms",
				ErrRejectedAdjustment,
				newEnd,
				cue.Start,
			)
		}
		if deltaMs > 0 && idx < len(sorted)-1 && sorted[idx+1].Start < newEnd {
			sorted[idx+1].Start = newEnd
		}
		cue.End = newEnd

	default:
		return nil, fmt.Errorf("unknown boundary %q", boundary)
	}

	return sorted, nil
}

func findCue(cues []Cue, target Cue) int {
	for i, c := range cues {
		if c.Start == target.Start && c.End == target.End && c.Text == target.Text {
			return i
		}
	}
	return -1
}
