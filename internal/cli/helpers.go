package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cueline/cueline/internal/project"
	"github.com/cueline/cueline/internal/timeline"
)

func openStore() (*project.Store, error) {
	store, err := project.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open project store: %w", err)
	}
	return store, nil
}

// sortedCues returns a start-sorted copy, the order cues are displayed in.
func sortedCues(cues []timeline.Cue) []timeline.Cue {
	sorted := make([]timeline.Cue, len(cues))
	copy(sorted, cues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	return sorted
}

// cueAt resolves a display index (position in start-sorted order) to a cue.
func cueAt(cues []timeline.Cue, displayIndex int) (timeline.Cue, error) {
	if displayIndex < 0 || displayIndex >= len(cues) {
		return timeline.Cue{}, fmt.Errorf(
			"cue index %d out of range (0-%d)",
			displayIndex,
			len(cues)-1,
		)
	}
	return sortedCues(cues)[displayIndex], nil
}

func parseBoundary(s string) (timeline.Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return timeline.BoundaryStart, nil
	case "end":
		return timeline.BoundaryEnd, nil
	default:
		return "", fmt.Errorf("invalid boundary %q: must be start or end", s)
	}
}

// formatMs renders a millisecond offset as hh:mm:ss.mmm for display.
func formatMs(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d",
		sign, ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

func truncateText(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
