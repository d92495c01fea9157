package timeline

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EditText replaces the target cue's text, locating the target by value match
// like AdjustTiming. Text that trims to empty deletes the cue. Text containing
// a blank line splits the cue into one cue per block, with duration allocated
// proportionally to each block's character count; boundaries are chained and
// the last block ends exactly at the original end so no rounding drift
// accumulates at the tail.
//
// Returns a new collection; the input slice is left unchanged.
func EditText(cues []Cue, target Cue, text string) ([]Cue, error) {
	idx := findCue(cues, target)
	if idx < 0 {
		return nil, fmt.Errorf(
			"%w: no cue matching %d-%dms %q",
			ErrCueNotFound,
			target.Start,
			target.End,
			target.Text,
		)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		out := make([]Cue, 0, len(cues)-1)
		out = append(out, cues[:idx]...)
		out = append(out, cues[idx+1:]...)
		return out, nil
	}

	blocks := splitBlocks(trimmed)
	if len(blocks) <= 1 {
		out := make([]Cue, len(cues))
		copy(out, cues)
		out[idx].Text = trimmed
		return out, nil
	}

	replacement := splitCue(cues[idx], blocks)
	out := make([]Cue, 0, len(cues)-1+len(replacement))
	out = append(out, cues[:idx]...)
	out = append(out, replacement...)
	out = append(out, cues[idx+1:]...)
	return out, nil
}

// non-empty blank-line-delimited blocks, each trimmed
func splitBlocks(text string) []string {
	var blocks []string
	for _, part := range strings.Split(text, "\n\n") {
		part = strings.TrimSpace(part)
		if part != "" {
			blocks = append(blocks, part)
		}
	}
	return blocks
}

func splitCue(cue Cue, blocks []string) []Cue {
	totalChars := 0
	for _, block := range blocks {
		totalChars += utf8.RuneCountInString(block)
	}

	duration := cue.End - cue.Start
	out := make([]Cue, 0, len(blocks))
	start := cue.Start

	for i, block := range blocks {
		chars := int64(utf8.RuneCountInString(block))
		end := start + duration*chars/int64(totalChars)
		if i == len(blocks)-1 {
			end = cue.End
		}

		// ids are left empty so the next layout pass synthesizes fresh ones
		out = append(out, Cue{
			Start:    start,
			End:      end,
			Text:     block,
			Settings: cue.Settings,
		})
		start = end
	}

	return out
}
