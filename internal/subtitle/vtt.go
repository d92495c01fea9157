package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/cueline/cueline/internal/timeline"
)

var (
	vttTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})\.(\d{3})`,
	)
	vttShortTimestampRegex = regexp.MustCompile(
		`(\d{2}):(\d{2})\.(\d{3})\s*-->\s*(\d{2}):(\d{2})\.(\d{3})`,
	)
)

func parseVTTFile(path string) ([]timeline.Cue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VTT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var cues []timeline.Cue
	scanner := bufio.NewScanner(file)

	var current *timeline.Cue
	var textLines []string
	var pendingID string
	lineNum := 0
	headerParsed := false

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			cues = append(cues, *current)
		}
		current = nil
		textLines = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		trimmed := strings.TrimSpace(line)

		if !headerParsed {
			if strings.HasPrefix(trimmed, "WEBVTT") {
				headerParsed = true
				continue
			}
		}

		// NOTE and STYLE blocks run until the next blank line
		if strings.HasPrefix(trimmed, "NOTE") || strings.HasPrefix(trimmed, "STYLE") {
			for scanner.Scan() {
				lineNum++
				if strings.TrimSpace(scanner.Text()) == "" {
					break
				}
			}
			continue
		}

		if trimmed == "" {
			flush()
			pendingID = ""
			continue
		}

		if start, end, settings, ok := parseVTTTimingLine(line); ok {
			flush()
			current = &timeline.Cue{
				ID:       pendingID,
				Start:    start,
				End:      end,
				Settings: settings,
			}
			pendingID = ""
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
			continue
		}

		// a non-timing line before a timing line is the cue identifier
		pendingID = trimmed
	}

	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT file: %w", err)
	}

	return cues, nil
}

// parseVTTTimingLine extracts start/end in ms plus any trailing cue settings
// (e.g. "align:start line:0") from a cue timing line.
func parseVTTTimingLine(line string) (start, end int64, settings string, ok bool) {
	if loc := vttTimestampRegex.FindStringSubmatchIndex(line); loc != nil {
		matches := vttTimestampRegex.FindStringSubmatch(line)
		start, err := timestampToMs(matches[1], matches[2], matches[3], matches[4])
		if err != nil {
			return 0, 0, "", false
		}
		end, err := timestampToMs(matches[5], matches[6], matches[7], matches[8])
		if err != nil {
			return 0, 0, "", false
		}
		return start, end, strings.TrimSpace(line[loc[1]:]), true
	}

	if loc := vttShortTimestampRegex.FindStringSubmatchIndex(line); loc != nil {
		matches := vttShortTimestampRegex.FindStringSubmatch(line)
		start, err := timestampToMs("00", matches[1], matches[2], matches[3])
		if err != nil {
			return 0, 0, "", false
		}
		end, err := timestampToMs("00", matches[4], matches[5], matches[6])
		if err != nil {
			return 0, 0, "", false
		}
		return start, end, strings.TrimSpace(line[loc[1]:]), true
	}

	return 0, 0, "", false
}
