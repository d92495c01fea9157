package subtitle

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/cueline/cueline/internal/timeline"
)

var srtTimestampRegex = regexp.MustCompile(
	`(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2}),(\d{3})`,
)

func parseSRTFile(path string) ([]timeline.Cue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var cues []timeline.Cue
	scanner := bufio.NewScanner(file)

	var current *timeline.Cue
	var textLines []string
	lineNum := 0
	awaitingTimes := false

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

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			// counter line opens a cue block
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				current = &timeline.Cue{}
				awaitingTimes = true
				continue
			}
		}

		if current != nil && awaitingTimes {
			matches := srtTimestampRegex.FindStringSubmatch(line)
			if len(matches) == 9 {
				start, err := timestampToMs(matches[1], matches[2], matches[3], matches[4])
				if err != nil {
					return nil, fmt.Errorf("invalid start timestamp at line %d: %w", lineNum, err)
				}
				end, err := timestampToMs(matches[5], matches[6], matches[7], matches[8])
				if err != nil {
					return nil, fmt.Errorf("invalid end timestamp at line %d: %w", lineNum, err)
				}
				current.Start = start
				current.End = end
				awaitingTimes = false
				continue
			}
		}

		if current != nil {
			textLines = append(textLines, line)
		}
	}

	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}

	return cues, nil
}

func timestampToMs(hours, minutes, seconds, millis string) (int64, error) {
	h, err := strconv.ParseInt(hours, 10, 64)
	if err != nil {
		return 0, err
	}
	m, err := strconv.ParseInt(minutes, 10, 64)
	if err != nil {
		return 0, err
	}
	s, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return 0, err
	}

	return ((h*60+m)*60+s)*1000 + ms, nil
}
