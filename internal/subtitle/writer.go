package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cueline/cueline/internal/timeline"
)

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// writes the cue list to an SRT file
func (w *SRTWriter) Write(cues []timeline.Cue, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder
	for i, cue := range cues {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(cue.Start),
			formatSRTTime(cue.End)))

		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// writes the cue list to a VTT file
func (w *VTTWriter) Write(cues []timeline.Cue, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for _, cue := range cues {
		if cue.ID != "" {
			sb.WriteString(cue.ID)
			sb.WriteString("\n")
		}

		// timestamps: 00:00:00.000 --> 00:00:00.000, plus cue settings
		sb.WriteString(fmt.Sprintf("%s --> %s",
			formatVTTTime(cue.Start),
			formatVTTTime(cue.End)))
		if cue.Settings != "" {
			sb.WriteString(" ")
			sb.WriteString(cue.Settings)
		}
		sb.WriteString("\n")

		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

func formatSRTTime(ms int64) string {
	return fmt.Sprintf("%02d:%02d:%02d,%03d",
		ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

func formatVTTTime(ms int64) string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d",
		ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
