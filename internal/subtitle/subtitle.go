package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cueline/cueline/internal/timeline"
)

// supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// interface for writing cue lists to files
type Writer interface {
	Write(cues []timeline.Cue, path string) error
}

// Open parses a subtitle file into a cue list based on its extension.
func Open(path string) ([]timeline.Cue, Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		cues, err := parseSRTFile(path)
		return cues, FormatSRT, err
	case ".vtt":
		cues, err := parseVTTFile(path)
		return cues, FormatVTT, err
	default:
		return nil, "", fmt.Errorf("unsupported subtitle format: %s", ext)
	}
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".vtt":
		return FormatVTT
	default:
		return FormatSRT
	}
}
