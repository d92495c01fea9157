package project

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cueline/cueline/internal/timeline"
)

// Project is a complete editable snapshot: the cue collection plus a
// reference to the imported waveform blob.
type Project struct {
	ID        string
	Name      string
	MediaID   string
	Cues      []timeline.Cue
	CreatedAt time.Time
	UpdatedAt time.Time
}

// persisted cue shape inside the snapshot JSON
type cueRecord struct {
	ID       string `json:"id,omitempty"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
	Text     string `json:"text"`
	Settings string `json:"settings,omitempty"`
}

func encodeCues(cues []timeline.Cue) (string, error) {
	records := make([]cueRecord, 0, len(cues))
	for _, c := range cues {
		records = append(records, cueRecord{
			ID:       c.ID,
			Start:    c.Start,
			End:      c.End,
			Text:     c.Text,
			Settings: c.Settings,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal cues: %w", err)
	}
	return string(data), nil
}

func decodeCues(data string) ([]timeline.Cue, error) {
	if data == "" {
		return nil, nil
	}

	var records []cueRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("unmarshal cues: %w", err)
	}

	cues := make([]timeline.Cue, 0, len(records))
	for _, r := range records {
		cues = append(cues, timeline.Cue{
			ID:       r.ID,
			Start:    r.Start,
			End:      r.End,
			Text:     r.Text,
			Settings: r.Settings,
		})
	}
	return cues, nil
}
