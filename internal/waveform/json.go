package waveform

import (
	"encoding/json"
	"fmt"
	"io"
)

// wire structure for waveform import/export
type document struct {
	Waveform []float64 `json:"waveform"`
}

// ParseJSON reads a { "waveform": [...] } document.
func ParseJSON(r io.Reader) ([]float64, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse waveform JSON: %w", err)
	}
	if doc.Waveform == nil {
		return nil, fmt.Errorf("waveform JSON missing \"waveform\" field")
	}
	return doc.Waveform, nil
}

// WriteJSON writes samples as a { "waveform": [...] } document.
func WriteJSON(w io.Writer, samples []float64) error {
	if err := json.NewEncoder(w).Encode(document{Waveform: samples}); err != nil {
		return fmt.Errorf("failed to encode waveform JSON: %w", err)
	}
	return nil
}
