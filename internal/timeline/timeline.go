package timeline

// single subtitle cue, times in milliseconds
type Cue struct {
	ID       string
	Start    int64
	End      int64
	Text     string
	Settings string
}

// pixel geometry for one layout pass
type Config struct {
	BarWidth     float64 // pixels per waveform sample
	PointsPerRow int     // samples per display row
	MsPerPoint   int64   // milliseconds per sample
}

// canonical editor defaults
func DefaultConfig() Config {
	return Config{
		BarWidth:     8,
		PointsPerRow: 150,
		MsPerPoint:   100,
	}
}

// fixed-capacity horizontal slice of the waveform timeline
type Row struct {
	StartTime  int64
	EndTime    int64
	StartPoint int
	PointCount int
	Width      float64
	Subtitles  []Segment
}

// on-row visual representation of a cue
type Segment struct {
	ID          string
	Start       int64
	End         int64
	Text        string
	StartOffset float64
	Width       float64
}

// cue boundary targeted by a timing adjustment
type Boundary string

const (
	BoundaryStart Boundary = "start"
	BoundaryEnd   Boundary = "end"
)
