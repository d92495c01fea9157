package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cueline/cueline/internal/project"
	"github.com/cueline/cueline/internal/timeline"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [project-id]",
	Short: "Compute the timeline row layout for a project",
	Long: `Run a layout pass: partition the project's waveform into display rows
and place every cue in the row containing its start time.

Examples:
  cueline layout 4f1c...
  cueline layout 4f1c... --json`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutCmd.Flags().Bool("json", false, "Emit rows as JSON instead of a table")
}

type segmentJSON struct {
	ID          string  `json:"id"`
	Start       int64   `json:"start"`
	End         int64   `json:"end"`
	Text        string  `json:"text"`
	StartOffset float64 `json:"startOffsetInRow"`
	Width       float64 `json:"width"`
}

type rowJSON struct {
	StartTime  int64         `json:"startTime"`
	EndTime    int64         `json:"endTime"`
	StartPoint int           `json:"startPoint"`
	PointCount int           `json:"pointCount"`
	Width      float64       `json:"width"`
	Subtitles  []segmentJSON `json:"subtitles"`
}

func runLayout(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	ctx := context.Background()
	proj, err := store.Get(ctx, args[0])
	if err != nil {
		return err
	}

	wave, err := store.GetWaveform(ctx, proj.ID)
	if err != nil && !errors.Is(err, project.ErrMediaNotFound) {
		return err
	}

	rows, err := timeline.BuildRows(wave, proj.Cues, cfg.TimelineConfig())
	if err != nil {
		return err
	}

	if asJSON {
		return writeRowsJSON(rows)
	}

	if len(rows) == 0 {
		fmt.Println("No rows: project has no waveform. Import one with 'cueline import waveform'.")
		return nil
	}

	printRowTables(rows)
	return nil
}

func writeRowsJSON(rows []timeline.Row) error {
	out := make([]rowJSON, 0, len(rows))
	for _, row := range rows {
		segments := make([]segmentJSON, 0, len(row.Subtitles))
		for _, seg := range row.Subtitles {
			segments = append(segments, segmentJSON{
				ID:          seg.ID,
				Start:       seg.Start,
				End:         seg.End,
				Text:        seg.Text,
				StartOffset: seg.StartOffset,
				Width:       seg.Width,
			})
		}
		out = append(out, rowJSON{
			StartTime:  row.StartTime,
			EndTime:    row.EndTime,
			StartPoint: row.StartPoint,
			PointCount: row.PointCount,
			Width:      row.Width,
			Subtitles:  segments,
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func printRowTables(rows []timeline.Row) {
	rowCells := make([][]string, 0, len(rows))
	var segCells [][]string

	for i, row := range rows {
		rowCells = append(rowCells, []string{
			strconv.Itoa(i),
			fmt.Sprintf("%s - %s", formatMs(row.StartTime), formatMs(row.EndTime)),
			strconv.Itoa(row.PointCount),
			fmt.Sprintf("%.0f", row.Width),
			strconv.Itoa(len(row.Subtitles)),
		})

		for _, seg := range row.Subtitles {
			segCells = append(segCells, []string{
				strconv.Itoa(i),
				seg.ID,
				fmt.Sprintf("%s - %s", formatMs(seg.Start), formatMs(seg.End)),
				fmt.Sprintf("%.0f", seg.StartOffset),
				fmt.Sprintf("%.0f", seg.Width),
				truncateText(seg.Text, 40),
			})
		}
	}

	fmt.Println(renderTable(
		[]string{"ROW", "TIME", "POINTS", "WIDTH", "CUES"},
		rowCells,
		0, 2, 3, 4,
	))

	if len(segCells) > 0 {
		fmt.Println(renderTable(
			[]string{"ROW", "ID", "TIME", "OFFSET", "WIDTH", "TEXT"},
			segCells,
			0, 3, 4,
		))
	}
}
