package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cueline/cueline/internal/subtitle"
)

var exportCmd = &cobra.Command{
	Use:   "export [project-id]",
	Short: "Export a project's cues to an SRT or VTT file",
	Long: `Export the project's cue collection, sorted by start time, to the
output path given with -o. The format follows the output extension.

Examples:
  cueline export 4f1c... -o episode.srt
  cueline export 4f1c... -o episode.vtt`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		return fmt.Errorf("output path is required (use -o)")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	proj, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	format := subtitle.GetFormatFromExtension(outputPath)
	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return err
	}

	cues := sortedCues(proj.Cues)
	if err := writer.Write(cues, outputPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	logger.Infow("Project exported",
		"project", proj.ID,
		"format", format,
		"cues", len(cues),
	)
	fmt.Printf("Exported %d cues to %s\n", len(cues), absOutput)
	return nil
}
