package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cueline/cueline/internal/subtitle"
	"github.com/cueline/cueline/internal/waveform"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import subtitles or waveform data into a project",
}

var importSubsCmd = &cobra.Command{
	Use:   "subs [project-id] [subtitle-file]",
	Short: "Import an SRT or VTT file as the project's cue collection",
	Long: `Import a subtitle file, replacing the project's cue collection.

Examples:
  cueline import subs 4f1c... episode.srt
  cueline import subs 4f1c... episode.vtt`,
	Args: cobra.ExactArgs(2),
	RunE: runImportSubs,
}

var importWaveformCmd = &cobra.Command{
	Use:   "waveform [project-id] [file]",
	Short: "Import a waveform from a media file or a waveform JSON document",
	Long: `Import waveform amplitude data for the project's timeline.

A .json file is read as a {"waveform": [...]} document with one sample
per timeline quantum. Any other file is treated as media: its audio
track is decoded with ffmpeg and reduced to one peak per quantum.

Examples:
  cueline import waveform 4f1c... episode.mkv
  cueline import waveform 4f1c... waveform.json`,
	Args: cobra.ExactArgs(2),
	RunE: runImportWaveform,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importSubsCmd)
	importCmd.AddCommand(importWaveformCmd)
}

func runImportSubs(cmd *cobra.Command, args []string) error {
	projectID, path := args[0], args[1]

	cues, format, err := subtitle.Open(path)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	ctx := context.Background()
	if _, err := store.Get(ctx, projectID); err != nil {
		return err
	}
	if err := store.SaveCues(ctx, projectID, cues); err != nil {
		return err
	}

	logger.Infow("Subtitles imported",
		"project", projectID,
		"file", path,
		"format", format,
		"cues", len(cues),
	)
	fmt.Printf("Imported %d cues from %s\n", len(cues), filepath.Base(path))
	return nil
}

func runImportWaveform(cmd *cobra.Command, args []string) error {
	projectID, path := args[0], args[1]
	ctx := context.Background()

	var samples []float64
	if strings.EqualFold(filepath.Ext(path), ".json") {
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open waveform file: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()

		samples, err = waveform.ParseJSON(file)
		if err != nil {
			return err
		}
	} else {
		var err error
		samples, err = waveform.FromMedia(ctx, path, cfg.Timeline.MsPerPoint)
		if err != nil {
			return err
		}
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	mediaID, err := store.PutWaveform(ctx, projectID, samples)
	if err != nil {
		return err
	}

	logger.Infow("Waveform imported",
		"project", projectID,
		"media", mediaID,
		"points", len(samples),
	)
	fmt.Printf("Imported %d waveform points (media %s)\n", len(samples), mediaID)
	return nil
}
