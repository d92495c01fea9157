package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cueline/cueline/internal/timeline"
)

var nudgeCmd = &cobra.Command{
	Use:   "nudge [project-id] [cue-index]",
	Short: "Nudge a cue boundary by a signed millisecond delta",
	Long: `Move one boundary of a cue, quantized to 100ms. The cue index refers
to the start-sorted order shown by 'cueline cues'. When the move runs
into a neighboring cue, the neighbor is trimmed so cues never overlap.

Examples:
  cueline nudge 4f1c... 3 --boundary end --delta 500
  cueline nudge 4f1c... 3 --boundary start --delta -200`,
	Args: cobra.ExactArgs(2),
	RunE: runNudge,
}

func init() {
	rootCmd.AddCommand(nudgeCmd)

	nudgeCmd.Flags().String("boundary", "", "Boundary to move: start or end (required)")
	nudgeCmd.Flags().Int64("delta", 0, "Signed adjustment in milliseconds (required)")

	_ = nudgeCmd.MarkFlagRequired("boundary")
	_ = nudgeCmd.MarkFlagRequired("delta")
}

func runNudge(cmd *cobra.Command, args []string) error {
	boundaryFlag, _ := cmd.Flags().GetString("boundary")
	delta, _ := cmd.Flags().GetInt64("delta")

	boundary, err := parseBoundary(boundaryFlag)
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid cue index %q: %w", args[1], err)
	}

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

	target, err := cueAt(proj.Cues, index)
	if err != nil {
		return err
	}

	updated, err := timeline.AdjustTiming(proj.Cues, target, boundary, delta)
	if err != nil {
		if errors.Is(err, timeline.ErrRejectedAdjustment) {
			// expected outcome, leave the project untouched
			fmt.Printf("Rejected: %v\n", err)
			return nil
		}
		return err
	}

	if err := store.SaveCues(ctx, proj.ID, updated); err != nil {
		return err
	}

	adjusted, _ := cueAt(updated, index)
	logger.Infow("Cue adjusted",
		"project", proj.ID,
		"cue", index,
		"boundary", boundary,
		"delta_ms", delta,
	)
	fmt.Printf("Cue %d: %s - %s %q\n",
		index,
		formatMs(adjusted.Start),
		formatMs(adjusted.End),
		truncateText(adjusted.Text, 40),
	)
	return nil
}
