package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cueline/cueline/internal/timeline"
)

var editCmd = &cobra.Command{
	Use:   "edit [project-id] [cue-index]",
	Short: "Edit a cue's text",
	Long: `Replace a cue's text. An empty --text deletes the cue. Text containing
a blank line splits the cue into multiple cues, with time divided
proportionally to each part's length.

Examples:
  cueline edit 4f1c... 2 --text "Hello there."
  cueline edit 4f1c... 2 --text ""
  cueline edit 4f1c... 2 --text "First part.

Second part."`,
	Args: cobra.ExactArgs(2),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("text", "", "Replacement text (empty deletes the cue)")

	_ = editCmd.MarkFlagRequired("text")
}

func runEdit(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")

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

	updated, err := timeline.EditText(proj.Cues, target, text)
	if err != nil {
		return err
	}

	if err := store.SaveCues(ctx, proj.ID, updated); err != nil {
		return err
	}

	logger.Infow("Cue edited",
		"project", proj.ID,
		"cue", index,
		"cues_before", len(proj.Cues),
		"cues_after", len(updated),
	)

	switch {
	case len(updated) < len(proj.Cues):
		fmt.Printf("Deleted cue %d\n", index)
	case len(updated) > len(proj.Cues):
		fmt.Printf("Split cue %d into %d cues\n", index, len(updated)-len(proj.Cues)+1)
	default:
		fmt.Printf("Updated cue %d\n", index)
	}
	return nil
}
