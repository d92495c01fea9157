package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var cuesCmd = &cobra.Command{
	Use:   "cues [project-id]",
	Short: "List a project's cues in display order",
	Args:  cobra.ExactArgs(1),
	RunE:  runCues,
}

func init() {
	rootCmd.AddCommand(cuesCmd)
}

func runCues(cmd *cobra.Command, args []string) error {
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

	if len(proj.Cues) == 0 {
		fmt.Println("No cues. Import some with 'cueline import subs'.")
		return nil
	}

	cues := sortedCues(proj.Cues)
	rows := make([][]string, 0, len(cues))
	for i, cue := range cues {
		rows = append(rows, []string{
			strconv.Itoa(i),
			fmt.Sprintf("%s - %s", formatMs(cue.Start), formatMs(cue.End)),
			truncateText(cue.Text, 60),
		})
	}

	fmt.Println(renderTable([]string{"#", "TIME", "TEXT"}, rows, 0))
	return nil
}
