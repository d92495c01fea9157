package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage subtitle projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new empty project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project and its imported media",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	proj, err := store.Create(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	logger.Infow("Project created", "id", proj.ID, "name", proj.Name)
	fmt.Println(proj.ID)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	projects, err := store.List(context.Background())
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Println("No projects.")
		return nil
	}

	rows := make([][]string, 0, len(projects))
	for _, proj := range projects {
		media := "-"
		if proj.MediaID != "" {
			media = proj.MediaID
		}
		rows = append(rows, []string{
			proj.ID,
			proj.Name,
			strconv.Itoa(len(proj.Cues)),
			media,
			proj.UpdatedAt.Local().Format(time.DateTime),
		})
	}

	fmt.Println(renderTable(
		[]string{"ID", "NAME", "CUES", "MEDIA", "UPDATED"},
		rows,
		2,
	))
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	if err := store.Delete(context.Background(), args[0]); err != nil {
		return err
	}

	logger.Infow("Project deleted", "id", args[0])
	fmt.Printf("Deleted project %s\n", args[0])
	return nil
}
