package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lenskeep/studio/internal/api/v1/routes"
)

func init() {
	tasksCmd.AddCommand(listTasksCmd)
	tasksCmd.AddCommand(processTaskCmd)
	tasksCmd.AddCommand(respondTaskCmd)

	listTasksCmd.Flags().UintP("job", "j", 0, "Job ID whose work graph to list")
	_ = listTasksCmd.MarkFlagRequired("job")

	processTaskCmd.Flags().UintP("id", "i", 0, "Task ID to process")
	_ = processTaskCmd.MarkFlagRequired("id")

	respondTaskCmd.Flags().UintP("id", "i", 0, "Task ID to update")
	respondTaskCmd.Flags().Bool("reset", false, "Reset the client response to pending")
	_ = respondTaskCmd.MarkFlagRequired("id")
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var listTasksCmd = &cobra.Command{
	Use:   "list",
	Short: "List the work phases and tasks of a job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		jobID, _ := cmd.Flags().GetUint("job")

		var response map[string]interface{}
		if err := apiGet(fmt.Sprintf("%s/jobs/%d/works", routes.APIv1Prefix, jobID), &response); err != nil {
			return fmt.Errorf("error fetching tasks: %w", err)
		}
		return printJSON(response)
	},
}

var processTaskCmd = &cobra.Command{
	Use:   "process",
	Short: "Run one staff transition on a task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetUint("id")

		var response map[string]interface{}
		if err := apiPost(fmt.Sprintf("%s/tasks/%d/process", routes.APIv1Prefix, id), nil, &response); err != nil {
			return fmt.Errorf("error processing task: %w", err)
		}
		return printJSON(response)
	},
}

var respondTaskCmd = &cobra.Command{
	Use:   "respond",
	Short: "Advance or reset the client response on a task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetUint("id")
		reset, _ := cmd.Flags().GetBool("reset")

		payload := map[string]bool{"reset": reset}
		var response map[string]interface{}
		if err := apiPost(fmt.Sprintf("%s/tasks/%d/response", routes.APIv1Prefix, id), payload, &response); err != nil {
			return fmt.Errorf("error updating task response: %w", err)
		}
		return printJSON(response)
	},
}
