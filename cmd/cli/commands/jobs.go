package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lenskeep/studio/internal/api/v1/routes"
	"github.com/lenskeep/studio/internal/db/models"
)

func init() {
	jobsCmd.AddCommand(listJobsCmd)
	jobsCmd.AddCommand(getJobCmd)
	jobsCmd.AddCommand(confirmJobCmd)

	listJobsCmd.Flags().StringP("status", "t", "", "Filter jobs by status (request, confirmed, declined)")

	getJobCmd.Flags().UintP("id", "i", 0, "Job ID to fetch")
	_ = getJobCmd.MarkFlagRequired("id")

	confirmJobCmd.Flags().UintP("id", "i", 0, "Job ID to confirm")
	_ = confirmJobCmd.MarkFlagRequired("id")
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage jobs",
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, _ := cmd.Flags().GetString("status")

		path := routes.APIv1Prefix + "/jobs"
		if status != "" {
			if _, err := models.ParseJobStatus(status); err != nil {
				return err
			}
			path += "?status=" + status
		}

		var response struct {
			Jobs []models.Job `json:"jobs"`
		}
		if err := apiGet(path, &response); err != nil {
			return fmt.Errorf("error fetching jobs: %w", err)
		}
		return printJSON(response)
	},
}

var getJobCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a job with its completion percentage",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetUint("id")

		var response map[string]interface{}
		if err := apiGet(fmt.Sprintf("%s/jobs/%d", routes.APIv1Prefix, id), &response); err != nil {
			return fmt.Errorf("error fetching job: %w", err)
		}
		return printJSON(response)
	},
}

var confirmJobCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Confirm a job request and instantiate its workflow",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, _ := cmd.Flags().GetUint("id")

		var response map[string]interface{}
		if err := apiPost(fmt.Sprintf("%s/jobs/%d/confirm", routes.APIv1Prefix, id), nil, &response); err != nil {
			return fmt.Errorf("error confirming job: %w", err)
		}
		return printJSON(response)
	},
}
