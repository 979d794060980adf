package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"gumshoe/internal/bootstrap"
	"gumshoe/internal/bootstrap/logging"
	"gumshoe/internal/errs"
	"gumshoe/internal/usecase/tracker"
)

// createProjectCmd represents the create-project command
var createProjectCmd = &cobra.Command{
	Use:   "create-project",
	Short: "Create a project with a derived issue-key prefix",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *tracker.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		keyOverride, _ := cmd.Flags().GetString("key")
		components, _ := cmd.Flags().GetStringSlice("component")
		versions, _ := cmd.Flags().GetStringSlice("version")

		project, err := svc.CreateProject(ctx, tracker.CreateProjectInput{
			Name:        name,
			Description: description,
			KeyOverride: keyOverride,
			Components:  components,
			Versions:    versions,
		})
		if err != nil {
			return errs.Wrap(err, "create project")
		}

		logging.Info(ctx, "project created",
			slog.Int64("project_id", project.ID),
			slog.String("name", project.Name),
			slog.String("issue_key", project.IssueKey),
		)
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "project created: id=%d key=%s\n", project.ID, project.IssueKey); err != nil {
			return errs.Wrap(err, "write create-project output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(createProjectCmd)

	createProjectCmd.Flags().String("name", "", "Project name")
	createProjectCmd.Flags().String("description", "", "Project description")
	createProjectCmd.Flags().String("key", "", "Issue-key prefix override")
	createProjectCmd.Flags().StringSlice("component", nil, "Initial component (repeatable)")
	createProjectCmd.Flags().StringSlice("version", nil, "Initial version (repeatable)")
	_ = createProjectCmd.MarkFlagRequired("name")
}
