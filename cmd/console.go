package cmd

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gumshoe/internal/bootstrap"
	"gumshoe/internal/bootstrap/logging"
	"gumshoe/internal/errs"
	"gumshoe/internal/usecase/console"
	"gumshoe/internal/usecase/tracker"
)

// consoleCmd represents the console command
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the terminal issue console",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *tracker.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		username, _ := cmd.Flags().GetString("user")
		projects, _ := cmd.Flags().GetString("projects")
		statuses, _ := cmd.Flags().GetString("statuses")
		orderBy, _ := cmd.Flags().GetString("order-by")
		refreshInterval, _ := cmd.Flags().GetDuration("refresh-interval")
		if refreshInterval <= 0 {
			refreshInterval = 5 * time.Second
		}

		model := console.NewModel(ctx, svc, console.Options{
			Username:        username,
			Projects:        projects,
			Statuses:        statuses,
			OrderBy:         orderBy,
			RefreshInterval: refreshInterval,
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run issue console")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(consoleCmd)

	consoleCmd.Flags().String("user", "", "Operator account for console actions")
	consoleCmd.Flags().String("projects", "", "Comma-separated issue-key prefixes to show")
	consoleCmd.Flags().String("statuses", "", "Comma-separated statuses to show")
	consoleCmd.Flags().String("order-by", "-last_updated", "Ordering fields, \"-\" prefix for descending")
	consoleCmd.Flags().Duration("refresh-interval", 5*time.Second, "Auto refresh interval")
}
