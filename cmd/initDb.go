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

// initDbCmd represents the init-db command
var initDbCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize database schema",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, _ *tracker.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		logging.Info(ctx, "start init-db")

		if err := app.InitSchema(ctx); err != nil {
			logging.Error(ctx, "initialize schema failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "initialize schema")
		}

		seedFile, _ := cmd.Flags().GetString("seed")
		if seedFile != "" {
			if err := app.Seed(ctx, seedFile); err != nil {
				logging.Error(ctx, "seed lookup tables failed", slog.Any("err", errs.Loggable(err)))
				return errs.Wrap(err, "seed lookup tables")
			}
		}

		logging.Info(ctx, "init-db finished", slog.String("database_dsn", app.Config.Database.DSN))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "database schema initialized: %s\n", app.Config.Database.DSN); err != nil {
			return errs.Wrap(err, "write init-db output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(initDbCmd)

	initDbCmd.Flags().String("seed", "", "Optional TOML file with priorities, issue types and milestones")
}
