package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"gumshoe/internal/bootstrap"
	"gumshoe/internal/bootstrap/logging"
	"gumshoe/internal/errs"
	"gumshoe/internal/infrastructure/persistence/sqlite/repository"
	"gumshoe/internal/infrastructure/persistence/sqlite/uow"
	"gumshoe/internal/usecase/tracker"
)

// withApp bootstraps the application and wires the tracker service before
// handing control to the command body. Shutdown runs after the body
// returns.
func withApp(run func(cmd *cobra.Command, app *bootstrap.App, svc *tracker.Service) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := logging.WithAttrs(
			cmd.Context(),
			slog.String("command", cmd.CommandPath()),
			slog.String("config_file", cfgFile),
		)

		app, err := bootstrap.New(ctx, cfgFile)
		if err != nil {
			logging.Error(ctx, "bootstrap application failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "bootstrap application")
		}

		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.Close(closeCtx); err != nil {
				logging.Error(ctx, "application close failed", slog.Any("err", errs.Loggable(err)))
			}
		}()

		svc := tracker.NewService(tracker.Repositories{
			Issues:   repository.NewIssueRepository(app.DB),
			Projects: repository.NewProjectRepository(app.DB),
			Lookups:  repository.NewLookupRepository(app.DB),
			Users:    repository.NewUserRepository(app.DB),
			Comments: repository.NewCommentRepository(app.DB),
			Sessions: repository.NewSessionRepository(app.DB),
		}, uow.NewUnitOfWork(app.DB))

		if err := run(cmd, app, svc); err != nil {
			return errs.Wrap(err, "run command")
		}
		return nil
	}
}
