package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gumshoe/internal/bootstrap"
	"gumshoe/internal/bootstrap/logging"
	"gumshoe/internal/errs"
	"gumshoe/internal/transport/rest"
	"gumshoe/internal/usecase/tracker"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *tracker.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		handler := rest.NewHandler(svc, app.Config.Server)
		server := &http.Server{
			Addr:              app.Config.Server.Addr,
			Handler:           handler.Router(),
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return ctx },
		}

		signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			logging.Info(ctx, "http server listening", slog.String("addr", server.Addr))
			serveErr <- server.ListenAndServe()
		}()

		select {
		case err := <-serveErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errs.Wrap(err, "serve http")
			}
			return nil
		case <-signalCtx.Done():
		}

		logging.Info(ctx, "shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errs.Wrap(err, "shutdown http server")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
