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

// createUserCmd represents the create-user command
var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user account",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *tracker.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")
		email, _ := cmd.Flags().GetString("email")

		user, err := svc.CreateUser(ctx, tracker.CreateUserInput{
			Username:  username,
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Password:  password,
		})
		if err != nil {
			return errs.Wrap(err, "create user")
		}

		logging.Info(ctx, "user created", slog.Int64("user_id", user.ID), slog.String("username", user.Username))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "user created: id=%d username=%s\n", user.ID, user.Username); err != nil {
			return errs.Wrap(err, "write create-user output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(createUserCmd)

	createUserCmd.Flags().String("username", "", "Login name")
	createUserCmd.Flags().String("password", "", "Password")
	createUserCmd.Flags().String("first-name", "", "First name")
	createUserCmd.Flags().String("last-name", "", "Last name")
	createUserCmd.Flags().String("email", "", "Email address")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")
}
