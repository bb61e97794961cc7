package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/subtrack/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Choose which user subtrack acts for",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionShowCmd(app),
		newSessionEndCmd(app),
	)

	return cmd
}

func newSessionStartCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start a session for --user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.opts.user == "" {
				return errors.New("required flag(s) \"user\" not set")
			}

			session, err := app.sessions.Start(cmd.Context(), app.opts.user)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Session started for %s\n", session.UserID)
			return err
		},
	}
}

func newSessionShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.sessions.Current(cmd.Context())
			if errors.Is(err, domain.ErrNoSession) {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "No active session")
				return err
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (since %s)\n", session.UserID, session.StartedAt.Local().Format("2006-01-02 15:04"))
			return err
		},
	}
}

func newSessionEndCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.End(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Session ended")
			return err
		},
	}
}
