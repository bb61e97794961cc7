package cmd

import (
	"fmt"

	"github.com/bnema/subtrack/internal/application"
	"github.com/bnema/subtrack/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:       "status <id> <active|paused|cancelled>",
		Short:     "Change a subscription's status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.StatusActive), string(domain.StatusPaused), string(domain.StatusCancelled)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeStatus(cmd, app, args[0], args[1], note)
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "note recorded in the status history")

	return cmd
}

func newStatusAliasCmd(app *app, use, short, status string) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeStatus(cmd, app, args[0], status, note)
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "note recorded in the status history")

	return cmd
}

func changeStatus(cmd *cobra.Command, app *app, ref, status, note string) error {
	session, err := app.session(cmd.Context())
	if err != nil {
		return err
	}

	sub, err := app.service.ChangeStatus(cmd.Context(), session, application.ChangeStatusCommand{
		Ref:    ref,
		Status: status,
		Note:   note,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", sub.Name, sub.Status)
	return err
}

func newPriceCmd(app *app) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "price <id> <amount>",
		Short: "Record a new price for a subscription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}

			sub, err := app.service.ChangePrice(cmd.Context(), session, application.ChangePriceCommand{
				Ref:    args[0],
				Amount: args[1],
				Note:   note,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s now costs %s\n", sub.Name, app.money.Format(sub.Amount))
			return err
		},
	}

	cmd.Flags().StringVar(&note, "note", application.ManualPriceNote, "note recorded in the price history")

	return cmd
}
