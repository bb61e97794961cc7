package cmd

import (
	"fmt"

	"github.com/bnema/subtrack/internal/adapters/render/table"
	"github.com/bnema/subtrack/internal/adapters/repo/record"
	"github.com/bnema/subtrack/internal/application"
	"github.com/bnema/subtrack/internal/domain"
	"github.com/spf13/cobra"
)

func newAddCmd(app *app) *cobra.Command {
	var input application.CreateSubscriptionCommand

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subscription",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}

			sub, err := app.service.CreateSubscription(cmd.Context(), session, input)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) at %s\n", sub.Name, table.ShortID(sub.ID), app.money.Format(sub.Amount))
			return err
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "subscription name")
	cmd.Flags().StringVar(&input.Amount, "amount", "", "monthly amount")
	cmd.Flags().StringVar(&input.Type, "type", "personal", "personal or business")
	cmd.Flags().StringVar(&input.RenewalDate, "renewal", "", "next renewal date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.PaymentMethod, "payment-method", "", "card or account used to pay")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newListCmd(app *app) *cobra.Command {
	var (
		typeFlag string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := domain.ParseTypeFilter(typeFlag)
			if err != nil {
				return err
			}

			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}

			subs, err := app.service.List(cmd.Context(), session, filter)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, record.FromDomain(subs))
			}
			if len(subs) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "No subscriptions yet.")
				return err
			}

			table.Subscriptions(cmd.OutOrStdout(), subs, app.money)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "all", "all, personal or business")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func newShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a subscription with its price and status history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}

			sub, err := app.service.Find(cmd.Context(), session, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, record.FromDomain(domain.Collection{sub})[0])
			}

			table.Details(cmd.OutOrStdout(), sub, app.money)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func newDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}

			deleted, err := app.service.DeleteSubscription(cmd.Context(), session, args[0])
			if err != nil {
				return err
			}

			if !deleted {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "No subscription matches %q, nothing deleted\n", args[0])
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return err
		},
	}
}
