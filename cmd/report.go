package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/subtrack/internal/adapters/render/dashboard"
	"github.com/bnema/subtrack/internal/adapters/render/table"
	"github.com/bnema/subtrack/internal/adapters/repo/record"
	"github.com/bnema/subtrack/internal/application"
	"github.com/bnema/subtrack/internal/domain"
	"github.com/spf13/cobra"
)

type totalsJSON struct {
	Monthly jsonAmount `json:"monthly"`
	Yearly  jsonAmount `json:"yearly"`
}

type dashboardJSON struct {
	Filter   string                `json:"filter"`
	Count    int                   `json:"count"`
	Monthly  jsonAmount            `json:"monthly"`
	Yearly   jsonAmount            `json:"yearly"`
	Upcoming []record.Subscription `json:"upcoming"`
}

type bucketJSON struct {
	Label    string     `json:"label"`
	Month    string     `json:"month"`
	Personal jsonAmount `json:"personal"`
	Business jsonAmount `json:"business"`
	Total    jsonAmount `json:"total"`
}

type reportJSON struct {
	Range       string       `json:"range"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Buckets     []bucketJSON `json:"buckets"`
}

func newTotalsCmd(app *app) *cobra.Command {
	var (
		typeFlag string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Show monthly and yearly spend per type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := domain.ParseTypeFilter(typeFlag)
			if err != nil {
				return err
			}

			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}

			view, err := app.service.Totals(cmd.Context(), session)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, totalsByFilter(view, filter))
			}

			table.Totals(cmd.OutOrStdout(), view, filter, app.money)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "all", "all, personal or business")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func totalsByFilter(view application.TotalsView, filter domain.TypeFilter) map[string]totalsJSON {
	out := map[string]totalsJSON{}
	if filter != domain.FilterBusiness {
		out[string(domain.TypePersonal)] = newTotalsJSON(view.Personal)
	}
	if filter != domain.FilterPersonal {
		out[string(domain.TypeBusiness)] = newTotalsJSON(view.Business)
	}
	if filter == domain.FilterAll {
		out["combined"] = newTotalsJSON(view.Combined)
	}
	return out
}

func newTotalsJSON(t domain.Totals) totalsJSON {
	return totalsJSON{Monthly: jsonAmount(t.Monthly), Yearly: jsonAmount(t.Yearly)}
}

func newDashboardCmd(app *app) *cobra.Command {
	var (
		filterFlag string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show active spend and upcoming renewals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := domain.ParseTypeFilter(filterFlag)
			if err != nil {
				return err
			}

			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}

			view, err := app.service.Dashboard(cmd.Context(), session, filter)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, dashboardJSON{
					Filter:   string(view.Filter),
					Count:    view.Summary.Count,
					Monthly:  jsonAmount(view.Summary.Monthly),
					Yearly:   jsonAmount(view.Summary.Yearly),
					Upcoming: record.FromDomain(view.Upcoming),
				})
			}

			rendered, err := app.renderDash(view, dashboard.RenderOptions{Now: app.now(), Money: app.money})
			if err != nil {
				return fmt.Errorf("render dashboard: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&filterFlag, "filter", "all", "all, personal or business")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func newReportCmd(app *app) *cobra.Command {
	var (
		rangeFlag string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show month-by-month spend trends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := domain.ParseReportRange(rangeFlag)
			if err != nil {
				return err
			}

			session, err := app.session(cmd.Context())
			if err != nil {
				return err
			}

			view, err := app.service.Report(cmd.Context(), session, r)
			if err != nil {
				return err
			}

			if asJSON {
				out := reportJSON{Range: string(view.Range), GeneratedAt: view.GeneratedAt, Buckets: make([]bucketJSON, 0, len(view.Buckets))}
				for _, b := range view.Buckets {
					out.Buckets = append(out.Buckets, bucketJSON{
						Label:    b.Label,
						Month:    b.Date.Format("2006-01"),
						Personal: jsonAmount(b.Personal),
						Business: jsonAmount(b.Business),
						Total:    jsonAmount(b.Total),
					})
				}
				return writeJSON(cmd, out)
			}

			rendered, err := app.renderReport(view, dashboard.RenderOptions{Now: app.now(), Money: app.money})
			if err != nil {
				return fmt.Errorf("render report: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "range", "1y", "1m, 3m, 6m or 1y")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}
