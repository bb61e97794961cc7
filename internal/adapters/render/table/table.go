// Package table prints subscription listings and histories as terminal tables.
package table

import (
	"io"
	"time"

	"github.com/bnema/subtrack/internal/adapters/render/money"
	"github.com/bnema/subtrack/internal/application"
	"github.com/bnema/subtrack/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
	shortIDLen     = 8
	noValue        = "-"
)

// Subscriptions prints one row per subscription with an active-total footer.
func Subscriptions(w io.Writer, subs domain.Collection, m money.Formatter) {
	t := newWriter(w)
	t.AppendHeader(table.Row{"ID", "Name", "Type", "Status", "Amount", "Renewal", "Payment"})

	for _, sub := range subs {
		t.AppendRow(table.Row{
			ShortID(sub.ID),
			sub.Name,
			string(sub.Type),
			statusCell(sub.Status),
			m.Format(sub.Amount),
			formatDate(sub.RenewalDate),
			orDash(sub.PaymentMethod),
		})
	}

	summary := domain.DashboardTotals(subs, domain.FilterAll)
	t.AppendSeparator()
	t.AppendFooter(table.Row{"", "", "", text.Bold.Sprint("Active monthly"), text.Bold.Sprint(m.Format(summary.Monthly)), "", ""})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight}})
	t.Render()
}

// Details prints a subscription's fields followed by both histories.
func Details(w io.Writer, sub domain.Subscription, m money.Formatter) {
	fields := newWriter(w)
	fields.AppendRows([]table.Row{
		{"ID", string(sub.ID)},
		{"Name", sub.Name},
		{"Type", string(sub.Type)},
		{"Status", statusCell(sub.Status)},
		{"Amount", m.Format(sub.Amount)},
		{"Renewal", formatDate(sub.RenewalDate)},
		{"Payment", orDash(sub.PaymentMethod)},
		{"Created", sub.CreatedAt.Format(dateTimeLayout)},
	})
	fields.Render()

	prices := newWriter(w)
	prices.SetTitle("Price history")
	prices.AppendHeader(table.Row{"Date", "Amount", "Note"})
	for _, p := range sub.PriceHistory {
		prices.AppendRow(table.Row{p.Date.Format(dateTimeLayout), m.Format(p.Amount), p.Note})
	}
	prices.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	prices.Render()

	statuses := newWriter(w)
	statuses.SetTitle("Status history")
	statuses.AppendHeader(table.Row{"Date", "Status", "Note"})
	for _, s := range sub.StatusHistory {
		statuses.AppendRow(table.Row{s.Date.Format(dateTimeLayout), statusCell(s.Status), s.Note})
	}
	statuses.Render()
}

// Totals prints monthly and yearly run rates per type. A personal or business
// filter prints that type alone.
func Totals(w io.Writer, view application.TotalsView, filter domain.TypeFilter, m money.Formatter) {
	t := newWriter(w)
	t.AppendHeader(table.Row{"Type", "Monthly", "Yearly"})
	if filter != domain.FilterBusiness {
		t.AppendRow(table.Row{"Personal", m.Format(view.Personal.Monthly), m.Format(view.Personal.Yearly)})
	}
	if filter != domain.FilterPersonal {
		t.AppendRow(table.Row{"Business", m.Format(view.Business.Monthly), m.Format(view.Business.Yearly)})
	}
	if filter == domain.FilterAll {
		t.AppendSeparator()
		t.AppendFooter(table.Row{text.Bold.Sprint("Total"), text.Bold.Sprint(m.Format(view.Combined.Monthly)), text.Bold.Sprint(m.Format(view.Combined.Yearly))})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
}

// ShortID trims a subscription id to a prefix long enough to pass back to
// commands that take an id.
func ShortID(id domain.SubscriptionID) string {
	if len(id) <= shortIDLen {
		return string(id)
	}
	return string(id[:shortIDLen])
}

func newWriter(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func statusCell(status domain.Status) string {
	switch status {
	case domain.StatusActive:
		return text.FgGreen.Sprint(status.Label())
	case domain.StatusPaused:
		return text.FgYellow.Sprint(status.Label())
	case domain.StatusCancelled:
		return text.FgRed.Sprint(status.Label())
	default:
		return status.Label()
	}
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return noValue
	}
	return value.Format(dateLayout)
}

func orDash(value string) string {
	if value == "" {
		return noValue
	}
	return value
}
