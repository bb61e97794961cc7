package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/subtrack/internal/adapters/render/money"
	"github.com/bnema/subtrack/internal/application"
	"github.com/bnema/subtrack/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	defaultBarWidth = 30
	soonWindowDays  = 7
	renewalLayout   = "02 Jan 2006"
)

type RenderOptions struct {
	Now      time.Time
	Money    money.Formatter
	BarWidth int
}

func (o RenderOptions) barWidth() int {
	if o.BarWidth <= 0 {
		return defaultBarWidth
	}
	return o.BarWidth
}

func renderDashboard(view application.DashboardView, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Subscription Dashboard"),
		s.header.Render(fmt.Sprintf("showing: %s", filterLabel(view.Filter))),
		s.section.Render(lipgloss.JoinHorizontal(
			lipgloss.Top,
			statBlock("Active", fmt.Sprintf("%d", view.Summary.Count), s),
			statBlock("Monthly", opts.Money.Format(view.Summary.Monthly), s),
			statBlock("Yearly", opts.Money.Format(view.Summary.Yearly), s),
		)),
		s.section.Render(s.title.Render("Upcoming Renewals")),
	}

	if len(view.Upcoming) == 0 {
		lines = append(lines, s.empty.Render("No active subscriptions."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, sub := range view.Upcoming {
		lines = append(lines, renewalLine(sub, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statBlock(label, value string, s styles) string {
	return s.statBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		s.statLabel.Render(label),
		s.statValue.Render(value),
	))
}

func renewalLine(sub domain.Subscription, opts RenderOptions, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.name.Render(sub.Name),
		" ",
		s.detail.Render(fmt.Sprintf("%s, %s", sub.Type, opts.Money.Format(sub.Amount))),
		" ",
		renewalStyle(sub.RenewalDate, opts.Now, s).Render(formatRenewal(sub.RenewalDate, opts.Now)),
	)
}

func filterLabel(filter domain.TypeFilter) string {
	switch filter {
	case domain.FilterPersonal:
		return "personal"
	case domain.FilterBusiness:
		return "business"
	default:
		return "all subscriptions"
	}
}

// daysUntil counts calendar days between now's date and the renewal date.
// Renewal dates are stored at UTC midnight, so now is projected onto the
// same calendar before subtracting.
func daysUntil(renewal, now time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ry, rm, rd := renewal.Date()
	target := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24)
}

func formatRenewal(renewal, now time.Time) string {
	if renewal.IsZero() {
		return "(no renewal date)"
	}
	if now.IsZero() {
		return fmt.Sprintf("(renews %s)", renewal.Format(renewalLayout))
	}

	days := daysUntil(renewal, now)
	switch {
	case days == 0:
		return "(renews today)"
	case days == 1:
		return "(renews tomorrow)"
	case days > 1:
		return fmt.Sprintf("(renews in %d days, %s)", days, renewal.Format(renewalLayout))
	case days == -1:
		return "(renewal overdue by 1 day)"
	default:
		return fmt.Sprintf("(renewal overdue by %d days)", -days)
	}
}

func renewalStyle(renewal, now time.Time, s styles) lipgloss.Style {
	if renewal.IsZero() || now.IsZero() {
		return s.detail
	}

	days := daysUntil(renewal, now)
	switch {
	case days < 0:
		return s.overdue
	case days <= soonWindowDays:
		return s.due
	default:
		return s.detail
	}
}

func renderReport(view application.ReportView, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Subscription Trends"),
		s.header.Render(fmt.Sprintf("range: %s, months: %d", view.Range, len(view.Buckets))),
		s.header.Render(lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.personal.Render("="), " personal  ",
			s.business.Render("#"), " business",
		)),
	}

	peak := decimal.Zero
	for _, b := range view.Buckets {
		peak = decimal.Max(peak, b.Total)
	}

	rows := make([]string, 0, len(view.Buckets))
	for _, b := range view.Buckets {
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.label.Render(b.Label),
			" ",
			renderStackedBar(b, peak, opts.barWidth(), s),
			" ",
			s.detail.Render(opts.Money.Format(b.Total)),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderStackedBar scales personal and business spend against peak. The
// combined length is rounded first so stacked segments never exceed width.
func renderStackedBar(b domain.Bucket, peak decimal.Decimal, width int, s styles) string {
	personal, business := 0, 0
	if peak.IsPositive() {
		w := decimal.NewFromInt(int64(width))
		total := int(b.Total.Mul(w).Div(peak).Round(0).IntPart())
		personal = int(b.Personal.Mul(w).Div(peak).Round(0).IntPart())
		personal = min(personal, total)
		business = total - personal
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.personal.Render(strings.Repeat("=", personal)),
		s.business.Render(strings.Repeat("#", business)),
		s.barEmpty.Render(strings.Repeat("-", width-personal-business)),
		s.barBracket.Render("]"),
	)
}
