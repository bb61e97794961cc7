package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/subtrack/internal/adapters/render/money"
	"github.com/bnema/subtrack/internal/application"
	"github.com/bnema/subtrack/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscription(t *testing.T, id, name, amount string, typ domain.Type, renewal time.Time) domain.Subscription {
	t.Helper()

	sub, err := domain.NewSubscription(domain.SubscriptionID(id), domain.NewSubscriptionInput{
		Name:        name,
		Amount:      decimal.RequireFromString(amount),
		Type:        typ,
		RenewalDate: renewal,
	}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return sub
}

func TestRenderDashboard(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	upcoming := domain.Collection{
		subscription(t, "a", "Spotify", "10.99", domain.TypePersonal, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)),
		subscription(t, "b", "GitHub", "4", domain.TypeBusiness, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)),
		subscription(t, "c", "Backblaze", "7", domain.TypeBusiness, time.Time{}),
	}

	output, err := Render(application.DashboardView{
		Filter:   domain.FilterAll,
		Summary:  domain.DashboardTotals(upcoming, domain.FilterAll),
		Upcoming: upcoming,
	}, RenderOptions{Now: now, Money: money.New("GBP")})

	require.NoError(t, err)
	assert.Contains(t, output, "Subscription Dashboard")
	assert.Contains(t, output, "showing: all subscriptions")
	assert.Contains(t, output, "£21.99")
	assert.Contains(t, output, "£263.88")
	assert.Contains(t, output, "Upcoming Renewals")
	assert.Contains(t, output, "(renews tomorrow)")
	assert.Contains(t, output, "(renews in 10 days, 20 Mar 2024)")
	assert.Contains(t, output, "(no renewal date)")
	assert.Less(t, strings.Index(output, "Spotify"), strings.Index(output, "GitHub"))
}

func TestRenderDashboardEmpty(t *testing.T) {
	output, err := Render(application.DashboardView{
		Filter: domain.FilterBusiness,
		Summary: domain.DashboardSummary{
			Totals: domain.Totals{Monthly: decimal.Zero, Yearly: decimal.Zero},
		},
	}, RenderOptions{Now: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)})

	require.NoError(t, err)
	assert.Contains(t, output, "showing: business")
	assert.Contains(t, output, "£0.00")
	assert.Contains(t, output, "No active subscriptions.")
}

func TestFormatRenewal(t *testing.T) {
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		renewal time.Time
		want    string
	}{
		{name: "today", renewal: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), want: "(renews today)"},
		{name: "tomorrow", renewal: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), want: "(renews tomorrow)"},
		{name: "month boundary", renewal: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), want: "(renews in 22 days, 01 Apr 2024)"},
		{name: "yesterday", renewal: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), want: "(renewal overdue by 1 day)"},
		{name: "overdue", renewal: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), want: "(renewal overdue by 9 days)"},
		{name: "unset", renewal: time.Time{}, want: "(no renewal date)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRenewal(tt.renewal, now))
		})
	}

	assert.Equal(t, "(renews 01 Apr 2024)", formatRenewal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), time.Time{}))
}

func TestRenderReport(t *testing.T) {
	buckets := []domain.Bucket{
		{Label: "Jan 2024", Personal: decimal.Zero, Business: decimal.Zero, Total: decimal.Zero},
		{Label: "Feb 2024", Personal: decimal.NewFromInt(10), Business: decimal.NewFromInt(20), Total: decimal.NewFromInt(30)},
		{Label: "Mar 2024", Personal: decimal.NewFromInt(15), Business: decimal.Zero, Total: decimal.NewFromInt(15)},
	}

	output, err := RenderReport(application.ReportView{
		Range:   domain.RangeThreeMonths,
		Buckets: buckets,
	}, RenderOptions{Money: money.New("USD"), BarWidth: 12})

	require.NoError(t, err)
	assert.Contains(t, output, "Subscription Trends")
	assert.Contains(t, output, "range: 3m, months: 3")
	assert.Contains(t, output, "Feb 2024")
	assert.Contains(t, output, "$30.00")
	assert.Contains(t, output, "[====########]")
	assert.Contains(t, output, "[======------]")
}

func TestRenderStackedBarWithoutSpend(t *testing.T) {
	bar := renderStackedBar(domain.Bucket{Personal: decimal.Zero, Business: decimal.Zero, Total: decimal.Zero}, decimal.Zero, 5, newStyles())
	assert.Equal(t, "[-----]", bar)
}
