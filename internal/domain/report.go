package domain

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	monthsPerYear    = 12
	bucketLabelStyle = "Jan 2006"
)

var yearMultiplier = decimal.NewFromInt(monthsPerYear)

// Totals is a monthly run-rate and its flat annualization.
type Totals struct {
	Monthly decimal.Decimal
	Yearly  decimal.Decimal
}

type DashboardSummary struct {
	Count int
	Totals
}

func newTotals(monthly decimal.Decimal) Totals {
	return Totals{Monthly: monthly, Yearly: monthly.Mul(yearMultiplier)}
}

func sumAmounts(c Collection) decimal.Decimal {
	sum := decimal.Zero
	for _, sub := range c {
		sum = sum.Add(sub.Amount)
	}
	return sum
}

// TotalsFor sums the amounts of active subscriptions of type t.
func TotalsFor(c Collection, t Type) Totals {
	return newTotals(sumAmounts(FilterActive(FilterByType(c, TypeFilter(t)))))
}

func DashboardTotals(c Collection, filter TypeFilter) DashboardSummary {
	active := FilterActive(FilterByType(c, filter))
	return DashboardSummary{Count: len(active), Totals: newTotals(sumAmounts(active))}
}

type ReportRange string

const (
	RangeOneMonth    ReportRange = "1m"
	RangeThreeMonths ReportRange = "3m"
	RangeSixMonths   ReportRange = "6m"
	RangeOneYear     ReportRange = "1y"
)

func ParseReportRange(raw string) (ReportRange, error) {
	switch r := ReportRange(strings.ToLower(strings.TrimSpace(raw))); r {
	case "":
		return RangeOneYear, nil
	case RangeOneMonth, RangeThreeMonths, RangeSixMonths, RangeOneYear:
		return r, nil
	case "12m":
		return RangeOneYear, nil
	default:
		return "", &ValidationError{Field: "range", Reason: fmt.Sprintf("unsupported range %q", raw)}
	}
}

func (r ReportRange) Months() int {
	switch r {
	case RangeOneMonth:
		return 1
	case RangeThreeMonths:
		return 3
	case RangeSixMonths:
		return 6
	default:
		return monthsPerYear
	}
}

// Start returns the first day of the month Months() before now's month.
func (r ReportRange) Start(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()-time.Month(r.Months()), 1, 0, 0, 0, 0, now.Location())
}

type Bucket struct {
	Label    string
	Date     time.Time
	Personal decimal.Decimal
	Business decimal.Decimal
	Total    decimal.Decimal
}

// TimeSeries yields one bucket per calendar month from the range start up to
// and including now's month. A subscription counts toward bucket d when it
// was created on or before d and its current status is active; the status in
// effect at d is not reconstructed from history.
func TimeSeries(c Collection, r ReportRange, now time.Time) iter.Seq[Bucket] {
	start := r.Start(now)

	return func(yield func(Bucket) bool) {
		for d := start; !d.After(now); d = d.AddDate(0, 1, 0) {
			if !yield(bucketAt(c, d)) {
				return
			}
		}
	}
}

func bucketAt(c Collection, d time.Time) Bucket {
	b := Bucket{
		Label:    d.Format(bucketLabelStyle),
		Date:     d,
		Personal: decimal.Zero,
		Business: decimal.Zero,
		Total:    decimal.Zero,
	}

	for _, sub := range c {
		if sub.CreatedAt.After(d) || !sub.IsActive() {
			continue
		}

		b.Total = b.Total.Add(sub.Amount)
		switch sub.Type {
		case TypePersonal:
			b.Personal = b.Personal.Add(sub.Amount)
		case TypeBusiness:
			b.Business = b.Business.Add(sub.Amount)
		}
	}

	return b
}
