package application

import (
	"time"

	"github.com/bnema/subtrack/internal/domain"
)

// TotalsView carries the per-type run rates and their sum.
type TotalsView struct {
	Personal domain.Totals
	Business domain.Totals
	Combined domain.Totals
}

// DashboardView is the overview block plus the upcoming renewals it was computed from.
type DashboardView struct {
	Filter   domain.TypeFilter
	Summary  domain.DashboardSummary
	Upcoming domain.Collection
}

type ReportView struct {
	Range       domain.ReportRange
	GeneratedAt time.Time
	Buckets     []domain.Bucket
}
