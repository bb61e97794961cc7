package domain

import (
	"fmt"
	"slices"
	"strings"
)

type TypeFilter string

const (
	FilterAll      TypeFilter = "all"
	FilterPersonal TypeFilter = "personal"
	FilterBusiness TypeFilter = "business"
)

func ParseTypeFilter(raw string) (TypeFilter, error) {
	switch f := TypeFilter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPersonal, FilterBusiness:
		return f, nil
	default:
		return "", &ValidationError{Field: "filter", Reason: fmt.Sprintf("unsupported filter %q", raw)}
	}
}

// FilterByType keeps subscriptions of the filtered type. FilterAll returns c as is.
func FilterByType(c Collection, filter TypeFilter) Collection {
	if filter == FilterAll {
		return c
	}

	want := Type(strings.ToLower(string(filter)))
	out := make(Collection, 0, len(c))
	for _, sub := range c {
		if sub.Type == want {
			out = append(out, sub)
		}
	}

	return out
}

func FilterActive(c Collection) Collection {
	out := make(Collection, 0, len(c))
	for _, sub := range c {
		if sub.IsActive() {
			out = append(out, sub)
		}
	}

	return out
}

// SortByRenewal orders subscriptions by renewal date ascending. Subscriptions
// without a renewal date go last; ties keep insertion order.
func SortByRenewal(c Collection) Collection {
	out := slices.Clone(c)
	slices.SortStableFunc(out, func(a, b Subscription) int {
		switch {
		case a.RenewalDate.IsZero() && b.RenewalDate.IsZero():
			return 0
		case a.RenewalDate.IsZero():
			return 1
		case b.RenewalDate.IsZero():
			return -1
		default:
			return a.RenewalDate.Compare(b.RenewalDate)
		}
	})

	return out
}

// Dashboard selects the active subscriptions of the filtered type, soonest renewal first.
func Dashboard(c Collection, filter TypeFilter) Collection {
	return SortByRenewal(FilterActive(FilterByType(c, filter)))
}
