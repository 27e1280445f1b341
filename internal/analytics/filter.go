package analytics

import (
	"slices"
	"sort"
	"time"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// FilterRecords applies the period boundary, the multi-select dimension
// filters (AND across dimensions, OR within one) and the single-value chart
// cross-filters to the raw record collection. It is a pure, order-preserving
// subset operation: applying the same filters twice returns the same set.
func FilterRecords(raw []domain.ShipmentRecord, f domain.FilterState) []domain.ShipmentRecord {
	out := applyPeriodBoundary(raw, f.Period)
	out = applyDimensions(out, f)
	out = applyChartFilters(out, f.ChartFilters)
	return out
}

// applyPeriodBoundary restricts records to the selected reporting window.
// The window anchors on the latest data present, not the system clock.
func applyPeriodBoundary(raw []domain.ShipmentRecord, period string) []domain.ShipmentRecord {
	if period == domain.PeriodLast4Weeks {
		return applyWeeklyBoundary(raw)
	}

	latest := latestMonthKey(raw)
	if latest == "" {
		return slices.Clone(raw)
	}
	offset := 5 // last-6-months profile, also the custom/unknown fallback
	if period == domain.PeriodLast2Months {
		offset = 1
	}
	startMonth := addMonths(latest, -offset)

	out := make([]domain.ShipmentRecord, 0, len(raw))
	for _, r := range raw {
		// YYYY-MM keys compare correctly as strings.
		if r.Month >= startMonth {
			out = append(out, r)
		}
	}
	return out
}

// applyWeeklyBoundary keeps the 4 Sunday-Saturday weeks ending in the week
// of the latest dated record, the last week truncated at that date. When no
// record carries a parseable date it degrades to a month-key window
// reaching 4 weeks back from the latest month.
func applyWeeklyBoundary(raw []domain.ShipmentRecord) []domain.ShipmentRecord {
	latest, ok := latestShipmentDate(raw)
	if !ok {
		latestMonth := latestMonthKey(raw)
		if latestMonth == "" {
			return slices.Clone(raw)
		}
		start, _ := parseMonthKey(latestMonth)
		boundary := monthKey(start.AddDate(0, 0, -28))
		out := make([]domain.ShipmentRecord, 0, len(raw))
		for _, r := range raw {
			if r.Month >= boundary {
				out = append(out, r)
			}
		}
		return out
	}

	windowStart := startOfWeek(latest).AddDate(0, 0, -21)
	out := make([]domain.ShipmentRecord, 0, len(raw))
	for _, r := range raw {
		d, ok := ParseDate(r.ShipmentDate)
		if !ok {
			continue
		}
		if !d.Before(windowStart) && !d.After(latest) {
			out = append(out, r)
		}
	}
	return out
}

func applyDimensions(records []domain.ShipmentRecord, f domain.FilterState) []domain.ShipmentRecord {
	dims := []struct {
		allowed []string
		value   func(domain.ShipmentRecord) string
	}{
		{f.Country, func(r domain.ShipmentRecord) string { return r.Country }},
		{f.Branch, func(r domain.ShipmentRecord) string { return r.Branch }},
		{f.Service, func(r domain.ShipmentRecord) string { return r.Service }},
		{f.Trade, func(r domain.ShipmentRecord) string { return r.Trade }},
		{f.Customer, func(r domain.ShipmentRecord) string { return r.Customer }},
		{f.Salesman, func(r domain.ShipmentRecord) string { return r.Salesman }},
		{f.Agent, func(r domain.ShipmentRecord) string { return r.Agent }},
		{f.Carrier, func(r domain.ShipmentRecord) string { return r.Carrier }},
		{f.Tradelane, func(r domain.ShipmentRecord) string { return r.Tradelane }},
		{f.Product, func(r domain.ShipmentRecord) string { return r.Product }},
		{f.TOS, func(r domain.ShipmentRecord) string { return r.TOS }},
	}

	out := make([]domain.ShipmentRecord, 0, len(records))
	for _, r := range records {
		keep := true
		for _, d := range dims {
			if len(d.allowed) > 0 && !slices.Contains(d.allowed, d.value(r)) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

func applyChartFilters(records []domain.ShipmentRecord, cf domain.ChartFilters) []domain.ShipmentRecord {
	if cf.Empty() {
		return records
	}
	out := make([]domain.ShipmentRecord, 0, len(records))
	for _, r := range records {
		switch {
		case cf.Month != "" && r.Month != cf.Month:
		case cf.Customer != "" && r.Customer != cf.Customer:
		case cf.Salesman != "" && r.Salesman != cf.Salesman:
		case cf.Agent != "" && r.Agent != cf.Agent:
		case cf.Tradelane != "" && r.Tradelane != cf.Tradelane:
		case cf.Product != "" && r.Product != cf.Product:
		default:
			out = append(out, r)
		}
	}
	return out
}

// BuildFilterOptions lists the sorted distinct non-empty values per
// dimension across the raw dataset.
func BuildFilterOptions(raw []domain.ShipmentRecord) domain.FilterOptions {
	return domain.FilterOptions{
		Countries:  distinctValues(raw, func(r domain.ShipmentRecord) string { return r.Country }),
		Branches:   distinctValues(raw, func(r domain.ShipmentRecord) string { return r.Branch }),
		Services:   distinctValues(raw, func(r domain.ShipmentRecord) string { return r.Service }),
		Trades:     distinctValues(raw, func(r domain.ShipmentRecord) string { return r.Trade }),
		Customers:  distinctValues(raw, func(r domain.ShipmentRecord) string { return r.Customer }),
		Salesmen:   distinctValues(raw, func(r domain.ShipmentRecord) string { return r.Salesman }),
		Agents:     distinctValues(raw, func(r domain.ShipmentRecord) string { return r.Agent }),
		Carriers:   distinctValues(raw, func(r domain.ShipmentRecord) string { return r.Carrier }),
		Tradelanes: distinctValues(raw, func(r domain.ShipmentRecord) string { return r.Tradelane }),
		Products:   distinctValues(raw, func(r domain.ShipmentRecord) string { return r.Product }),
		TOSOptions: distinctValues(raw, func(r domain.ShipmentRecord) string { return r.TOS }),
	}
}

func distinctValues(records []domain.ShipmentRecord, value func(domain.ShipmentRecord) string) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if v := value(r); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// latestMonthKey returns the greatest non-empty YYYY-MM key present.
func latestMonthKey(records []domain.ShipmentRecord) string {
	latest := ""
	for _, r := range records {
		if r.Month > latest {
			latest = r.Month
		}
	}
	return latest
}

// latestShipmentDate returns the greatest parseable shipment date present.
func latestShipmentDate(records []domain.ShipmentRecord) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, r := range records {
		d, ok := ParseDate(r.ShipmentDate)
		if !ok {
			continue
		}
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found
}

// distinctSortedMonths returns the ascending distinct non-empty month keys.
func distinctSortedMonths(records []domain.ShipmentRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Month != "" {
			seen[r.Month] = struct{}{}
		}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// recordsInMonths keeps records whose month key is in the given set.
func recordsInMonths(records []domain.ShipmentRecord, months []string) []domain.ShipmentRecord {
	out := make([]domain.ShipmentRecord, 0, len(records))
	for _, r := range records {
		if slices.Contains(months, r.Month) {
			out = append(out, r)
		}
	}
	return out
}
