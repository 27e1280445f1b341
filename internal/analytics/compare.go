package analytics

import "github.com/newagesw/sales-bi/backend-go/internal/domain"

// comparisonWindows derives the month keys of the current comparison window
// and of the previous comparable window from the months present in the
// filtered set. For wow/mom the current window is the single latest month
// and the previous window the month before it; for qoq it is the latest
// up-to-3 months against the 3 months immediately preceding that span. The
// previous window is derived purely by key arithmetic, so it may name
// months absent from the data; aggregating over them simply yields zeros.
func comparisonWindows(current []domain.ShipmentRecord, comparisonType string) (cur, prev []string) {
	months := distinctSortedMonths(current)
	if len(months) == 0 {
		return nil, nil
	}

	if comparisonType == domain.ComparisonQoQ {
		start := len(months) - 3
		if start < 0 {
			start = 0
		}
		cur = months[start:]
		for i := 1; i <= 3; i++ {
			prev = append(prev, addMonths(cur[0], -i))
		}
		return cur, prev
	}

	latest := months[len(months)-1]
	return []string{latest}, []string{addMonths(latest, -1)}
}

// CompareWithPrevious computes the current-vs-previous KPI comparison. The
// current side is the filtered set restricted to its comparison window; the
// previous side is drawn from the full raw collection so dimensional
// filtering never starves the baseline. Missing data collapses to zero
// totals and nil changes; this never fails.
func CompareWithPrevious(current, raw []domain.ShipmentRecord, comparisonType string) domain.ComparisonData {
	curMonths, prevMonths := comparisonWindows(current, comparisonType)

	curKPI := ComputeKPIs(recordsInMonths(current, curMonths))
	prevKPI := ComputeKPIs(recordsInMonths(raw, prevMonths))

	return domain.ComparisonData{
		Current:  curKPI,
		Previous: prevKPI,
		Changes:  computeChanges(curKPI, prevKPI),
	}
}

func computeChanges(cur, prev domain.KPIData) domain.KPIChanges {
	return domain.KPIChanges{
		TotalEnquiries:     pctChange(float64(cur.TotalEnquiries), float64(prev.TotalEnquiries)),
		ConvertedShipments: pctChange(float64(cur.ConvertedShipments), float64(prev.ConvertedShipments)),
		TotalShipments:     pctChange(float64(cur.TotalShipments), float64(prev.TotalShipments)),
		// The previous conversion rate is recomputed from its own totals
		// rather than diffed generically, so rounding never compounds.
		ConversionRate:  pctChange(cur.ConversionRate, prev.ConversionRate),
		ActiveCustomers: pctChange(float64(cur.ActiveCustomers), float64(prev.ActiveCustomers)),
		TotalVolume:     pctChange(cur.TotalVolume, prev.TotalVolume),
		TotalWeight:     pctChange(cur.TotalWeight, prev.TotalWeight),
	}
}
