package analytics

import (
	"sort"
	"time"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// othersKey is the synthetic bucket collecting every contributor outside
// the top-N of a breakdown series.
const othersKey = "Others"

// breakdownLimit caps the customer/product breakdown series.
const breakdownLimit = 8

// trendBucket is one display bucket: a calendar month, or a Sunday-Saturday
// week (the last one possibly truncated at the latest dated record).
type trendBucket struct {
	label     string
	rawMonth  string
	start     time.Time
	end       time.Time
	weekly    bool
	isCurrent bool
}

func (b trendBucket) contains(r domain.ShipmentRecord) bool {
	if !b.weekly {
		return r.Month == b.rawMonth
	}
	d, ok := ParseDate(r.ShipmentDate)
	if !ok {
		return false
	}
	return !d.Before(b.start) && !d.After(b.end)
}

// BuildTrends produces the trend series, breakdown series and top-N
// rankings for the filtered set. The weekly path applies to last-4-weeks
// when dated records exist; everything else buckets by month. Throughout,
// converted_shipments is the shipments metric - total_shipments never feeds
// a trend, ranking or mode figure.
func BuildTrends(current, raw []domain.ShipmentRecord, period string, info domain.PeriodInfo) domain.ChartData {
	buckets, weekly := displayBuckets(current, period)
	topN := 10
	if weekly {
		topN = 5
	}

	points := make([]domain.TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		var enquiries, converted int
		for _, r := range current {
			if b.contains(r) {
				enquiries += r.Enquiries
				converted += r.ConvertedShipments
			}
		}
		points = append(points, domain.TrendPoint{
			Label:     b.label,
			RawMonth:  b.rawMonth,
			Enquiries: enquiries,
			Converted: converted,
			Shipments: converted,
			Rate:      rate(converted, enquiries),
			IsCurrent: b.isCurrent,
		})
	}

	agentChange := agentChanges(current, raw, info.ComparisonType)
	agents := rankPerformers(current, topN, func(r domain.ShipmentRecord) string { return r.Agent })
	for i := range agents {
		agents[i].Change = agentChange[agents[i].Name]
	}

	salesmen := rankPerformers(current, topN, func(r domain.ShipmentRecord) string { return r.Salesman })
	for i := range salesmen {
		salesmen[i].Conversion = conversionFor(current, salesmen[i].Name, func(r domain.ShipmentRecord) string { return r.Salesman })
	}

	return domain.ChartData{
		ConversionData:    points,
		ShipmentTrendData: points,
		CustomerTrendData: buildStackedSeries(current, buckets, func(r domain.ShipmentRecord) string { return r.Customer }),
		ProductTrendData:  buildStackedSeries(current, buckets, func(r domain.ShipmentRecord) string { return r.Product }),
		TopSalesmenData:   salesmen,
		TopAgentsData:     agents,
		TopCustomersData:  rankPerformers(current, topN, func(r domain.ShipmentRecord) string { return r.Customer }),
		TopTradelaneData:  rankTradelanes(current, topN),
	}
}

// displayBuckets picks the chart buckets for the period. The weekly flag
// reports whether the weekly path was actually taken; last-4-weeks without
// any parseable dates degrades to the monthly path.
func displayBuckets(current []domain.ShipmentRecord, period string) ([]trendBucket, bool) {
	if period == domain.PeriodLast4Weeks {
		if buckets, ok := weeklyBuckets(current); ok {
			return buckets, true
		}
	}

	months := distinctSortedMonths(current)
	target := len(months)
	switch period {
	case domain.PeriodLast2Months:
		target = 2
	case domain.PeriodLast6Months:
		target = 6
	}
	if len(months) > target {
		months = months[len(months)-target:]
	}

	buckets := make([]trendBucket, 0, len(months))
	for i, m := range months {
		buckets = append(buckets, trendBucket{
			label:     monthLabel(m),
			rawMonth:  m,
			isCurrent: i == len(months)-1,
		})
	}
	return buckets, false
}

// weeklyBuckets lays out 4 consecutive Sunday-Saturday weeks ending at the
// latest dated record. The final bucket is truncated at that date, so a
// mid-week latest date yields a partial current week.
func weeklyBuckets(current []domain.ShipmentRecord) ([]trendBucket, bool) {
	latest, ok := latestShipmentDate(current)
	if !ok {
		return nil, false
	}

	buckets := make([]trendBucket, 0, 4)
	for i := 0; i < 4; i++ {
		start := startOfWeek(latest).AddDate(0, 0, -7*(3-i))
		end := endOfWeek(start)
		isCurrent := i == 3
		if isCurrent {
			end = latest
		}
		buckets = append(buckets, trendBucket{
			label:     weekLabel(i + 1),
			start:     start,
			end:       end,
			weekly:    true,
			isCurrent: isCurrent,
		})
	}
	return buckets, true
}

// buildStackedSeries groups the pooled set by one dimension, keeps the top
// contributors by summed converted shipments and folds the rest into
// "Others". The same key set applies to every bucket, so stacked charts
// keep a stable legend; per-bucket totals are conserved exactly.
func buildStackedSeries(records []domain.ShipmentRecord, buckets []trendBucket, key func(domain.ShipmentRecord) string) domain.StackedSeries {
	keys := topContributors(records, breakdownLimit, key)
	keys = append(keys, othersKey)
	member := make(map[string]struct{}, len(keys))
	for _, k := range keys[:len(keys)-1] {
		member[k] = struct{}{}
	}

	points := make([]domain.StackedPoint, 0, len(buckets))
	for _, b := range buckets {
		values := make(map[string]int, len(keys))
		for _, k := range keys {
			values[k] = 0
		}
		for _, r := range records {
			if !b.contains(r) {
				continue
			}
			k := key(r)
			if _, ok := member[k]; !ok {
				k = othersKey
			}
			values[k] += r.ConvertedShipments
		}
		points = append(points, domain.StackedPoint{Label: b.label, RawMonth: b.rawMonth, Values: values})
	}

	return domain.StackedSeries{Keys: keys, Points: points}
}

// topContributors returns up to n non-empty dimension values ordered by
// summed converted shipments descending, ties broken by name.
func topContributors(records []domain.ShipmentRecord, n int, key func(domain.ShipmentRecord) string) []string {
	totals := make(map[string]int)
	for _, r := range records {
		if k := key(r); k != "" {
			totals[k] += r.ConvertedShipments
		}
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if totals[keys[i]] != totals[keys[j]] {
			return totals[keys[i]] > totals[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// rankPerformers builds a top-N ranking by summed converted shipments.
func rankPerformers(records []domain.ShipmentRecord, n int, key func(domain.ShipmentRecord) string) []domain.PerformerRank {
	totals := make(map[string]int)
	for _, r := range records {
		if k := key(r); k != "" {
			totals[k] += r.ConvertedShipments
		}
	}

	ranks := make([]domain.PerformerRank, 0, len(totals))
	for name, shipments := range totals {
		ranks = append(ranks, domain.PerformerRank{Name: name, Shipments: shipments})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Shipments != ranks[j].Shipments {
			return ranks[i].Shipments > ranks[j].Shipments
		}
		return ranks[i].Name < ranks[j].Name
	})
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// rankTradelanes ranks lanes by summed volume.
func rankTradelanes(records []domain.ShipmentRecord, n int) []domain.TradelaneRank {
	type lane struct {
		volume, weight float64
	}
	totals := make(map[string]*lane)
	for _, r := range records {
		if r.Tradelane == "" {
			continue
		}
		l, ok := totals[r.Tradelane]
		if !ok {
			l = &lane{}
			totals[r.Tradelane] = l
		}
		l.volume += finiteOrZero(r.Volume)
		l.weight += finiteOrZero(r.Weight)
	}

	ranks := make([]domain.TradelaneRank, 0, len(totals))
	for name, l := range totals {
		ranks = append(ranks, domain.TradelaneRank{Lane: name, Volume: l.volume, Weight: l.weight})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Volume != ranks[j].Volume {
			return ranks[i].Volume > ranks[j].Volume
		}
		return ranks[i].Lane < ranks[j].Lane
	})
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// conversionFor recomputes one performer's conversion rate over the
// filtered set.
func conversionFor(records []domain.ShipmentRecord, name string, key func(domain.ShipmentRecord) string) float64 {
	var enquiries, converted int
	for _, r := range records {
		if key(r) == name {
			enquiries += r.Enquiries
			converted += r.ConvertedShipments
		}
	}
	return rate(converted, enquiries)
}

// agentChanges computes each agent's period-over-period shipment change
// using the same comparison windows as the KPI comparison, with the
// previous side drawn from the raw collection. Agents with no baseline get
// a nil change rather than a fabricated figure.
func agentChanges(current, raw []domain.ShipmentRecord, comparisonType string) map[string]*float64 {
	curMonths, prevMonths := comparisonWindows(current, comparisonType)

	curTotals := make(map[string]int)
	for _, r := range recordsInMonths(current, curMonths) {
		if r.Agent != "" {
			curTotals[r.Agent] += r.ConvertedShipments
		}
	}
	prevTotals := make(map[string]int)
	for _, r := range recordsInMonths(raw, prevMonths) {
		if r.Agent != "" {
			prevTotals[r.Agent] += r.ConvertedShipments
		}
	}

	changes := make(map[string]*float64, len(curTotals))
	for agent, cur := range curTotals {
		changes[agent] = pctChange(float64(cur), float64(prevTotals[agent]))
	}
	return changes
}
