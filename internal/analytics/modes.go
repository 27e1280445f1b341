package analytics

import "github.com/newagesw/sales-bi/backend-go/internal/domain"

// BuildModeData rolls the filtered set up per transport mode. Modes match
// the service column exactly (AIR, LCL, FCL); anything else is left out of
// every rollup. The change figure compares the current comparison window
// against the preceding one drawn from the raw collection, and the trend is
// the per-month converted shipments of the mode subset.
func BuildModeData(current, raw []domain.ShipmentRecord, info domain.PeriodInfo) domain.ModeBreakdown {
	return domain.ModeBreakdown{
		Air: buildMode(current, raw, domain.ModeAir, info),
		LCL: buildMode(current, raw, domain.ModeLCL, info),
		FCL: buildMode(current, raw, domain.ModeFCL, info),
	}
}

func buildMode(current, raw []domain.ShipmentRecord, mode string, info domain.PeriodInfo) domain.ModeData {
	cur := recordsForMode(current, mode)

	var shipments int
	var volume, weight float64
	for _, r := range cur {
		shipments += r.ConvertedShipments
		volume += finiteOrZero(r.Volume)
		weight += finiteOrZero(r.Weight)
	}

	curMonths, prevMonths := comparisonWindows(current, info.ComparisonType)
	var curWindow, prevWindow int
	for _, r := range recordsInMonths(cur, curMonths) {
		curWindow += r.ConvertedShipments
	}
	for _, r := range recordsInMonths(recordsForMode(raw, mode), prevMonths) {
		prevWindow += r.ConvertedShipments
	}

	return domain.ModeData{
		Shipments:     shipments,
		Volume:        volume,
		Weight:        weight,
		Change:        pctChange(float64(curWindow), float64(prevWindow)),
		SparklineData: modeTrend(cur, distinctSortedMonths(current), info.SparklineType),
	}
}

func recordsForMode(records []domain.ShipmentRecord, mode string) []domain.ShipmentRecord {
	out := make([]domain.ShipmentRecord, 0, len(records))
	for _, r := range records {
		if r.Service == mode {
			out = append(out, r)
		}
	}
	return out
}

// modeTrend sums converted shipments per month over the months present in
// the whole filtered set, so every mode's trend has the same length. The
// weekly sparkline profile shows the last 4 points, left-padded with zeros
// when fewer months exist.
func modeTrend(records []domain.ShipmentRecord, months []string, sparklineType string) []int {
	perMonth := make(map[string]int, len(months))
	for _, r := range records {
		perMonth[r.Month] += r.ConvertedShipments
	}

	trend := make([]int, 0, len(months))
	for _, m := range months {
		trend = append(trend, perMonth[m])
	}

	if sparklineType == domain.GranularityWeekly {
		if len(trend) >= 4 {
			return trend[len(trend)-4:]
		}
		padded := make([]int, 4-len(trend), 4)
		return append(padded, trend...)
	}
	return trend
}
