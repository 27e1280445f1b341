package analytics

import "github.com/newagesw/sales-bi/backend-go/internal/domain"

// BuildKPISparkline produces the small inline series rendered inside the
// KPI tiles. The weekly profile buckets the last 4 Sunday-Saturday weeks;
// without any parseable dates it falls back to the monthly buckets, same as
// the main trend charts.
func BuildKPISparkline(current []domain.ShipmentRecord, info domain.PeriodInfo) domain.SparklineData {
	var buckets []trendBucket
	if info.SparklineType == domain.GranularityWeekly {
		if weekly, ok := weeklyBuckets(current); ok {
			buckets = weekly
		}
	}
	if buckets == nil {
		for _, m := range distinctSortedMonths(current) {
			buckets = append(buckets, trendBucket{label: monthLabel(m), rawMonth: m})
		}
	}

	s := domain.SparklineData{
		Labels:         make([]string, 0, len(buckets)),
		Enquiries:      make([]int, 0, len(buckets)),
		Converted:      make([]int, 0, len(buckets)),
		ConversionRate: make([]float64, 0, len(buckets)),
	}
	for _, b := range buckets {
		var enquiries, converted int
		for _, r := range current {
			if b.contains(r) {
				enquiries += r.Enquiries
				converted += r.ConvertedShipments
			}
		}
		s.Labels = append(s.Labels, b.label)
		s.Enquiries = append(s.Enquiries, enquiries)
		s.Converted = append(s.Converted, converted)
		s.ConversionRate = append(s.ConversionRate, rate(converted, enquiries))
	}
	return s
}
