package analytics

import "github.com/newagesw/sales-bi/backend-go/internal/domain"

// ResolvePeriod maps a period selector to its comparison type, display
// label and chart/sparkline granularity. This table is the single source of
// truth for how downstream components bucket time; new period values must
// be added here first. Unrecognized selectors fall back to the
// last-6-months profile instead of failing.
func ResolvePeriod(period string) domain.PeriodInfo {
	switch period {
	case domain.PeriodLast4Weeks:
		return domain.PeriodInfo{
			Type:             domain.GranularityWeekly,
			ComparisonType:   domain.ComparisonWoW,
			ComparisonLabel:  "WoW %",
			ChartGranularity: domain.GranularityWeekly,
			SparklineType:    domain.GranularityWeekly,
		}
	case domain.PeriodLast2Months:
		return domain.PeriodInfo{
			Type:             domain.GranularityMonthly,
			ComparisonType:   domain.ComparisonMoM,
			ComparisonLabel:  "MoM %",
			ChartGranularity: domain.GranularityMonthly,
			SparklineType:    domain.GranularityWeekly,
		}
	case domain.PeriodCustom:
		return domain.PeriodInfo{
			Type:             domain.GranularityMonthly,
			ComparisonType:   domain.ComparisonMoM,
			ComparisonLabel:  "vs prev period",
			ChartGranularity: domain.GranularityMonthly,
			SparklineType:    domain.GranularityMonthly,
		}
	case domain.PeriodLast6Months:
		fallthrough
	default:
		return domain.PeriodInfo{
			Type:             domain.GranularityMonthly,
			ComparisonType:   domain.ComparisonQoQ,
			ComparisonLabel:  "QoQ %",
			ChartGranularity: domain.GranularityMonthly,
			SparklineType:    domain.GranularityMonthly,
		}
	}
}
