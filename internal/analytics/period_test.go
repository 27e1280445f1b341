package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

func TestResolvePeriod(t *testing.T) {
	cases := []struct {
		period string
		want   domain.PeriodInfo
	}{
		{domain.PeriodLast4Weeks, domain.PeriodInfo{
			Type:             domain.GranularityWeekly,
			ComparisonType:   domain.ComparisonWoW,
			ComparisonLabel:  "WoW %",
			ChartGranularity: domain.GranularityWeekly,
			SparklineType:    domain.GranularityWeekly,
		}},
		{domain.PeriodLast2Months, domain.PeriodInfo{
			Type:             domain.GranularityMonthly,
			ComparisonType:   domain.ComparisonMoM,
			ComparisonLabel:  "MoM %",
			ChartGranularity: domain.GranularityMonthly,
			SparklineType:    domain.GranularityWeekly,
		}},
		{domain.PeriodLast6Months, domain.PeriodInfo{
			Type:             domain.GranularityMonthly,
			ComparisonType:   domain.ComparisonQoQ,
			ComparisonLabel:  "QoQ %",
			ChartGranularity: domain.GranularityMonthly,
			SparklineType:    domain.GranularityMonthly,
		}},
		{domain.PeriodCustom, domain.PeriodInfo{
			Type:             domain.GranularityMonthly,
			ComparisonType:   domain.ComparisonMoM,
			ComparisonLabel:  "vs prev period",
			ChartGranularity: domain.GranularityMonthly,
			SparklineType:    domain.GranularityMonthly,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.period, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolvePeriod(tc.period))
		})
	}
}

func TestResolvePeriodUnknownFallsBack(t *testing.T) {
	assert.Equal(t, ResolvePeriod(domain.PeriodLast6Months), ResolvePeriod("whatever"))
	assert.Equal(t, ResolvePeriod(domain.PeriodLast6Months), ResolvePeriod(""))
}
