package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

func TestComparisonWindowsMoM(t *testing.T) {
	current := []domain.ShipmentRecord{{Month: "2024-05"}, {Month: "2024-06"}}
	cur, prev := comparisonWindows(current, domain.ComparisonMoM)
	assert.Equal(t, []string{"2024-06"}, cur)
	assert.Equal(t, []string{"2024-05"}, prev)
}

func TestComparisonWindowsQoQ(t *testing.T) {
	var current []domain.ShipmentRecord
	for _, m := range []string{"2024-01", "2024-02", "2024-03", "2024-04", "2024-05", "2024-06"} {
		current = append(current, domain.ShipmentRecord{Month: m})
	}
	cur, prev := comparisonWindows(current, domain.ComparisonQoQ)
	assert.Equal(t, []string{"2024-04", "2024-05", "2024-06"}, cur)
	assert.Equal(t, []string{"2024-03", "2024-02", "2024-01"}, prev)
}

func TestComparisonWindowsQoQShortHistory(t *testing.T) {
	current := []domain.ShipmentRecord{{Month: "2024-05"}, {Month: "2024-06"}}
	cur, prev := comparisonWindows(current, domain.ComparisonQoQ)
	assert.Equal(t, []string{"2024-05", "2024-06"}, cur)
	assert.Equal(t, []string{"2024-04", "2024-03", "2024-02"}, prev)
}

func TestComparisonWindowsEmpty(t *testing.T) {
	cur, prev := comparisonWindows(nil, domain.ComparisonMoM)
	assert.Nil(t, cur)
	assert.Nil(t, prev)
}

func TestCompareWithPreviousMonthOverMonth(t *testing.T) {
	raw := []domain.ShipmentRecord{
		{Month: "2024-06", Enquiries: 60, ConvertedShipments: 12},
		{Month: "2024-06", Enquiries: 40, ConvertedShipments: 8},
		{Month: "2024-05", Enquiries: 50, ConvertedShipments: 10},
	}
	current := FilterRecords(raw, domain.FilterState{Period: domain.PeriodLast2Months})

	got := CompareWithPrevious(current, raw, domain.ComparisonMoM)

	assert.Equal(t, 100, got.Current.TotalEnquiries)
	assert.Equal(t, 20.0, got.Current.ConversionRate)
	assert.Equal(t, 50, got.Previous.TotalEnquiries)
	assert.Equal(t, 20.0, got.Previous.ConversionRate)

	require.NotNil(t, got.Changes.TotalEnquiries)
	assert.Equal(t, 100.0, *got.Changes.TotalEnquiries)
	require.NotNil(t, got.Changes.ConversionRate)
	assert.Equal(t, 0.0, *got.Changes.ConversionRate)
}

func TestCompareWithPreviousBaselineFromRaw(t *testing.T) {
	// The previous window always reads the raw collection, so a filtered
	// current set still compares against real history.
	raw := []domain.ShipmentRecord{
		{Month: "2024-06", Country: "IN", Enquiries: 30, ConvertedShipments: 6},
		{Month: "2024-05", Country: "US", Enquiries: 10, ConvertedShipments: 2},
	}
	current := FilterRecords(raw, domain.FilterState{Period: domain.PeriodLast2Months, Country: []string{"IN"}})

	got := CompareWithPrevious(current, raw, domain.ComparisonMoM)
	assert.Equal(t, 30, got.Current.TotalEnquiries)
	assert.Equal(t, 10, got.Previous.TotalEnquiries)
}

func TestCompareWithPreviousNoBaseline(t *testing.T) {
	raw := []domain.ShipmentRecord{{Month: "2024-06", Enquiries: 30, ConvertedShipments: 6}}
	current := FilterRecords(raw, domain.FilterState{Period: domain.PeriodLast2Months})

	got := CompareWithPrevious(current, raw, domain.ComparisonMoM)
	assert.Equal(t, domain.KPIData{}, got.Previous)
	assert.Nil(t, got.Changes.TotalEnquiries)
	assert.Nil(t, got.Changes.ConversionRate)
	assert.Nil(t, got.Changes.TotalVolume)
}

func TestCompareWithPreviousQuarter(t *testing.T) {
	var raw []domain.ShipmentRecord
	for _, m := range []string{"2024-01", "2024-02", "2024-03"} {
		raw = append(raw, domain.ShipmentRecord{Month: m, Enquiries: 10, ConvertedShipments: 2})
	}
	for _, m := range []string{"2024-04", "2024-05", "2024-06"} {
		raw = append(raw, domain.ShipmentRecord{Month: m, Enquiries: 20, ConvertedShipments: 4})
	}
	current := FilterRecords(raw, domain.FilterState{Period: domain.PeriodLast6Months})

	got := CompareWithPrevious(current, raw, domain.ComparisonQoQ)
	assert.Equal(t, 60, got.Current.TotalEnquiries)
	assert.Equal(t, 30, got.Previous.TotalEnquiries)
	require.NotNil(t, got.Changes.TotalEnquiries)
	assert.Equal(t, 100.0, *got.Changes.TotalEnquiries)
}
