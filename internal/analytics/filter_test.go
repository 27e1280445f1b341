package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

func monthsOf(records []domain.ShipmentRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Month)
	}
	return out
}

func TestApplyPeriodBoundarySixMonths(t *testing.T) {
	var raw []domain.ShipmentRecord
	for _, m := range []string{"2023-10", "2023-12", "2024-01", "2024-03", "2024-06"} {
		raw = append(raw, domain.ShipmentRecord{Month: m})
	}

	got := applyPeriodBoundary(raw, domain.PeriodLast6Months)
	assert.Equal(t, []string{"2024-01", "2024-03", "2024-06"}, monthsOf(got))
}

func TestApplyPeriodBoundaryTwoMonths(t *testing.T) {
	var raw []domain.ShipmentRecord
	for _, m := range []string{"2024-03", "2024-04", "2024-05", "2024-06"} {
		raw = append(raw, domain.ShipmentRecord{Month: m})
	}

	got := applyPeriodBoundary(raw, domain.PeriodLast2Months)
	assert.Equal(t, []string{"2024-05", "2024-06"}, monthsOf(got))
}

func TestApplyPeriodBoundaryAnchorsOnData(t *testing.T) {
	// Data ends long before today; the window still anchors on 2023-08.
	raw := []domain.ShipmentRecord{{Month: "2023-02"}, {Month: "2023-07"}, {Month: "2023-08"}}
	got := applyPeriodBoundary(raw, domain.PeriodLast2Months)
	assert.Equal(t, []string{"2023-07", "2023-08"}, monthsOf(got))
}

func TestApplyPeriodBoundaryCustomUsesSixMonthWindow(t *testing.T) {
	raw := []domain.ShipmentRecord{{Month: "2023-06"}, {Month: "2024-01"}, {Month: "2024-06"}}
	got := applyPeriodBoundary(raw, domain.PeriodCustom)
	assert.Equal(t, []string{"2024-01", "2024-06"}, monthsOf(got))
}

func TestApplyWeeklyBoundary(t *testing.T) {
	raw := []domain.ShipmentRecord{
		{Month: "2024-06", ShipmentDate: "2024-06-19"},
		{Month: "2024-06", ShipmentDate: "2024-06-21"}, // latest, a Friday
		{Month: "2024-05", ShipmentDate: "2024-05-26"}, // first Sunday of the window
		{Month: "2024-05", ShipmentDate: "2024-05-25"}, // one day before the window
		{Month: "2024-06", ShipmentDate: ""},           // undated, dropped on the weekly path
	}

	got := applyWeeklyBoundary(raw)
	require.Len(t, got, 3)
	for _, r := range got {
		assert.NotEmpty(t, r.ShipmentDate)
		assert.NotEqual(t, "2024-05-25", r.ShipmentDate)
	}
}

func TestApplyWeeklyBoundaryFallsBackWithoutDates(t *testing.T) {
	raw := []domain.ShipmentRecord{
		{Month: "2024-06"},
		{Month: "2024-05"},
		{Month: "2024-03"},
	}
	got := applyWeeklyBoundary(raw)
	assert.Equal(t, []string{"2024-06", "2024-05"}, monthsOf(got))
}

func TestApplyDimensionsAndOrSemantics(t *testing.T) {
	raw := []domain.ShipmentRecord{
		{Month: "2024-06", Country: "IN", Service: "AIR"},
		{Month: "2024-06", Country: "IN", Service: "FCL"},
		{Month: "2024-06", Country: "US", Service: "AIR"},
		{Month: "2024-06", Country: "SG", Service: "LCL"},
	}

	got := applyDimensions(raw, domain.FilterState{
		Country: []string{"IN", "US"},
		Service: []string{"AIR"},
	})
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "AIR", r.Service)
		assert.Contains(t, []string{"IN", "US"}, r.Country)
	}
}

func TestApplyDimensionsEmptyMeansAll(t *testing.T) {
	raw := []domain.ShipmentRecord{{Month: "2024-06", Country: "IN"}, {Month: "2024-06", Country: "US"}}
	assert.Len(t, applyDimensions(raw, domain.FilterState{}), 2)
}

func TestApplyChartFilters(t *testing.T) {
	raw := []domain.ShipmentRecord{
		{Month: "2024-05", Customer: "Acme"},
		{Month: "2024-06", Customer: "Acme"},
		{Month: "2024-06", Customer: "Globex"},
	}

	got := applyChartFilters(raw, domain.ChartFilters{Month: "2024-06", Customer: "Acme"})
	require.Len(t, got, 1)
	assert.Equal(t, "2024-06", got[0].Month)
	assert.Equal(t, "Acme", got[0].Customer)

	assert.Len(t, applyChartFilters(raw, domain.ChartFilters{}), 3)
}

func TestFilterRecordsIdempotent(t *testing.T) {
	raw := []domain.ShipmentRecord{
		{Month: "2024-01", Country: "IN"},
		{Month: "2024-04", Country: "IN"},
		{Month: "2024-06", Country: "US"},
	}
	f := domain.FilterState{Period: domain.PeriodLast6Months, Country: []string{"IN"}}

	once := FilterRecords(raw, f)
	twice := FilterRecords(once, f)
	assert.Equal(t, once, twice)
}

func TestBuildFilterOptions(t *testing.T) {
	raw := []domain.ShipmentRecord{
		{Month: "2024-06", Country: "IN", Customer: "Globex", TOS: "DAP"},
		{Month: "2024-06", Country: "US", Customer: "Acme"},
		{Month: "2024-06", Country: "IN"},
	}

	opts := BuildFilterOptions(raw)
	assert.Equal(t, []string{"IN", "US"}, opts.Countries)
	assert.Equal(t, []string{"Acme", "Globex"}, opts.Customers)
	assert.Equal(t, []string{"DAP"}, opts.TOSOptions)
	assert.Empty(t, opts.Carriers)
}
