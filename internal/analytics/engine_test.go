package analytics

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

func testEngine(records []domain.ShipmentRecord) *Engine {
	e := NewEngine(zerolog.Nop())
	if records != nil {
		e.Replace(records)
	}
	return e
}

func TestEngineReplace(t *testing.T) {
	e := testEngine(nil)
	assert.Equal(t, int64(0), e.Version())
	assert.Empty(t, e.Records())

	e.Replace([]domain.ShipmentRecord{{Month: "2024-06"}})
	assert.Equal(t, int64(1), e.Version())
	assert.Len(t, e.Records(), 1)

	e.Replace(nil)
	assert.Equal(t, int64(2), e.Version())
	assert.Empty(t, e.Records())
}

func TestEngineBuildDashboard(t *testing.T) {
	e := testEngine([]domain.ShipmentRecord{
		{Month: "2024-06", Enquiries: 100, ConvertedShipments: 20, Service: "AIR", Customer: "Acme"},
		{Month: "2024-05", Enquiries: 50, ConvertedShipments: 10, Service: "FCL", Customer: "Acme"},
	})

	data := e.BuildDashboard(domain.FilterState{Period: domain.PeriodLast2Months})
	assert.Equal(t, 100, data.Current.TotalEnquiries)
	assert.Equal(t, 50, data.Previous.TotalEnquiries)
	require.NotNil(t, data.Changes.TotalEnquiries)
	assert.Equal(t, 100.0, *data.Changes.TotalEnquiries)
	assert.Equal(t, domain.ComparisonMoM, data.Period.ComparisonType)
	assert.Equal(t, 20, data.ModeData.Air.Shipments)
	assert.NotEmpty(t, data.ChartData.ConversionData)
}

func TestEngineMemoization(t *testing.T) {
	e := testEngine([]domain.ShipmentRecord{{Month: "2024-06", Enquiries: 10, ConvertedShipments: 2}})
	f := domain.FilterState{Period: domain.PeriodLast6Months}

	first := e.BuildDashboard(f)
	second := e.BuildDashboard(f)
	assert.Equal(t, first, second)

	// A new generation must not serve the old payload.
	e.Replace([]domain.ShipmentRecord{{Month: "2024-06", Enquiries: 40, ConvertedShipments: 2}})
	third := e.BuildDashboard(f)
	assert.Equal(t, 40, third.Current.TotalEnquiries)
}

func TestEngineDistinctFiltersDistinctPayloads(t *testing.T) {
	e := testEngine([]domain.ShipmentRecord{
		{Month: "2024-06", Country: "IN", Enquiries: 10},
		{Month: "2024-06", Country: "US", Enquiries: 30},
	})

	in := e.BuildDashboard(domain.FilterState{Period: domain.PeriodLast6Months, Country: []string{"IN"}})
	us := e.BuildDashboard(domain.FilterState{Period: domain.PeriodLast6Months, Country: []string{"US"}})
	assert.Equal(t, 10, in.Current.TotalEnquiries)
	assert.Equal(t, 30, us.Current.TotalEnquiries)
}

func TestEngineFilterOptions(t *testing.T) {
	e := testEngine([]domain.ShipmentRecord{
		{Month: "2024-06", Country: "IN", Customer: "Acme"},
		{Month: "2024-06", Country: "US"},
	})

	opts := e.FilterOptions()
	assert.Equal(t, []string{"IN", "US"}, opts.Countries)
	assert.Equal(t, []string{"Acme"}, opts.Customers)
}
