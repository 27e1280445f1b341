package analytics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

func TestComputeKPIs(t *testing.T) {
	records := []domain.ShipmentRecord{
		{Month: "2024-05", Enquiries: 10, ConvertedShipments: 3, TotalShipments: 5, Volume: 12.5, Weight: 100, Customer: "Acme"},
		{Month: "2024-05", Enquiries: 20, ConvertedShipments: 4, TotalShipments: 6, Volume: 7.5, Weight: 50, Customer: "Globex"},
		{Month: "2024-06", Enquiries: 10, ConvertedShipments: 3, TotalShipments: 3, Customer: "Acme"},
	}

	k := ComputeKPIs(records)
	assert.Equal(t, 40, k.TotalEnquiries)
	assert.Equal(t, 10, k.ConvertedShipments)
	assert.Equal(t, 14, k.TotalShipments)
	assert.Equal(t, 2, k.ActiveCustomers)
	assert.Equal(t, 20.0, k.TotalVolume)
	assert.Equal(t, 150.0, k.TotalWeight)
	assert.Equal(t, 25.0, k.ConversionRate)
}

func TestComputeKPIsEmptyAndZeroEnquiries(t *testing.T) {
	assert.Equal(t, domain.KPIData{}, ComputeKPIs(nil))

	k := ComputeKPIs([]domain.ShipmentRecord{{Month: "2024-01", ConvertedShipments: 5}})
	assert.Equal(t, 0.0, k.ConversionRate)
}

func TestComputeKPIsOrderIndependent(t *testing.T) {
	records := make([]domain.ShipmentRecord, 50)
	for i := range records {
		records[i] = domain.ShipmentRecord{
			Month:              "2024-06",
			Enquiries:          i,
			ConvertedShipments: i / 2,
			Volume:             float64(i) * 1.5,
			Customer:           string(rune('A' + i%7)),
		}
	}
	want := ComputeKPIs(records)

	shuffled := append([]domain.ShipmentRecord(nil), records...)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	assert.Equal(t, want, ComputeKPIs(shuffled))
}

func TestComputeKPIsIgnoresNonFiniteMagnitudes(t *testing.T) {
	k := ComputeKPIs([]domain.ShipmentRecord{
		{Month: "2024-06", Volume: math.NaN(), Weight: math.Inf(1)},
		{Month: "2024-06", Volume: 2, Weight: 3},
	})
	assert.Equal(t, 2.0, k.TotalVolume)
	assert.Equal(t, 3.0, k.TotalWeight)
}

func TestComputeKPIsTrimsCustomerNames(t *testing.T) {
	k := ComputeKPIs([]domain.ShipmentRecord{
		{Month: "2024-06", Customer: "Acme"},
		{Month: "2024-06", Customer: " Acme "},
		{Month: "2024-06", Customer: "   "},
	})
	assert.Equal(t, 1, k.ActiveCustomers)
}

func TestPctChange(t *testing.T) {
	got := pctChange(150, 100)
	require.NotNil(t, got)
	assert.Equal(t, 50.0, *got)

	got = pctChange(50, 100)
	require.NotNil(t, got)
	assert.Equal(t, -50.0, *got)

	assert.Nil(t, pctChange(10, 0))
}

func TestConversionRateBounds(t *testing.T) {
	k := ComputeKPIs([]domain.ShipmentRecord{{Month: "2024-06", Enquiries: 3, ConvertedShipments: 1}})
	assert.Equal(t, 33.3, k.ConversionRate)
}
