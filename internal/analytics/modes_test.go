package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

func TestBuildModeDataRollups(t *testing.T) {
	raw := []domain.ShipmentRecord{
		{Month: "2024-06", Service: "AIR", ConvertedShipments: 3, TotalShipments: 8, Volume: 1.5, Weight: 10},
		{Month: "2024-06", Service: "AIR", ConvertedShipments: 2, Volume: 0.5, Weight: 5},
		{Month: "2024-06", Service: "FCL", ConvertedShipments: 7, Volume: 40, Weight: 900},
		{Month: "2024-06", Service: "LCL", ConvertedShipments: 1, Volume: 4, Weight: 60},
		{Month: "2024-06", Service: "Air Express", ConvertedShipments: 99}, // not an exact mode match
	}

	modes := BuildModeData(raw, raw, monthlyInfo())
	assert.Equal(t, 5, modes.Air.Shipments)
	assert.Equal(t, 2.0, modes.Air.Volume)
	assert.Equal(t, 15.0, modes.Air.Weight)
	assert.Equal(t, 7, modes.FCL.Shipments)
	assert.Equal(t, 1, modes.LCL.Shipments)
}

func TestBuildModeDataChangeAgainstPriorWindow(t *testing.T) {
	raw := []domain.ShipmentRecord{
		{Month: "2024-06", Service: "AIR", ConvertedShipments: 30},
		{Month: "2024-05", Service: "AIR", ConvertedShipments: 20},
		{Month: "2024-06", Service: "FCL", ConvertedShipments: 10},
	}
	current := FilterRecords(raw, domain.FilterState{Period: domain.PeriodLast2Months})

	modes := BuildModeData(current, raw, twoMonthInfo())
	require.NotNil(t, modes.Air.Change)
	assert.Equal(t, 50.0, *modes.Air.Change)
	assert.Nil(t, modes.FCL.Change)
	assert.Nil(t, modes.LCL.Change)
}

func TestModeSparklineMonthly(t *testing.T) {
	raw := []domain.ShipmentRecord{
		{Month: "2024-04", Service: "AIR", ConvertedShipments: 1},
		{Month: "2024-05", Service: "FCL", ConvertedShipments: 9},
		{Month: "2024-06", Service: "AIR", ConvertedShipments: 3},
	}

	modes := BuildModeData(raw, raw, monthlyInfo())
	// Every mode spans the same months, zero-filled where absent.
	assert.Equal(t, []int{1, 0, 3}, modes.Air.SparklineData)
	assert.Equal(t, []int{0, 9, 0}, modes.FCL.SparklineData)
	assert.Equal(t, []int{0, 0, 0}, modes.LCL.SparklineData)
}

func TestModeSparklineWeeklyPadsToFour(t *testing.T) {
	raw := []domain.ShipmentRecord{
		{Month: "2024-05", Service: "AIR", ConvertedShipments: 2},
		{Month: "2024-06", Service: "AIR", ConvertedShipments: 3},
	}

	modes := BuildModeData(raw, raw, weeklyInfo())
	assert.Equal(t, []int{0, 0, 2, 3}, modes.Air.SparklineData)
}

func TestModeSparklineWeeklyKeepsLastFour(t *testing.T) {
	var raw []domain.ShipmentRecord
	for i, m := range []string{"2024-01", "2024-02", "2024-03", "2024-04", "2024-05", "2024-06"} {
		raw = append(raw, domain.ShipmentRecord{Month: m, Service: "LCL", ConvertedShipments: i + 1})
	}

	modes := BuildModeData(raw, raw, weeklyInfo())
	assert.Equal(t, []int{3, 4, 5, 6}, modes.LCL.SparklineData)
}
