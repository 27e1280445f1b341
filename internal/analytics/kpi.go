package analytics

import (
	"math"
	"strings"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// ComputeKPIs reduces a record set to the KPI tile totals. The reduction is
// associative and commutative, so record ordering never affects the result.
// Non-finite magnitudes contribute zero; an empty input yields all zeros.
func ComputeKPIs(records []domain.ShipmentRecord) domain.KPIData {
	var k domain.KPIData
	customers := make(map[string]struct{})
	for _, r := range records {
		k.TotalEnquiries += r.Enquiries
		k.ConvertedShipments += r.ConvertedShipments
		k.TotalShipments += r.TotalShipments
		k.TotalVolume += finiteOrZero(r.Volume)
		k.TotalWeight += finiteOrZero(r.Weight)
		if c := strings.TrimSpace(r.Customer); c != "" {
			customers[c] = struct{}{}
		}
	}
	k.ActiveCustomers = len(customers)
	if k.TotalEnquiries > 0 {
		k.ConversionRate = round1(float64(k.ConvertedShipments) / float64(k.TotalEnquiries) * 100)
	}
	return k
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// rate is the converted-over-enquiries percentage used by trend buckets,
// defaulting to 0 when there are no enquiries.
func rate(converted, enquiries int) float64 {
	if enquiries <= 0 {
		return 0
	}
	return round1(float64(converted) / float64(enquiries) * 100)
}

// pctChange returns the percentage change from prev to cur, or nil when
// there is no baseline to compare against.
func pctChange(cur, prev float64) *float64 {
	if prev == 0 {
		return nil
	}
	v := (cur - prev) / prev * 100
	return &v
}
