package ingest

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/newagesw/sales-bi/backend-go/internal/analytics"
	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// Accepted source field names per target field, in priority order. Upstream
// exports have drifted over time (enquiries_count, convertedShipments, vol,
// wt and friends), so normalization resolves synonyms exactly once here at
// ingestion; query-time code only ever sees the canonical record.
var fieldSynonyms = map[string][]string{
	"month":               {"month"},
	"enquiries":           {"enquiries", "enquiry_count", "enquiries_count", "enquirycount"},
	"converted_shipments": {"converted_shipments", "convertedshipments", "converted"},
	"total_shipments":     {"total_shipments", "totalshipments", "shipments"},
	"volume":              {"volume", "vol"},
	"weight":              {"weight", "wt"},
	"customer":            {"customer", "customer_name", "customername"},
	"salesman":            {"salesman", "sales_person", "salesperson"},
	"agent":               {"agent", "agent_name"},
	"country":             {"country"},
	"branch":              {"branch"},
	"service":             {"service", "service_type", "servicetype", "mode"},
	"trade":               {"trade"},
	"tradelane":           {"tradelane", "trade_lane", "lane"},
	"carrier":             {"carrier"},
	"product":             {"product"},
	"tos":                 {"tos"},
	"shipment_date":       {"shipment_date", "shipmentdate", "date"},
}

// NormalizeRecord maps one loosely-typed source row onto the canonical
// record. Numeric fields coerce with a NaN/Infinity-to-zero fallback;
// string fields fall through the synonym chain to the empty string. A
// missing month is derived from the shipment date when that parses.
func NormalizeRecord(row map[string]any) domain.ShipmentRecord {
	canonical := make(map[string]any, len(row))
	for k, v := range row {
		canonical[canonicalKey(k)] = v
	}
	get := func(field string) any {
		for _, name := range fieldSynonyms[field] {
			if v, ok := canonical[name]; ok && v != nil {
				return v
			}
		}
		return nil
	}
	str := func(field string) string {
		return strings.TrimSpace(coerceString(get(field)))
	}

	r := domain.ShipmentRecord{
		Month:              str("month"),
		Enquiries:          int(coerceNumber(get("enquiries"))),
		ConvertedShipments: int(coerceNumber(get("converted_shipments"))),
		TotalShipments:     int(coerceNumber(get("total_shipments"))),
		Volume:             coerceNumber(get("volume")),
		Weight:             coerceNumber(get("weight")),
		Customer:           str("customer"),
		Salesman:           str("salesman"),
		Agent:              str("agent"),
		Country:            str("country"),
		Branch:             str("branch"),
		Service:            str("service"),
		Trade:              str("trade"),
		Tradelane:          str("tradelane"),
		Carrier:            str("carrier"),
		Product:            str("product"),
		TOS:                str("tos"),
		ShipmentDate:       str("shipment_date"),
	}

	if r.Month == "" && r.ShipmentDate != "" {
		if d, ok := analytics.ParseDate(r.ShipmentDate); ok {
			r.Month = d.Format("2006-01")
		}
	}
	return r
}

// canonicalKey lowercases a source column name and collapses separators, so
// "Enquiry_Count", "enquiry count" and "enquiryCount" all land on the same
// lookup key.
func canonicalKey(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

func coerceNumber(v any) float64 {
	var f float64
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		f, _ = val.Float64()
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
