package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// DatasetMetadata is the optional header block of a JSON dataset file.
type DatasetMetadata struct {
	Period     string `json:"period,omitempty"`
	UploadedBy string `json:"uploaded_by,omitempty"`
	UploadedOn string `json:"uploaded_on,omitempty"`
}

type datasetFile struct {
	Metadata DatasetMetadata  `json:"metadata"`
	Records  []map[string]any `json:"records"`
}

// ParseJSON reads a JSON dataset file: a metadata block plus a records
// array of loosely-typed rows. Placeholder rows left over from the template
// (YYYY-MM month, no counts) are dropped silently.
func ParseJSON(r io.Reader) ([]domain.ShipmentRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var file datasetFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	if file.Records == nil {
		return nil, fmt.Errorf("invalid json structure: missing records array")
	}

	records := make([]domain.ShipmentRecord, 0, len(file.Records))
	for _, row := range file.Records {
		rec := NormalizeRecord(row)
		if rec.Month == "" || rec.Month == "YYYY-MM" {
			continue
		}
		if rec.Enquiries == 0 && rec.TotalShipments == 0 {
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no valid data rows found")
	}
	return records, nil
}

// JSONTemplate renders the downloadable JSON upload template.
func JSONTemplate() ([]byte, error) {
	template := map[string]any{
		"metadata": DatasetMetadata{
			Period:     "Last 6 Months",
			UploadedOn: time.Now().UTC().Format("2006-01-02"),
		},
		"records": []map[string]any{{
			"month":               "YYYY-MM",
			"enquiries":           0,
			"converted_shipments": 0,
			"total_shipments":     0,
			"volume":              0,
			"weight":              0,
			"customer":            "",
			"salesman":            "",
			"agent":               "",
			"country":             "",
			"branch":              "",
			"service":             "",
			"trade":               "",
			"tradelane":           "",
			"carrier":             "",
			"product":             "",
			"tos":                 "",
			"shipment_date":       "YYYY-MM-DD",
		}},
	}
	return json.MarshalIndent(template, "", "  ")
}
