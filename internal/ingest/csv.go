package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// ParseCSV reads a comma-separated export with the template header row.
func ParseCSV(r io.Reader) ([]domain.ShipmentRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rowsToRecords(rows)
}
