package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// ParseFile dispatches on the file extension and normalizes the content
// into canonical records.
func ParseFile(name string, r io.Reader) ([]domain.ShipmentRecord, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return ParseXLSX(r)
	case ".json":
		return ParseJSON(r)
	case ".csv":
		return ParseCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q: use csv, xlsx or json", filepath.Ext(name))
	}
}
