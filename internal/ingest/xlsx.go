package ingest

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/newagesw/sales-bi/backend-go/internal/domain"
)

// templateSheet is the worksheet name of generated and accepted workbooks.
// Uploads are matched on the first sheet regardless of its name.
const templateSheet = "Sales_Performance_Data"

// templateHeaders is the fixed upload template header row. Matching is
// case-insensitive; every column must be present.
var templateHeaders = []string{
	"Month",
	"Enquiry_Count",
	"Converted_Shipments",
	"Total_Shipments",
	"Volume",
	"Weight",
	"Customer",
	"Salesman",
	"Agent",
	"Country",
	"Branch",
	"Service",
	"Trade",
	"Tradelane",
	"Carrier",
	"Product",
	"TOS",
	"Shipment_Date",
}

var monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ParseXLSX reads the first sheet of an uploaded workbook and normalizes
// its rows. The header row must carry every template column; rows with a
// malformed month key fail the whole file so a bad export never half-loads.
func ParseXLSX(r io.Reader) ([]domain.ShipmentRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rowsToRecords(rows)
}

// rowsToRecords converts a header row plus data rows into normalized
// records, shared by the xlsx and csv parsers.
func rowsToRecords(rows [][]string) ([]domain.ShipmentRecord, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("file is empty or has only headers")
	}

	header := rows[0]
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	records := make([]domain.ShipmentRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		raw := make(map[string]any, len(header))
		for j, name := range header {
			if j < len(row) {
				raw[name] = row[j]
			}
		}
		rec := NormalizeRecord(raw)
		if rec.Month != "" && !monthKeyPattern.MatchString(rec.Month) {
			return nil, fmt.Errorf("invalid month format at row %d: expected YYYY-MM", i+2)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no valid data rows found")
	}
	return records, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[canonicalKey(h)] = struct{}{}
	}
	var missing []string
	for _, want := range templateHeaders {
		if _, ok := present[canonicalKey(want)]; !ok {
			missing = append(missing, want)
		}
	}
	return missing
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// WriteXLSXTemplate writes a header-only upload template workbook.
func WriteXLSXTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), templateSheet); err != nil {
		return fmt.Errorf("failed to name template sheet: %w", err)
	}
	for i, h := range templateHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(templateSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header %s: %w", h, err)
		}
	}
	last, err := excelize.ColumnNumberToName(len(templateHeaders))
	if err != nil {
		return fmt.Errorf("failed to size template columns: %w", err)
	}
	if err := f.SetColWidth(templateSheet, "A", last, 18); err != nil {
		return fmt.Errorf("failed to size template columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
