package analytics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// excelSerialOffset is the Excel serial number of 1970-01-01 (1900 epoch).
const excelSerialOffset = 25569

var serialPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// Free-text layouts attempted when a date matches none of the structured
// formats. Kept short on purpose; anything else is treated as "no date".
var freeTextLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate parses the tolerated shipment date formats: Excel serial
// numbers, YYYY-MM-DD, DD-MM-YYYY, DD/MM/YYYY (2-digit years map into
// 2000-2099) and a short list of free-text layouts. The result is
// normalized to midnight UTC. Unparseable input returns ok=false, never an
// error, so callers can treat it as "no date".
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if serialPattern.MatchString(raw) {
		serial, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return time.Time{}, false
		}
		secs := (serial - excelSerialOffset) * 86400
		return midnight(time.Unix(int64(secs), 0).UTC()), true
	}

	if strings.Contains(raw, "-") {
		if t, ok := parseDashed(raw); ok {
			return t, true
		}
		// Timestamps like 2024-03-15T10:30:00Z fall through to the
		// free-text layouts.
		return parseFreeText(raw)
	}
	if strings.Contains(raw, "/") {
		return parseDayMonthYear(strings.Split(raw, "/"))
	}
	return parseFreeText(raw)
}

func parseFreeText(raw string) (time.Time, bool) {
	for _, layout := range freeTextLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return midnight(t.UTC()), true
		}
	}
	return time.Time{}, false
}

// parseDashed handles both YYYY-MM-DD and DD-MM-YYYY, deciding by the
// length of the first segment.
func parseDashed(raw string) (time.Time, bool) {
	parts := strings.Split(raw, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	if len(parts[0]) == 4 {
		y, errY := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		d, errD := strconv.Atoi(parts[2])
		if errY != nil || errM != nil || errD != nil {
			return time.Time{}, false
		}
		return makeDate(y, m, d)
	}
	return parseDayMonthYear(parts)
}

func parseDayMonthYear(parts []string) (time.Time, bool) {
	if len(parts) != 3 {
		return time.Time{}, false
	}
	d, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errD != nil || errM != nil || errY != nil {
		return time.Time{}, false
	}
	if y < 100 {
		y += 2000
	}
	return makeDate(y, m, d)
}

func makeDate(y, m, d int) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// Reject rollovers like 31 Feb, which time.Date silently normalizes.
	if t.Day() != d || t.Month() != time.Month(m) {
		return time.Time{}, false
	}
	return t, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Sunday that begins the week containing t.
func startOfWeek(t time.Time) time.Time {
	return midnight(t).AddDate(0, 0, -int(t.Weekday()))
}

// endOfWeek returns the Saturday that ends the week containing t.
func endOfWeek(t time.Time) time.Time {
	return startOfWeek(t).AddDate(0, 0, 6)
}

// monthKey formats t as a YYYY-MM bucketing key.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// parseMonthKey parses a YYYY-MM key to the first day of that month.
func parseMonthKey(key string) (time.Time, bool) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// addMonths shifts a YYYY-MM key by n months. Invalid keys come back
// unchanged so string comparisons degrade instead of panicking.
func addMonths(key string, n int) string {
	t, ok := parseMonthKey(key)
	if !ok {
		return key
	}
	return monthKey(t.AddDate(0, n, 0))
}

// monthLabel renders a YYYY-MM key as the chart display form, e.g. "Jun'25".
func monthLabel(key string) string {
	t, ok := parseMonthKey(key)
	if !ok {
		return key
	}
	return t.Format("Jan'06")
}

// weekLabel renders the 1-based weekly bucket label.
func weekLabel(n int) string {
	return fmt.Sprintf("Week %d", n)
}
