package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// nullMarkers are string cells treated as null in numeric columns
// (matched case-insensitively after trimming).
var nullMarkers = map[string]bool{
	"":     true,
	"nan":  true,
	"none": true,
	"null": true,
	"-":    true,
}

// numericCleaner strips thousands separators, spaces and Korean Won
// glyphs (the word, the symbol, and backslash-rendered won).
var numericCleaner = strings.NewReplacer(
	",", "",
	" ", "",
	"원", "",
	"₩", "",
	`\`, "",
)

// fallbackDateLayouts are tried when the year-month-day heuristic does
// not apply.
var fallbackDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
}

// NormalizeDate converts a heterogeneous date cell to an ISO
// "YYYY-MM-DD" string. Empty cells and anything unparseable become nil;
// a malformed cell never fails the batch.
//
// The primary heuristic handles the source system's "24-01-18 11:00"
// shape: the leading whitespace-delimited token is split on "-", a
// two-digit year expands to 20YY, and month/day are zero-padded.
func NormalizeDate(cell string) *string {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}

	// Drop a trailing time-of-day component
	datePart := s
	if fields := strings.Fields(s); len(fields) > 0 {
		datePart = fields[0]
	}

	if iso, ok := heuristicDate(datePart); ok {
		return &iso
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}
	return nil
}

func heuristicDate(datePart string) (string, bool) {
	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return "", false
	}
	year, month, day := parts[0], parts[1], parts[2]
	if !allDigits(year) || !allDigits(month) || !allDigits(day) {
		return "", false
	}
	if len(year) == 2 {
		year = "20" + year
	}
	if len(year) != 4 || len(month) == 0 || len(month) > 2 || len(day) == 0 || len(day) > 2 {
		return "", false
	}
	return fmt.Sprintf("%s-%s-%s", year, zeroPad2(month), zeroPad2(day)), true
}

func zeroPad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeNumeric converts a currency-like cell to a float. Numeric
// cells pass through (NaN becomes nil); string cells are trimmed,
// checked against the null markers, stripped of separators and currency
// glyphs, then parsed. Unparseable cells become nil, never an error.
func NormalizeNumeric(cell any) *float64 {
	switch v := cell.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(v) {
			return nil
		}
		return &v
	case float32:
		f := float64(v)
		if math.IsNaN(f) {
			return nil
		}
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		s := strings.TrimSpace(v)
		if nullMarkers[strings.ToLower(s)] {
			return nil
		}
		s = numericCleaner.Replace(s)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
