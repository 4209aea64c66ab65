package parser

import (
	"strings"
	"time"

	"github.com/insightdelivered/expense-parser/internal/models"
)

// dateFunc attempts to read a date from already-trimmed text.
type dateFunc func(s string) (time.Time, bool)

func layout(l string) dateFunc {
	return func(s string) (time.Time, bool) {
		t, err := time.Parse(l, s)
		return t, err == nil
	}
}

// dateFormats is tried in order and the first match wins. Month-first layouts
// precede day-first ones, so "10/19/24" and "03/04/2024" read as US dates.
var dateFormats = []dateFunc{
	layout("2006-1-2"),        // ISO
	layout("1/2/2006"),        // US slash
	layout("2/1/2006"),        // EU slash
	layout("1-2-2006"),        // US dash
	layout("2-1-2006"),        // EU dash
	layout("2006/1/2"),        // ISO slash
	layout("2 Jan 2006"),      // 19 Oct 2024
	layout("2 January 2006"),  // 19 October 2024
	layout("Jan 2, 2006"),     // Oct 19, 2024
	layout("January 2, 2006"), // October 19, 2024
	layout("1/2/06"),          // US two-digit year
	layout("2/1/06"),          // EU two-digit year
}

// cellDateFormats extends dateFormats with renderings produced by spreadsheet
// exports. They come last so they only rescue cells that would otherwise fall
// back to the current date.
var cellDateFormats = append(append([]dateFunc{}, dateFormats...),
	layout("2006-01-02 15:04:05"),
	layout("2006-01-02T15:04:05"),
	layout("1-2-06"),
	layout("2-1-06"),
)

// parseDate runs an ordered format list.
func parseDate(raw string, formats []dateFunc) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, f := range formats {
		if t, ok := f(s); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatDate(raw string, now time.Time, formats []dateFunc) string {
	if t, ok := parseDate(raw, formats); ok {
		return t.Format(models.DateLayout)
	}
	return now.Format(models.DateLayout)
}

// NormalizeDate converts a raw date into YYYY-MM-DD. Blank or unrecognized input
// falls back to now; callers must treat that as a lossy result, not a parse.
func NormalizeDate(raw string, now time.Time) string {
	return formatDate(raw, now, dateFormats)
}

// normalizeCellDate is NormalizeDate for spreadsheet cells, which also accept
// timestamp renderings and dash-separated two-digit years.
func normalizeCellDate(raw string, now time.Time) string {
	return formatDate(raw, now, cellDateFormats)
}
