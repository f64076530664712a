// File: services/export/sanitize.go
package export

import "strings"

// SanitizeCell guards a CSV cell against spreadsheet formula injection:
// values beginning with '=', '+', '-' or '@' get a leading single quote
// so spreadsheet apps render them as text instead of executing them.
// Quote doubling per RFC 4180 is handled by the csv writer.
func SanitizeCell(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '=', '+', '-', '@':
		return "'" + value
	}
	return value
}

// sanitizeRow applies SanitizeCell to every cell in place and returns
// the row for chaining.
func sanitizeRow(row []string) []string {
	for i := range row {
		row[i] = SanitizeCell(row[i])
	}
	return row
}

// headerRow normalizes a header list: headers are under our control and
// never sanitized, but keep them trimmed.
func headerRow(headers ...string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.TrimSpace(h)
	}
	return out
}
