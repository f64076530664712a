package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeCell(t *testing.T) {
	cases := map[string]string{
		"":                        "",
		"plain value":             "plain value",
		"=SUM(A1:A9)":             "'=SUM(A1:A9)",
		"=cmd|' /C calc'!A0":      "'=cmd|' /C calc'!A0",
		"+1234":                   "'+1234",
		"-42":                     "'-42",
		"@import":                 "'@import",
		"Meridian Logistics":      "Meridian Logistics",
		"9x =formula not leading": "9x =formula not leading",
	}
	for input, want := range cases {
		assert.Equal(t, want, SanitizeCell(input), "input %q", input)
	}
}

func TestWriteCSVQuotesAndSanitizes(t *testing.T) {
	out, err := writeCSV(
		headerRow("name", "note"),
		[][]string{
			{`Acme "Premier" Fund`, "=HYPERLINK(...)"},
			{"plain", "with,comma"},
		},
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,note", lines[0])
	// Embedded quotes doubled per RFC 4180, formula prefixed.
	assert.Equal(t, `"Acme ""Premier"" Fund",'=HYPERLINK(...)`, lines[1])
	assert.Equal(t, `plain,"with,comma"`, lines[2])
}
