package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryIdentity(t *testing.T) {
	tests := []struct {
		name     string
		row      []string
		wantName string
		wantCode string
		ok       bool
	}{
		{"country", []string{"France", "FRA", "PIB", "NY.GDP.MKTP.CD"}, "France", "FRA", true},
		{"quoted fields", []string{`"France"`, `"FRA"`, "PIB", "NY.GDP.MKTP.CD"}, "France", "FRA", true},
		{"lower case code", []string{"Testland", "tst", "", ""}, "Testland", "tst", true},
		{"accented letters", []string{"Étatland", "ÉTA", "", ""}, "Étatland", "ÉTA", true},
		{"too few fields", []string{"France", "FRA", "PIB"}, "", "", false},
		{"two letter code", []string{"Monde", "1W", "", ""}, "", "", false},
		{"digit in code", []string{"Region", "EU1", "", ""}, "", "", false},
		{"four letter code", []string{"Region", "EURO", "", ""}, "", "", false},
		{"empty code", []string{"Region", "", "", ""}, "", "", false},
		{"padded code", []string{"France", " FRA", "", ""}, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, code, ok := CountryIdentity(tt.row)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestFilterCountryRows(t *testing.T) {
	rows := [][]string{
		{"Zimbabwe", "ZWE", "", ""},
		{"Monde", "1W", "", ""},
		{"short"},
		{"Aruba", "ABW", "", ""},
	}
	kept, dropped := filterCountryRows(rows)
	assert.Equal(t, 2, dropped)
	if assert.Len(t, kept, 2) {
		assert.Equal(t, "ZWE", kept[0].code)
		assert.Equal(t, "ABW", kept[1].code)
		assert.Equal(t, "Aruba", kept[1].name)
	}
}
