package pipeline

import (
	"gdp-pipeline/pkg/utils"
	"unicode"
	"unicode/utf8"
)

// minCountryFields covers name, code, indicator name and indicator code
const minCountryFields = 4

// countryRow is a data row that passed the ISO-3 filter
type countryRow struct {
	name   string
	code   string
	fields []string
}

// CountryIdentity returns the name and code of an individual-country row.
// Aggregates such as "World" or income groups carry codes that are not three
// letters and are rejected here.
func CountryIdentity(row []string) (name, code string, ok bool) {
	if len(row) < minCountryFields {
		return "", "", false
	}
	code = utils.StripQuotes(row[1])
	if !isISO3(code) {
		return "", "", false
	}
	return utils.StripQuotes(row[0]), code, true
}

// isISO3 reports whether code is exactly three letters
func isISO3(code string) bool {
	if utf8.RuneCountInString(code) != 3 {
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// filterCountryRows keeps individual-country rows in input order.
func filterCountryRows(rows [][]string) (kept []countryRow, dropped int) {
	for _, row := range rows {
		name, code, ok := CountryIdentity(row)
		if !ok {
			dropped++
			continue
		}
		kept = append(kept, countryRow{name: name, code: code, fields: row})
	}
	return kept, dropped
}
