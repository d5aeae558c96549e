package pipeline

import (
	"math"
	"strconv"

	"gdp-pipeline/internal/model"
	"gdp-pipeline/pkg/utils"
)

// maxInt64Float is the first float64 that no longer fits in an int64
const maxInt64Float = float64(math.MaxInt64)

// ParsePositiveInt converts a GDP cell to an integer truncated toward zero.
// It returns false for empty cells, non-numeric text, NaN, infinities, values
// that do not fit in an int64 and values whose integer part is not positive.
func ParsePositiveInt(cell string) (int64, bool) {
	s := utils.CleanCell(cell)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f >= maxInt64Float {
		return 0, false
	}
	// Truncation comes before the sign check so values in (0, 1) get no
	// entry instead of a zero.
	n := int64(f)
	if n <= 0 {
		return 0, false
	}
	return n, true
}

// ExtractCountry builds the GDP series of one country row. Years whose column
// is missing from the row or whose cell is unusable get no entry.
func ExtractCountry(name, code string, row []string, years *YearColumnIndex) model.CountryRecord {
	rec := model.CountryRecord{
		Name:      name,
		Code:      code,
		GDPByYear: make(map[int]int64),
	}
	for _, year := range years.years {
		col := years.columns[year]
		if col >= len(row) {
			continue
		}
		if gdp, ok := ParsePositiveInt(row[col]); ok {
			rec.GDPByYear[year] = gdp
		}
	}
	return rec
}

// extractCountries runs ExtractCountry over the filtered rows and keeps the
// countries that ended up with at least one value, in row order.
func extractCountries(rows []countryRow, years *YearColumnIndex) (countries model.Ordered[model.CountryRecord], empty int) {
	countries = model.NewOrdered[model.CountryRecord]()
	for _, row := range rows {
		rec := ExtractCountry(row.name, row.code, row.fields, years)
		if len(rec.GDPByYear) == 0 {
			empty++
			continue
		}
		countries.Set(rec.Code, rec)
	}
	return countries, empty
}
