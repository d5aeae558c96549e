package pipeline

import (
	"fmt"
	"sort"
)

// YearColumnIndex maps each year found in the header to its column
type YearColumnIndex struct {
	years   []int
	columns map[int]int
}

// ScanHeader builds the year index of a header row. A token is a year when it
// is four ASCII digits within [minYear, maxYear]; every other column is
// ignored. When a year appears twice the later column wins.
func ScanHeader(header []string, minYear, maxYear int) (*YearColumnIndex, error) {
	idx := &YearColumnIndex{columns: make(map[int]int)}
	for i, token := range header {
		year, ok := YearFromToken(token, minYear, maxYear)
		if !ok {
			continue
		}
		if _, seen := idx.columns[year]; !seen {
			idx.years = append(idx.years, year)
		}
		idx.columns[year] = i
	}

	if len(idx.years) == 0 {
		return nil, fmt.Errorf("%w: %d columns scanned", ErrNoYearColumns, len(header))
	}
	sort.Ints(idx.years)
	return idx, nil
}

// YearFromToken reports whether token names a year column
func YearFromToken(token string, minYear, maxYear int) (int, bool) {
	if len(token) != 4 {
		return 0, false
	}
	year := 0
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		year = year*10 + int(c-'0')
	}
	if year < minYear || year > maxYear {
		return 0, false
	}
	return year, true
}

// Years returns the years in ascending order
func (idx *YearColumnIndex) Years() []int {
	out := make([]int, len(idx.years))
	copy(out, idx.years)
	return out
}

// Column returns the source column holding year
func (idx *YearColumnIndex) Column(year int) (int, bool) {
	col, ok := idx.columns[year]
	return col, ok
}

// Range returns the first and last declared year
func (idx *YearColumnIndex) Range() [2]int {
	return [2]int{idx.years[0], idx.years[len(idx.years)-1]}
}

// Len returns the number of year columns
func (idx *YearColumnIndex) Len() int {
	return len(idx.years)
}
