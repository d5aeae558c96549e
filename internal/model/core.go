package model

import "encoding/json"

// CountryRecord holds the GDP series of a single ISO-3 country
type CountryRecord struct {
	Name      string        `json:"name"`
	Code      string        `json:"code"`
	GDPByYear map[int]int64 `json:"gdp_by_year"` // year -> GDP in current USD
}

// Latest returns the most recent populated year and its value.
func (c CountryRecord) Latest() (year int, gdp int64, ok bool) {
	for y, v := range c.GDPByYear {
		if !ok || y > year {
			year, gdp, ok = y, v, true
		}
	}
	return year, gdp, ok
}

// LatestSnapshot is the single figure used to color a country on the map
type LatestSnapshot struct {
	Name string `json:"name"`
	Year int    `json:"year"`
	GDP  int64  `json:"gdp"`
}

// LegendStatistics feeds the color scale of the map legend
type LegendStatistics struct {
	MinGDP         int64    `json:"min_gdp"`
	MaxGDP         int64    `json:"max_gdp"`
	MedianGDP      int64    `json:"median_gdp"`
	Quartiles      [3]int64 `json:"quartiles"`
	TotalCountries int      `json:"total_countries"`
	DataYearsRange [2]int   `json:"data_years_range"`
}

// IsEmpty reports whether no country contributed to the statistics.
func (s LegendStatistics) IsEmpty() bool {
	return s.TotalCountries == 0
}

// MarshalJSON writes an empty object when there is nothing to report.
func (s LegendStatistics) MarshalJSON() ([]byte, error) {
	if s.IsEmpty() {
		return []byte("{}"), nil
	}
	type plain LegendStatistics
	return json.Marshal(plain(s))
}

// Metadata describes the dataset the document was built from
type Metadata struct {
	Description string           `json:"description"`
	Source      string           `json:"source"`
	Indicator   string           `json:"indicator"`
	LastUpdated string           `json:"last_updated"` // YYYY-MM-DD
	Statistics  LegendStatistics `json:"statistics"`
}

// OutputDocument is the JSON file consumed by the world map
type OutputDocument struct {
	Metadata       Metadata                `json:"metadata"`
	Countries      Ordered[CountryRecord]  `json:"countries"`
	LatestYearData Ordered[LatestSnapshot] `json:"latest_year_data"`
}
