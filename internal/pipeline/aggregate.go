package pipeline

import (
	"gdp-pipeline/internal/model"
	"math"
	"sort"
)

// BuildLatest picks, for every country, the most recent year with data.
// The result has exactly the keys of countries, in the same order.
func BuildLatest(countries model.Ordered[model.CountryRecord]) model.Ordered[model.LatestSnapshot] {
	latest := model.NewOrdered[model.LatestSnapshot]()
	countries.Each(func(code string, rec model.CountryRecord) bool {
		year, gdp, ok := rec.Latest()
		if ok {
			latest.Set(code, model.LatestSnapshot{Name: rec.Name, Year: year, GDP: gdp})
		}
		return true
	})
	return latest
}

// latestValues collects the snapshot GDP figures in document order
func latestValues(latest model.Ordered[model.LatestSnapshot]) []int64 {
	values := make([]int64, 0, latest.Len())
	latest.Each(func(_ string, snap model.LatestSnapshot) bool {
		values = append(values, snap.GDP)
		return true
	})
	return values
}

// ComputeStatistics derives the legend statistics from the latest-year GDP
// values. yearRange is the declared year span of the input, not the span of
// years that actually carry data.
func ComputeStatistics(values []int64, yearRange [2]int) model.LegendStatistics {
	if len(values) == 0 {
		return model.LegendStatistics{}
	}

	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return model.LegendStatistics{
		MinGDP:    sorted[0],
		MaxGDP:    sorted[len(sorted)-1],
		MedianGDP: truncate(Median(sorted)),
		Quartiles: [3]int64{
			truncate(Percentile(sorted, 25)),
			truncate(Percentile(sorted, 50)),
			truncate(Percentile(sorted, 75)),
		},
		TotalCountries: len(sorted),
		DataYearsRange: yearRange,
	}
}

// Percentile returns the p-th percentile of ascending values, interpolating
// linearly between the two closest ranks: k = (n-1)*p/100.
func Percentile(sorted []int64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	k := float64(n-1) * p / 100
	f := int(k)
	c := k - float64(f)
	if f >= n-1 {
		return float64(sorted[n-1])
	}
	return float64(sorted[f])*(1-c) + float64(sorted[f+1])*c
}

// Median returns the middle value of ascending values, or the mean of the
// two middle values when the count is even.
func Median(sorted []int64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	a, b := sorted[n/2-1], sorted[n/2]
	if a+b < 0 {
		// GDP values are never negative, so a negative sum is an overflow
		return float64(a)/2 + float64(b)/2
	}
	return float64(a+b) / 2
}

// truncate drops the fractional part
func truncate(f float64) int64 {
	return int64(math.Trunc(f))
}
