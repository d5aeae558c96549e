package pipeline

import (
	"fmt"
	"gdp-pipeline/internal/model"
	"io"

	"github.com/dustin/go-humanize"
)

// summaryExamples is how many countries the summary lists
const summaryExamples = 5

// PrintSummary writes a human-readable report of a run to w. outputPath may
// be empty when the document was not written to a file.
func PrintSummary(w io.Writer, res *Result, outputPath string) {
	doc := res.Document
	span := res.Years.Range()

	if outputPath != "" {
		fmt.Fprintf(w, "💾 JSON file written: %s\n", outputPath)
	}
	fmt.Fprintf(w, "🌍 Countries with GDP data: %d\n", doc.Countries.Len())
	fmt.Fprintf(w, "📅 Data years: %d - %d\n", span[0], span[1])

	if stats := doc.Metadata.Statistics; !stats.IsEmpty() {
		fmt.Fprintf(w, "📉 Minimum GDP: $%s\n", humanize.Comma(stats.MinGDP))
		fmt.Fprintf(w, "📈 Maximum GDP: $%s\n", humanize.Comma(stats.MaxGDP))
		fmt.Fprintf(w, "📊 Median GDP: $%s\n", humanize.Comma(stats.MedianGDP))
	}

	fmt.Fprintln(w, "\nSample countries:")
	shown := 0
	doc.LatestYearData.Each(func(code string, snap model.LatestSnapshot) bool {
		fmt.Fprintf(w, "  %s (%s): $%s (%d)\n", snap.Name, code, humanize.Comma(snap.GDP), snap.Year)
		shown++
		return shown < summaryExamples
	})
}
