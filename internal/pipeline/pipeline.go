package pipeline

import (
	"context"
	"fmt"
	"gdp-pipeline/internal/logger"
	"gdp-pipeline/internal/metrics"
	"gdp-pipeline/internal/model"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

// Layout and metadata of the World Bank GDP export
const (
	DefaultInputPath     = "public/API_NY.GDP.MKTP.CD_DS2_fr_csv_v2_22456.csv"
	DefaultOutputPath    = "public/gdp_by_country.json"
	DefaultPreambleLines = 4
	DefaultMinYear       = 1960
	DefaultMaxYear       = 2030
	DefaultIndicator     = "NY.GDP.MKTP.CD"
	DefaultDescription   = "Données de PIB par pays (PIB en USD courants)"
	DefaultSource        = "Banque mondiale - Indicateurs du développement dans le monde"
	DefaultLastUpdated   = "2025-07-01"
)

// Options controls how an input file is read and described
type Options struct {
	PreambleLines int
	MinYear       int
	MaxYear       int
	Delimiter     rune           // 0 means ','
	Metadata      model.Metadata // Statistics is filled in by the run
}

// DefaultOptions returns the options matching the World Bank export
func DefaultOptions() Options {
	return Options{
		PreambleLines: DefaultPreambleLines,
		MinYear:       DefaultMinYear,
		MaxYear:       DefaultMaxYear,
		Delimiter:     ',',
		Metadata: model.Metadata{
			Description: DefaultDescription,
			Source:      DefaultSource,
			Indicator:   DefaultIndicator,
			LastUpdated: DefaultLastUpdated,
		},
	}
}

// Result is the outcome of a transform
type Result struct {
	Document *model.OutputDocument
	Years    *YearColumnIndex
	Report   model.RunReport
}

// ------------------- Pipeline Runner -------------------

// Transform reads a whole input and builds the output document. It performs
// no I/O besides reading r.
func Transform(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	start := time.Now()
	table, err := ReadTable(ctx, r, opts)
	if err != nil {
		return nil, err
	}
	res, err := buildDocument(table, opts)
	if err != nil {
		return nil, err
	}
	res.Report.Duration = time.Since(start)
	return res, nil
}

// Run transforms r and writes the JSON document to w.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) (*Result, error) {
	res, err := Transform(ctx, r, opts)
	if err != nil {
		return nil, err
	}
	if err := WriteDocument(w, res.Document); err != nil {
		return nil, err
	}
	return res, nil
}

// RunFiles runs an untracked export from job.InputPath to job.OutputPath.
func RunFiles(ctx context.Context, job model.ExportJob, opts Options) (*Result, model.ExportResult, error) {
	return Execute(ctx, "", job, opts)
}

// Execute runs one export and, when runID is set and the history store is
// open, records its stages, outcome and errors under that id.
func Execute(ctx context.Context, runID string, job model.ExportJob, opts Options) (res *Result, export model.ExportResult, err error) {
	start := time.Now()
	tracker := NewRunTracker(runID)
	logger.L().Info("export_run_start",
		zap.String("run_id", runID),
		zap.String("input", job.InputPath),
		zap.String("output", job.OutputPath))

	defer func() {
		if err != nil {
			tracker.Fail(err)
			return
		}
		tracker.Complete(res.Document.Countries.Len())
	}()

	// --- INGESTION STAGE ---
	tracker.StartStage("ingestion", model.StatusIngesting)
	file, err := os.Open(job.InputPath)
	if err != nil {
		return nil, export, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	table, err := ReadTable(ctx, file, opts)
	if err != nil {
		return nil, export, fmt.Errorf("failed to read %s: %w", job.InputPath, err)
	}
	tracker.EndStage(map[string]interface{}{
		"rows":    len(table.Rows),
		"skipped": table.Skipped,
	})

	// --- STATISTICS STAGE ---
	tracker.StartStage("statistics", model.StatusComputing)
	res, err = buildDocument(table, opts)
	if err != nil {
		return nil, export, fmt.Errorf("failed to process %s: %w", job.InputPath, err)
	}
	tracker.EndStage(map[string]interface{}{
		"country_rows": res.Report.CountryRows,
		"countries":    res.Document.Countries.Len(),
	})

	// --- EXPORT STAGE ---
	tracker.StartStage("export", model.StatusExporting)
	export, err = NewExportManager("").ExportToFile(job.OutputPath, res.Document)
	if err != nil {
		return nil, export, err
	}
	tracker.EndStage(map[string]interface{}{
		"path":  export.Path,
		"bytes": export.Bytes,
	})

	res.Report.Duration = time.Since(start)
	logger.L().Info("export_run_done",
		zap.String("run_id", runID),
		zap.Int("countries", res.Document.Countries.Len()),
		zap.Duration("duration", res.Report.Duration))
	return res, export, nil
}

// buildDocument runs every stage after ingestion: header scan, row filter,
// extraction, latest snapshot, statistics and assembly.
func buildDocument(table *Table, opts Options) (*Result, error) {
	years, err := ScanHeader(table.Header, opts.MinYear, opts.MaxYear)
	if err != nil {
		return nil, err
	}
	span := years.Range()
	logger.L().Debug("header_scanned",
		zap.Int("year_columns", years.Len()),
		zap.Int("first_year", span[0]),
		zap.Int("last_year", span[1]))

	rows, dropped := filterCountryRows(table.Rows)
	countries, empty := extractCountries(rows, years)
	latest := BuildLatest(countries)
	stats := ComputeStatistics(latestValues(latest), span)
	doc := Assemble(opts.Metadata, countries, latest, stats)

	report := model.RunReport{
		RowsRead:             len(table.Rows) + table.Skipped,
		CountryRows:          len(rows),
		DroppedRows:          dropped + table.Skipped,
		CountriesWithoutData: empty,
	}
	metrics.RowsReadTotal.Add(float64(report.RowsRead))
	metrics.RowsDroppedTotal.Add(float64(report.DroppedRows))
	logger.L().Debug("countries_extracted",
		zap.Int("country_rows", report.CountryRows),
		zap.Int("dropped_rows", report.DroppedRows),
		zap.Int("without_data", report.CountriesWithoutData))

	return &Result{Document: doc, Years: years, Report: report}, nil
}
