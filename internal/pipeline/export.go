package pipeline

import (
	"encoding/json"
	"fmt"
	"gdp-pipeline/internal/logger"
	"gdp-pipeline/internal/model"
	"gdp-pipeline/pkg/utils"
	"io"
	"time"

	"go.uber.org/zap"
)

// Assemble combines the metadata template, the statistics and the country
// maps into the document written to disk.
func Assemble(meta model.Metadata, countries model.Ordered[model.CountryRecord], latest model.Ordered[model.LatestSnapshot], stats model.LegendStatistics) *model.OutputDocument {
	meta.Statistics = stats
	return &model.OutputDocument{
		Metadata:       meta,
		Countries:      countries,
		LatestYearData: latest,
	}
}

// WriteDocument encodes doc as 2-space indented UTF-8 JSON. Non-ASCII text is
// written verbatim and HTML characters are not escaped.
func WriteDocument(w io.Writer, doc *model.OutputDocument) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// ExportManager handles writing documents to disk
type ExportManager struct {
	Output *utils.OutputManager
}

// NewExportManager creates an export manager writing under baseDir
func NewExportManager(baseDir string) *ExportManager {
	return &ExportManager{Output: utils.NewOutputManager(baseDir)}
}

// ExportToFile writes doc to path and reports what happened. The returned
// error is the same failure recorded in the result.
func (em *ExportManager) ExportToFile(path string, doc *model.OutputDocument) (model.ExportResult, error) {
	result := model.ExportResult{
		Type:        em.Output.GetFileType(path),
		Path:        em.Output.Resolve(path),
		RecordCount: doc.Countries.Len(),
		Timestamp:   time.Now(),
	}

	full, err := em.Output.WriteFile(path, func(w io.Writer) error {
		return WriteDocument(w, doc)
	})
	if err != nil {
		result.Error = err.Error()
		logger.L().Error("export_file_error", zap.String("path", result.Path), zap.Error(err))
		return result, err
	}

	result.Success = true
	result.Path = full
	if size, err := em.Output.GetFileSize(full); err == nil {
		result.Bytes = size
	}
	logger.L().Info("export_file_ok",
		zap.String("path", full),
		zap.Int("countries", result.RecordCount),
		zap.Int64("bytes", result.Bytes))
	return result, nil
}
