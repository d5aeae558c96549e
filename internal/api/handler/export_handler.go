package handler

import (
	"context"
	"encoding/json"
	"errors"
	"gdp-pipeline/internal/logger"
	"gdp-pipeline/internal/model"
	"gdp-pipeline/internal/pipeline"
	"gdp-pipeline/internal/store"
	"gdp-pipeline/pkg/utils"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Settings is what the handlers run and serve exports with. Paths come
// from configuration only, never from a request.
type Settings struct {
	Job        model.ExportJob
	Options    pipeline.Options
	JobTimeout string // e.g. "5m"
}

var (
	settings = Settings{
		Job: model.ExportJob{
			InputPath:  pipeline.DefaultInputPath,
			OutputPath: pipeline.DefaultOutputPath,
		},
		Options:    pipeline.DefaultOptions(),
		JobTimeout: "5m",
	}

	runMu   sync.Mutex     // one export at a time
	running sync.WaitGroup // background exports
)

// Configure replaces the settings used by every handler
func Configure(s Settings) {
	settings = s
}

// Wait blocks until every background export has finished
func Wait() {
	running.Wait()
}

const defaultLogLimit = 100

// ------------------- Export runs -------------------

// CreateExport starts an export run
// @Summary Start an export
// @Description Regenerate the GDP document from the configured CSV file. The run executes in the background.
// @Tags exports
// @Produce json
// @Success 202 {object} map[string]interface{} "Export started"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /exports [post]
func CreateExport(w http.ResponseWriter, r *http.Request) {
	runID := uuid.New().String()
	job := settings.Job
	opts := settings.Options

	tracked := store.Enabled()
	if tracked {
		if err := store.SaveRun(runID, job); err != nil {
			logger.L().Error("save_run_error", zap.String("run_id", runID), zap.Error(err))
			http.Error(w, "Failed to save run", http.StatusInternalServerError)
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(settings.JobTimeout))
	running.Add(1)
	go func() {
		defer running.Done()
		defer cancel() // Cancel context when the run completes

		runMu.Lock()
		defer runMu.Unlock()
		// failures are logged and recorded by the run tracker
		_, _, _ = pipeline.Execute(ctx, runID, job, opts)
	}()

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"message":   "Export started",
		"runID":     runID,
		"status":    model.StatusPending,
		"tracked":   tracked,
		"createdAt": time.Now().UTC(),
	})
}

// ListExports retrieves all recorded runs
// @Summary List export runs
// @Description Get every recorded export run, newest first
// @Tags exports
// @Produce json
// @Success 200 {array} model.Run "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Failure 503 {object} map[string]interface{} "Run history disabled"
// @Router /exports [get]
func ListExports(w http.ResponseWriter, r *http.Request) {
	if !requireStore(w) {
		return
	}
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetExport retrieves one run
// @Summary Get export run
// @Description Retrieve the status of a specific export run
// @Tags exports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} model.Run "Run details"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /exports/{id} [get]
func GetExport(w http.ResponseWriter, r *http.Request) {
	if !requireStore(w) {
		return
	}
	runID, ok := pathParam(r.URL.Path, "/api/v1/exports/", "")
	if !ok {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	run, err := store.GetRun(runID)
	if errors.Is(err, store.ErrRunNotFound) {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch run", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// GetExportErrors retrieves the errors of a run
// @Summary Get export errors
// @Description Retrieve the errors that stopped an export run
// @Tags exports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run errors"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /exports/{id}/errors [get]
func GetExportErrors(w http.ResponseWriter, r *http.Request) {
	if !requireStore(w) {
		return
	}
	runID, ok := pathParam(r.URL.Path, "/api/v1/exports/", "/errors")
	if !ok {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}
	if !runExists(w, runID) {
		return
	}

	runErrors, err := store.GetRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id": runID,
		"errors": runErrors,
		"count":  len(runErrors),
	})
}

// GetExportLogs retrieves the stage logs of a run
// @Summary Get export logs
// @Description Retrieve the stage logs of an export run
// @Tags exports
// @Produce json
// @Param id path string true "Run ID"
// @Param limit query int false "Maximum number of entries" default(100)
// @Success 200 {object} map[string]interface{} "Run logs"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /exports/{id}/logs [get]
func GetExportLogs(w http.ResponseWriter, r *http.Request) {
	if !requireStore(w) {
		return
	}
	runID, ok := pathParam(r.URL.Path, "/api/v1/exports/", "/logs")
	if !ok {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}
	if !runExists(w, runID) {
		return
	}

	limit := defaultLogLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	logs, err := store.GetRunLogs(runID, limit)
	if err != nil {
		http.Error(w, "Failed to retrieve logs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id": runID,
		"logs":   logs,
		"count":  len(logs),
		"limit":  limit,
	})
}

// ------------------- GDP document -------------------

// GetDocument serves the generated document as written to disk
// @Summary Get GDP document
// @Description The complete JSON document consumed by the world map
// @Tags gdp
// @Produce json
// @Success 200 {object} model.OutputDocument "GDP document"
// @Failure 404 {object} map[string]interface{} "Document not generated yet"
// @Router /gdp [get]
func GetDocument(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(settings.Job.OutputPath)
	if err != nil {
		documentError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// GetLatest serves the latest-year figure of every country
// @Summary Get latest GDP per country
// @Description Latest populated year and GDP of every country, in source order
// @Tags gdp
// @Produce json
// @Success 200 {object} map[string]model.LatestSnapshot "Latest figures by ISO-3 code"
// @Failure 404 {object} map[string]interface{} "Document not generated yet"
// @Router /gdp/latest [get]
func GetLatest(w http.ResponseWriter, r *http.Request) {
	doc, err := loadDocument()
	if err != nil {
		documentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.LatestYearData)
}

// GetStatistics serves the legend statistics
// @Summary Get legend statistics
// @Description Min, max, median and quartiles of the latest GDP figures
// @Tags gdp
// @Produce json
// @Success 200 {object} model.LegendStatistics "Legend statistics"
// @Failure 404 {object} map[string]interface{} "Document not generated yet"
// @Router /gdp/statistics [get]
func GetStatistics(w http.ResponseWriter, r *http.Request) {
	doc, err := loadDocument()
	if err != nil {
		documentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.Metadata.Statistics)
}

// GetCountry serves the GDP series of one country
// @Summary Get country GDP
// @Description GDP by year and latest figure of one country
// @Tags gdp
// @Produce json
// @Param code path string true "ISO-3 country code"
// @Success 200 {object} map[string]interface{} "Country GDP"
// @Failure 400 {object} map[string]interface{} "Invalid country code"
// @Failure 404 {object} map[string]interface{} "Country not found"
// @Router /gdp/countries/{code} [get]
func GetCountry(w http.ResponseWriter, r *http.Request) {
	code, ok := pathParam(r.URL.Path, "/api/v1/gdp/countries/", "")
	if !ok {
		http.Error(w, "Country code is required", http.StatusBadRequest)
		return
	}
	code = strings.ToUpper(code)

	doc, err := loadDocument()
	if err != nil {
		documentError(w, err)
		return
	}
	country, found := doc.Countries.Get(code)
	if !found {
		http.Error(w, "Country not found", http.StatusNotFound)
		return
	}
	latest, _ := doc.LatestYearData.Get(code)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"country": country,
		"latest":  latest,
	})
}

// ------------------- helpers -------------------

func loadDocument() (*model.OutputDocument, error) {
	data, err := os.ReadFile(settings.Job.OutputPath)
	if err != nil {
		return nil, err
	}
	var doc model.OutputDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func documentError(w http.ResponseWriter, err error) {
	if errors.Is(err, os.ErrNotExist) {
		http.Error(w, "Document not generated yet", http.StatusNotFound)
		return
	}
	logger.L().Error("document_read_error", zap.String("path", settings.Job.OutputPath), zap.Error(err))
	http.Error(w, "Failed to read document", http.StatusInternalServerError)
}

func requireStore(w http.ResponseWriter) bool {
	if store.Enabled() {
		return true
	}
	http.Error(w, "Run history is disabled", http.StatusServiceUnavailable)
	return false
}

func runExists(w http.ResponseWriter, runID string) bool {
	_, err := store.GetRun(runID)
	if errors.Is(err, store.ErrRunNotFound) {
		http.Error(w, "Run not found", http.StatusNotFound)
		return false
	}
	if err != nil {
		http.Error(w, "Failed to fetch run", http.StatusInternalServerError)
		return false
	}
	return true
}

// pathParam extracts the single segment between prefix and suffix
func pathParam(path, prefix, suffix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return "", false
	}
	if len(path) < len(prefix)+len(suffix) {
		return "", false
	}
	param := path[len(prefix) : len(path)-len(suffix)]
	if param == "" || strings.Contains(param, "/") {
		return "", false
	}
	return param, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		logger.L().Warn("response_encode_error", zap.Error(err))
	}
}
