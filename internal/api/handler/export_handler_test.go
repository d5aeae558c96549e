package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gdp-pipeline/internal/logger"
	"gdp-pipeline/internal/model"
	"gdp-pipeline/internal/pipeline"
	"gdp-pipeline/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Set(zap.NewNop())
	os.Exit(m.Run())
}

const gdpCSV = "\"Data Source\",\"World Development Indicators\",\n" +
	"\n" +
	"\"Last Updated Date\",\"2025-06-30\",\n" +
	"\n" +
	`"Country Name","Country Code","Indicator Name","Indicator Code","2022","2023",` + "\n" +
	`"Zimbabwe","ZWE","PIB ($ US courants)","NY.GDP.MKTP.CD","32789657378","35231367886",` + "\n" +
	`"Monde","1W","PIB ($ US courants)","NY.GDP.MKTP.CD","1","2",` + "\n" +
	`"Aruba","ABW","PIB ($ US courants)","NY.GDP.MKTP.CD","3544707865","",` + "\n"

// configure points the handlers at a fresh input file and optionally opens
// a history database. It returns the job the handlers use.
func configure(t *testing.T, withStore bool) model.ExportJob {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "gdp.csv")
	require.NoError(t, os.WriteFile(input, []byte(gdpCSV), 0644))

	job := model.ExportJob{InputPath: input, OutputPath: filepath.Join(dir, "public", "gdp_by_country.json")}
	Configure(Settings{Job: job, Options: pipeline.DefaultOptions(), JobTimeout: "1m"})

	if withStore {
		require.NoError(t, store.InitDB(filepath.Join(dir, "history.db")))
		t.Cleanup(func() { store.Close() })
	}
	return job
}

func call(h http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func startExport(t *testing.T) string {
	t.Helper()
	rec := call(CreateExport, http.MethodPost, "/api/v1/exports")
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]interface{}
	decode(t, rec, &resp)
	assert.Equal(t, model.StatusPending, resp["status"])
	Wait()
	return resp["runID"].(string)
}

func TestCreateExport_Tracked(t *testing.T) {
	job := configure(t, true)
	runID := startExport(t)
	assert.FileExists(t, job.OutputPath)

	rec := call(GetExport, http.MethodGet, "/api/v1/exports/"+runID)
	require.Equal(t, http.StatusOK, rec.Code)
	var run model.Run
	decode(t, rec, &run)
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, model.StatusCompleted, run.Status)
	assert.Equal(t, 2, run.Countries)

	rec = call(ListExports, http.MethodGet, "/api/v1/exports")
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []model.Run
	decode(t, rec, &runs)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)

	rec = call(GetExportLogs, http.MethodGet, "/api/v1/exports/"+runID+"/logs?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var logs struct {
		RunID string         `json:"run_id"`
		Logs  []model.RunLog `json:"logs"`
		Count int            `json:"count"`
		Limit int            `json:"limit"`
	}
	decode(t, rec, &logs)
	assert.Equal(t, runID, logs.RunID)
	assert.Equal(t, 2, logs.Count)
	assert.Equal(t, 2, logs.Limit)
	assert.Equal(t, "ingestion", logs.Logs[0].Stage)

	rec = call(GetExportErrors, http.MethodGet, "/api/v1/exports/"+runID+"/errors")
	require.Equal(t, http.StatusOK, rec.Code)
	var errs map[string]interface{}
	decode(t, rec, &errs)
	assert.EqualValues(t, 0, errs["count"])
}

func TestCreateExport_Untracked(t *testing.T) {
	job := configure(t, false)

	rec := call(CreateExport, http.MethodPost, "/api/v1/exports")
	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp map[string]interface{}
	decode(t, rec, &resp)
	assert.Equal(t, false, resp["tracked"])

	Wait()
	assert.FileExists(t, job.OutputPath)
}

func TestCreateExport_FailedRun(t *testing.T) {
	job := configure(t, true)
	require.NoError(t, os.Remove(job.InputPath))

	runID := startExport(t)
	run, err := store.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusFailed, run.Status)

	rec := call(GetExportErrors, http.MethodGet, "/api/v1/exports/"+runID+"/errors")
	require.Equal(t, http.StatusOK, rec.Code)
	var errs struct {
		Errors []model.RunError `json:"errors"`
		Count  int              `json:"count"`
	}
	decode(t, rec, &errs)
	require.Equal(t, 1, errs.Count)
	assert.Contains(t, errs.Errors[0].Message, "failed to open CSV file")
}

func TestExportRoutes_StoreDisabled(t *testing.T) {
	configure(t, false)
	for _, tc := range []struct {
		h    http.HandlerFunc
		path string
	}{
		{ListExports, "/api/v1/exports"},
		{GetExport, "/api/v1/exports/abc"},
		{GetExportErrors, "/api/v1/exports/abc/errors"},
		{GetExportLogs, "/api/v1/exports/abc/logs"},
	} {
		rec := call(tc.h, http.MethodGet, tc.path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, tc.path)
	}
}

func TestExportRoutes_UnknownRun(t *testing.T) {
	configure(t, true)
	assert.Equal(t, http.StatusNotFound, call(GetExport, http.MethodGet, "/api/v1/exports/nope").Code)
	assert.Equal(t, http.StatusNotFound, call(GetExportErrors, http.MethodGet, "/api/v1/exports/nope/errors").Code)
	assert.Equal(t, http.StatusNotFound, call(GetExportLogs, http.MethodGet, "/api/v1/exports/nope/logs").Code)
	assert.Equal(t, http.StatusBadRequest, call(GetExport, http.MethodGet, "/api/v1/exports/a/b").Code)
}

func TestDocumentRoutes_BeforeExport(t *testing.T) {
	configure(t, false)
	for _, tc := range []struct {
		h    http.HandlerFunc
		path string
	}{
		{GetDocument, "/api/v1/gdp"},
		{GetLatest, "/api/v1/gdp/latest"},
		{GetStatistics, "/api/v1/gdp/statistics"},
		{GetCountry, "/api/v1/gdp/countries/ZWE"},
	} {
		rec := call(tc.h, http.MethodGet, tc.path)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.path)
	}
}

func TestDocumentRoutes(t *testing.T) {
	job := configure(t, false)
	_, _, err := pipeline.RunFiles(context.Background(), job, pipeline.DefaultOptions())
	require.NoError(t, err)

	rec := call(GetDocument, http.MethodGet, "/api/v1/gdp")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	onDisk, err := os.ReadFile(job.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, string(onDisk), rec.Body.String())

	rec = call(GetLatest, http.MethodGet, "/api/v1/gdp/latest")
	require.Equal(t, http.StatusOK, rec.Code)
	var latest model.Ordered[model.LatestSnapshot]
	decode(t, rec, &latest)
	assert.Equal(t, []string{"ZWE", "ABW"}, latest.Keys())
	abw, _ := latest.Get("ABW")
	assert.Equal(t, model.LatestSnapshot{Name: "Aruba", Year: 2022, GDP: 3544707865}, abw)

	rec = call(GetStatistics, http.MethodGet, "/api/v1/gdp/statistics")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats model.LegendStatistics
	decode(t, rec, &stats)
	assert.Equal(t, 2, stats.TotalCountries)
	assert.Equal(t, int64(3544707865), stats.MinGDP)
	assert.Equal(t, int64(35231367886), stats.MaxGDP)
	assert.Equal(t, [2]int{2022, 2023}, stats.DataYearsRange)

	rec = call(GetCountry, http.MethodGet, "/api/v1/gdp/countries/zwe")
	require.Equal(t, http.StatusOK, rec.Code)
	var country struct {
		Country model.CountryRecord  `json:"country"`
		Latest  model.LatestSnapshot `json:"latest"`
	}
	decode(t, rec, &country)
	assert.Equal(t, "Zimbabwe", country.Country.Name)
	assert.Equal(t, map[int]int64{2022: 32789657378, 2023: 35231367886}, country.Country.GDPByYear)
	assert.Equal(t, 2023, country.Latest.Year)

	assert.Equal(t, http.StatusNotFound, call(GetCountry, http.MethodGet, "/api/v1/gdp/countries/1W").Code)
	assert.Equal(t, http.StatusBadRequest, call(GetCountry, http.MethodGet, "/api/v1/gdp/countries/").Code)
}

func TestPathParam(t *testing.T) {
	tests := []struct {
		path, prefix, suffix string
		want                 string
		ok                   bool
	}{
		{"/api/v1/exports/abc", "/api/v1/exports/", "", "abc", true},
		{"/api/v1/exports/abc/logs", "/api/v1/exports/", "/logs", "abc", true},
		{"/api/v1/exports/", "/api/v1/exports/", "", "", false},
		{"/api/v1/exports//logs", "/api/v1/exports/", "/logs", "", false},
		{"/api/v1/exports/a/b", "/api/v1/exports/", "", "", false},
		{"/api/v1/other/abc", "/api/v1/exports/", "", "", false},
		{"/api/v1/exports/abc/errors", "/api/v1/exports/", "/logs", "", false},
	}
	for _, tt := range tests {
		got, ok := pathParam(tt.path, tt.prefix, tt.suffix)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}
