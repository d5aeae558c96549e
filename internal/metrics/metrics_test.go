package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsDroppedTotal_Help(t *testing.T) {
	expected := `
# HELP gdp_export_rows_dropped_total Total data rows dropped by the ISO-3 country filter or rejected by the CSV parser
# TYPE gdp_export_rows_dropped_total counter
gdp_export_rows_dropped_total 0
`
	require.NoError(t, testutil.CollectAndCompare(RowsDroppedTotal, strings.NewReader(expected)))
}

func TestHandler(t *testing.T) {
	RunsTotal.WithLabelValues("completed").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `gdp_export_runs_total{status="completed"} 1`)
	assert.Contains(t, rec.Body.String(), "gdp_export_run_duration_ms_bucket")
}
