package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testReport = `Date,N,Dispersion,Entropy,CondEntropy,MutualInfo
2024-01-31,25,0.042000,5.100000,2.300000,0.600000
2024-02-29,3,0.010000,,,
`

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	reportsDir := t.TempDir()
	srv := httptest.NewServer(NewRouter(reportsDir, "test", nil))
	t.Cleanup(srv.Close)
	return srv, reportsDir
}

func writeReport(t *testing.T, reportsDir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(reportsDir, name), []byte(testReport), 0o644))
}

func getJSON(t *testing.T, url string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestGetStats(t *testing.T) {
	srv, reportsDir := newTestServer(t)
	writeReport(t, reportsDir, "entropy_stats_cross_section.csv")

	status, body := getJSON(t, srv.URL+"/api/cross_section/stats")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "cross_section", body["axis"])
	stats, ok := body["stats"].([]any)
	require.True(t, ok)
	require.Len(t, stats, 2)

	first := stats[0].(map[string]any)
	assert.Equal(t, "2024-01-31", first["key"])
	assert.Equal(t, float64(25), first["n"])
	assert.Equal(t, 5.1, first["entropy"])

	// Non-finite statistics come back as JSON null.
	second := stats[1].(map[string]any)
	assert.Nil(t, second["entropy"])
	assert.Nil(t, second["mutual_info"])
}

func TestGetSeries(t *testing.T) {
	srv, reportsDir := newTestServer(t)
	writeReport(t, reportsDir, "entropy_stats_time_series.csv")

	status, body := getJSON(t, srv.URL+"/api/time_series/series/cond_entropy")
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "time_series", body["axis"])
	assert.Equal(t, "cond_entropy", body["metric"])

	series, ok := body["series"].(map[string]any)
	require.True(t, ok)
	values := series["values"].([]any)
	require.Len(t, values, 2)
	assert.Equal(t, 2.3, values[0])
	assert.Nil(t, values[1])
}

func TestSeries_InvalidRequests(t *testing.T) {
	srv, reportsDir := newTestServer(t)
	writeReport(t, reportsDir, "entropy_stats_cross_section.csv")

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{name: "unknown axis", path: "/api/diagonal/stats", wantStatus: http.StatusBadRequest, wantCode: "INVALID_PARAMETER"},
		{name: "unknown metric", path: "/api/cross_section/series/volatility", wantStatus: http.StatusBadRequest, wantCode: "INVALID_PARAMETER"},
		{name: "missing report", path: "/api/time_series/stats", wantStatus: http.StatusNotFound, wantCode: "REPORT_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := getJSON(t, srv.URL+tt.path)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body["error_code"])
		})
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := getJSON(t, srv.URL+"/healthz")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}
