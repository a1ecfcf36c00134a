package ui

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	dstats "handlestats/domain/stats"
	"handlestats/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource session.Snapshot

func (s staticSource) Snapshot() session.Snapshot { return session.Snapshot(s) }

func newTestApp(t *testing.T, snap session.Snapshot) *App {
	t.Helper()
	app, err := NewApp(staticSource(snap))
	require.NoError(t, err)
	return app
}

func get(app *App, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestApp_Loading(t *testing.T) {
	app := newTestApp(t, session.Snapshot{State: session.StateLoading, Source: "survey.csv"})

	rec := get(app, "/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Loading survey data")
	assert.Contains(t, rec.Body.String(), `http-equiv="refresh"`)

	rec = get(app, "/api/result")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"state":"loading","source":"survey.csv"}`, rec.Body.String())

	rec = get(app, "/report.md")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestApp_Error(t *testing.T) {
	app := newTestApp(t, session.Snapshot{
		State:  session.StateError,
		Source: "https://example.com/x.csv",
		Error:  "failed to fetch https://example.com/x.csv: HTTP 404 <Not Found>",
	})

	rec := get(app, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load survey data")
	assert.Contains(t, rec.Body.String(), "HTTP 404 &lt;Not Found&gt;")

	rec = get(app, "/api/result")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["state"])
	assert.Contains(t, body["error"], "HTTP 404")
}

func TestApp_Ready(t *testing.T) {
	result := &dstats.Result{
		Participants: 2,
		Insights:     []dstats.Insight{{Key: "best_overall", Title: "Curved Handle scores best overall"}},
	}
	app := newTestApp(t, session.Snapshot{State: session.StateReady, Source: "survey.csv", Result: result})

	rec := get(app, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Curved Handle scores best overall")
	assert.Contains(t, rec.Body.String(), "<table>")
	assert.NotContains(t, rec.Body.String(), `http-equiv="refresh"`)

	rec = get(app, "/api/result")
	assert.Equal(t, http.StatusOK, rec.Code)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.EqualValues(t, 2, decoded["participants"])

	rec = get(app, "/report.md")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Participants: **2**")
}

func TestApp_Status(t *testing.T) {
	app := newTestApp(t, session.Snapshot{State: session.StateReady, Source: "survey.csv", Result: &dstats.Result{}})

	rec := get(app, "/api/status")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"state":"ready","source":"survey.csv"}`, rec.Body.String())
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"score": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEqual(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Failed to encode response")

	rec = httptest.NewRecorder()
	writeJSON(rec, http.StatusAccepted, map[string]float64{"score": 1.5})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"score":1.5}`, rec.Body.String())
}
