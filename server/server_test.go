package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-dashboard/models"
	"catalog-dashboard/presentation"
	"catalog-dashboard/services"
	"catalog-dashboard/utils"
)

type memSource struct {
	rows []*models.RawTitle
	err  error
}

func (m *memSource) Name() string { return "memory" }

func (m *memSource) ReadRaw(ctx context.Context) ([]*models.RawTitle, error) {
	return m.rows, m.err
}

func newTestServer(src *memSource) http.Handler {
	logger := utils.NewNopLogger()
	store := services.NewStore(src, services.NewCleaner(logger), logger)
	insights := services.NewInsightService(logger, services.InsightOptions{})
	return New(store, insights, presentation.DefaultOptions(), logger).Router()
}

func fixture() *memSource {
	return &memSource{rows: []*models.RawTitle{
		{Title: "Alpha", Type: "Movie", Country: "France", ReleaseYear: "2001", ListedIn: "Dramas", Duration: "90 min"},
		{Title: "Beta", Type: "TV Show", Country: "France, India", ReleaseYear: "2001", ListedIn: "Dramas, Comedies", Duration: "2 Seasons"},
		{Title: "Gamma", Type: "Movie", Country: "India", ReleaseYear: "2003", ListedIn: "Comedies", Duration: "120 min"},
	}}
}

func get(t *testing.T, h http.Handler, path string, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if query != nil {
		target += "?" + query.Encode()
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeDashboard(t *testing.T, rec *httptest.ResponseRecorder) presentation.Dashboard {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var d presentation.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	return d
}

func TestDashboardDefaultSelection(t *testing.T) {
	h := newTestServer(fixture())

	d := decodeDashboard(t, get(t, h, "/api/v1/dashboard", nil))

	assert.Equal(t, 3, d.FilteredTitles)
	assert.Equal(t, []string{"Movie", "TV Show"}, d.Selection.Types)
	assert.Equal(t, presentation.Counter{Label: "Total Titles", Value: 3}, d.Counters[0])
	assert.Len(t, d.Table.Rows, 3)
	assert.Equal(t, "Alpha Beta Gamma", d.WordCloud.Text)
}

func TestDashboardExplicitEmptyTypeSelection(t *testing.T) {
	h := newTestServer(fixture())

	d := decodeDashboard(t, get(t, h, "/api/v1/dashboard", url.Values{"type": {""}}))

	assert.Equal(t, 0, d.FilteredTitles)
	assert.True(t, d.Chart(presentation.ChartTopGenres).Empty)
	// base-scoped outputs are unaffected
	assert.False(t, d.Chart(presentation.ChartGenreCountry).Empty)
	assert.Equal(t, 3, d.Counters[0].Value)
}

func TestDashboardCountryFilterIsExact(t *testing.T) {
	h := newTestServer(fixture())

	d := decodeDashboard(t, get(t, h, "/api/v1/dashboard", url.Values{"country": {"France"}}))
	assert.Equal(t, 1, d.FilteredTitles)

	d = decodeDashboard(t, get(t, h, "/api/v1/dashboard", url.Values{"country": {"France, India"}}))
	assert.Equal(t, 1, d.FilteredTitles)
	assert.Equal(t, "Beta", d.Table.Rows[0][0])
}

func TestDashboardYearAndType(t *testing.T) {
	h := newTestServer(fixture())

	d := decodeDashboard(t, get(t, h, "/api/v1/dashboard", url.Values{"type": {"Movie"}, "year": {"2001", "2003"}}))
	assert.Equal(t, 2, d.FilteredTitles)
	assert.Equal(t, []int{2001, 2003}, d.Selection.Years)
}

func TestDashboardBadYear(t *testing.T) {
	h := newTestServer(fixture())

	rec := get(t, h, "/api/v1/dashboard", url.Values{"year": {"twenty"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_SELECTION")
}

func TestTitles(t *testing.T) {
	h := newTestServer(fixture())

	rec := get(t, h, "/api/v1/titles", url.Values{"type": {"TV Show"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var table presentation.Table
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.Equal(t, presentation.TableColumns, table.Columns)
	assert.Equal(t, [][]string{{"Beta", "TV Show", "France, India", "2001", "Dramas, Comedies", ""}}, table.Rows)
}

func TestOptions(t *testing.T) {
	h := newTestServer(fixture())

	rec := get(t, h, "/api/v1/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var opts optionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []string{"Movie", "TV Show"}, opts.DefaultTypes)
	assert.Equal(t, []int{2003, 2001}, opts.Years)
	assert.Equal(t, []string{"France", "France, India", "India"}, opts.Countries)
	assert.Equal(t, 3, opts.Records)
}

func TestLoadFailureIsServiceUnavailable(t *testing.T) {
	h := newTestServer(&memSource{err: errors.New("file missing")})

	rec := get(t, h, "/api/v1/dashboard", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "DATASET_UNAVAILABLE")

	health := get(t, h, "/healthz", nil)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), "not_loaded")
}

func TestReload(t *testing.T) {
	src := fixture()
	h := newTestServer(src)

	d := decodeDashboard(t, get(t, h, "/api/v1/dashboard", nil))
	assert.Equal(t, 3, d.FilteredTitles)

	src.rows = append(src.rows, &models.RawTitle{Title: "Delta", Type: "Movie", ListedIn: "Thrillers"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dataset/reload", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	d = decodeDashboard(t, get(t, h, "/api/v1/dashboard", nil))
	assert.Equal(t, 4, d.FilteredTitles)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(fixture())
	_ = get(t, h, "/api/v1/dashboard", nil)

	rec := get(t, h, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "catalog_insight_builds_total")
}
