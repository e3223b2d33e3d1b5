package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/ensoview/internal/contract"
	"github.com/huangsam/ensoview/internal/sourcedb"
	"github.com/huangsam/ensoview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// countingSource serves SOI and OLR tables and counts loads. ONI is missing.
type countingSource struct {
	loads atomic.Int32
}

func (s *countingSource) Load(_ context.Context, spec schema.IndexSourceSpec) (schema.RawTable, error) {
	s.loads.Add(1)
	switch spec.Kind {
	case schema.SOI:
		return schema.RawTable{
			Fields: []string{"date", "soi"},
			Records: []schema.RawRecord{
				{"date": "1997-10-01", "soi": "-1.1"},
				{"date": "1997-11-01", "soi": "-1.4"},
				{"date": "1997-12-01", "soi": "0.3"},
			},
			Origin: "soi_data.csv",
		}, nil
	case schema.OLR:
		return schema.RawTable{Fields: []string{"month", "olr"}, Origin: "olr_data.csv"}, nil
	default:
		return schema.RawTable{}, &schema.SourceMissingError{Index: spec.Kind, Searched: spec.Candidates}
	}
}

func testServer(t *testing.T, store contract.SourceStore) (*Server, *countingSource) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &contract.Config{
		Index:       schema.SOI,
		ChartWidth:  600,
		ChartHeight: 300,
		CacheTTL:    time.Minute,
	}
	src := &countingSource{}
	return NewServer(cfg, src, store, nil), src
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestIndexRedirect(t *testing.T) {
	s, _ := testServer(t, nil)
	rec := do(t, s, http.MethodGet, "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/chart/soi", rec.Header().Get("Location"))
}

func TestGetSeries(t *testing.T) {
	s, _ := testServer(t, nil)
	rec := do(t, s, http.MethodGet, "/api/series/SOI")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "ok", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "soi", data["index"])
	assert.Len(t, data["points"], 3)
	assert.Equal(t, float64(3), body["meta"].(map[string]any)["count"])
}

func TestGetSeriesIsCached(t *testing.T) {
	s, src := testServer(t, nil)
	for range 3 {
		require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/series/soi").Code)
	}
	assert.Equal(t, int32(1), src.loads.Load())

	rec := do(t, s, http.MethodDelete, "/api/cache")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["data"].(map[string]any)["purged"])

	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/api/series/soi").Code)
	assert.Equal(t, int32(2), src.loads.Load())
}

func TestCacheDisabledWithZeroTTL(t *testing.T) {
	s, src := testServer(t, nil)
	s.cfg.CacheTTL = 0
	s.series = NewSeriesCache(s.cfg, src)

	do(t, s, http.MethodGet, "/api/series/soi")
	do(t, s, http.MethodGet, "/api/series/soi")
	assert.Equal(t, int32(2), src.loads.Load())
}

func TestSeriesErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
		msg    string
	}{
		{"unknown index", "/api/series/enso", http.StatusNotFound, "unknown index 'enso'"},
		{"missing source", "/api/series/oni", http.StatusNotFound, "ONI source not found"},
		{"schema mismatch", "/api/series/olr", http.StatusUnprocessableEntity, "OLR source columns not recognized"},
		{"bad position", "/api/series/soi/select?at=x", http.StatusBadRequest, "invalid at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := testServer(t, nil)
			rec := do(t, s, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.Contains(t, body["message"], tt.msg)
			assert.Equal(t, float64(tt.status), body["code"])
		})
	}
}

func TestSelectPoint(t *testing.T) {
	s, _ := testServer(t, nil)

	tests := []struct {
		query    string
		position float64
		date     string
	}{
		{"", 2, "1997-12-01"},
		{"?at=1", 1, "1997-11-01"},
		{"?at=-3", 0, "1997-10-01"},
		{"?at=99", 2, "1997-12-01"},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodGet, "/api/series/soi/select"+tt.query)
		require.Equal(t, http.StatusOK, rec.Code)
		data := decode(t, rec)["data"].(map[string]any)
		assert.Equal(t, tt.position, data["position"], tt.query)
		summary := data["summary"].(map[string]any)
		assert.Equal(t, tt.date, summary["date"], tt.query)
	}
}

func TestSelectPointSummary(t *testing.T) {
	s, _ := testServer(t, nil)
	rec := do(t, s, http.MethodGet, "/api/series/soi/select?at=1")
	data := decode(t, rec)["data"].(map[string]any)

	summary := data["summary"].(map[string]any)
	assert.Equal(t, "-1.40", summary["value_text"])
	assert.Equal(t, "El Niño", summary["label"])
	assert.Equal(t, "red", summary["color"])

	marker := data["marker"].(map[string]any)
	assert.Equal(t, []any{float64(1)}, marker["traces"])
}

func TestListIndices(t *testing.T) {
	s, _ := testServer(t, nil)
	s.cfg.Thresholds = map[schema.IndexKind]schema.Thresholds{schema.OLR: {Positive: 2, Negative: -2}}

	rec := do(t, s, http.MethodGet, "/api/indices")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].([]any)
	require.Len(t, data, 3)
	olr := data[2].(map[string]any)
	assert.Equal(t, "olr", olr["index"])
	assert.Equal(t, float64(2), olr["thresholds"].(map[string]any)["positive"])
}

func TestChartPage(t *testing.T) {
	s, _ := testServer(t, nil)
	rec := do(t, s, http.MethodGet, "/chart/soi?at=0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), `value="0"`)
	assert.Contains(t, rec.Body.String(), `href="/chart/oni"`)
}

func TestChartImage(t *testing.T) {
	s, _ := testServer(t, nil)
	rec := do(t, s, http.MethodGet, "/png/soi")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t, nil)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/readyz").Code)
}

func TestReadyPingsStore(t *testing.T) {
	store := &sourcedb.MockSourceStore{}
	store.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()
	store.On("Ping", mock.Anything).Return(nil).Once()

	s, _ := testServer(t, store)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, s, http.MethodGet, "/readyz").Code)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/readyz").Code)
	store.AssertExpectations(t)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&schema.EmptySeriesError{Index: schema.OLR}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestNewLogger(t *testing.T) {
	for _, cfg := range []contract.LogConfig{
		{Level: "debug", Encoding: "console"},
		{Level: "nonsense", Encoding: "json"},
		{},
	} {
		logger, err := NewLogger(cfg)
		require.NoError(t, err)
		require.NotNil(t, logger)
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	s, _ := testServer(t, nil)
	s.cfg.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
