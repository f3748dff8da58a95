package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/KaramelBytes/edaloom-cli/internal/eda"
	"github.com/KaramelBytes/edaloom-cli/internal/plots"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	df, err := dataset.FromRecords(
		[]string{"fruit", "weight"},
		[][]string{{"apple", "1.5"}, {"pear", "2.25"}, {"apple", ""}, {"plum", "-3"}},
		0,
	)
	require.NoError(t, err)
	return NewServer(df, "fruit.csv", eda.DefaultOptions())
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestColumns(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/api/columns")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, int64(4), gjson.Get(body, "rows").Int())
	assert.Equal(t, "fruit", gjson.Get(body, "columns.0.name").String())
	assert.Equal(t, "discrete", gjson.Get(body, "columns.0.type").String())
	assert.Equal(t, int64(1), gjson.Get(body, "columns.1.missing").Int())
}

func TestSummaryAndOverrides(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/api/columns/fruit/summary")
	require.Equal(t, http.StatusOK, w.Code)
	var payload struct {
		Column string           `json:"column"`
		Type   string           `json:"type"`
		Table  []map[string]any `json:"table"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "fruit", payload.Column)
	assert.Equal(t, "discrete", payload.Type)
	require.Len(t, payload.Table, 1)
	assert.EqualValues(t, 3, payload.Table[0]["count_unique"])

	w = get(t, s, "/api/columns/weight/summary?type=continuous")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "continuous", gjson.Get(w.Body.String(), "type").String())
	assert.InDelta(t, -3.0, gjson.Get(w.Body.String(), "table.0.min").Float(), 1e-9)
}

func TestErrorStatuses(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/columns/missing/summary").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/columns/fruit/summary?type=nope").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(t, s, "/api/columns/fruit/summary?palette=neon").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, get(t, s, "/api/columns/fruit/summary?type=continuous").Code)
}

func TestFigureEndpoints(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/api/columns/fruit/figure.png")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = get(t, s, "/api/columns/weight/figure.svg?type=continuous")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<svg")
}

type brokenPanel struct{}

func (brokenPanel) Draw(draw.Canvas, float64) error { return errors.New("panel exploded") }

func TestFigureRenderFailureIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fig := plots.NewFigure(100, 100, 1, 1, plots.DefaultStyle())
	require.NoError(t, fig.Place(0, 0, 1, 1, brokenPanel{}))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	writeFigure(c, "x", fig, "png", "image/png")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, gjson.Get(w.Body.String(), "error").String(), "panel exploded")
	assert.NotEqual(t, "image/png", w.Header().Get("Content-Type"))
}

func TestInfiniteValuesAreUnprocessable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	df, err := dataset.FromRecords([]string{"v"}, [][]string{{"1"}, {"2"}, {"3"}, {"inf"}}, 0)
	require.NoError(t, err)
	s := NewServer(df, "v.csv", eda.DefaultOptions())
	w := get(t, s, "/api/columns/v/summary?type=continuous")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
