package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickerdeck/internal/catalog"
	"tickerdeck/internal/dashboard"
	"tickerdeck/internal/events"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	bus := events.NewBus(zerolog.Nop())
	session := dashboard.NewSession(dashboard.Config{
		Catalog:         catalog.Default(),
		Bus:             bus,
		Log:             zerolog.Nop(),
		SeriesPoints:    24,
		SeriesBasePrice: 100,
		Seed:            1,
	})
	return New(Config{
		Log:     zerolog.Nop(),
		Port:    0,
		Session: session,
		Bus:     bus,
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestSystemInfo(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/system/info", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Contains(t, body, "go_version")
}

func TestGetDashboard(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var vm dashboard.ViewModel
	decode(t, rec, &vm)
	assert.Len(t, vm.Series.Points, 24)
	assert.Equal(t, []string{"charts", "orders", "portfolio", "news"}, vm.Layout)
	assert.Len(t, vm.Portfolio.Holdings, 3)
}

func TestOrderFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPut, "/api/orders/draft", map[string]interface{}{
		"side": "buy", "symbol": "ETH", "amount": 2, "limit_price": 2500,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/orders/confirm", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/orders/commit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trade map[string]interface{}
	decode(t, rec, &trade)
	assert.Equal(t, "ETH", trade["symbol"])
	assert.NotEmpty(t, trade["id"])

	rec = doJSON(t, srv, http.MethodGet, "/api/orders/trades", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trades []map[string]interface{}
	decode(t, rec, &trades)
	assert.Len(t, trades, 1)
}

func TestDraftValidationError(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPut, "/api/orders/draft", map[string]interface{}{
		"side": "buy", "symbol": "XRP", "amount": 1,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCommitWithoutConfirmation(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orders/commit", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCancelRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orders/confirm", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/orders/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entry map[string]interface{}
	decode(t, rec, &entry)
	assert.Equal(t, "editing", entry["state"])
}

func TestMoveWidget(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/layout/move", map[string]interface{}{
		"from": "0", "to": 2,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Layout []string `json:"layout"`
	}
	decode(t, rec, &body)
	assert.Equal(t, []string{"orders", "portfolio", "charts", "news"}, body.Layout)
}

func TestMoveWidgetBadPayloadIsNoOp(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/layout/move", map[string]interface{}{
		"from": "not-an-index", "to": 2,
	})

	// Unparseable drag payloads are ignored, not errors.
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Layout []string `json:"layout"`
	}
	decode(t, rec, &body)
	assert.Equal(t, []string{"charts", "orders", "portfolio", "news"}, body.Layout)
}

func TestNewsEndpoints(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/news", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Items []map[string]interface{} `json:"items"`
		Total int                      `json:"total"`
	}
	decode(t, rec, &view)
	assert.Len(t, view.Items, 6)
	assert.Equal(t, 8, view.Total)

	rec = doJSON(t, srv, http.MethodPost, "/api/news/more", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var more struct {
		Total int `json:"total"`
	}
	decode(t, rec, &more)
	assert.Equal(t, 13, more.Total)
}

func TestParseTypesFilter(t *testing.T) {
	assert.Len(t, parseTypesFilter(""), 6)
	assert.Equal(t, []events.EventType{events.StateChanged}, parseTypesFilter("state_changed"))
	assert.Len(t, parseTypesFilter("bogus"), 6, "unknown-only filter falls back to everything")
	assert.Len(t, parseTypesFilter("series_advanced, order_committed"), 2)
}
