package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Simplici0/wdquote/internal/catalog"
	"github.com/Simplici0/wdquote/internal/pricing"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	srv := newServer(catalog.Default(), "", zap.NewNop())
	srv.templatesDir = "../../web/templates"
	srv.staticDir = "../../web/static"
	return srv.routes()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAPIQuoteReturnsPricedQuote(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodPost, "/api/quote", `{
		"client_name": "Jane Builder",
		"project_address": "12 Steel St",
		"items": [
			{"product_id": "awning-window", "size_index": 2, "quantity": 6, "glass_id": "low-e", "addon_ids": ["flyscreen"]}
		]
	}`)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var q pricing.Quote
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &q))
	assert.Regexp(t, `^BLS-WD-\d{6}-[A-Z0-9]{3}$`, q.QuoteNumber)
	assert.Equal(t, "Jane Builder", q.ClientName)
	require.Len(t, q.LineItems, 1)
	assert.Equal(t, "Black", q.LineItems[0].FinishOption)
	assert.Equal(t, 6697.50, q.Subtotal)
	assert.Equal(t, 669.75, q.GST)
	assert.Equal(t, 7367.25, q.Total)
}

func TestAPIQuoteAppliesItemDefaults(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodPost, "/api/quote",
		`{"client_name": "c", "project_address": "a", "items": [{"product_id": "pivot-door"}]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var q pricing.Quote
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &q))
	require.Len(t, q.LineItems, 1)
	li := q.LineItems[0]
	assert.Equal(t, "900 x 2400mm", li.SizeLabel)
	assert.Equal(t, 1, li.Quantity)
	assert.Equal(t, "6.38mm Clear Laminated", li.GlassOption)
	assert.Equal(t, []string{}, li.Addons)
	assert.Equal(t, 3800.00, li.LineTotal)
}

func TestAPIQuoteRejectsWholeQuoteOnUnknownProduct(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodPost, "/api/quote", `{
		"client_name": "c", "project_address": "a",
		"items": [{"product_id": "awning-window"}, {"product_id": "skylight"}]
	}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "unknown product")
	assert.NotContains(t, body, "line_items")
}

func TestAPIQuoteRejectsBadSizeIndexAndQuantity(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodPost, "/api/quote",
		`{"items": [{"product_id": "fixed-window", "size_index": 5}]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid size index")

	rr = doRequest(t, h, http.MethodPost, "/api/quote",
		`{"items": [{"product_id": "fixed-window", "quantity": 0}]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid quantity")
}

func TestAPIQuoteRejectsMalformedJSON(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodPost, "/api/quote", `{"items": [`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestAPITakeoffEchoesFilename(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodPost, "/api/takeoff", `{"filename": "schedule-rev-b.pdf"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Filename       string           `json:"filename"`
		Status         string           `json:"status"`
		Confidence     float64          `json:"confidence"`
		ExtractedItems []map[string]any `json:"extracted_items"`
		Summary        map[string]int   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "schedule-rev-b.pdf", body.Filename)
	assert.Equal(t, "extracted", body.Status)
	assert.Equal(t, 0.94, body.Confidence)
	assert.Len(t, body.ExtractedItems, 7)
	assert.Equal(t, map[string]int{"total_windows": 13, "total_doors": 3, "unique_types": 7}, body.Summary)
}

func TestAPIProductsListsCatalog(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string][]map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Len(t, body["windows"], 4)
	assert.Len(t, body["doors"], 4)
	assert.Len(t, body["glass_options"], 8)
	assert.Len(t, body["finish_options"], 7)
	assert.Len(t, body["addon_options"], 6)
	assert.Equal(t, "awning-window", body["windows"][0]["id"])
	assert.Equal(t, []any{"windows"}, body["addon_options"][0]["applies_to"])
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestPagesRender(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "Awning Window")
	assert.Contains(t, rr.Body.String(), "$1,085.00")

	for _, path := range []string{"/quote", "/upload", "/result"} {
		rr := doRequest(t, h, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}

	rr = doRequest(t, h, http.MethodGet, "/quote", "")
	assert.Contains(t, rr.Body.String(), `"hinged-door"`)
}

func TestStaticFilesServed(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodGet, "/static/style.css", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}
