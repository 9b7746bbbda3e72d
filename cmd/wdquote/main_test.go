package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Simplici0/wdquote/internal/pricing"
	"github.com/Simplici0/wdquote/internal/takeoff"
)

func newRunContext(dbPath string) (*runContext, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &runContext{
		ctx:    context.Background(),
		log:    zap.NewNop(),
		out:    out,
		prefix: "TST",
		dbPath: dbPath,
	}, out
}

func TestCatalogCmdTable(t *testing.T) {
	rc, out := newRunContext("")

	require.NoError(t, (&CatalogCmd{}).Run(rc))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 41)
	assert.Contains(t, string(lines[0]), "BASE PRICE")
	assert.Contains(t, string(lines[1]), "awning-window")
	assert.Contains(t, string(lines[1]), "600 x 600mm")
	assert.Contains(t, out.String(), "1,085")
}

func TestCatalogCmdJSON(t *testing.T) {
	rc, out := newRunContext("")

	require.NoError(t, (&CatalogCmd{JSON: true}).Run(rc))

	var body map[string][]map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Len(t, body["windows"], 4)
	assert.Len(t, body["doors"], 4)
	assert.Len(t, body["glass_options"], 8)
	assert.Len(t, body["finish_options"], 7)
	assert.Len(t, body["addon_options"], 6)
}

func TestQuoteCmdPricesRequestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"client_name": "Jane Builder",
		"project_address": "12 Steel St",
		"items": [{"product_id": "awning-window", "size_index": 2, "quantity": 6, "glass_id": "low-e", "addon_ids": ["flyscreen"]}]
	}`), 0o600))

	rc, out := newRunContext("")
	require.NoError(t, (&QuoteCmd{Request: path}).Run(rc))

	var q pricing.Quote
	require.NoError(t, json.Unmarshal(out.Bytes(), &q))
	assert.Regexp(t, `^TST-\d{6}-[A-Z0-9]{3}$`, q.QuoteNumber)
	assert.Equal(t, 6697.50, q.Subtotal)
	assert.Equal(t, 7367.25, q.Total)
}

func TestQuoteCmdRejectsUnknownProduct(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"items": [{"product_id": "skylight"}]}`), 0o600))

	rc, out := newRunContext("")
	err := (&QuoteCmd{Request: path}).Run(rc)

	require.ErrorIs(t, err, pricing.ErrUnknownProduct)
	assert.Empty(t, out.String())
}

func TestQuoteCmdMissingFile(t *testing.T) {
	rc, _ := newRunContext("")
	err := (&QuoteCmd{Request: filepath.Join(t.TempDir(), "nope.json")}).Run(rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open quote request")
}

func TestTakeoffCmd(t *testing.T) {
	rc, out := newRunContext("")
	require.NoError(t, (&TakeoffCmd{Filename: "plans.pdf"}).Run(rc))

	var result takeoff.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "plans.pdf", result.Filename)
	assert.Len(t, result.ExtractedItems, 7)

	rc, out = newRunContext("")
	require.NoError(t, (&TakeoffCmd{Filename: "plans.pdf", Price: true, Client: "Takeoff"}).Run(rc))

	var q pricing.Quote
	require.NoError(t, json.Unmarshal(out.Bytes(), &q))
	assert.Equal(t, "Takeoff", q.ClientName)
	assert.Equal(t, 47507.90, q.Total)
}

func TestSeedThenCatalogFromDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	rc, out := newRunContext("")
	require.NoError(t, (&SeedCmd{DB: dbPath}).Run(rc))
	assert.Contains(t, out.String(), "29 inserted, 0 already present")

	rc, out = newRunContext(dbPath)
	require.NoError(t, (&CatalogCmd{JSON: true}).Run(rc))

	var body map[string][]map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Len(t, body["windows"], 4)
	assert.Equal(t, "awning-window", body["windows"][0]["id"])
}
