package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		titles []string
	}{
		{name: "empty matches all", query: "  ", titles: []string{
			"A100 x8 — 640 GB HBM", "H100 x4 — 320 GB HBM3", "L40S x8 — 192 GB GDDR6",
			"RTX 4090 x4 — 96 GB GDDR6X", "A100 x16 — 1.3 TB HBM", "MI300X x8 — 1.5 TB HBM3",
		}},
		{name: "case insensitive", query: "a100", titles: []string{"A100 x8 — 640 GB HBM", "A100 x16 — 1.3 TB HBM"}},
		{name: "all terms", query: "a100 x16", titles: []string{"A100 x16 — 1.3 TB HBM"}},
		{name: "specs", query: "512 GB RAM", titles: []string{"H100 x4 — 320 GB HBM3"}},
		{name: "no match", query: "tpu", titles: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, o := range Search(tt.query) {
				got = append(got, o.Title)
			}
			assert.Equal(t, tt.titles, got)
		})
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Title = "mutated"
	assert.Equal(t, "A100 x8 — 640 GB HBM", All()[0].Title)
}

func TestLookup(t *testing.T) {
	o, ok := Lookup("h100 x4 — 320 gb hbm3")
	require.True(t, ok)
	assert.Equal(t, "$6.15/hr", o.Price)

	o, ok = Lookup("MI300X")
	require.True(t, ok)
	assert.Equal(t, "MI300X x8 — 1.5 TB HBM3", o.Title)

	_, ok = Lookup("A100")
	assert.False(t, ok, "ambiguous lookups should fail")
}

func TestOfferingSelection(t *testing.T) {
	o, _ := Lookup("L40S")
	sel := o.Selection()
	assert.Equal(t, o.Title, sel.Title)
	assert.Equal(t, o.Specs, sel.Specs)
	assert.Equal(t, o.Price, sel.Price)
}

func TestHandlerSearch(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/catalog?q=rtx", nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SearchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "rtx", resp.Query)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "RTX 4090 x4 — 96 GB GDDR6X", resp.Offerings[0].Title)
}

func TestHandlerSearchNoMatchIsEmptyArray(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/catalog?q=tpu", nil)
	w := httptest.NewRecorder()
	h.Search(w, req)

	assert.JSONEq(t, `{"query":"tpu","offerings":[],"count":0}`, w.Body.String())
}
