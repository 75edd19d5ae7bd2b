package catalog

import (
	"encoding/json"
	"net/http"
)

// SearchResponse is the body of GET /api/catalog.
type SearchResponse struct {
	Query     string     `json:"query"`
	Offerings []Offering `json:"offerings"`
	Count     int        `json:"count"`
}

// Handler serves the catalog search.
type Handler struct{}

// NewHandler creates a catalog handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Search handles GET /api/catalog?q= requests
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	matches := Search(query)
	if matches == nil {
		matches = []Offering{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(SearchResponse{Query: query, Offerings: matches, Count: len(matches)})
}
