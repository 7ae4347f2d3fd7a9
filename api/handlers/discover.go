// ABOUTME: Discover handler listing candidate article URLs from a feed
// ABOUTME: POST /discover takes a feed URL and returns its entries

package handlers

import (
	"encoding/json"
	"net/http"

	coreerrors "pacereader-api/core/errors"
	"pacereader-api/core/feed"

	"github.com/go-chi/chi/v5"
)

// DiscoverHandler handles feed discovery requests
type DiscoverHandler struct {
	feeds *feed.Service
}

// NewDiscoverHandler creates a new discover handler
func NewDiscoverHandler(feeds *feed.Service) *DiscoverHandler {
	return &DiscoverHandler{feeds: feeds}
}

// RegisterRoutes registers all discovery routes
func (h *DiscoverHandler) RegisterRoutes(r chi.Router) {
	r.Post("/discover", h.Discover)
}

type discoverRequest struct {
	FeedURL string `json:"feedUrl"`
}

// Discover fetches a feed and returns its entries in feed order
func (h *DiscoverHandler) Discover(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &coreerrors.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	articles, err := h.feeds.Discover(r.Context(), req.FeedURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articles)
}
