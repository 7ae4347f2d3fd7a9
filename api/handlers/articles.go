// ABOUTME: Article handlers for extraction, listing, and summarization
// ABOUTME: POST /articles runs the extraction pipeline and stores the result

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"pacereader-api/core/domain"
	coreerrors "pacereader-api/core/errors"
	"pacereader-api/core/interfaces"
	"pacereader-api/core/reading"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ArticleHandler handles article lifecycle requests
type ArticleHandler struct {
	extractor  interfaces.ExtractionService
	summarizer interfaces.Summarizer
	storage    interfaces.Storage
	sessions   *reading.Manager
	logger     interfaces.Logger
}

// NewArticleHandler creates a new article handler. The summarizer may
// be nil when no summarization backend is configured.
func NewArticleHandler(extractor interfaces.ExtractionService, summarizer interfaces.Summarizer, deps interfaces.Dependencies, sessions *reading.Manager) *ArticleHandler {
	return &ArticleHandler{
		extractor:  extractor,
		summarizer: summarizer,
		storage:    deps.Storage,
		sessions:   sessions,
		logger:     deps.Logger,
	}
}

// RegisterRoutes registers all article routes
func (h *ArticleHandler) RegisterRoutes(r chi.Router) {
	r.Post("/articles", h.Create)
	r.Get("/articles", h.List)
	r.Get("/articles/{id}", h.Get)
	r.Delete("/articles/{id}", h.Delete)
	r.Post("/articles/{id}/summary", h.Summarize)
}

type createArticleRequest struct {
	URL string `json:"url"`
}

type articleResponse struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Summary   string     `json:"summary,omitempty"`
	DateAdded time.Time  `json:"dateAdded"`
	LastRead  *time.Time `json:"lastRead,omitempty"`
}

func toArticleResponse(article *domain.Article) articleResponse {
	return articleResponse{
		ID:        article.ID,
		URL:       article.URL,
		Title:     article.Title,
		Content:   article.Content,
		Summary:   article.Summary,
		DateAdded: article.DateAdded,
		LastRead:  article.LastRead,
	}
}

// Create extracts readable content from the submitted URL and stores
// it. Re-submitting a URL already stored returns the existing article.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &coreerrors.ValidationError{Field: "body", Message: "invalid JSON"})
		return
	}

	if existing, err := h.storage.GetArticleByURL(r.Context(), req.URL); err == nil && existing != nil {
		writeJSON(w, http.StatusOK, toArticleResponse(existing))
		return
	}

	extracted, err := h.extractor.Extract(r.Context(), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	article := &domain.Article{
		ID:        uuid.New().String(),
		URL:       req.URL,
		Title:     extracted.Title,
		Content:   extracted.Content,
		DateAdded: time.Now().UTC(),
	}
	if err := h.storage.SaveArticle(r.Context(), article); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("Article stored", map[string]interface{}{
		"articleId": article.ID,
		"url":       article.URL,
	})

	writeJSON(w, http.StatusCreated, toArticleResponse(article))
}

// List returns all stored articles, newest first
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.storage.ListArticles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]articleResponse, 0, len(articles))
	for _, article := range articles {
		responses = append(responses, toArticleResponse(article))
	}

	writeJSON(w, http.StatusOK, responses)
}

// Get returns one article by ID
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	article, err := h.storage.GetArticle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toArticleResponse(article))
}

// Delete removes an article, its progress, and any live sessions
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Drop live sessions first so their unload cannot re-create
	// progress rows for the deleted article.
	h.sessions.Close(r.Context(), id)

	if err := h.storage.DeleteArticle(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summarize generates and stores a summary for the article
func (h *ArticleHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	if h.summarizer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no summarization backend configured"})
		return
	}

	id := chi.URLParam(r, "id")
	article, err := h.storage.GetArticle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if article.Summary != "" {
		writeJSON(w, http.StatusOK, map[string]string{"summary": article.Summary})
		return
	}

	summary, err := h.summarizer.Summarize(r.Context(), article.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.storage.UpdateSummary(r.Context(), id, summary); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}
