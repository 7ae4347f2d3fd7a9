package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pacereader-api/core/feed"
	"pacereader-api/core/interfaces"

	"github.com/go-chi/chi/v5"
)

type feedHTTPClient struct {
	body string
}

func (c *feedHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return &feedResponse{body: c.body}, nil
}

func (c *feedHTTPClient) Post(ctx context.Context, url string, body io.Reader) (interfaces.Response, error) {
	return nil, nil
}

type feedResponse struct {
	body string
}

func (r *feedResponse) StatusCode() int          { return 200 }
func (r *feedResponse) Body() io.ReadCloser      { return io.NopCloser(strings.NewReader(r.body)) }
func (r *feedResponse) Header(key string) string { return "" }

func newDiscoverRouter(feedBody string) chi.Router {
	service := feed.NewService(interfaces.Dependencies{
		HTTPClient: &feedHTTPClient{body: feedBody},
		Logger:     &mockLogger{},
	})

	router := chi.NewRouter()
	NewDiscoverHandler(service).RegisterRoutes(router)
	return router
}

func TestDiscover_ReturnsFeedEntries(t *testing.T) {
	feedBody := `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Blog</title>
<item><title>Post One</title><link>https://example.com/one</link></item>
</channel></rss>`
	router := newDiscoverRouter(feedBody)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/discover",
		strings.NewReader(`{"feedUrl":"https://example.com/feed.xml"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var resp []feed.DiscoveredArticle
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp) != 1 || resp[0].URL != "https://example.com/one" {
		t.Errorf("response = %+v", resp)
	}
}

func TestDiscover_EmptyFeedURL(t *testing.T) {
	router := newDiscoverRouter("")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/discover", strings.NewReader(`{"feedUrl":""}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDiscover_MalformedBody(t *testing.T) {
	router := newDiscoverRouter("")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/discover", strings.NewReader("nope")))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
