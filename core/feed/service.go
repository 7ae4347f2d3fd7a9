// ABOUTME: Feed discovery service lists candidate article URLs from a feed
// ABOUTME: Lets clients queue many extractions from one RSS/Atom URL

package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	coreerrors "pacereader-api/core/errors"
	"pacereader-api/core/interfaces"

	"github.com/mmcdole/gofeed"
)

const cacheTTL = 30 * time.Minute

// DiscoveredArticle is one feed entry worth extracting.
type DiscoveredArticle struct {
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Published *time.Time `json:"published,omitempty"`
}

type Service struct {
	httpClient interfaces.HTTPClient
	cache      interfaces.Cache
	logger     interfaces.Logger
}

func NewService(deps interfaces.Dependencies) *Service {
	return &Service{
		httpClient: deps.HTTPClient,
		cache:      deps.Cache,
		logger:     deps.Logger,
	}
}

// Discover fetches and parses the feed, returning its entries in feed
// order. Entries without a link are skipped.
func (s *Service) Discover(ctx context.Context, feedURL string) ([]DiscoveredArticle, error) {
	if feedURL == "" {
		return nil, &coreerrors.ValidationError{Field: "feedUrl", Message: "cannot be empty"}
	}

	cacheKey := fmt.Sprintf("discover:%s", feedURL)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached []DiscoveredArticle
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	resp, err := s.httpClient.Get(ctx, feedURL)
	if err != nil {
		return nil, &coreerrors.NetworkError{URL: feedURL, Cause: err}
	}

	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &coreerrors.NetworkError{URL: feedURL, StatusCode: resp.StatusCode()}
	}

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, &coreerrors.ParsingError{URL: feedURL, Cause: err}
	}

	articles := make([]DiscoveredArticle, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		articles = append(articles, DiscoveredArticle{
			Title:     item.Title,
			URL:       item.Link,
			Published: item.PublishedParsed,
		})
	}

	if s.cache != nil {
		if data, err := json.Marshal(articles); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, cacheTTL)
		}
	}

	return articles, nil
}
