// ABOUTME: Service layer implementation for readable-content extraction
// ABOUTME: Runs the strategy chain from density scoring down to meta tags

package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"pacereader-api/core/domain"
	coreerrors "pacereader-api/core/errors"
	"pacereader-api/core/interfaces"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/text/encoding/charmap"
)

const cacheTTL = 1 * time.Hour

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

// Extract runs the full extraction pipeline against a URL and returns
// the article title and plain text content.
func (s *Service) Extract(ctx context.Context, rawURL string) (*domain.ExtractedContent, error) {
	normalized, parsed, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	// Check cache first
	if s.cache != nil {
		cacheKey := fmt.Sprintf("extract:%s", normalized)
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var cached domain.ExtractedContent
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var result *domain.ExtractedContent
	if isSocialPost(parsed.Host) {
		result, err = s.extractSocialPost(ctx, normalized)
	} else {
		result, err = s.extractPage(ctx, normalized, parsed)
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cacheKey := fmt.Sprintf("extract:%s", normalized)
		if data, err := json.Marshal(result); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, cacheTTL)
		}
	}

	return result, nil
}

// normalizeURL prepends https:// when no scheme is present and
// validates that the result parses with a host.
func normalizeURL(rawURL string) (string, *url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", nil, &coreerrors.InvalidURLError{URL: rawURL}
	}

	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return "", nil, &coreerrors.InvalidURLError{URL: rawURL}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", nil, &coreerrors.InvalidURLError{URL: rawURL}
	}

	return trimmed, parsed, nil
}

// extractPage is the generic scrape path for any non-special-cased host.
func (s *Service) extractPage(ctx context.Context, pageURL string, parsed *url.URL) (*domain.ExtractedContent, error) {
	html, err := s.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &coreerrors.ParsingError{URL: pageURL, Cause: err}
	}

	title := extractTitle(doc)

	// Content selection mutates the tree, so it runs on a second parse
	// while title and meta fallbacks keep the original document.
	working, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &coreerrors.ParsingError{URL: pageURL, Cause: err}
	}
	stripBoilerplate(working)

	if content, sel := selectByDensity(working); content != "" {
		return s.buildResult(title, content, selectionHTML(sel)), nil
	}

	if content, sel := selectByContainers(working); content != "" {
		return s.buildResult(title, content, selectionHTML(sel)), nil
	}

	if content, contentHTML := extractWithReadability(html, parsed); content != "" {
		return s.buildResult(title, content, contentHTML), nil
	}

	if content := extractMetaContent(doc); content != "" {
		return s.buildResult(title, content, ""), nil
	}

	s.logger.Warn("All extraction strategies exhausted", map[string]interface{}{
		"url": pageURL,
	})
	return nil, &coreerrors.NoContentFoundError{URL: pageURL}
}

// fetchPage retrieves the page body and decodes it as UTF-8, falling
// back to Latin-1. Non-2xx responses are network errors, not content.
func (s *Service) fetchPage(ctx context.Context, pageURL string) (string, error) {
	resp, err := s.httpClient.Get(ctx, pageURL)
	if err != nil {
		return "", &coreerrors.NetworkError{URL: pageURL, Cause: err}
	}

	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return "", &coreerrors.NetworkError{URL: pageURL, StatusCode: resp.StatusCode()}
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", &coreerrors.NetworkError{URL: pageURL, Cause: err}
	}

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", &coreerrors.ParsingError{URL: pageURL, Cause: err}
	}
	return string(decoded), nil
}

// buildResult attaches a markdown rendition when the chosen fragment's
// HTML is available. Markdown conversion failure is never fatal.
func (s *Service) buildResult(title, content, contentHTML string) *domain.ExtractedContent {
	result := &domain.ExtractedContent{
		Title:   title,
		Content: content,
	}

	if contentHTML != "" {
		converter := md.NewConverter("", true, nil)
		markdown, err := converter.ConvertString(contentHTML)
		if err != nil {
			s.logger.Debug("Failed to convert content to markdown", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			result.Markdown = strings.TrimSpace(markdown)
		}
	}

	return result
}

// selectionHTML renders a selection back to HTML for the markdown
// rendition. Errors just mean no markdown.
func selectionHTML(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	html, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return html
}

// extractWithReadability runs go-readability as a late fallback. Its
// output passes through the same cleaning and substantiality gate as
// every other strategy.
func extractWithReadability(html string, pageURL *url.URL) (string, string) {
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return "", ""
	}

	content := cleanText(article.TextContent)
	if !isSubstantial(content) {
		return "", ""
	}
	return content, article.Content
}
