// ABOUTME: Special-case extraction for social posts via the oEmbed API
// ABOUTME: Scraping post pages directly yields JS shells, so use embeds

package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"pacereader-api/core/domain"
	coreerrors "pacereader-api/core/errors"

	"github.com/PuerkitoBio/goquery"
)

const oembedEndpoint = "https://publish.twitter.com/oembed"

// socialHosts are the microblogging domains routed through oEmbed.
var socialHosts = map[string]bool{
	"twitter.com": true,
	"x.com":       true,
}

// isSocialPost matches the known social domains with or without the
// www and mobile subdomains.
func isSocialPost(host string) bool {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "mobile.")
	return socialHosts[host]
}

type oembedResponse struct {
	HTML       string `json:"html"`
	AuthorName string `json:"author_name"`
}

// extractSocialPost requests the oEmbed representation of the post and
// pulls the quoted text out of the embed fragment. The author becomes
// the title.
func (s *Service) extractSocialPost(ctx context.Context, postURL string) (*domain.ExtractedContent, error) {
	requestURL := fmt.Sprintf("%s?url=%s", oembedEndpoint, url.QueryEscape(postURL))

	resp, err := s.httpClient.Get(ctx, requestURL)
	if err != nil {
		return nil, &coreerrors.NetworkError{URL: postURL, Cause: err}
	}

	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &coreerrors.NetworkError{URL: postURL, StatusCode: resp.StatusCode()}
	}

	var embed oembedResponse
	if err := json.NewDecoder(body).Decode(&embed); err != nil {
		return nil, &coreerrors.ParsingError{URL: postURL, Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(embed.HTML))
	if err != nil {
		return nil, &coreerrors.ParsingError{URL: postURL, Cause: err}
	}

	text := cleanText(doc.Find("blockquote p").Text())
	if text == "" {
		text = cleanText(doc.Find("blockquote").Text())
	}
	if text == "" {
		return nil, &coreerrors.NoContentFoundError{URL: postURL}
	}

	title := strings.TrimSpace(embed.AuthorName)
	if title == "" {
		title = untitledFallback
	}

	s.logger.Debug("Extracted social post via oEmbed", map[string]interface{}{
		"url":    postURL,
		"author": title,
	})

	return &domain.ExtractedContent{
		Title:   title,
		Content: text,
	}, nil
}
