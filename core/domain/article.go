// ABOUTME: Article domain model represents an extracted, readable article
// ABOUTME: Content is immutable once created; summary may be filled in later

package domain

import "time"

// Article is a single piece of extracted readable content.
type Article struct {
	// ID is the unique identifier for the article
	ID string

	// URL is the source page the article was extracted from
	URL string

	// Title is the extracted article title
	Title string

	// Content is the plain extracted text. It is never modified after
	// the article is created.
	Content string

	// Summary is an optional short prose summary, populated by an
	// independent summarization step after creation.
	Summary string

	// DateAdded is when the article was extracted and stored
	DateAdded time.Time

	// LastRead is when a reading session last touched the article
	LastRead *time.Time
}

// IsValid checks if the article has all required fields.
func (a *Article) IsValid() bool {
	if a.ID == "" {
		return false
	}

	if a.URL == "" {
		return false
	}

	if a.Content == "" {
		return false
	}

	return true
}

// ExtractedContent is the raw result of running the extraction pipeline
// against a URL, before an Article record exists.
type ExtractedContent struct {
	Title    string
	Content  string
	Markdown string
}
