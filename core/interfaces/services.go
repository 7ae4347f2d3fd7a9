// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"

	"pacereader-api/core/domain"
)

// ExtractionService extracts readable content from a URL
type ExtractionService interface {
	Extract(ctx context.Context, url string) (*domain.ExtractedContent, error)
}

// Summarizer produces a short prose summary of article content.
// Implementations may call out to a local model; failures leave the
// article summary empty and are never fatal.
type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
}
