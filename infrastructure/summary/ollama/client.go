// ABOUTME: Summarizer implementation calling a local Ollama instance
// ABOUTME: Uses the /api/generate endpoint with streaming disabled

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	coreerrors "pacereader-api/core/errors"
	"pacereader-api/core/interfaces"
)

// Client implements the Summarizer interface against the Ollama HTTP API
type Client struct {
	host       string
	model      string
	httpClient interfaces.HTTPClient
	logger     interfaces.Logger
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// NewClient creates a summarizer talking to the given Ollama host
func NewClient(host, model string, httpClient interfaces.HTTPClient, logger interfaces.Logger) *Client {
	return &Client{
		host:       strings.TrimSuffix(host, "/"),
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Summarize produces a short prose summary of the article text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &coreerrors.ValidationError{Field: "text", Message: "cannot be empty"}
	}

	prompt := fmt.Sprintf(
		"Summarize the following article in two or three sentences of plain prose. "+
			"Do not use bullet points.\n\n%s", text)

	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.host + "/api/generate"
	resp, err := c.httpClient.Post(ctx, url, bytes.NewReader(payload))
	if err != nil {
		return "", &coreerrors.NetworkError{URL: url, Cause: err}
	}

	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		data, _ := io.ReadAll(body)
		c.logger.Warn("Ollama returned non-success status", map[string]interface{}{
			"status": resp.StatusCode(),
			"body":   string(data),
		})
		return "", &coreerrors.NetworkError{URL: url, StatusCode: resp.StatusCode()}
	}

	var parsed generateResponse
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return "", &coreerrors.ParsingError{URL: url, Cause: err}
	}

	summary := strings.TrimSpace(parsed.Response)
	if summary == "" {
		return "", &coreerrors.ParsingError{URL: url, Cause: fmt.Errorf("empty summary in response")}
	}

	return summary, nil
}
