package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// excerptLimit bounds how much of an upstream error body is carried back
// to the caller.
const excerptLimit = 100

// Message is a single chat message in the OpenAI wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the OpenAI-compatible chat completion request body.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// ChatResponse is the subset of the OpenAI-compatible response the relay
// consumes.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// Choice is one completion choice.
type Choice struct {
	Message Message `json:"message"`
}

// StatusError reports a non-success status from an upstream provider,
// carrying a bounded excerpt of the response body.
type StatusError struct {
	StatusCode  int
	BodyExcerpt string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.BodyExcerpt)
}

// Client issues OpenAI-compatible chat completion calls. A single Client
// is shared across requests; it holds no per-request state.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an upstream client. A nil httpClient gets a default
// with a 60 second timeout.
func NewClient(httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
	}
}

// ChatCompletion issues exactly one POST to the given endpoint with a
// Bearer credential. No retries: a failed call surfaces immediately.
// Non-2xx statuses become a *StatusError with the body read as text, so
// non-JSON error bodies are tolerated.
func (c *Client) ChatCompletion(ctx context.Context, endpoint, credential string, req *ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal upstream request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+credential)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		c.logger.Warn("upstream returned non-success status",
			zap.String("endpoint", endpoint),
			zap.Int("status", httpResp.StatusCode))
		return nil, &StatusError{
			StatusCode:  httpResp.StatusCode,
			BodyExcerpt: Excerpt(string(respBody), excerptLimit),
		}
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal upstream response: %w", err)
	}
	return &chatResp, nil
}

// Excerpt truncates s to at most maxLen bytes.
func Excerpt(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
