package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrUnavailable means text generation is disabled or the remote API
// failed. Callers degrade to a placeholder message; this is never fatal.
var ErrUnavailable = errors.New("text generation unavailable")

// Client wraps the generative text API used for product recommendations
// and pet-care tips. Identical concurrent prompts are collapsed into a
// single upstream request.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
	sfg        singleflight.Group
	logger     *slog.Logger
}

// New creates a client. Empty endpoint or key yields a client that
// always reports ErrUnavailable.
func New(endpoint, apiKey, model string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
		logger:     logger,
	}
}

// Generate sends a natural-language prompt and returns the generated
// text. Failures are logged and mapped to ErrUnavailable.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.endpoint == "" || c.apiKey == "" {
		return "", ErrUnavailable
	}

	v, err, _ := c.sfg.Do(prompt, func() (interface{}, error) {
		return c.generate(ctx, prompt)
	})
	if err != nil {
		c.logger.Warn("text generation failed", "error", err)
		return "", ErrUnavailable
	}
	return v.(string), nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"model":  c.model,
		"prompt": prompt,
	})
	if err != nil {
		return "", fmt.Errorf("marshal prompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	if parsed.Text == "" {
		return "", fmt.Errorf("empty generation response")
	}
	return parsed.Text, nil
}
