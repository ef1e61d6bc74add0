// Gemini generateContent implementation of [TextGenerator]
//
// Used for playlist and mood recommendations. Calls ride a 60 second timeout
// and retry transient failures with exponential backoff.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rendydev404/beatly-backend/internal/shared"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService implements [TextGenerator] against the Gemini REST API.
type GeminiService struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// GeminiOpts contains configuration options for creating a [GeminiService].
type GeminiOpts struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration // default 60s
}

// NewGeminiService creates a new Gemini text-generation client.
func NewGeminiService(opts GeminiOpts) (*GeminiService, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api_key required", shared.ErrMissingCredentials)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultGeminiBaseURL
	}
	if opts.Model == "" {
		opts.Model = "gemini-1.5-flash"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}

	return &GeminiService{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		model:      opts.Model,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}, nil
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate produces text for the given prompt.
//
// Transient failures (transport errors, 5xx, 429) are retried with exponential
// backoff for up to three attempts; client errors fail immediately.
func (g *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	var text string

	operation := func() error {
		result, err := g.generateOnce(ctx, prompt)
		if err != nil {
			return err
		}
		text = result
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}

	return text, nil
}

func (g *GeminiService) generateOnce(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to marshal request: %w", err))
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", fmt.Errorf("%w: gemini status %d", shared.ErrAPIRequest, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", backoff.Permanent(fmt.Errorf("%w: gemini status %d", shared.ErrAPIRequest, resp.StatusCode))
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", backoff.Permanent(fmt.Errorf("%w: empty gemini response", shared.ErrAPIRequest))
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
