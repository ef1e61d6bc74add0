// lyrics.ovh-style implementation of [Lyrics]
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rendydev404/beatly-backend/internal/shared"
)

const defaultLyricsBaseURL = "https://api.lyrics.ovh/v1"

// LyricsService implements [Lyrics] against a lyrics.ovh-compatible API.
type LyricsService struct {
	baseURL    string
	httpClient *http.Client
}

// NewLyricsService creates a new lyrics client.
func NewLyricsService(baseURL string) *LyricsService {
	if baseURL == "" {
		baseURL = defaultLyricsBaseURL
	}

	return &LyricsService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GetLyrics fetches lyrics for a song.
//
// Calls GET /{artist}/{title}; a 404 maps to [shared.ErrLyricsNotFound].
func (l *LyricsService) GetLyrics(ctx context.Context, artist, title string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", l.baseURL, url.PathEscape(artist), url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s - %s", shared.ErrLyricsNotFound, artist, title)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: lyrics status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var result struct {
		Lyrics string `json:"lyrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Lyrics == "" {
		return "", fmt.Errorf("%w: %s - %s", shared.ErrLyricsNotFound, artist, title)
	}

	return result.Lyrics, nil
}
