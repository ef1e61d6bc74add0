// YouTube Data API v3 search client with API-key pool rotation.
//
// The provider signals quota exhaustion with HTTP 403, distinct from other
// failure modes; on 403 the current key is retired for the process lifetime
// and the same query is retried with the next key in the pool.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rendydev404/beatly-backend/internal/shared"
	"golang.org/x/time/rate"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// errQuotaRejected marks a single-key 403 rejection; it never escapes Search.
var errQuotaRejected = fmt.Errorf("credential quota rejected")

// keyPool tracks which API keys have been quota-rejected and which is active.
// Exhausted flags persist until Reset is called; nothing clears them on a timer.
type keyPool struct {
	mu        sync.Mutex
	keys      []string
	exhausted []bool
	current   int
}

func newKeyPool(keys []string) *keyPool {
	return &keyPool{
		keys:      keys,
		exhausted: make([]bool, len(keys)),
	}
}

// active returns the first non-exhausted key at or after the cursor, wrapping.
// ok is false when every key is exhausted.
func (p *keyPool) active() (key string, index int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < len(p.keys); i++ {
		idx := (p.current + i) % len(p.keys)
		if !p.exhausted[idx] {
			p.current = idx
			return p.keys[idx], idx, true
		}
	}
	return "", 0, false
}

func (p *keyPool) markExhausted(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index >= 0 && index < len(p.exhausted) {
		p.exhausted[index] = true
	}
}

func (p *keyPool) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.exhausted {
		p.exhausted[i] = false
	}
	p.current = 0
}

func (p *keyPool) status() KeyStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	status := KeyStatus{
		Total:       len(p.keys),
		ActiveIndex: p.current,
		Exhausted:   []int{},
	}
	for i, exhausted := range p.exhausted {
		if exhausted {
			status.Exhausted = append(status.Exhausted, i)
		}
	}
	return status
}

func (p *keyPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}

// YouTubeSearchService implements [VideoSearcher] against the YouTube Data API.
type YouTubeSearchService struct {
	baseURL    string
	pool       *keyPool
	httpClient *http.Client
	limiter    *rate.Limiter
	maxResults int
	logger     *log.Logger
}

// YouTubeSearchOpts contains configuration options for creating a [YouTubeSearchService].
type YouTubeSearchOpts struct {
	BaseURL        string
	APIKeys        []string
	Timeout        time.Duration // per-request timeout, default 15s
	MaxResults     int           // candidates per search, default 10
	RequestsPerSec float64       // request pacing, default 5/s
	Logger         *log.Logger
}

// NewYouTubeSearchService creates a new YouTube search client with the given key pool.
func NewYouTubeSearchService(opts YouTubeSearchOpts) *YouTubeSearchService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultYouTubeBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 10
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 5.0
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &YouTubeSearchService{
		baseURL:    opts.BaseURL,
		pool:       newKeyPool(opts.APIKeys),
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		maxResults: opts.MaxResults,
		logger:     opts.Logger,
	}
}

// Search issues a keyword search, rotating to the next pool key on quota
// rejection. The rotation retry is invisible to the caller: the result is
// either a final candidate list, a transient error for this query, or
// [shared.ErrQuotaExhausted] once the whole pool is spent.
//
// The retry bound is the pool size; rotation never recurses.
func (s *YouTubeSearchService) Search(ctx context.Context, query string) ([]VideoCandidate, error) {
	if s.pool.size() == 0 {
		return nil, fmt.Errorf("%w: no API keys configured", shared.ErrMissingCredentials)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	for attempt := 0; attempt < s.pool.size(); attempt++ {
		key, index, ok := s.pool.active()
		if !ok {
			break
		}

		candidates, err := s.doSearch(ctx, query, key)
		if err == errQuotaRejected {
			s.logger.Warn("search key quota-rejected, rotating", "index", index)
			s.pool.markExhausted(index)
			continue
		}
		if err != nil {
			return nil, err
		}
		return candidates, nil
	}

	return nil, shared.ErrQuotaExhausted
}

func (s *YouTubeSearchService) doSearch(ctx context.Context, query, key string) ([]VideoCandidate, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", s.maxResults))
	params.Set("q", query)
	params.Set("key", key)

	searchURL := s.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, errQuotaRejected
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: youtube search status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var result struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
		} `json:"items"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}

	candidates := make([]VideoCandidate, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		candidates = append(candidates, VideoCandidate{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
		})
	}

	return candidates, nil
}

// ResetKeys clears all exhausted flags and rewinds the cursor to the first key.
//
// Intended to be driven by an external scheduler (e.g., a daily timer aligned
// with the provider's quota reset); nothing invokes it automatically.
func (s *YouTubeSearchService) ResetKeys() {
	s.pool.reset()
	s.logger.Info("search key pool reset")
}

// KeyStatus reports the state of the key pool.
func (s *YouTubeSearchService) KeyStatus() KeyStatus {
	return s.pool.status()
}
