package resolver

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/rendydev404/beatly-backend/internal/models"
	"github.com/rendydev404/beatly-backend/internal/services"
	"github.com/rendydev404/beatly-backend/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// defaultPrefetchLimit bounds how many queue items PrefetchBatch warms.
const defaultPrefetchLimit = 3

// CacheStats is a diagnostic snapshot of the resolution cache.
type CacheStats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

// Engine orchestrates video-match resolution: normalization, caching,
// in-flight deduplication, the query fallback loop, and candidate scoring.
//
// Construct one Engine at startup and share it; the cache, in-flight group,
// and the searcher's credential pool are process-lifetime state.
type Engine struct {
	searcher      services.VideoSearcher
	cache         *Cache
	group         singleflight.Group
	logger        *log.Logger
	prefetchLimit int
}

// Options contains configuration options for creating an [Engine].
type Options struct {
	CacheCapacity int
	PrefetchLimit int
	Logger        *log.Logger
}

// NewEngine creates an Engine resolving through the given searcher.
func NewEngine(searcher services.VideoSearcher, opts Options) *Engine {
	if opts.PrefetchLimit <= 0 {
		opts.PrefetchLimit = defaultPrefetchLimit
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Engine{
		searcher:      searcher,
		cache:         NewCache(opts.CacheCapacity),
		logger:        opts.Logger.With("component", "resolver"),
		prefetchLimit: opts.PrefetchLimit,
	}
}

// ResolveVideoID finds the videoId of the best "pure" upload for a song.
//
// A cached key returns immediately with no network call. Concurrent calls for
// the same key share one in-flight provider sequence and observe the same
// result. A resolution that finds no acceptable candidate returns
// [shared.ErrNoMatch] and is not cached; [shared.ErrQuotaExhausted] is
// returned once every provider credential is spent.
func (e *Engine) ResolveVideoID(ctx context.Context, title, artist string) (string, error) {
	q := Normalize(title, artist)
	key := q.CacheKey()

	if videoID, ok := e.cache.Get(key); ok {
		return videoID, nil
	}

	// The group guarantees one outstanding sequence per key and drops the
	// in-flight entry when the call settles, on every path.
	result, err, joined := e.group.Do(key, func() (any, error) {
		return e.resolve(ctx, q, key)
	})
	if err != nil {
		return "", err
	}
	if joined {
		e.logger.Debug("resolution shared with concurrent caller", "key", key)
	}
	return result.(string), nil
}

// resolve runs the query fallback loop for one cache key.
//
// Queries run strictly in BuildQueries order and never in parallel: an early
// high-precision hit beats a later one. A transient provider error abandons
// only the current query; quota exhaustion aborts the whole sequence. A
// sequence where every query errored is reported as ErrNoMatch, same as a
// genuine miss.
func (e *Engine) resolve(ctx context.Context, q Query, key string) (string, error) {
	for i, query := range BuildQueries(q) {
		candidates, err := e.searcher.Search(ctx, query)
		if err != nil {
			if errors.Is(err, shared.ErrQuotaExhausted) {
				return "", err
			}
			e.logger.Warn("search query failed", "query", query, "err", err)
			continue
		}

		best, ok := pickBest(candidates, q)
		if !ok {
			continue
		}

		e.logger.Debug("resolved video", "key", key, "videoId", best.VideoID, "query", i+1)
		e.cache.Put(key, best.VideoID)
		return best.VideoID, nil
	}

	return "", shared.ErrNoMatch
}

// Prefetch warms the cache for a song without blocking the caller.
// The result, including any error, is discarded; a later ResolveVideoID for
// the same key either hits the cache or joins the still-running resolution.
func (e *Engine) Prefetch(title, artist string) {
	go func() {
		if _, err := e.ResolveVideoID(context.Background(), title, artist); err != nil {
			e.logger.Debug("prefetch miss", "title", title, "artist", artist, "err", err)
		}
	}()
}

// PrefetchBatch concurrently prefetches a bounded prefix (first 3 by default)
// of a list of upcoming tracks. Misses and transient errors are ignored; only
// quota exhaustion is reported.
func (e *Engine) PrefetchBatch(ctx context.Context, tracks []models.SongRef) error {
	limit := e.prefetchLimit
	if len(tracks) < limit {
		limit = len(tracks)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, track := range tracks[:limit] {
		g.Go(func() error {
			_, err := e.ResolveVideoID(ctx, track.Title, track.Artist)
			if errors.Is(err, shared.ErrQuotaExhausted) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

// CacheStats returns a diagnostic snapshot of the resolution cache.
func (e *Engine) CacheStats() CacheStats {
	return CacheStats{Size: e.cache.Len(), Keys: e.cache.Keys()}
}

// ClearCache removes every cached resolution.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// ResetCredentials clears the searcher's exhausted flags and rewinds its pool
// cursor. Meant to be driven by an external daily scheduler.
func (e *Engine) ResetCredentials() {
	e.searcher.ResetKeys()
}

// CredentialStatus reports the searcher's credential pool state.
func (e *Engine) CredentialStatus() services.KeyStatus {
	return e.searcher.KeyStatus()
}
