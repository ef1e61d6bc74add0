// Package resolver implements the video-match resolution engine: given a song
// title and artist, it finds the videoId of the best "pure" official upload of
// that song on the video provider.
//
// # Pipeline
//
// A resolution runs: normalize → cache lookup → in-flight dedup → query
// fallback loop → candidate scoring → cache store.
//
//  1. [Normalize] cleans the raw (title, artist) pair into a canonical search
//     form and derives the cache key.
//  2. [Engine.ResolveVideoID] consults the bounded FIFO [Cache]; a hit returns
//     without touching the network.
//  3. Concurrent resolutions of the same key share one in-flight provider
//     sequence via [singleflight.Group]; all callers observe the same result.
//  4. [BuildQueries] produces six search queries, most precise first; the
//     engine stops at the first query yielding an acceptable candidate.
//  5. [Score] ranks every raw candidate; reactions, covers, remixes, live cuts
//     and similar variants are penalized below the rejection floor.
//
// # Failure modes
//
//   - [shared.ErrNoMatch] : no query produced an acceptable candidate. Never
//     cached, so the song can be retried once a result becomes available.
//   - [shared.ErrQuotaExhausted] : every provider credential was quota-rejected.
//     Propagated so callers can present "service unavailable" instead of
//     "song not found".
//   - transient provider errors abandon the current query and the loop
//     continues; a sequence where every query errored reports ErrNoMatch.
//
// # Shared state
//
// The cache, in-flight group, and the searcher's credential pool live on an
// [Engine] instance constructed once at startup and injected where resolution
// is needed. All three are safe for concurrent use.
package resolver
