// package services defines clients for the third-party APIs the backend proxies
//
// Spotify (catalog), YouTube Data (video search), lyrics.ovh (lyrics), Gemini (text generation)
package services

import (
	"context"

	"github.com/rendydev404/beatly-backend/internal/models"
)

// Catalog is the track search provider consumed by the song endpoints.
type Catalog interface {
	// SearchTracks searches the catalog for tracks matching a free-text query.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error)

	// Name returns the name of the provider (e.g., "Spotify")
	Name() string
}

// VideoSearcher is the video-hosting search provider consumed by the resolution engine.
//
// Implementations rotate across a pool of credentials; Search fails with
// [shared.ErrQuotaExhausted] only once every credential has been quota-rejected.
type VideoSearcher interface {
	// Search issues one keyword search and returns up to maxResults candidates.
	Search(ctx context.Context, query string) ([]VideoCandidate, error)

	// ResetKeys clears all exhausted flags and rewinds the pool cursor to the first key.
	ResetKeys()

	// KeyStatus reports the state of the credential pool.
	KeyStatus() KeyStatus
}

// Lyrics is the lyrics provider.
type Lyrics interface {
	GetLyrics(ctx context.Context, artist, title string) (string, error)
}

// TextGenerator is the AI text-generation provider.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VideoCandidate is one raw result from the video search provider before scoring.
type VideoCandidate struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
}

// KeyStatus describes the credential pool of a [VideoSearcher].
type KeyStatus struct {
	Total       int   `json:"total"`
	ActiveIndex int   `json:"activeIndex"`
	Exhausted   []int `json:"exhaustedIndices"`
}
