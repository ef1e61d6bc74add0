package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/rendydev404/beatly-backend/internal/models"
	"github.com/rendydev404/beatly-backend/internal/repositories"
	"github.com/rendydev404/beatly-backend/internal/resolver"
	"github.com/rendydev404/beatly-backend/internal/services"
	"github.com/rendydev404/beatly-backend/internal/shared"
)

// aiFeature is the usage-counter bucket for AI recommendations.
const aiFeature = "ai_recommend"

// API holds the dependencies for every HTTP endpoint.
type API struct {
	catalog       services.Catalog
	engine        *resolver.Engine
	lyrics        services.Lyrics
	textGen       services.TextGenerator
	playlists     *repositories.PlaylistRepository
	history       *repositories.HistoryRepository
	usage         *repositories.UsageRepository
	subscriptions *repositories.SubscriptionRepository
	aiDailyLimit  int
	logger        *log.Logger
}

// APIOpts contains the dependencies for creating an [API].
type APIOpts struct {
	Catalog       services.Catalog
	Engine        *resolver.Engine
	Lyrics        services.Lyrics
	TextGen       services.TextGenerator
	Playlists     *repositories.PlaylistRepository
	History       *repositories.HistoryRepository
	Usage         *repositories.UsageRepository
	Subscriptions *repositories.SubscriptionRepository
	AIDailyLimit  int
	Logger        *log.Logger
}

// NewAPI creates the API handler set.
func NewAPI(opts APIOpts) *API {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.AIDailyLimit <= 0 {
		opts.AIDailyLimit = 20
	}

	return &API{
		catalog:       opts.Catalog,
		engine:        opts.Engine,
		lyrics:        opts.Lyrics,
		textGen:       opts.TextGen,
		playlists:     opts.Playlists,
		history:       opts.History,
		usage:         opts.Usage,
		subscriptions: opts.Subscriptions,
		aiDailyLimit:  opts.AIDailyLimit,
		logger:        opts.Logger,
	}
}

// Register wires every endpoint into the router.
func (a *API) Register(router Router) {
	router.Handle(http.MethodGet, "/api/health", http.HandlerFunc(a.Health))
	router.Handle(http.MethodGet, "/api/songs/search", http.HandlerFunc(a.SearchSongs))
	router.Handle(http.MethodGet, "/api/songs/video", http.HandlerFunc(a.ResolveVideo))
	router.Handle(http.MethodPost, "/api/songs/prefetch", http.HandlerFunc(a.PrefetchSongs))
	router.Handle(http.MethodGet, "/api/lyrics", http.HandlerFunc(a.GetLyrics))
	router.Handle(http.MethodPost, "/api/ai/recommend", http.HandlerFunc(a.Recommend))
	router.Handle(http.MethodGet, "/api/playlists", http.HandlerFunc(a.ListPlaylists))
	router.Handle(http.MethodPost, "/api/playlists", http.HandlerFunc(a.CreatePlaylist))
	router.Handle(http.MethodGet, "/api/playlists/{id}", http.HandlerFunc(a.GetPlaylist))
	router.Handle(http.MethodDelete, "/api/playlists/{id}", http.HandlerFunc(a.DeletePlaylist))
	router.Handle(http.MethodPost, "/api/playlists/{id}/tracks", http.HandlerFunc(a.AddPlaylistTrack))
	router.Handle(http.MethodGet, "/api/history", http.HandlerFunc(a.ListHistory))
	router.Handle(http.MethodPost, "/api/history", http.HandlerFunc(a.RecordHistory))
	router.Handle(http.MethodGet, "/api/subscriptions/{userID}", http.HandlerFunc(a.GetSubscription))
	router.Handle(http.MethodGet, "/api/admin/resolver/cache", http.HandlerFunc(a.ResolverCacheStats))
	router.Handle(http.MethodDelete, "/api/admin/resolver/cache", http.HandlerFunc(a.ResolverCacheClear))
	router.Handle(http.MethodGet, "/api/admin/resolver/credentials", http.HandlerFunc(a.ResolverCredentials))
	router.Handle(http.MethodPost, "/api/admin/resolver/credentials/reset", http.HandlerFunc(a.ResolverCredentialsReset))
}

// userID extracts the caller's identity. Authentication itself is handled
// upstream; the gateway forwards the verified user in this header.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "anonymous"
}

func (a *API) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.logger.Error("failed to encode response", "err", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes.
func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNoMatch),
		errors.Is(err, shared.ErrTrackNotFound),
		errors.Is(err, shared.ErrLyricsNotFound),
		errors.Is(err, shared.ErrPlaylistNotFound):
		a.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrQuotaExhausted),
		errors.Is(err, shared.ErrServiceUnavailable):
		a.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrUsageLimit):
		a.writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrMissingArgument):
		a.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, shared.ErrAPIRequest):
		a.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		a.logger.Error("unexpected handler error", "err", err)
		a.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Health reports liveness.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SearchSongs proxies a catalog search and warms the resolver for the leading
// results so playback of a picked song skips the resolution round-trip.
func (a *API) SearchSongs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		a.writeError(w, shared.ErrMissingArgument)
		return
	}

	tracks, err := a.catalog.SearchTracks(r.Context(), query, 20)
	if err != nil {
		a.writeError(w, err)
		return
	}

	refs := make([]models.SongRef, 0, len(tracks))
	for _, t := range tracks {
		refs = append(refs, models.SongRef{Title: t.Title, Artist: t.Artist})
	}
	// Warm the resolver in the background so a pick from these results plays
	// without waiting on resolution. The request context would be canceled as
	// soon as the response is written.
	go func() {
		if err := a.engine.PrefetchBatch(context.Background(), refs); err != nil {
			a.logger.Warn("search prefetch failed", "query", query, "err", err)
		}
	}()

	a.writeJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}

// ResolveVideo resolves the videoId for a (title, artist) pair.
func (a *API) ResolveVideo(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	artist := r.URL.Query().Get("artist")
	if title == "" || artist == "" {
		a.writeError(w, shared.ErrMissingArgument)
		return
	}

	videoID, err := a.engine.ResolveVideoID(r.Context(), title, artist)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]string{"videoId": videoID})
}

type prefetchRequest struct {
	Tracks []models.SongRef `json:"tracks"`
}

// PrefetchSongs warms the resolver cache for upcoming queue items.
func (a *API) PrefetchSongs(w http.ResponseWriter, r *http.Request) {
	var req prefetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, shared.ErrInvalidInput)
		return
	}

	if err := a.engine.PrefetchBatch(r.Context(), req.Tracks); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusAccepted, map[string]string{"status": "prefetching"})
}

// GetLyrics proxies the lyrics provider.
func (a *API) GetLyrics(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	artist := r.URL.Query().Get("artist")
	if title == "" || artist == "" {
		a.writeError(w, shared.ErrMissingArgument)
		return
	}

	lyrics, err := a.lyrics.GetLyrics(r.Context(), artist, title)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]string{"lyrics": lyrics})
}

type recommendRequest struct {
	Prompt string `json:"prompt"`
}

// Recommend generates AI listening recommendations, limited per user per day.
func (a *API) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
		a.writeError(w, shared.ErrInvalidInput)
		return
	}

	uid := userID(r)
	count, err := a.usage.Count(uid, aiFeature)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if count >= a.aiDailyLimit {
		a.writeError(w, shared.ErrUsageLimit)
		return
	}

	text, err := a.textGen.Generate(r.Context(), req.Prompt)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if _, err := a.usage.Increment(uid, aiFeature); err != nil {
		a.logger.Error("failed to record usage", "user", uid, "err", err)
	}

	a.writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

type playlistResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

func toPlaylistResponse(p *models.Playlist) playlistResponse {
	return playlistResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Public:      p.Public(),
	}
}

// ListPlaylists returns the caller's playlists.
func (a *API) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := a.playlists.List(map[string]any{"user_id": userID(r)})
	if err != nil {
		a.writeError(w, err)
		return
	}

	out := make([]playlistResponse, 0, len(playlists))
	for _, p := range playlists {
		out = append(out, toPlaylistResponse(p))
	}

	a.writeJSON(w, http.StatusOK, map[string]any{"playlists": out})
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

// CreatePlaylist creates a playlist for the caller.
func (a *API) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		a.writeError(w, shared.ErrInvalidInput)
		return
	}

	playlist := models.NewPlaylist(0, userID(r), req.Name, req.Description, req.Public)
	if err := a.playlists.Create(playlist); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, toPlaylistResponse(playlist))
}

// GetPlaylist returns one playlist with its tracks.
func (a *API) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	playlist, err := a.playlists.Get(id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	tracks, err := a.playlists.GetTracks(id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"playlist": toPlaylistResponse(playlist),
		"tracks":   tracks,
	})
}

// DeletePlaylist soft-deletes a playlist.
func (a *API) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := a.playlists.Delete(r.PathValue("id")); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddPlaylistTrack appends a track to a playlist.
func (a *API) AddPlaylistTrack(w http.ResponseWriter, r *http.Request) {
	var track models.Track
	if err := json.NewDecoder(r.Body).Decode(&track); err != nil || track.ID == "" {
		a.writeError(w, shared.ErrInvalidInput)
		return
	}

	if err := a.playlists.AddTrack(r.PathValue("id"), track); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

type historyResponse struct {
	TrackID  string `json:"trackId"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	VideoID  string `json:"videoId"`
	PlayedAt string `json:"playedAt"`
}

// ListHistory returns the caller's recent plays.
func (a *API) ListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := a.history.ListByUser(userID(r), 50)
	if err != nil {
		a.writeError(w, err)
		return
	}

	out := make([]historyResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyResponse{
			TrackID:  e.TrackID(),
			Title:    e.Title(),
			Artist:   e.Artist(),
			VideoID:  e.VideoID(),
			PlayedAt: e.PlayedAt().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	a.writeJSON(w, http.StatusOK, map[string]any{"history": out})
}

type recordHistoryRequest struct {
	TrackID string `json:"trackId"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	VideoID string `json:"videoId"`
}

// RecordHistory appends a playback event to the caller's history.
func (a *API) RecordHistory(w http.ResponseWriter, r *http.Request) {
	var req recordHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.Artist == "" {
		a.writeError(w, shared.ErrInvalidInput)
		return
	}

	entry := models.NewHistoryEntry(0, userID(r), req.TrackID, req.Title, req.Artist, req.VideoID)
	if err := a.history.Create(entry); err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

// GetSubscription returns a user's subscription status.
func (a *API) GetSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := a.subscriptions.GetByUser(r.PathValue("userID"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"plan":   sub.Plan(),
		"status": sub.Status(),
		"active": sub.IsActive(),
	})
}

// ResolverCacheStats returns the resolution cache diagnostic snapshot.
func (a *API) ResolverCacheStats(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.engine.CacheStats())
}

// ResolverCacheClear empties the resolution cache.
func (a *API) ResolverCacheClear(w http.ResponseWriter, r *http.Request) {
	a.engine.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

// ResolverCredentials reports the video search credential pool state.
func (a *API) ResolverCredentials(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.engine.CredentialStatus())
}

// ResolverCredentialsReset clears all exhausted flags; meant to be hit by a
// daily scheduler aligned with the provider's quota reset.
func (a *API) ResolverCredentialsReset(w http.ResponseWriter, r *http.Request) {
	a.engine.ResetCredentials()
	a.writeJSON(w, http.StatusOK, a.engine.CredentialStatus())
}
