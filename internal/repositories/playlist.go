package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rendydev404/beatly-backend/internal/models"
	"github.com/rendydev404/beatly-backend/internal/shared"
)

// PlaylistRepository implements [models.Repository] for [models.Playlist] persistence,
// plus the playlist/track junction operations.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new [PlaylistRepository] with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist into the database with generated ID and sequence
func (r *PlaylistRepository) Create(playlist *models.Playlist) error {
	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	playlist.SetSequence(sequence)
	playlist.SetID(shared.GenerateID())

	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO playlists (id, sequence, user_id, name, description, public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		playlist.ID(),
		playlist.Sequence(),
		playlist.UserID(),
		playlist.Name(),
		playlist.Description(),
		playlist.Public(),
		playlist.CreatedAt(),
		playlist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// Get retrieves a playlist by ID, excluding soft-deleted playlists
func (r *PlaylistRepository) Get(id string) (*models.Playlist, error) {
	query := `
		SELECT id, sequence, user_id, name, description, public, created_at, updated_at, deleted_at
		FROM playlists
		WHERE id = ? AND deleted_at IS NULL
	`

	playlist, err := scanPlaylist(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist: %w", err)
	}

	return playlist, nil
}

// Update modifies an existing playlist's mutable fields
func (r *PlaylistRepository) Update(playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE playlists
		SET name = ?, description = ?, public = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		playlist.Name(),
		playlist.Description(),
		playlist.Public(),
		time.Now().UTC(),
		playlist.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlist.ID())
	}

	return nil
}

// Delete soft-deletes a playlist by setting its deleted_at timestamp
func (r *PlaylistRepository) Delete(id string) error {
	query := `UPDATE playlists SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}

	return nil
}

// List retrieves playlists matching the given criteria. Supported criteria: "user_id".
func (r *PlaylistRepository) List(criteria map[string]any) ([]*models.Playlist, error) {
	query := `
		SELECT id, sequence, user_id, name, description, public, created_at, updated_at, deleted_at
		FROM playlists
		WHERE deleted_at IS NULL
	`
	args := []any{}

	if userID, ok := criteria["user_id"]; ok {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	query += " ORDER BY sequence"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}

	return playlists, rows.Err()
}

// AddTrack appends a track to a playlist at the next position.
// Duplicate (playlist, track) pairs are silently ignored.
func (r *PlaylistRepository) AddTrack(playlistID string, track models.Track) error {
	if _, err := r.Get(playlistID); err != nil {
		return err
	}

	var position int
	err := r.db.QueryRow(
		"SELECT COALESCE(MAX(position), 0) + 1 FROM playlist_tracks WHERE playlist_id = ?",
		playlistID,
	).Scan(&position)
	if err != nil {
		return fmt.Errorf("failed to compute track position: %w", err)
	}

	query := `
		INSERT OR IGNORE INTO playlist_tracks
			(id, playlist_id, position, track_id, title, artist, album, image_url, duration_ms, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		shared.GenerateID(),
		playlistID,
		position,
		track.ID,
		track.Title,
		track.Artist,
		track.Album,
		track.ImageURL,
		track.DurationMS,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to add track: %w", err)
	}

	return nil
}

// GetTracks returns a playlist's tracks ordered by position.
func (r *PlaylistRepository) GetTracks(playlistID string) ([]models.PlaylistTrack, error) {
	query := `
		SELECT id, playlist_id, position, track_id, title, artist, album, image_url, duration_ms, added_at
		FROM playlist_tracks
		WHERE playlist_id = ?
		ORDER BY position
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	tracks := []models.PlaylistTrack{}
	for rows.Next() {
		var t models.PlaylistTrack
		err := rows.Scan(&t.ID, &t.PlaylistID, &t.Position, &t.TrackID, &t.Title,
			&t.Artist, &t.Album, &t.ImageURL, &t.DurationMS, &t.AddedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}

	return tracks, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanPlaylist(s scanner) (*models.Playlist, error) {
	var (
		id          string
		sequence    int
		userID      string
		name        string
		description string
		public      bool
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	if err := s.Scan(&id, &sequence, &userID, &name, &description, &public, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	playlist := models.NewPlaylist(sequence, userID, name, description, public)
	playlist.SetID(id)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		playlist.SetDeletedAt(&deletedAt.Time)
	}

	return playlist, nil
}
