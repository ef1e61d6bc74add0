package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rendydev404/beatly-backend/internal/models"
	"github.com/rendydev404/beatly-backend/internal/shared"
)

// HistoryRepository persists listening history rows.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new [HistoryRepository] with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a new history entry with generated ID and sequence
func (r *HistoryRepository) Create(entry *models.HistoryEntry) error {
	sequence, err := NextSequence(r.db, "history")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	entry.SetSequence(sequence)
	entry.SetID(shared.GenerateID())

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO history (id, sequence, user_id, track_id, title, artist, video_id, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		entry.ID(),
		entry.Sequence(),
		entry.UserID(),
		entry.TrackID(),
		entry.Title(),
		entry.Artist(),
		entry.VideoID(),
		entry.PlayedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// ListByUser returns a user's most recent plays, newest first.
func (r *HistoryRepository) ListByUser(userID string, limit int) ([]*models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, sequence, user_id, track_id, title, artist, video_id, played_at
		FROM history
		WHERE user_id = ?
		ORDER BY played_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		var (
			id       string
			sequence int
			uid      string
			trackID  string
			title    string
			artist   string
			videoID  string
			playedAt time.Time
		)

		if err := rows.Scan(&id, &sequence, &uid, &trackID, &title, &artist, &videoID, &playedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry := models.NewHistoryEntry(sequence, uid, trackID, title, artist, videoID)
		entry.SetID(id)
		entry.SetPlayedAt(playedAt)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
