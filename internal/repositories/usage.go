package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// UsageRepository tracks per-user per-feature daily usage counters, used to
// gate rate-limited features (e.g., AI recommendations on the free plan).
type UsageRepository struct {
	db *sql.DB
}

// NewUsageRepository creates a new [UsageRepository] with the given database connection
func NewUsageRepository(db *sql.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

// day formats t as the counter bucket key (UTC calendar day).
func day(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Increment bumps today's counter for (userID, feature) and returns the new count.
func (r *UsageRepository) Increment(userID, feature string) (int, error) {
	today := day(time.Now())

	query := `
		INSERT INTO usage_counters (user_id, feature, day, count)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (user_id, feature, day) DO UPDATE SET count = count + 1
	`

	if _, err := r.db.Exec(query, userID, feature, today); err != nil {
		return 0, fmt.Errorf("failed to increment usage counter: %w", err)
	}

	return r.Count(userID, feature)
}

// Count returns today's counter for (userID, feature); zero when absent.
func (r *UsageRepository) Count(userID, feature string) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT count FROM usage_counters WHERE user_id = ? AND feature = ? AND day = ?",
		userID, feature, day(time.Now()),
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query usage counter: %w", err)
	}

	return count, nil
}
