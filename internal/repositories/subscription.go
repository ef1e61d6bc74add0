package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rendydev404/beatly-backend/internal/models"
	"github.com/rendydev404/beatly-backend/internal/shared"
)

// SubscriptionRepository persists subscription records. Writes originate from
// the payment webhook layer; the backend reads them to gate premium features.
type SubscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new [SubscriptionRepository] with the given database connection
func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Upsert inserts a subscription for the user or replaces the existing one.
func (r *SubscriptionRepository) Upsert(sub *models.Subscription) error {
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if sub.ID() == "" {
		sequence, err := NextSequence(r.db, "subscriptions")
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}
		sub.SetSequence(sequence)
		sub.SetID(shared.GenerateID())
	}

	query := `
		INSERT INTO subscriptions (id, sequence, user_id, plan, status, gateway, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			plan = excluded.plan,
			status = excluded.status,
			gateway = excluded.gateway,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		sub.ID(),
		sub.Sequence(),
		sub.UserID(),
		sub.Plan(),
		sub.Status(),
		sub.Gateway(),
		sub.ExpiresAt(),
		sub.CreatedAt(),
		sub.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return nil
}

// GetByUser retrieves a user's subscription. A user with no record is on the free plan.
func (r *SubscriptionRepository) GetByUser(userID string) (*models.Subscription, error) {
	query := `
		SELECT id, sequence, user_id, plan, status, gateway, expires_at, created_at, updated_at
		FROM subscriptions
		WHERE user_id = ?
	`

	var (
		id        string
		sequence  int
		uid       string
		plan      string
		status    string
		gateway   string
		expiresAt sql.NullTime
		createdAt time.Time
		updatedAt time.Time
	)

	err := r.db.QueryRow(query, userID).Scan(&id, &sequence, &uid, &plan, &status, &gateway, &expiresAt, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return models.NewSubscription(0, userID, models.PlanFree, models.StatusActive, "", nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query subscription: %w", err)
	}

	var expiry *time.Time
	if expiresAt.Valid {
		expiry = &expiresAt.Time
	}

	sub := models.NewSubscription(sequence, uid, plan, status, gateway, expiry)
	sub.SetID(id)
	sub.SetCreatedAt(createdAt)
	sub.SetUpdatedAt(updatedAt)

	return sub, nil
}
