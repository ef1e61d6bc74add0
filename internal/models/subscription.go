package models

import (
	"fmt"
	"time"
)

// Subscription plans and statuses. Records are written by the payment webhook
// layer; the backend only reads them to gate premium features.
const (
	PlanFree    = "free"
	PlanPremium = "premium"

	StatusActive   = "active"
	StatusPending  = "pending"
	StatusExpired  = "expired"
	StatusCanceled = "canceled"
)

// Subscription is a user's subscription record.
type Subscription struct {
	id        string
	sequence  int
	userID    string
	plan      string
	status    string
	gateway   string
	expiresAt *time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewSubscription creates a Subscription for the given user and plan.
func NewSubscription(sequence int, userID, plan, status, gateway string, expiresAt *time.Time) *Subscription {
	now := time.Now().UTC()
	return &Subscription{
		sequence:  sequence,
		userID:    userID,
		plan:      plan,
		status:    status,
		gateway:   gateway,
		expiresAt: expiresAt,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Subscription) ID() string            { return s.id }
func (s *Subscription) Sequence() int         { return s.sequence }
func (s *Subscription) UserID() string        { return s.userID }
func (s *Subscription) Plan() string          { return s.plan }
func (s *Subscription) Status() string        { return s.status }
func (s *Subscription) Gateway() string       { return s.gateway }
func (s *Subscription) ExpiresAt() *time.Time { return s.expiresAt }
func (s *Subscription) CreatedAt() time.Time  { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time  { return s.updatedAt }

func (s *Subscription) SetID(id string)            { s.id = id }
func (s *Subscription) SetStatus(status string)    { s.status = status; s.updatedAt = time.Now().UTC() }
func (s *Subscription) SetPlan(plan string)        { s.plan = plan; s.updatedAt = time.Now().UTC() }
func (s *Subscription) SetExpiresAt(t *time.Time)  { s.expiresAt = t; s.updatedAt = time.Now().UTC() }
func (s *Subscription) SetUpdatedAt(t time.Time)   { s.updatedAt = t }
func (s *Subscription) SetCreatedAt(t time.Time)   { s.createdAt = t }
func (s *Subscription) SetSequence(sequence int)   { s.sequence = sequence }

// IsActive reports whether the subscription currently grants premium access.
func (s *Subscription) IsActive() bool {
	if s.status != StatusActive {
		return false
	}
	if s.expiresAt != nil && s.expiresAt.Before(time.Now().UTC()) {
		return false
	}
	return true
}

// Validate checks that required subscription fields are set.
func (s *Subscription) Validate() error {
	if s.userID == "" {
		return fmt.Errorf("subscription user_id is required")
	}
	switch s.plan {
	case PlanFree, PlanPremium:
	default:
		return fmt.Errorf("unknown plan: %s", s.plan)
	}
	switch s.status {
	case StatusActive, StatusPending, StatusExpired, StatusCanceled:
	default:
		return fmt.Errorf("unknown status: %s", s.status)
	}
	return nil
}
