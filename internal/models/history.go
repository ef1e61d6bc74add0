package models

import (
	"fmt"
	"time"
)

// HistoryEntry records a single playback event for a user.
type HistoryEntry struct {
	id       string
	sequence int
	userID   string
	trackID  string
	title    string
	artist   string
	videoID  string
	playedAt time.Time
}

// NewHistoryEntry creates a HistoryEntry stamped with the current time.
func NewHistoryEntry(sequence int, userID, trackID, title, artist, videoID string) *HistoryEntry {
	return &HistoryEntry{
		sequence: sequence,
		userID:   userID,
		trackID:  trackID,
		title:    title,
		artist:   artist,
		videoID:  videoID,
		playedAt: time.Now().UTC(),
	}
}

func (h *HistoryEntry) ID() string           { return h.id }
func (h *HistoryEntry) Sequence() int        { return h.sequence }
func (h *HistoryEntry) UserID() string       { return h.userID }
func (h *HistoryEntry) TrackID() string      { return h.trackID }
func (h *HistoryEntry) Title() string        { return h.title }
func (h *HistoryEntry) Artist() string       { return h.artist }
func (h *HistoryEntry) VideoID() string      { return h.videoID }
func (h *HistoryEntry) PlayedAt() time.Time  { return h.playedAt }
func (h *HistoryEntry) CreatedAt() time.Time { return h.playedAt }
func (h *HistoryEntry) UpdatedAt() time.Time { return h.playedAt }

func (h *HistoryEntry) SetID(id string)          { h.id = id }
func (h *HistoryEntry) SetPlayedAt(t time.Time)  { h.playedAt = t }
func (h *HistoryEntry) SetSequence(sequence int) { h.sequence = sequence }

// Validate checks that required history fields are set.
func (h *HistoryEntry) Validate() error {
	if h.userID == "" {
		return fmt.Errorf("history user_id is required")
	}
	if h.title == "" || h.artist == "" {
		return fmt.Errorf("history title and artist are required")
	}
	return nil
}
