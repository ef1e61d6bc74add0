package models

import (
	"fmt"
	"time"
)

// Playlist is a user playlist persisted in the database.
type Playlist struct {
	id          string
	sequence    int
	userID      string
	name        string
	description string
	public      bool
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewPlaylist creates a Playlist with the given sequence number and attributes.
// The ID is assigned by the repository on Create.
func NewPlaylist(sequence int, userID, name, description string, public bool) *Playlist {
	now := time.Now().UTC()
	return &Playlist{
		sequence:    sequence,
		userID:      userID,
		name:        name,
		description: description,
		public:      public,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (p *Playlist) ID() string            { return p.id }
func (p *Playlist) Sequence() int         { return p.sequence }
func (p *Playlist) UserID() string        { return p.userID }
func (p *Playlist) Name() string          { return p.name }
func (p *Playlist) Description() string   { return p.description }
func (p *Playlist) Public() bool          { return p.public }
func (p *Playlist) CreatedAt() time.Time  { return p.createdAt }
func (p *Playlist) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Playlist) DeletedAt() *time.Time { return p.deletedAt }

func (p *Playlist) SetID(id string)              { p.id = id }
func (p *Playlist) SetName(name string)          { p.name = name; p.touch() }
func (p *Playlist) SetDescription(d string)      { p.description = d; p.touch() }
func (p *Playlist) SetPublic(public bool)        { p.public = public; p.touch() }
func (p *Playlist) SetUpdatedAt(t time.Time)     { p.updatedAt = t }
func (p *Playlist) SetDeletedAt(t *time.Time)    { p.deletedAt = t }
func (p *Playlist) SetCreatedAt(t time.Time)     { p.createdAt = t }
func (p *Playlist) SetSequence(sequence int)     { p.sequence = sequence }
func (p *Playlist) SetUserID(userID string)      { p.userID = userID }
func (p *Playlist) touch()                       { p.updatedAt = time.Now().UTC() }

// Validate checks that required playlist fields are set.
func (p *Playlist) Validate() error {
	if p.userID == "" {
		return fmt.Errorf("playlist user_id is required")
	}
	if p.name == "" {
		return fmt.Errorf("playlist name is required")
	}
	return nil
}

// PlaylistTrack is a row in the playlist/tracks junction table.
//
// Track metadata is denormalized so playlist reads need no catalog round-trip.
type PlaylistTrack struct {
	ID         string    `json:"id"`
	PlaylistID string    `json:"playlistId"`
	Position   int       `json:"position"`
	TrackID    string    `json:"trackId"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Album      string    `json:"album"`
	ImageURL   string    `json:"imageUrl"`
	DurationMS int       `json:"durationMs"`
	AddedAt    time.Time `json:"addedAt"`
}
