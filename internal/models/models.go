// package models defines the data model for the beatly backend
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the beatly backend.
// Implementations include Playlist, HistoryEntry, Subscription, etc.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// SongRef is the user-supplied identity of a song. Constructed per-request, never persisted.
type SongRef struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Track represents a catalog track returned by the track search provider.
type Track struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	ImageURL    string `json:"imageUrl"`
	DurationMS  int    `json:"durationMs"`
	ExternalURL string `json:"externalUrl"`
}
