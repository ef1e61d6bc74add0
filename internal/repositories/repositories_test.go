package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/rendydev404/beatly-backend/internal/models"
	"github.com/rendydev404/beatly-backend/internal/shared"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestNextSequence(t *testing.T) {
	db := setupDB(t)

	first, err := NextSequence(db, "playlists")
	if err != nil {
		t.Fatalf("failed to get sequence: %v", err)
	}
	second, err := NextSequence(db, "playlists")
	if err != nil {
		t.Fatalf("failed to get sequence: %v", err)
	}

	if first != 1 || second != 2 {
		t.Errorf("expected sequences 1 and 2, got %d and %d", first, second)
	}

	other, err := NextSequence(db, "history")
	if err != nil {
		t.Fatalf("failed to get sequence: %v", err)
	}
	if other != 1 {
		t.Errorf("expected independent sequence per table, got %d", other)
	}
}

func TestPlaylistRepository(t *testing.T) {
	t.Run("Create and Get", func(t *testing.T) {
		repo := NewPlaylistRepository(setupDB(t))

		playlist := models.NewPlaylist(0, "user-1", "Road Trip", "songs for driving", true)
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if playlist.ID() == "" {
			t.Error("expected generated ID")
		}
		if playlist.Sequence() == 0 {
			t.Error("expected assigned sequence")
		}

		got, err := repo.Get(playlist.ID())
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if got.Name() != "Road Trip" || got.UserID() != "user-1" || !got.Public() {
			t.Errorf("unexpected playlist %+v", got)
		}
	})

	t.Run("Create rejects invalid", func(t *testing.T) {
		repo := NewPlaylistRepository(setupDB(t))

		playlist := models.NewPlaylist(0, "user-1", "", "", false)
		if err := repo.Create(playlist); err == nil {
			t.Error("expected validation error for empty name")
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		repo := NewPlaylistRepository(setupDB(t))

		if _, err := repo.Get("nope"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewPlaylistRepository(setupDB(t))

		playlist := models.NewPlaylist(0, "user-1", "Before", "", false)
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		playlist.SetName("After")
		if err := repo.Update(playlist); err != nil {
			t.Fatalf("failed to update playlist: %v", err)
		}

		got, err := repo.Get(playlist.ID())
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if got.Name() != "After" {
			t.Errorf("expected updated name, got %q", got.Name())
		}
	})

	t.Run("Delete is soft", func(t *testing.T) {
		db := setupDB(t)
		repo := NewPlaylistRepository(db)

		playlist := models.NewPlaylist(0, "user-1", "Doomed", "", false)
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if err := repo.Delete(playlist.ID()); err != nil {
			t.Fatalf("failed to delete playlist: %v", err)
		}

		if _, err := repo.Get(playlist.ID()); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected deleted playlist to be hidden, got %v", err)
		}

		// Row survives with deleted_at set.
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM playlists WHERE id = ? AND deleted_at IS NOT NULL", playlist.ID()).Scan(&count); err != nil {
			t.Fatalf("failed to query: %v", err)
		}
		if count != 1 {
			t.Error("expected soft-deleted row to remain")
		}

		if err := repo.Delete(playlist.ID()); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected second delete to report not found, got %v", err)
		}
	})

	t.Run("List by user", func(t *testing.T) {
		repo := NewPlaylistRepository(setupDB(t))

		for _, tc := range []struct {
			user string
			name string
		}{
			{"user-1", "First"},
			{"user-1", "Second"},
			{"user-2", "Other"},
		} {
			if err := repo.Create(models.NewPlaylist(0, tc.user, tc.name, "", false)); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}
		}

		playlists, err := repo.List(map[string]any{"user_id": "user-1"})
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(playlists))
		}
		if playlists[0].Name() != "First" || playlists[1].Name() != "Second" {
			t.Errorf("expected sequence order, got %q then %q", playlists[0].Name(), playlists[1].Name())
		}
	})

	t.Run("tracks", func(t *testing.T) {
		repo := NewPlaylistRepository(setupDB(t))

		playlist := models.NewPlaylist(0, "user-1", "With Tracks", "", false)
		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		trackA := models.Track{ID: "t1", Title: "Song A", Artist: "Artist A"}
		trackB := models.Track{ID: "t2", Title: "Song B", Artist: "Artist B"}

		if err := repo.AddTrack(playlist.ID(), trackA); err != nil {
			t.Fatalf("failed to add track: %v", err)
		}
		if err := repo.AddTrack(playlist.ID(), trackB); err != nil {
			t.Fatalf("failed to add track: %v", err)
		}
		// Duplicate pair is ignored.
		if err := repo.AddTrack(playlist.ID(), trackA); err != nil {
			t.Fatalf("expected duplicate add to be ignored, got %v", err)
		}

		tracks, err := repo.GetTracks(playlist.ID())
		if err != nil {
			t.Fatalf("failed to get tracks: %v", err)
		}
		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}
		if tracks[0].TrackID != "t1" || tracks[0].Position != 1 {
			t.Errorf("unexpected first track %+v", tracks[0])
		}
		if tracks[1].TrackID != "t2" || tracks[1].Position != 2 {
			t.Errorf("unexpected second track %+v", tracks[1])
		}

		if err := repo.AddTrack("missing", trackA); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound for missing playlist, got %v", err)
		}
	})
}

func TestHistoryRepository(t *testing.T) {
	repo := NewHistoryRepository(setupDB(t))

	entries := []*models.HistoryEntry{
		models.NewHistoryEntry(0, "user-1", "t1", "Song One", "Artist", "vid1"),
		models.NewHistoryEntry(0, "user-1", "t2", "Song Two", "Artist", "vid2"),
		models.NewHistoryEntry(0, "user-2", "t3", "Song Three", "Other", "vid3"),
	}
	for _, e := range entries {
		if err := repo.Create(e); err != nil {
			t.Fatalf("failed to create history entry: %v", err)
		}
	}

	t.Run("ListByUser", func(t *testing.T) {
		got, err := repo.ListByUser("user-1", 10)
		if err != nil {
			t.Fatalf("failed to list history: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
		for _, e := range got {
			if e.UserID() != "user-1" {
				t.Errorf("expected only user-1 entries, got %s", e.UserID())
			}
		}
	})

	t.Run("limit", func(t *testing.T) {
		got, err := repo.ListByUser("user-1", 1)
		if err != nil {
			t.Fatalf("failed to list history: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("expected limit respected, got %d entries", len(got))
		}
	})

	t.Run("validation", func(t *testing.T) {
		bad := models.NewHistoryEntry(0, "", "t", "Title", "Artist", "vid")
		if err := repo.Create(bad); err == nil {
			t.Error("expected validation error for empty user")
		}
	})
}

func TestUsageRepository(t *testing.T) {
	repo := NewUsageRepository(setupDB(t))

	t.Run("zero when absent", func(t *testing.T) {
		count, err := repo.Count("user-1", "ai_recommend")
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0, got %d", count)
		}
	})

	t.Run("increments", func(t *testing.T) {
		for i := 1; i <= 3; i++ {
			count, err := repo.Increment("user-1", "ai_recommend")
			if err != nil {
				t.Fatalf("failed to increment: %v", err)
			}
			if count != i {
				t.Errorf("expected count %d, got %d", i, count)
			}
		}
	})

	t.Run("independent buckets", func(t *testing.T) {
		if _, err := repo.Increment("user-2", "ai_recommend"); err != nil {
			t.Fatalf("failed to increment: %v", err)
		}
		if _, err := repo.Increment("user-1", "other_feature"); err != nil {
			t.Fatalf("failed to increment: %v", err)
		}

		count, err := repo.Count("user-1", "ai_recommend")
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 3 {
			t.Errorf("expected user-1 ai_recommend unchanged at 3, got %d", count)
		}
	})
}

func TestSubscriptionRepository(t *testing.T) {
	repo := NewSubscriptionRepository(setupDB(t))

	t.Run("free plan when absent", func(t *testing.T) {
		sub, err := repo.GetByUser("nobody")
		if err != nil {
			t.Fatalf("failed to get subscription: %v", err)
		}
		if sub.Plan() != models.PlanFree {
			t.Errorf("expected free plan, got %s", sub.Plan())
		}
		if !sub.IsActive() {
			t.Error("expected free plan to be active")
		}
	})

	t.Run("upsert", func(t *testing.T) {
		sub := models.NewSubscription(0, "user-1", models.PlanPremium, models.StatusActive, "midtrans", nil)
		if err := repo.Upsert(sub); err != nil {
			t.Fatalf("failed to upsert: %v", err)
		}

		got, err := repo.GetByUser("user-1")
		if err != nil {
			t.Fatalf("failed to get subscription: %v", err)
		}
		if got.Plan() != models.PlanPremium || got.Status() != models.StatusActive {
			t.Errorf("unexpected subscription %+v", got)
		}

		// Second upsert replaces the row, not duplicates it.
		got.SetStatus(models.StatusCanceled)
		if err := repo.Upsert(got); err != nil {
			t.Fatalf("failed to re-upsert: %v", err)
		}

		final, err := repo.GetByUser("user-1")
		if err != nil {
			t.Fatalf("failed to get subscription: %v", err)
		}
		if final.Status() != models.StatusCanceled {
			t.Errorf("expected canceled status, got %s", final.Status())
		}
		if final.IsActive() {
			t.Error("expected canceled subscription to be inactive")
		}
	})
}
