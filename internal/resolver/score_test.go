package resolver

import (
	"testing"

	"github.com/rendydev404/beatly-backend/internal/services"
)

func TestScore(t *testing.T) {
	q := Query{Title: "Song Title", Artist: "Artist"}

	t.Run("monotonicity", func(t *testing.T) {
		pure := services.VideoCandidate{
			VideoID:      "pure",
			Title:        "Song Title Official Audio",
			ChannelTitle: "Artist - Topic",
		}
		reaction := services.VideoCandidate{
			VideoID:      "reaction",
			Title:        "Song Title Official Audio",
			ChannelTitle: "My Reaction Channel",
		}

		pureScore := Score(pure, q)
		reactionScore := Score(reaction, q)

		if pureScore <= reactionScore {
			t.Errorf("expected topic channel (%d) to beat reaction channel (%d)", pureScore, reactionScore)
		}
		if pureScore < 185 {
			t.Errorf("expected topic-channel official audio to score at least 185, got %d", pureScore)
		}
	})

	t.Run("reaction content rejected", func(t *testing.T) {
		c := services.VideoCandidate{
			VideoID:      "r",
			Title:        "Song Title Reaction",
			ChannelTitle: "SomeReactor",
		}

		s := Score(c, q)
		if s > -155 {
			t.Errorf("expected reaction title to score at most -155, got %d", s)
		}
	})

	t.Run("channel signals", func(t *testing.T) {
		cases := []struct {
			name    string
			channel string
			min     int
		}{
			{"vevo", "ArtistVEVO", bonusChannelVEVO},
			{"topic", "Artist - Topic", bonusChannelTopic},
			{"official artist channel", "Artist Official", bonusChannelOfficial + bonusChannelArtist},
			{"label", "Big Records", bonusChannelLabel},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				base := Score(services.VideoCandidate{Title: "Song Title", ChannelTitle: "nobody"}, q)
				got := Score(services.VideoCandidate{Title: "Song Title", ChannelTitle: tc.channel}, q)
				if got-base < tc.min {
					t.Errorf("expected channel %q to add at least %d, got %d", tc.channel, tc.min, got-base)
				}
			})
		}
	})

	t.Run("unwanted versions penalized", func(t *testing.T) {
		base := Score(services.VideoCandidate{Title: "Song Title by Artist"}, q)
		for _, suffix := range []string{"Cover", "Karaoke", "Slowed", "Nightcore", "Instrumental"} {
			c := services.VideoCandidate{Title: "Song Title by Artist " + suffix}
			if got := Score(c, q); got >= base {
				t.Errorf("expected %q to score below %d, got %d", suffix, base, got)
			}
		}
	})

	t.Run("conditional penalties spare official variants", func(t *testing.T) {
		remix := Score(services.VideoCandidate{Title: "Song Title Artist Remix"}, q)
		officialRemix := Score(services.VideoCandidate{Title: "Song Title Artist Official Remix"}, q)
		if officialRemix <= remix {
			t.Errorf("expected official remix (%d) to outscore plain remix (%d)", officialRemix, remix)
		}

		live := Score(services.VideoCandidate{Title: "Song Title Artist Live"}, q)
		officialLive := Score(services.VideoCandidate{Title: "Song Title Artist Official Live"}, q)
		if officialLive <= live {
			t.Errorf("expected official live (%d) to outscore plain live (%d)", officialLive, live)
		}
	})

	t.Run("compilation content penalized", func(t *testing.T) {
		for _, title := range []string{
			"Song Title Full Album",
			"Song Title Playlist",
			"Song Title Mix 2024",
			"Best of Artist Compilation",
		} {
			if got := Score(services.VideoCandidate{Title: title, ChannelTitle: "someone"}, q); got > rejectFloor {
				t.Errorf("expected %q to fall at or below the rejection floor, got %d", title, got)
			}
		}
	})

	t.Run("irrelevant title penalized", func(t *testing.T) {
		relevant := Score(services.VideoCandidate{Title: "Song Title audio", ChannelTitle: "x"}, q)
		irrelevant := Score(services.VideoCandidate{Title: "something else audio", ChannelTitle: "x"}, q)
		if relevant-irrelevant < penaltyIrrelevant {
			t.Errorf("expected irrelevance gap of at least %d, got %d", penaltyIrrelevant, relevant-irrelevant)
		}
	})
}

func TestPickBest(t *testing.T) {
	q := Query{Title: "Song Title", Artist: "Artist"}

	t.Run("highest score wins", func(t *testing.T) {
		candidates := []services.VideoCandidate{
			{VideoID: "plain", Title: "Song Title", ChannelTitle: "random"},
			{VideoID: "topic", Title: "Song Title Official Audio", ChannelTitle: "Artist - Topic"},
		}

		best, ok := pickBest(candidates, q)
		if !ok {
			t.Fatal("expected a winner")
		}
		if best.VideoID != "topic" {
			t.Errorf("expected topic candidate to win, got %s", best.VideoID)
		}
	})

	t.Run("ties keep provider order", func(t *testing.T) {
		candidates := []services.VideoCandidate{
			{VideoID: "first", Title: "Song Title audio", ChannelTitle: "x"},
			{VideoID: "second", Title: "Song Title audio", ChannelTitle: "x"},
		}

		best, ok := pickBest(candidates, q)
		if !ok {
			t.Fatal("expected a winner")
		}
		if best.VideoID != "first" {
			t.Errorf("expected first-listed candidate on tie, got %s", best.VideoID)
		}
	})

	t.Run("everything below floor rejected", func(t *testing.T) {
		candidates := []services.VideoCandidate{
			{VideoID: "reaction", Title: "Song Title Reaction", ChannelTitle: "SomeReactor"},
			{VideoID: "karaoke", Title: "Song Title Karaoke", ChannelTitle: "Sing Along"},
		}

		if _, ok := pickBest(candidates, q); ok {
			t.Error("expected no winner when every candidate is at or below the floor")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, ok := pickBest(nil, q); ok {
			t.Error("expected no winner for empty candidate list")
		}
	})
}
