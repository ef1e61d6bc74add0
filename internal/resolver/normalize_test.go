package resolver

import "testing"

func TestNormalize(t *testing.T) {
	t.Run("strips decorations", func(t *testing.T) {
		cases := []struct {
			name       string
			title      string
			artist     string
			wantTitle  string
			wantArtist string
		}{
			{
				name:       "parens brackets and feat clause",
				title:      "Blinding Lights (feat. X) [Official Video]",
				artist:     "The Weeknd, ft. Y",
				wantTitle:  "Blinding Lights",
				wantArtist: "The Weeknd",
			},
			{
				name:       "dash suffix truncated",
				title:      "Bohemian Rhapsody - Remastered 2011",
				artist:     "Queen",
				wantTitle:  "Bohemian Rhapsody",
				wantArtist: "Queen",
			},
			{
				name:       "ft clause",
				title:      "Love Me ft. Somebody",
				artist:     "Artist A, Artist B",
				wantTitle:  "Love Me",
				wantArtist: "Artist A",
			},
			{
				name:       "already clean",
				title:      "Yellow",
				artist:     "Coldplay",
				wantTitle:  "Yellow",
				wantArtist: "Coldplay",
			},
			{
				name:       "surrounding whitespace",
				title:      "  Creep  ",
				artist:     "  Radiohead ",
				wantTitle:  "Creep",
				wantArtist: "Radiohead",
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got := Normalize(tc.title, tc.artist)
				if got.Title != tc.wantTitle {
					t.Errorf("expected title %q, got %q", tc.wantTitle, got.Title)
				}
				if got.Artist != tc.wantArtist {
					t.Errorf("expected artist %q, got %q", tc.wantArtist, got.Artist)
				}
			})
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := [][2]string{
			{"Blinding Lights (feat. X) [Official Video]", "The Weeknd, ft. Y"},
			{"Song - Live in Tokyo", "Band, Guest"},
			{"Plain Title", "Plain Artist"},
		}

		for _, in := range inputs {
			once := Normalize(in[0], in[1])
			twice := Normalize(once.Title, once.Artist)
			if once != twice {
				t.Errorf("Normalize not idempotent for %q/%q: %v != %v", in[0], in[1], once, twice)
			}
		}
	})

	t.Run("empty after cleaning falls back to trimmed original", func(t *testing.T) {
		got := Normalize("(Intro)", "Someone")
		if got.Title != "(Intro)" {
			t.Errorf("expected fallback to original title, got %q", got.Title)
		}

		got = Normalize("Song", "  ,Second")
		if got.Artist != ",Second" {
			t.Errorf("expected fallback to trimmed original artist, got %q", got.Artist)
		}
	})

	t.Run("CacheKey", func(t *testing.T) {
		a := Normalize("Blinding Lights", "The Weeknd").CacheKey()
		b := Normalize("BLINDING LIGHTS (Live)", "the weeknd, someone").CacheKey()
		if a != b {
			t.Errorf("expected equivalent inputs to share a cache key: %q vs %q", a, b)
		}
		if a != "blinding lights_the weeknd" {
			t.Errorf("unexpected cache key %q", a)
		}
	})
}
