package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rendydev404/beatly-backend/internal/resolver"
	"github.com/rendydev404/beatly-backend/internal/shared"
	"github.com/urfave/cli/v3"
)

// Resolve finds the best video match for a single song, for inspecting match
// quality from the command line.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	title := cmd.String("title")
	artist := cmd.String("artist")
	useJSON := cmd.Bool("json")

	q := resolver.Normalize(title, artist)
	r.logger.Info("resolving", "title", q.Title, "artist", q.Artist)

	videoID, err := r.engine.ResolveVideoID(ctx, title, artist)
	if err != nil {
		if errors.Is(err, shared.ErrNoMatch) {
			r.writePlainln("✗ No acceptable match for %s - %s", artist, title)
			return nil
		}
		return fmt.Errorf("resolution failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(map[string]string{
			"title":   q.Title,
			"artist":  q.Artist,
			"videoId": videoID,
		}, false)
	}

	r.writePlainln("✓ %s - %s", q.Artist, q.Title)
	r.writePlain("  videoId: %s\n", videoID)
	r.writePlain("  url: https://www.youtube.com/watch?v=%s\n", videoID)

	return nil
}
