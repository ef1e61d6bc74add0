package resolver

import (
	"regexp"
	"strings"
)

var (
	parenPattern   = regexp.MustCompile(`\([^)]*\)`)
	bracketPattern = regexp.MustCompile(`\[[^\]]*\]`)
	featPattern    = regexp.MustCompile(`(?i)\s*\b(?:feat\.|ft\.)\s*.*$`)
)

// Query is the canonical search form of a (title, artist) pair.
type Query struct {
	Title  string
	Artist string
}

// Normalize cleans a raw (title, artist) pair into a [Query].
//
// Title, in order: parenthesized segments, bracketed segments, and a trailing
// "feat."/"ft." clause are removed; the title is truncated at the first dash
// (track titles rarely contain one, qualifiers like "Remastered 2011" follow
// it); surrounding whitespace is trimmed. Artist keeps only the first listed
// name (portion before the first comma).
//
// When cleaning would empty a field, the trimmed original input is kept
// instead so downstream searches never run on an empty string. Pure and
// idempotent: Normalize of its own output is a no-op.
func Normalize(title, artist string) Query {
	clean := parenPattern.ReplaceAllString(title, "")
	clean = bracketPattern.ReplaceAllString(clean, "")
	clean = featPattern.ReplaceAllString(clean, "")
	if idx := strings.Index(clean, "-"); idx >= 0 {
		clean = clean[:idx]
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		clean = strings.TrimSpace(title)
	}

	cleanArtist := artist
	if idx := strings.Index(cleanArtist, ","); idx >= 0 {
		cleanArtist = cleanArtist[:idx]
	}
	cleanArtist = strings.TrimSpace(cleanArtist)
	if cleanArtist == "" {
		cleanArtist = strings.TrimSpace(artist)
	}

	return Query{Title: clean, Artist: cleanArtist}
}

// CacheKey derives the cache key for this query. Two pairs that normalize
// identically share an entry regardless of casing.
func (q Query) CacheKey() string {
	return strings.ToLower(q.Title) + "_" + strings.ToLower(q.Artist)
}
