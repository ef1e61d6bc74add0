package resolver

import "fmt"

// queryCount is the fixed length of every generated query sequence.
const queryCount = 6

// BuildQueries produces the ordered search queries for a normalized pair,
// most specific first. Earlier queries are precision-oriented (an exact-phrase
// match or an official-channel marker tends to surface the canonical upload
// first); later ones trade precision for recall. The resolution loop tries
// them strictly in this order and stops at the first acceptable candidate.
func BuildQueries(q Query) []string {
	base := q.Title + " " + q.Artist

	return []string{
		fmt.Sprintf("%q official audio", base),
		base + " VEVO",
		base + " official music video",
		base + " topic",
		base + " audio",
		base,
	}
}
