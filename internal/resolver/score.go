package resolver

import (
	"regexp"
	"strings"

	"github.com/rendydev404/beatly-backend/internal/services"
)

// rejectFloor is the score at or below which a candidate is discarded.
const rejectFloor = -100

// Channel-based bonuses, highest trust first.
const (
	bonusChannelVEVO     = 100 // official distribution network
	bonusChannelTopic    = 90  // provider auto-generated "<Artist> - Topic" channel
	bonusChannelOfficial = 80  // artist name plus an "official" marker
	bonusChannelArtist   = 40
	bonusChannelLabel    = 20
)

// Title-based bonuses.
const (
	bonusProvidedTo         = 60 // auto-attribution phrase on machine-uploaded pure audio
	bonusOfficialAudio      = 50
	bonusOfficialMusicVideo = 40
	bonusOfficialVideo      = 35
	bonusTitleMatch         = 25
	bonusArtistMatch        = 20
	bonusOfficial           = 15
	bonusAudio              = 10
)

const (
	penaltyReaction   = 200 // non-musical commentary content
	penaltyVersion    = 150 // covers, remixes-of-sorts, altered audio
	penaltyIrrelevant = 50  // title mentions neither song nor artist
)

// Keywords indicating reaction/commentary/talk content rather than music.
// Matched against title OR channel name; each hit costs penaltyReaction.
var reactionKeywords = []string{
	"reaction",
	"review",
	"podcast",
	"interview",
	"behind the scenes",
	"explained",
	"commentary",
	"first time listening",
	"first time hearing",
	"unboxing",
	"storytime",
	"opinion",
	"discussion",
	"breakdown",
	"vlog",
}

// Keywords indicating an unwanted version of the song. Matched against the
// title only; each hit costs penaltyVersion.
var versionKeywords = []string{
	"cover",
	"karaoke",
	"instrumental",
	"slowed",
	"reverb",
	"bass boosted",
	"sped up",
	"nightcore",
	"8d audio",
	"lofi",
	"mashup",
	"parody",
	"tutorial",
	"lesson",
	"how to play",
	"unplugged",
	"acapella",
	"minus one",
}

// Label/distributor markers in channel names.
var labelKeywords = []string{
	"records",
	"recordings",
	"entertainment",
	"music group",
	"label",
	"distribution",
}

// Year-tagged mix phrases ("mix 2024" etc.) mark DJ sets, not songs.
var yearMixPattern = regexp.MustCompile(`mix 20\d{2}`)

// Score computes the desirability of a raw candidate for a normalized query.
//
// Pure and deterministic. All matching is case-insensitive substring matching;
// bonuses and penalties apply independently and are summed, never
// short-circuited.
func Score(c services.VideoCandidate, q Query) int {
	title := strings.ToLower(c.Title)
	channel := strings.ToLower(c.ChannelTitle)
	cleanTitle := strings.ToLower(q.Title)
	cleanArtist := strings.ToLower(q.Artist)

	score := 0

	// Channel signals
	if strings.Contains(channel, "vevo") {
		score += bonusChannelVEVO
	}
	if strings.Contains(channel, "- topic") {
		score += bonusChannelTopic
	}
	channelHasArtist := cleanArtist != "" && strings.Contains(channel, cleanArtist)
	if channelHasArtist && strings.Contains(channel, "official") {
		score += bonusChannelOfficial
	}
	if channelHasArtist {
		score += bonusChannelArtist
	}
	for _, kw := range labelKeywords {
		if strings.Contains(channel, kw) {
			score += bonusChannelLabel
			break
		}
	}

	// Title signals
	titleHasTitle := cleanTitle != "" && strings.Contains(title, cleanTitle)
	titleHasArtist := cleanArtist != "" && strings.Contains(title, cleanArtist)
	if titleHasTitle {
		score += bonusTitleMatch
	}
	if titleHasArtist {
		score += bonusArtistMatch
	}
	if strings.Contains(title, "official audio") {
		score += bonusOfficialAudio
	}
	if strings.Contains(title, "official music video") {
		score += bonusOfficialMusicVideo
	}
	if strings.Contains(title, "official video") {
		score += bonusOfficialVideo
	}
	if strings.Contains(title, "official") {
		score += bonusOfficial
	}
	if strings.Contains(title, "audio") {
		score += bonusAudio
	}
	if strings.Contains(title, "provided to youtube by") {
		score += bonusProvidedTo
	}

	// Reaction/commentary content, in title or channel
	for _, kw := range reactionKeywords {
		if strings.Contains(title, kw) || strings.Contains(channel, kw) {
			score -= penaltyReaction
		}
	}

	// Unwanted versions, title only
	for _, kw := range versionKeywords {
		if strings.Contains(title, kw) {
			score -= penaltyVersion
		}
	}

	// Conditional penalties
	if strings.Contains(title, "remix") && !strings.Contains(title, "official remix") {
		score -= 100
	}
	if strings.Contains(title, "live") && !strings.Contains(title, "official live") {
		score -= 80
	}
	if strings.Contains(title, "lyric") && !strings.Contains(title, "official") {
		score -= 30
	}
	if strings.Contains(title, "concert") {
		score -= 70
	}
	if strings.Contains(title, "performance") && !strings.Contains(title, "official") {
		score -= 50
	}
	if strings.Contains(title, "full album") {
		score -= 150
	}
	if strings.Contains(title, "playlist") {
		score -= 150
	}
	if yearMixPattern.MatchString(title) {
		score -= 150
	}
	if strings.Contains(title, "compilation") {
		score -= 150
	}
	if strings.Contains(title, "best of") {
		score -= 100
	}
	if strings.Contains(title, "top 10") {
		score -= 150
	}
	if strings.Contains(title, "extended") {
		score -= 30
	}
	if strings.Contains(title, "edit") {
		score -= 20
	}

	// Relevance floor: drift penalty even when other bonuses fired
	if !titleHasTitle && !titleHasArtist {
		score -= penaltyIrrelevant
	}

	return score
}

// pickBest returns the highest-scoring candidate above the rejection floor.
// Ties keep the provider's original result order (first one wins).
func pickBest(candidates []services.VideoCandidate, q Query) (services.VideoCandidate, bool) {
	var best services.VideoCandidate
	bestScore := rejectFloor
	found := false

	for _, c := range candidates {
		s := Score(c, q)
		if s <= rejectFloor {
			continue
		}
		if !found || s > bestScore {
			best = c
			bestScore = s
			found = true
		}
	}

	return best, found
}
