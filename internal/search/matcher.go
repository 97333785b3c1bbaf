// Package search implements the in-memory substring matcher used by the
// autocomplete endpoints. Stored records carry pre-normalized fields; only
// the incoming query is normalized here. Matching is a linear scan, bounded
// by corpus size (a few thousand records).
package search

import (
	"sort"
	"strings"

	"github.com/aniquiz/titlesearch/internal/corpus"
	"github.com/aniquiz/titlesearch/internal/normalize"
)

// MaxResults caps every result list.
const MaxResults = 25

// Base scores by match group; group precedence dominates the sort, the
// numeric score only breaks ties within a group.
const (
	scoreExact     = 100
	scorePrefix    = 90
	scoreSubstring = 80
)

// Tuning bonuses carried over from the production scoring. Ad hoc values;
// kept verbatim for behavioral compatibility.
const (
	bonusEnglishField = 3
	bonusRomajiField  = 2
	bonusAltField     = 1
	bonusMultiField   = 5
	bonusBothForms    = 5
)

// Info describes how a record matched. Field subsets differ per record
// kind: the matchedIn*/bestMatch* fields are anime-only, the
// matchedInOriginal/matchedInNormalized pair is for songs and artists.
type Info struct {
	ExactMatch  bool `json:"exactMatch"`
	StartsWith  bool `json:"startsWith"`
	IsSubstring bool `json:"isSubstring"`

	MatchedInRomaji          bool   `json:"matchedInRomaji,omitempty"`
	MatchedInEnglish         bool   `json:"matchedInEnglish,omitempty"`
	MatchedInAlt             bool   `json:"matchedInAlt,omitempty"`
	MatchedAltIndex          int    `json:"matchedAltIndex"`
	BestMatchType            string `json:"bestMatchType,omitempty"`
	BestMatchTitle           string `json:"bestMatchTitle,omitempty"`
	BestMatchNormalizedTitle string `json:"bestMatchNormalizedTitle,omitempty"`

	MatchedInOriginal   bool `json:"matchedInOriginal,omitempty"`
	MatchedInNormalized bool `json:"matchedInNormalized,omitempty"`

	Fuzzy bool `json:"fuzzy,omitempty"`
}

// Result is one ranked hit. Document holds the matched record
// (*corpus.Song, *corpus.Artist or *corpus.Anime).
type Result struct {
	Document any  `json:"document"`
	Score    int  `json:"text_match"`
	Info     Info `json:"text_match_info"`
}

// Songs matches query against the song corpus and returns ranked results.
// An empty (or normalizes-to-empty) query returns no results.
func Songs(query string, songs []corpus.Song) []Result {
	q := normalize.Text(query)
	if q == "" {
		return nil
	}

	var results []Result
	for i := range songs {
		s := &songs[i]
		if info, ok := matchName(q, s.SongName, s.NormalizedName); ok {
			results = append(results, Result{Document: s, Score: nameScore(info), Info: info})
		}
	}
	return rankAndCap(results)
}

// Artists matches query against the artist corpus.
func Artists(query string, artists []corpus.Artist) []Result {
	q := normalize.Text(query)
	if q == "" {
		return nil
	}

	var results []Result
	for i := range artists {
		a := &artists[i]
		if info, ok := matchName(q, a.Artist, a.NormalizedName); ok {
			results = append(results, Result{Document: a, Score: nameScore(info), Info: info})
		}
	}
	return rankAndCap(results)
}

// Anime matches query against all title fields of the anime corpus: romaji,
// english and every alt title.
func Anime(query string, anime []corpus.Anime) []Result {
	q := normalize.Text(query)
	if q == "" {
		return nil
	}

	var results []Result
	for i := range anime {
		a := &anime[i]
		if info, score, ok := matchAnime(q, a); ok {
			results = append(results, Result{Document: a, Score: score, Info: info})
		}
	}
	return rankAndCap(results)
}

// matchName handles the single-field record kinds. The normalized field
// decides the match; the original value only contributes the both-forms
// bonus and the exact/prefix flags.
func matchName(q, original, normalized string) (Info, bool) {
	if !strings.Contains(normalized, q) {
		return Info{MatchedAltIndex: -1}, false
	}

	origLower := strings.ToLower(original)
	info := Info{
		ExactMatch:          normalized == q || origLower == q,
		StartsWith:          strings.HasPrefix(normalized, q) || strings.HasPrefix(origLower, q),
		IsSubstring:         true,
		MatchedInNormalized: true,
		MatchedInOriginal:   strings.Contains(origLower, q),
		MatchedAltIndex:     -1,
	}
	return info, true
}

func nameScore(info Info) int {
	score := baseScore(info)
	if info.MatchedInOriginal && info.MatchedInNormalized {
		score += bonusBothForms
	}
	return score
}

func matchAnime(q string, a *corpus.Anime) (Info, int, bool) {
	inRomaji := a.NormalizedRomajiTitle != "" && strings.Contains(a.NormalizedRomajiTitle, q)
	inEnglish := a.NormalizedEnglish != "" && strings.Contains(a.NormalizedEnglish, q)

	inAlt := false
	altIdx := -1
	for i, alt := range a.NormalizedAltTitles {
		if strings.Contains(alt, q) {
			inAlt = true
			altIdx = i
			break
		}
	}

	if !inRomaji && !inEnglish && !inAlt {
		return Info{MatchedAltIndex: -1}, 0, false
	}

	exactRomaji := a.NormalizedRomajiTitle == q
	exactEnglish := a.NormalizedEnglish == q
	exactAlt := altIdx >= 0 && a.NormalizedAltTitles[altIdx] == q

	prefixRomaji := a.NormalizedRomajiTitle != "" && strings.HasPrefix(a.NormalizedRomajiTitle, q)
	prefixEnglish := a.NormalizedEnglish != "" && strings.HasPrefix(a.NormalizedEnglish, q)
	prefixAlt := altIdx >= 0 && strings.HasPrefix(a.NormalizedAltTitles[altIdx], q)

	info := Info{
		ExactMatch:       exactRomaji || exactEnglish || exactAlt,
		StartsWith:       prefixRomaji || prefixEnglish || prefixAlt,
		IsSubstring:      true,
		MatchedInRomaji:  inRomaji,
		MatchedInEnglish: inEnglish,
		MatchedInAlt:     inAlt,
		MatchedAltIndex:  altIdx,
	}

	// Best field: exact beats prefix beats contains, english beats romaji
	// beats alt within each tier.
	switch {
	case exactEnglish:
		info.setBest("english", a.EnglishTitle, a.NormalizedEnglish)
	case exactRomaji:
		info.setBest("romaji", a.RomajiTitle, a.NormalizedRomajiTitle)
	case exactAlt:
		info.setBest("alt", a.AltTitles[altIdx], a.NormalizedAltTitles[altIdx])
	case prefixEnglish:
		info.setBest("english", a.EnglishTitle, a.NormalizedEnglish)
	case prefixRomaji:
		info.setBest("romaji", a.RomajiTitle, a.NormalizedRomajiTitle)
	case prefixAlt:
		info.setBest("alt", a.AltTitles[altIdx], a.NormalizedAltTitles[altIdx])
	case inEnglish:
		info.setBest("english", a.EnglishTitle, a.NormalizedEnglish)
	case inRomaji:
		info.setBest("romaji", a.RomajiTitle, a.NormalizedRomajiTitle)
	case inAlt:
		info.setBest("alt", a.AltTitles[altIdx], a.NormalizedAltTitles[altIdx])
	}

	score := baseScore(info)
	if inEnglish {
		score += bonusEnglishField
	}
	if inRomaji {
		score += bonusRomajiField
	}
	if inAlt {
		score += bonusAltField
	}
	if (inRomaji && inEnglish) || (inRomaji && inAlt) || (inEnglish && inAlt) {
		score += bonusMultiField
	}

	return info, score, true
}

func (i *Info) setBest(kind, title, normalized string) {
	i.BestMatchType = kind
	i.BestMatchTitle = title
	i.BestMatchNormalizedTitle = normalized
}

func baseScore(info Info) int {
	switch {
	case info.ExactMatch:
		return scoreExact
	case info.StartsWith:
		return scorePrefix
	default:
		return scoreSubstring
	}
}

// groupRank orders match groups: exact before prefix before substring.
func groupRank(info Info) int {
	switch {
	case info.ExactMatch:
		return 0
	case info.StartsWith:
		return 1
	default:
		return 2
	}
}

// rankAndCap sorts by group precedence then descending score. The sort is
// stable so equal-ranked records keep corpus order.
func rankAndCap(results []Result) []Result {
	sort.SliceStable(results, func(i, j int) bool {
		gi, gj := groupRank(results[i].Info), groupRank(results[j].Info)
		if gi != gj {
			return gi < gj
		}
		return results[i].Score > results[j].Score
	})
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}
