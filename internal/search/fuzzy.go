package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/aniquiz/titlesearch/internal/corpus"
	"github.com/aniquiz/titlesearch/internal/normalize"
)

// Suggestions score below every substring hit so a fallback can never
// outrank a real match.
const suggestionBase = 70

// candidate pairs one normalized field with the index of its record.
type candidate struct {
	text  string
	index int
}

// SuggestSongs returns near-miss song results by edit distance, for use
// when substring matching finds nothing.
func SuggestSongs(query string, songs []corpus.Song) []Result {
	cands := make([]candidate, len(songs))
	for i := range songs {
		cands[i] = candidate{text: songs[i].NormalizedName, index: i}
	}
	var results []Result
	for _, s := range suggest(query, cands) {
		results = append(results, Result{
			Document: &songs[s.index],
			Score:    s.score,
			Info:     Info{Fuzzy: true, MatchedAltIndex: -1},
		})
	}
	return results
}

// SuggestArtists returns near-miss artist results by edit distance.
func SuggestArtists(query string, artists []corpus.Artist) []Result {
	cands := make([]candidate, len(artists))
	for i := range artists {
		cands[i] = candidate{text: artists[i].NormalizedName, index: i}
	}
	var results []Result
	for _, s := range suggest(query, cands) {
		results = append(results, Result{
			Document: &artists[s.index],
			Score:    s.score,
			Info:     Info{Fuzzy: true, MatchedAltIndex: -1},
		})
	}
	return results
}

// SuggestAnime returns near-miss anime results, scanning romaji, english
// and alt titles.
func SuggestAnime(query string, anime []corpus.Anime) []Result {
	var cands []candidate
	for i := range anime {
		a := &anime[i]
		if a.NormalizedRomajiTitle != "" {
			cands = append(cands, candidate{text: a.NormalizedRomajiTitle, index: i})
		}
		if a.NormalizedEnglish != "" {
			cands = append(cands, candidate{text: a.NormalizedEnglish, index: i})
		}
		for _, alt := range a.NormalizedAltTitles {
			if alt != "" {
				cands = append(cands, candidate{text: alt, index: i})
			}
		}
	}
	var results []Result
	for _, s := range suggest(query, cands) {
		results = append(results, Result{
			Document: &anime[s.index],
			Score:    s.score,
			Info:     Info{Fuzzy: true, MatchedAltIndex: -1},
		})
	}
	return results
}

type scoredIndex struct {
	index int
	score int
}

// suggest ranks candidates by Levenshtein distance against the normalized
// query, deduplicated per record (best field wins). Candidates are
// pre-filtered by length window and first rune before the distance scan.
func suggest(query string, cands []candidate) []scoredIndex {
	q := normalize.Text(query)
	if q == "" || len(cands) == 0 {
		return nil
	}

	thr := distanceThreshold(len(q))
	filtered := filterCandidates(cands, q, thr)
	if len(filtered) == 0 {
		return nil
	}

	best := make(map[int]int) // record index -> best distance
	var order []int
	for _, c := range filtered {
		d := fuzzy.LevenshteinDistance(q, c.text)
		if d > thr {
			continue
		}
		if prev, seen := best[c.index]; !seen || d < prev {
			if !seen {
				order = append(order, c.index)
			}
			best[c.index] = d
		}
	}

	out := make([]scoredIndex, 0, len(order))
	for _, idx := range order {
		out = append(out, scoredIndex{index: idx, score: suggestionBase - best[idx]})
	}
	// Closest first; corpus order breaks ties.
	sort.SliceStable(out, func(i, j int) bool { return out[i].score > out[j].score })
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

// distanceThreshold allows roughly 20% of the query length as edit
// distance, clamped to [1,3].
func distanceThreshold(n int) int {
	th := n / 5
	if th < 1 {
		return 1
	}
	if th > 3 {
		return 3
	}
	return th
}

// filterCandidates drops candidates whose length or first rune makes the
// threshold unreachable, keeping the distance scan cheap.
func filterCandidates(cands []candidate, pattern string, threshold int) []candidate {
	firstRune := func(s string) rune {
		for _, r := range s {
			return r
		}
		return 0
	}

	fr := firstRune(pattern)
	patLen := len(pattern)

	filtered := make([]candidate, 0, len(cands)/4)
	for _, c := range cands {
		if abs(len(c.text)-patLen) > threshold {
			continue
		}
		if firstRune(c.text) != fr {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
