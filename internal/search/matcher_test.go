package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniquiz/titlesearch/internal/corpus"
	"github.com/aniquiz/titlesearch/internal/normalize"
)

func frierenCorpus() []corpus.Anime {
	return []corpus.Anime{
		{
			ID:                    "1",
			RomajiTitle:           "Sousou no Frieren",
			EnglishTitle:          "Frieren: Beyond Journey's End",
			NormalizedRomajiTitle: "sousou no frieren",
			NormalizedEnglish:     "frieren beyond journeys end",
		},
	}
}

func TestAnimeFrierenScenario(t *testing.T) {
	results := Anime("frieren", frierenCorpus())
	require.Len(t, results, 1)

	r := results[0]
	info := r.Info
	assert.False(t, info.ExactMatch)
	assert.True(t, info.StartsWith, "english field starts with the query")
	assert.True(t, info.MatchedInRomaji)
	assert.True(t, info.MatchedInEnglish)
	assert.Equal(t, "english", info.BestMatchType)
	assert.Equal(t, "Frieren: Beyond Journey's End", info.BestMatchTitle)

	// prefix base + english + romaji field bonuses + multi-field bonus
	assert.Equal(t, 90+3+2+5, r.Score)
}

func TestAnimeEnglishOutranksRomajiOnly(t *testing.T) {
	anime := append(frierenCorpus(), corpus.Anime{
		ID:                    "2",
		RomajiTitle:           "Frieren no Nichijou",
		NormalizedRomajiTitle: "frieren mata no nichijou",
	})
	// second entry matches only in romaji and not as a prefix
	anime[1].NormalizedRomajiTitle = "dareka frieren"

	results := Anime("frieren", anime)
	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0].Document.(*corpus.Anime).ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestAnimeExactBeatsPrefixBeatsSubstring(t *testing.T) {
	anime := []corpus.Anime{
		{ID: "sub", NormalizedRomajiTitle: "the frieren show"},
		{ID: "exact", NormalizedRomajiTitle: "frieren"},
		{ID: "prefix", NormalizedRomajiTitle: "frieren two"},
	}
	results := Anime("frieren", anime)
	require.Len(t, results, 3)
	assert.Equal(t, "exact", results[0].Document.(*corpus.Anime).ID)
	assert.Equal(t, "prefix", results[1].Document.(*corpus.Anime).ID)
	assert.Equal(t, "sub", results[2].Document.(*corpus.Anime).ID)
}

func TestAnimeAltTitleMatch(t *testing.T) {
	anime := []corpus.Anime{
		{
			ID:                  "1",
			RomajiTitle:         "Kimi no Na wa.",
			AltTitles:           []string{"Your Name.", "Twoje imię"},
			NormalizedAltTitles: []string{"your name.", "twoje imie"},
		},
	}
	results := Anime("twoje", anime)
	require.Len(t, results, 1)

	info := results[0].Info
	assert.True(t, info.MatchedInAlt)
	assert.Equal(t, 1, info.MatchedAltIndex)
	assert.Equal(t, "alt", info.BestMatchType)
	assert.Equal(t, "Twoje imię", info.BestMatchTitle)
}

func TestSongsBothFormsBonus(t *testing.T) {
	songs := []corpus.Song{
		// original and normalized both contain "zero" -> +5
		{ID: "1", SongName: "Zero Gravity", NormalizedName: "zero gravity"},
		// only the normalized form contains the query ("0" folds to nothing here,
		// original spelled with a symbol the query can't hit)
		{ID: "2", SongName: "Zérø Mode x", NormalizedName: "zero mode x"},
	}
	results := Songs("zero", songs)
	require.Len(t, results, 2)

	assert.Equal(t, "1", results[0].Document.(*corpus.Song).ID)
	assert.Equal(t, 90+5, results[0].Score)
	assert.True(t, results[0].Info.MatchedInOriginal)

	assert.Equal(t, 90, results[1].Score)
	assert.False(t, results[1].Info.MatchedInOriginal)
}

func TestArtistsExactMatch(t *testing.T) {
	artists := []corpus.Artist{
		{ID: "1", Artist: "LiSA", NormalizedName: "lisa"},
		{ID: "2", Artist: "Lisa Komine", NormalizedName: "lisa komine"},
	}
	results := Artists("LiSA", artists)
	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0].Document.(*corpus.Artist).ID)
	assert.True(t, results[0].Info.ExactMatch)
	assert.False(t, results[1].Info.ExactMatch)
}

func TestQueryIsNormalized(t *testing.T) {
	songs := []corpus.Song{
		{ID: "1", SongName: "Fate and Zero", NormalizedName: "fate and zero"},
	}
	results := Songs("Fate & Zero", songs)
	require.Len(t, results, 1)
	assert.True(t, results[0].Info.ExactMatch)
}

func TestEmptyQuery(t *testing.T) {
	songs := []corpus.Song{{ID: "1", SongName: "A", NormalizedName: "a"}}
	assert.Empty(t, Songs("", songs))
	assert.Empty(t, Songs("   ", songs))
	assert.Empty(t, Anime("", frierenCorpus()))
}

func TestResultCap(t *testing.T) {
	songs := make([]corpus.Song, 40)
	for i := range songs {
		songs[i] = corpus.Song{
			ID:             fmt.Sprintf("%d", i),
			SongName:       fmt.Sprintf("common song %d", i),
			NormalizedName: fmt.Sprintf("common song %d", i),
		}
	}
	results := Songs("common", songs)
	assert.Len(t, results, MaxResults)
}

func TestStableOrderWithinGroup(t *testing.T) {
	// Identical group and score: corpus order must be preserved.
	songs := []corpus.Song{
		{ID: "first", SongName: "x common x", NormalizedName: "x common x"},
		{ID: "second", SongName: "y common y", NormalizedName: "y common y"},
		{ID: "third", SongName: "z common z", NormalizedName: "z common z"},
	}
	results := Songs("common", songs)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Document.(*corpus.Song).ID)
	assert.Equal(t, "second", results[1].Document.(*corpus.Song).ID)
	assert.Equal(t, "third", results[2].Document.(*corpus.Song).ID)
}

func TestContainmentMonotonicity(t *testing.T) {
	// If the normalized query is a substring of a normalized field, the
	// record must appear in the results.
	anime := []corpus.Anime{
		{ID: "1", NormalizedRomajiTitle: "mahou shoujo madoka magica"},
		{ID: "2", NormalizedEnglish: "puella magi madoka magica"},
		{ID: "3", NormalizedAltTitles: []string{"madoka"}, AltTitles: []string{"Madoka"}},
		{ID: "4", NormalizedRomajiTitle: "unrelated"},
	}
	q := normalize.Text("madoka")
	results := Anime("madoka", anime)

	found := map[string]bool{}
	for _, r := range results {
		found[r.Document.(*corpus.Anime).ID] = true
	}
	for _, a := range anime {
		contains := false
		for _, f := range append([]string{a.NormalizedRomajiTitle, a.NormalizedEnglish}, a.NormalizedAltTitles...) {
			if f != "" && strings.Contains(f, q) {
				contains = true
			}
		}
		assert.Equal(t, contains, found[a.ID], "record %s", a.ID)
	}
}
