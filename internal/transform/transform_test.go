package transform

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniquiz/titlesearch/internal/corpus"
)

const sampleCSV = `FileName,JPName,ENName,SongName,Artist,difficulty
op1.webm,Sousou no Frieren,Frieren: Beyond Journey's End,Yuusha,YOASOBI,easy
op2.webm,Sousou no Frieren,Frieren: Beyond Journey's End,Haru,Yorushika,hard
op3.webm,NARUTO,Naruto,Blue Bird,Ikimono-gakari,easy
op4.webm,NARUTO,Naruto,Blue Bird,Ikimono-gakari,hard
`

func TestSongsFromCSV(t *testing.T) {
	songs, artists, err := SongsFromCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Len(t, songs, 3, "duplicate song names are collapsed")
	assert.Equal(t, "1", songs[0].ID)
	assert.Equal(t, "Yuusha", songs[0].SongName)
	assert.Equal(t, "yuusha", songs[0].NormalizedName)
	assert.Equal(t, "Blue Bird", songs[2].SongName)

	require.Len(t, artists, 3)
	assert.Equal(t, "YOASOBI", artists[0].Artist)
	assert.Equal(t, "yoasobi", artists[0].NormalizedName)
	assert.Equal(t, "ikimono gakari", artists[2].NormalizedName, "hyphen folds to space")
}

func TestSongsFromCSVMissingColumn(t *testing.T) {
	_, _, err := SongsFromCSV(strings.NewReader("FileName,JPName\nx,y\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SongName")
}

func TestAnimeFromJSON(t *testing.T) {
	const input = `{
		"10": {"animeJPName":"Sousou no Frieren","animeENName":"Frieren: Beyond Journey's End","animeAltName":["Frieren",""]},
		"2":  {"animeJPName":"Hunter × Hunter","animeENName":"","animeAltName":[]},
		"3":  {"animeJPName":"","animeENName":"","animeAltName":[]}
	}`
	anime, err := AnimeFromJSON(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, anime, 2, "titleless entries are skipped")
	assert.Equal(t, "2", anime[0].ID, "numeric id order")
	assert.Equal(t, "hunter x hunter", anime[0].NormalizedRomajiTitle)

	frieren := anime[1]
	assert.Equal(t, "10", frieren.ID)
	assert.Equal(t, "sousou no frieren", frieren.NormalizedRomajiTitle)
	assert.Equal(t, "frieren beyond journey's end", frieren.NormalizedEnglish)
	require.Len(t, frieren.AltTitles, 1, "empty alt titles dropped")
	assert.Equal(t, len(frieren.AltTitles), len(frieren.NormalizedAltTitles), "alt lists stay aligned")
}

func TestWriteCorpusRoundTrip(t *testing.T) {
	songs, artists, err := SongsFromCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	anime, err := AnimeFromJSON(strings.NewReader(`{"1":{"animeJPName":"NARUTO","animeENName":"Naruto","animeAltName":[]}}`))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, WriteCorpus(dir, songs, artists, anime))

	for _, name := range []string{corpus.SongsFile, corpus.ArtistsFile, corpus.AnimeFile} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	loaded, err := corpus.NewLoader(dir).Load()
	require.NoError(t, err)
	assert.Len(t, loaded.Songs, 3)
	assert.Len(t, loaded.Artists, 3)
	assert.Len(t, loaded.Anime, 1)
}
