package transform

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aniquiz/titlesearch/internal/anilist"
)

type fakeSearcher struct {
	calls map[string]int
	media map[string]*anilist.Media
}

func (f *fakeSearcher) SearchAnime(_ context.Context, title string) (*anilist.Media, error) {
	f.calls[title]++
	m, ok := f.media[title]
	if !ok {
		return nil, fmt.Errorf("%w: %q", anilist.ErrNotFound, title)
	}
	return m, nil
}

func TestEnrich(t *testing.T) {
	searcher := &fakeSearcher{
		calls: map[string]int{},
		media: map[string]*anilist.Media{
			"Sousou no Frieren": {
				ID:     154587,
				Genres: []string{"Adventure", "Fantasy"},
				Tags: []anilist.Tag{
					{Name: "Elf", Rank: 92},
					{Name: "Magic", Rank: 60},
				},
			},
		},
	}

	var out bytes.Buffer
	err := Enrich(context.Background(), searcher, strings.NewReader(sampleCSV), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, searcher.calls["Sousou no Frieren"], "one lookup per unique title")
	assert.Equal(t, 1, searcher.calls["NARUTO"])

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)

	header := rows[0]
	assert.Equal(t, "Genres", header[len(header)-2])
	assert.Equal(t, "Tags", header[len(header)-1])

	frierenRow := rows[1]
	assert.Equal(t, "Adventure; Fantasy", frierenRow[len(frierenRow)-2])
	assert.Equal(t, "Elf", frierenRow[len(frierenRow)-1], "only tags ranked above 75")

	// Unknown titles keep empty enrichment columns.
	narutoRow := rows[3]
	assert.Equal(t, "", narutoRow[len(narutoRow)-2])
	assert.Equal(t, "", narutoRow[len(narutoRow)-1])
}

func TestEnrichMissingJPName(t *testing.T) {
	var out bytes.Buffer
	err := Enrich(context.Background(), &fakeSearcher{calls: map[string]int{}}, strings.NewReader("a,b\n1,2\n"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JPName")
}
