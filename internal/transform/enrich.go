package transform

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/aniquiz/titlesearch/internal/anilist"
)

// minTagRank keeps only strongly associated tags on enriched rows.
const minTagRank = 75

// MediaSearcher is the slice of the AniList client the enrichment needs.
type MediaSearcher interface {
	SearchAnime(ctx context.Context, title string) (*anilist.Media, error)
}

// Enrich appends Genres and Tags columns to the quiz CSV, looked up on
// AniList by the JPName column. Lookups are cached per unique title so each
// anime is queried once regardless of how many songs it has. Rows whose
// title AniList does not know get empty columns rather than failing the run.
func Enrich(ctx context.Context, client MediaSearcher, in io.Reader, out io.Writer) error {
	r := csv.NewReader(in)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("csv is empty")
	}

	header := rows[0]
	nameIdx := -1
	for i, h := range header {
		if strings.TrimSpace(h) == "JPName" {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return fmt.Errorf("JPName column not found in header %v", header)
	}

	type animeInfo struct {
		genres string
		tags   string
	}
	cache := make(map[string]animeInfo)

	var uniqueNames []string
	for _, row := range rows[1:] {
		if nameIdx >= len(row) {
			continue
		}
		name := row[nameIdx]
		if _, seen := cache[name]; !seen {
			cache[name] = animeInfo{}
			uniqueNames = append(uniqueNames, name)
		}
	}

	fmt.Printf("Enriching %d unique anime names...\n", len(uniqueNames))

	for i, name := range uniqueNames {
		fmt.Printf("Processing %d/%d: %s\n", i+1, len(uniqueNames), name)

		media, err := client.SearchAnime(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Printf("  no data: %v\n", err)
			continue
		}

		cache[name] = animeInfo{
			genres: strings.Join(media.Genres, "; "),
			tags:   strings.Join(media.HighRankTags(minTagRank), "; "),
		}
	}

	w := csv.NewWriter(out)
	if err := w.Write(append(append([]string{}, header...), "Genres", "Tags")); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows[1:] {
		info := animeInfo{}
		if nameIdx < len(row) {
			info = cache[row[nameIdx]]
		}
		if err := w.Write(append(append([]string{}, row...), info.genres, info.tags)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
