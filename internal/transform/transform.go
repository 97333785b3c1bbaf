// Package transform builds the pre-normalized corpus files consumed by the
// search loader from the raw quiz data: the song CSV and the id-keyed anime
// title JSON. Normalization happens here, offline; the runtime loader and
// matcher never normalize stored data.
package transform

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aniquiz/titlesearch/internal/corpus"
	"github.com/aniquiz/titlesearch/internal/normalize"
)

// rawAnime is one entry of the id-keyed anime autocomplete JSON.
type rawAnime struct {
	JPName   string   `json:"animeJPName"`
	ENName   string   `json:"animeENName"`
	AltNames []string `json:"animeAltName"`
}

// SongsFromCSV reads the quiz CSV and extracts deduplicated song and artist
// records with normalized fields. The parser is header-aware: it maps the
// SongName and Artist columns by name, case-insensitively.
func SongsFromCSV(reader io.Reader) ([]corpus.Song, []corpus.Artist, error) {
	r := csv.NewReader(reader)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	songIdx, artistIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "songname":
			songIdx = i
		case "artist":
			artistIdx = i
		}
	}
	if songIdx < 0 {
		return nil, nil, fmt.Errorf("SongName column not found in header %v", header)
	}
	if artistIdx < 0 {
		return nil, nil, fmt.Errorf("Artist column not found in header %v", header)
	}

	get := func(rec []string, idx int) string {
		if idx < 0 || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	var songs []corpus.Song
	var artists []corpus.Artist
	seenSongs := make(map[string]struct{})
	seenArtists := make(map[string]struct{})

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}

		if name := get(rec, songIdx); name != "" {
			if _, seen := seenSongs[name]; !seen {
				seenSongs[name] = struct{}{}
				songs = append(songs, corpus.Song{
					ID:             strconv.Itoa(len(songs) + 1),
					SongName:       name,
					NormalizedName: normalize.Text(name),
				})
			}
		}
		if name := get(rec, artistIdx); name != "" {
			if _, seen := seenArtists[name]; !seen {
				seenArtists[name] = struct{}{}
				artists = append(artists, corpus.Artist{
					ID:             strconv.Itoa(len(artists) + 1),
					Artist:         name,
					NormalizedName: normalize.Text(name),
				})
			}
		}
	}

	return songs, artists, nil
}

// AnimeFromJSON reads the id-keyed anime title object and emits anime
// records with normalized fields, sorted by id for stable output. Entries
// without any title are skipped; empty alt titles are dropped so the
// original and normalized alt lists stay aligned.
func AnimeFromJSON(reader io.Reader) ([]corpus.Anime, error) {
	var raw map[string]rawAnime
	if err := json.NewDecoder(reader).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse anime json: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aerr := strconv.Atoi(ids[i])
		b, berr := strconv.Atoi(ids[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})

	var out []corpus.Anime
	for _, id := range ids {
		entry := raw[id]
		if entry.JPName == "" && entry.ENName == "" && len(entry.AltNames) == 0 {
			continue
		}

		a := corpus.Anime{
			ID:                    id,
			RomajiTitle:           entry.JPName,
			EnglishTitle:          entry.ENName,
			NormalizedRomajiTitle: normalize.Text(entry.JPName),
			NormalizedEnglish:     normalize.Text(entry.ENName),
		}
		for _, alt := range entry.AltNames {
			if alt == "" {
				continue
			}
			a.AltTitles = append(a.AltTitles, alt)
			a.NormalizedAltTitles = append(a.NormalizedAltTitles, normalize.Text(alt))
		}
		if a.RomajiTitle == "" && a.EnglishTitle == "" && len(a.AltTitles) == 0 {
			continue
		}
		out = append(out, a)
	}

	return out, nil
}

// WriteCorpus writes the three transformed JSON files into dir using the
// names the loader expects.
func WriteCorpus(dir string, songs []corpus.Song, artists []corpus.Artist, anime []corpus.Anime) error {
	if err := writeJSON(filepath.Join(dir, corpus.SongsFile), songs); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, corpus.ArtistsFile), artists); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, corpus.AnimeFile), anime)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
