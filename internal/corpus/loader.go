package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File names produced by the transform pipeline.
const (
	SongsFile   = "transformed_song_names.json"
	ArtistsFile = "transformed_artists.json"
	AnimeFile   = "transformed_anime_names.json"
)

// UnavailableError reports that a corpus source could not be read or parsed.
// Search cannot run on a partial corpus (missing sets would show up as
// misleading empty results), so the loader fails whole.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("corpus source %s unavailable: %v", e.Source, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Loader reads the three pre-normalized record sets from a directory and
// caches the result for the process lifetime. The first caller loads;
// concurrent callers block on the same load and share the result.
type Loader struct {
	dir string

	mu     sync.Mutex
	cached *Corpus
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load returns the cached corpus, reading it from disk on first use.
func (l *Loader) Load() (*Corpus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cached != nil {
		return l.cached, nil
	}

	c := &Corpus{}
	if err := readJSON(filepath.Join(l.dir, SongsFile), &c.Songs); err != nil {
		return nil, &UnavailableError{Source: SongsFile, Err: err}
	}
	if err := readJSON(filepath.Join(l.dir, ArtistsFile), &c.Artists); err != nil {
		return nil, &UnavailableError{Source: ArtistsFile, Err: err}
	}
	if err := readJSON(filepath.Join(l.dir, AnimeFile), &c.Anime); err != nil {
		return nil, &UnavailableError{Source: AnimeFile, Err: err}
	}

	for _, a := range c.Anime {
		if len(a.AltTitles) != len(a.NormalizedAltTitles) {
			return nil, &UnavailableError{
				Source: AnimeFile,
				Err:    fmt.Errorf("entry %s: %d alt titles but %d normalized", a.ID, len(a.AltTitles), len(a.NormalizedAltTitles)),
			}
		}
	}

	l.cached = c
	return c, nil
}

// Reset drops the cached corpus so the next Load rereads from disk.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.cached = nil
	l.mu.Unlock()
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return nil
}
