package backend

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/aniquiz/titlesearch/internal/corpus"
	"github.com/aniquiz/titlesearch/internal/hint"
	"github.com/aniquiz/titlesearch/internal/search"
)

// SearchAPI serves the autocomplete and hint endpoints.
type SearchAPI struct {
	loader *corpus.Loader
	masker *hint.Masker
	hints  *hint.Store // nil disables per-round hint persistence
}

func NewSearchAPI(loader *corpus.Loader, masker *hint.Masker, hints *hint.Store) *SearchAPI {
	return &SearchAPI{
		loader: loader,
		masker: masker,
		hints:  hints,
	}
}

type searchResponse struct {
	Hits []searchHit `json:"hits"`
}

type searchHit struct {
	Document  any         `json:"document"`
	TextMatch int         `json:"text_match"`
	MatchInfo search.Info `json:"text_match_info"`
}

// animeDocument is the anime hit shape the quiz UI consumes: the best
// matching title is promoted to the display fields, all variants ride along.
type animeDocument struct {
	ID                    string   `json:"id"`
	AnimeTitle            string   `json:"animeTitle"`
	DisplayTitle          string   `json:"displayTitle"`
	MatchType             string   `json:"matchType"`
	RomajiTitle           string   `json:"romajiTitle"`
	EnglishTitle          string   `json:"englishTitle"`
	AltTitles             []string `json:"altTitles"`
	NormalizedRomajiTitle string   `json:"normalizedRomajiTitle"`
	NormalizedEnglish     string   `json:"normalizedEnglishTitle"`
	NormalizedAltTitles   []string `json:"normalizedAltTitles"`
}

// HandleSearch serves GET /api/search?q=...&type=songs|artists|anime.
// An empty query returns an empty hit list so the UI can call it while the
// user is still typing. When substring matching finds nothing, near-miss
// suggestions are returned instead, flagged fuzzy in the match info.
func (api *SearchAPI) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = "songs"
	}

	c, err := api.loader.Load()
	if err != nil {
		log.Printf("corpus load failed: %v", err)
		http.Error(w, "search data unavailable", http.StatusInternalServerError)
		return
	}

	var results []search.Result
	switch kind {
	case "songs":
		results = search.Songs(query, c.Songs)
		if len(results) == 0 {
			results = search.SuggestSongs(query, c.Songs)
		}
	case "artists":
		results = search.Artists(query, c.Artists)
		if len(results) == 0 {
			results = search.SuggestArtists(query, c.Artists)
		}
	case "anime":
		results = search.Anime(query, c.Anime)
		if len(results) == 0 {
			results = search.SuggestAnime(query, c.Anime)
		}
	default:
		http.Error(w, "unknown type: "+kind, http.StatusBadRequest)
		return
	}

	hits := make([]searchHit, 0, len(results))
	for _, res := range results {
		doc := res.Document
		if a, ok := res.Document.(*corpus.Anime); ok {
			doc = animeDoc(a, res.Info)
		}
		hits = append(hits, searchHit{Document: doc, TextMatch: res.Score, MatchInfo: res.Info})
	}

	writeJSON(w, searchResponse{Hits: hits})
}

func animeDoc(a *corpus.Anime, info search.Info) animeDocument {
	display := info.BestMatchTitle
	matchType := info.BestMatchType
	if display == "" {
		// fuzzy suggestions carry no best-match info
		switch {
		case a.EnglishTitle != "":
			display, matchType = a.EnglishTitle, "english"
		case a.RomajiTitle != "":
			display, matchType = a.RomajiTitle, "romaji"
		case len(a.AltTitles) > 0:
			display, matchType = a.AltTitles[0], "alt"
		}
	}
	return animeDocument{
		ID:                    a.ID,
		AnimeTitle:            display,
		DisplayTitle:          display,
		MatchType:             matchType,
		RomajiTitle:           a.RomajiTitle,
		EnglishTitle:          a.EnglishTitle,
		AltTitles:             a.AltTitles,
		NormalizedRomajiTitle: a.NormalizedRomajiTitle,
		NormalizedEnglish:     a.NormalizedEnglish,
		NormalizedAltTitles:   a.NormalizedAltTitles,
	}
}

type hintRequest struct {
	Content string `json:"content"`
	RoundID string `json:"roundId"`
}

type hintResponse struct {
	Hint string `json:"hint"`
}

// HandleHint serves POST /api/hint with {content, roundId}. When a round id
// is given and a hint for (round, content) was already generated, that hint
// is returned again; otherwise a new one is generated and persisted so the
// round never reveals two different character subsets.
func (api *SearchAPI) HandleHint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req hintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	var roundID uuid.UUID
	if req.RoundID != "" {
		id, err := uuid.Parse(req.RoundID)
		if err != nil {
			http.Error(w, "invalid roundId", http.StatusBadRequest)
			return
		}
		roundID = id

		if api.hints != nil {
			if stored, err := api.hints.Get(roundID, req.Content); err == nil {
				writeJSON(w, hintResponse{Hint: stored})
				return
			} else if !errors.Is(err, hint.ErrNoHint) {
				log.Printf("hint lookup failed: %v", err)
			}
		}
	}

	masked, err := api.masker.Generate(req.Content)
	if err != nil {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	if req.RoundID != "" && api.hints != nil {
		// Reuse beats durability: serve the hint even if persisting failed.
		if err := api.hints.Put(roundID, req.Content, masked); err != nil {
			log.Printf("hint persist failed: %v", err)
		}
	}

	writeJSON(w, hintResponse{Hint: masked})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
