package anilist

// mediaQuery looks up one anime by title and returns the fields the
// enrichment pipeline consumes.
const mediaQuery = `
query ($search: String) {
  Media (search: $search, type: ANIME) {
    id
    title {
      romaji
      english
      native
    }
    genres
    tags {
      name
      rank
    }
  }
}
`

// Title holds the three title variants AniList tracks.
type Title struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

// Tag is a weighted theme tag; Rank runs 0-100.
type Tag struct {
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// Media is one anime entry from the AniList API.
type Media struct {
	ID     int      `json:"id"`
	Title  Title    `json:"title"`
	Genres []string `json:"genres"`
	Tags   []Tag    `json:"tags"`
}

// HighRankTags returns the names of tags ranked above the threshold.
func (m *Media) HighRankTags(minRank int) []string {
	var names []string
	for _, t := range m.Tags {
		if t.Rank > minRank {
			names = append(names, t.Name)
		}
	}
	return names
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type mediaResponse struct {
	Data struct {
		Media *Media `json:"Media"`
	} `json:"data"`
	Errors []graphqlError `json:"errors,omitempty"`
}
