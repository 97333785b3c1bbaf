package corpus

// Song is one searchable song title. Normalized fields are precomputed by
// the transform pipeline; the loader never normalizes.
type Song struct {
	ID             string `json:"id"`
	SongName       string `json:"songName"`
	NormalizedName string `json:"normalizedName"`
}

// Artist is one searchable artist name.
type Artist struct {
	ID             string `json:"id"`
	Artist         string `json:"artist"`
	NormalizedName string `json:"normalizedName"`
}

// Anime is one searchable anime entry. AltTitles and NormalizedAltTitles are
// positionally aligned: index i of one corresponds to index i of the other.
type Anime struct {
	ID                    string   `json:"id"`
	RomajiTitle           string   `json:"romajiTitle"`
	EnglishTitle          string   `json:"englishTitle"`
	AltTitles             []string `json:"altTitles"`
	NormalizedRomajiTitle string   `json:"normalizedRomajiTitle"`
	NormalizedEnglish     string   `json:"normalizedEnglishTitle"`
	NormalizedAltTitles   []string `json:"normalizedAltTitles"`
}

// Corpus bundles the three record sets. Immutable after load; a reload
// replaces the whole value, never patches it in place.
type Corpus struct {
	Songs   []Song
	Artists []Artist
	Anime   []Anime
}
