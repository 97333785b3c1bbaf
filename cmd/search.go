package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aniquiz/titlesearch/internal/config"
	"github.com/aniquiz/titlesearch/internal/corpus"
	"github.com/aniquiz/titlesearch/internal/search"
)

var searchType string

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a one-off query against the corpus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cfgFile, searchType, args[0])
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(
		&searchType,
		"type",
		"t",
		"songs",
		"record type to search: songs, artists or anime",
	)
}

func runSearch(configPath, kind, query string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	c, err := corpus.NewLoader(cfg.DataDir).Load()
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
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
		return fmt.Errorf("unknown type: %s", kind)
	}

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, res := range results {
		marker := ""
		if res.Info.Fuzzy {
			marker = " (fuzzy)"
		}
		fmt.Printf("%3d%s  %s\n", res.Score, marker, resultTitle(res))
	}

	return nil
}

func resultTitle(res search.Result) string {
	switch doc := res.Document.(type) {
	case *corpus.Song:
		return doc.SongName
	case *corpus.Artist:
		return doc.Artist
	case *corpus.Anime:
		if res.Info.BestMatchTitle != "" {
			return res.Info.BestMatchTitle
		}
		if doc.EnglishTitle != "" {
			return doc.EnglishTitle
		}
		return doc.RomajiTitle
	default:
		return fmt.Sprintf("%v", doc)
	}
}
