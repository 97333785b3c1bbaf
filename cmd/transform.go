package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aniquiz/titlesearch/internal/transform"
)

var (
	songsFile string
	animeFile string
	outDir    string
)

// transformCmd represents the transform command
var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Build the search corpus from raw quiz exports",
	Long: `transform reads the raw song list CSV and the anime name JSON export,
deduplicates and normalizes them, and writes the three corpus files the
server loads at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(songsFile, animeFile, outDir)
	},
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringVarP(
		&songsFile,
		"songs",
		"s",
		"",
		"path to song list CSV",
	)
	transformCmd.MarkFlagRequired("songs")

	transformCmd.Flags().StringVarP(
		&animeFile,
		"anime",
		"a",
		"",
		"path to anime name JSON",
	)
	transformCmd.MarkFlagRequired("anime")

	transformCmd.Flags().StringVarP(
		&outDir,
		"out",
		"o",
		"data",
		"output directory for corpus files",
	)
}

func runTransform(songsPath, animePath, dir string) error {
	fmt.Println("--- Reading Song List ---")

	songsIn, err := os.Open(songsPath)
	if err != nil {
		return fmt.Errorf("open song list: %w", err)
	}
	defer songsIn.Close()

	songs, artists, err := transform.SongsFromCSV(songsIn)
	if err != nil {
		return fmt.Errorf("transform song list: %w", err)
	}

	fmt.Printf("Got %d songs and %d artists.\n", len(songs), len(artists))

	fmt.Println("--- Reading Anime Names ---")

	animeIn, err := os.Open(animePath)
	if err != nil {
		return fmt.Errorf("open anime names: %w", err)
	}
	defer animeIn.Close()

	anime, err := transform.AnimeFromJSON(animeIn)
	if err != nil {
		return fmt.Errorf("transform anime names: %w", err)
	}

	fmt.Printf("Got %d anime.\n", len(anime))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := transform.WriteCorpus(dir, songs, artists, anime); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}

	fmt.Printf("Wrote corpus files to %s.\n", dir)

	return nil
}
