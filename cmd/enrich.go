package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aniquiz/titlesearch/internal/anilist"
	"github.com/aniquiz/titlesearch/internal/transform"
)

var (
	enrichInput  string
	enrichOutput string
)

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Append AniList genres and tags to a song list CSV",
	Long: `enrich looks every anime title in the song list CSV up on AniList and
appends Genres and Tags columns. Lookups are rate limited to one request
per second, so large lists take a while.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEnrich(cmd.Context(), enrichInput, enrichOutput)
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().StringVarP(
		&enrichInput,
		"input",
		"i",
		"",
		"path to song list CSV",
	)
	enrichCmd.MarkFlagRequired("input")

	enrichCmd.Flags().StringVarP(
		&enrichOutput,
		"output",
		"o",
		"",
		"path for the enriched CSV",
	)
	enrichCmd.MarkFlagRequired("output")
}

func runEnrich(ctx context.Context, inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	fmt.Println("--- Enriching from AniList ---")

	client := anilist.NewClient()
	if err := transform.Enrich(ctx, client, in, out); err != nil {
		return fmt.Errorf("enrich: %w", err)
	}

	fmt.Printf("Wrote enriched CSV to %s.\n", outputPath)

	return nil
}
