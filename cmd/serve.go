package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/aniquiz/titlesearch/internal/config"
	"github.com/aniquiz/titlesearch/internal/corpus"
	"github.com/aniquiz/titlesearch/internal/hint"
	"github.com/aniquiz/titlesearch/web"
	"github.com/aniquiz/titlesearch/web/backend"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the search and hint HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cfgFile)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	loader := corpus.NewLoader(cfg.DataDir)

	fmt.Println("--- Loading Corpus ---")

	c, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	fmt.Printf("Got %d songs, %d artists, %d anime.\n", len(c.Songs), len(c.Artists), len(c.Anime))

	store, err := hint.OpenStore(cfg.HintDB)
	if err != nil {
		return fmt.Errorf("open hint store: %w", err)
	}
	defer store.Close()

	masker := hint.NewMasker(cfg.Hint, nil)
	api := backend.NewSearchAPI(loader, masker, store)

	mux := http.NewServeMux()
	web.HandleBack(mux, api)
	web.RunServer(mux, cfg.Listen)

	return nil
}
