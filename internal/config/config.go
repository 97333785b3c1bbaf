package config

import (
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/aniquiz/titlesearch/internal/hint"
)

// Config holds everything the commands need. All keys have defaults so an
// empty config file is valid.
type Config struct {
	// Listen is the HTTP listen address for serve.
	Listen string
	// DataDir contains the three transformed corpus JSON files.
	DataDir string
	// HintDB is the path of the SQLite hint store.
	HintDB string
	// Hint tunes the reveal banding.
	Hint hint.Config
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:  ":8080",
		DataDir: "data",
		HintDB:  "hints.db",
		Hint:    hint.DefaultConfig,
	}
}

// Load reads configuration from an ini file, falling back to defaults for
// missing keys. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return c, fmt.Errorf("load config %s: %w", path, err)
	}

	server := cfg.Section("server")
	c.Listen = server.Key("listen").MustString(c.Listen)

	data := cfg.Section("data")
	c.DataDir = data.Key("dir").MustString(c.DataDir)

	h := cfg.Section("hint")
	c.HintDB = h.Key("db").MustString(c.HintDB)
	c.Hint.SingleCharReveal = h.Key("single_char_reveal").MustInt(c.Hint.SingleCharReveal)
	c.Hint.MaxRevealFraction = h.Key("max_reveal_fraction").MustFloat64(c.Hint.MaxRevealFraction)

	return c, nil
}
