package cmd

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/annoview/internal/checkpoint"
	"github.com/ziadkadry99/annoview/internal/client"
	"github.com/ziadkadry99/annoview/internal/config"
	"github.com/ziadkadry99/annoview/internal/logging"
	"github.com/ziadkadry99/annoview/internal/viewer"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `annoview init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the logger from config; --verbose forces debug level.
func newLogger(cfg *config.Config) (zerolog.Logger, func(), error) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log, closer, err := logging.New(level, cfg.LogFile)
	if err != nil {
		return log, closer, fmt.Errorf("creating logger: %w", err)
	}
	return log, closer, nil
}

// newSource returns the document source for cfg: the remote API when
// api_url is set, the local checkpoint directory otherwise. The store is
// nil in remote mode.
func newSource(cfg *config.Config, log zerolog.Logger) (viewer.Source, *checkpoint.Store) {
	if cfg.Remote() {
		burst := int(math.Ceil(cfg.RateLimit))
		if burst < 1 {
			burst = 1
		}
		return client.New(cfg.APIURL,
			client.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
			client.WithRateLimit(cfg.RateLimit, burst),
		), nil
	}

	store := checkpoint.NewStore(checkpoint.Options{
		Dir:        cfg.CheckpointDir,
		Pattern:    cfg.FilePattern,
		LegacyFile: cfg.LegacyFile,
		CacheTTL:   cfg.CacheTTL,
		Logger:     log,
	})
	return store, store
}

// newRenderer builds the viewer renderer with the configured highlighting.
func newRenderer(cfg *config.Config, log zerolog.Logger) *viewer.Renderer {
	hl := viewer.NewHighlighter(viewer.HighlightOptions{QuoteMeta: cfg.QuoteTerms}, log)
	return viewer.NewRenderer(viewer.DefaultRegistry(), hl, log)
}
