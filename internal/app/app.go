// Package app wires configuration into the recommendation engine. Both the
// TUI and the API server build their engine here so provider selection and
// catalog setup stay in one place.
package app

import (
	"fmt"
	"os"

	"bookscout/internal/assist"
	"bookscout/internal/cache"
	"bookscout/internal/catalog"
	"bookscout/internal/config"
	"bookscout/internal/engine"
	"bookscout/internal/logging"
)

// Providers builds the provider manager from the configured credentials.
// Unconfigured providers are simply not registered.
func Providers(cfg *config.Config) *assist.Manager {
	mgr := assist.NewManager()
	p := cfg.Providers

	if p.PerplexityAPIKey != "" {
		mgr.Add(assist.NewPerplexityProvider(p.PerplexityAPIKey, p.PerplexityModel, p.RequestTimeout))
	}
	if p.ClaudeAPIKey != "" {
		mgr.Add(assist.NewClaudeProvider(p.ClaudeAPIKey, p.ClaudeModel, p.RequestTimeout))
	}
	if p.OpenAIAPIKey != "" {
		mgr.Add(assist.NewOpenAIProvider(p.OpenAIAPIKey, p.OpenAIModel, p.RequestTimeout))
	}

	mgr.SetPreferred("perplexity")
	return mgr
}

// Catalog builds the catalog service. Book database keys come from the
// environment; review feeds come from the config file.
func Catalog(cfg *config.Config) *catalog.Service {
	cat := catalog.NewService(os.Getenv("GOODREADS_API_KEY"), os.Getenv("LIBRARYTHING_API_KEY"))
	for i, url := range cfg.ReviewFeeds {
		cat.AddReviewFeed(catalog.NewReviewFeed(fmt.Sprintf("feed-%d", i+1), url))
	}
	return cat
}

// BuildEngine assembles the full pipeline. Each role prefers its usual
// provider (Perplexity discovers, Claude analyzes, OpenAI scores) and falls
// back to whichever provider is available.
func BuildEngine(cfg *config.Config) *engine.Engine {
	mgr := Providers(cfg)

	if names := mgr.ListAvailable(); len(names) == 0 {
		logging.Warn("no AI providers configured, recommendations run catalog-only")
	} else {
		logging.Info("AI providers ready", "providers", names)
	}

	return engine.New(
		pick(mgr, "perplexity"),
		pick(mgr, "claude"),
		pick(mgr, "openai"),
		Catalog(cfg),
		cache.New(cfg.Cache.Size, cfg.Cache.TTL),
		cfg.Recommend,
	)
}

func pick(mgr *assist.Manager, preferred string) assist.Provider {
	if p := mgr.ByName(preferred); p != nil {
		return p
	}
	return mgr.Available()
}
