package app

import (
	"testing"

	"bookscout/internal/config"
)

func TestProvidersEmptyConfig(t *testing.T) {
	cfg := config.Default()

	mgr := Providers(cfg)

	if names := mgr.ListAvailable(); len(names) != 0 {
		t.Errorf("no keys configured but providers available: %v", names)
	}
	if mgr.Available() != nil {
		t.Error("Available should return nil without credentials")
	}
}

func TestProvidersRegistersConfigured(t *testing.T) {
	cfg := config.Default()
	cfg.Providers.PerplexityAPIKey = "pplx-test"
	cfg.Providers.OpenAIAPIKey = "sk-test"

	mgr := Providers(cfg)

	names := mgr.ListAvailable()
	if len(names) != 2 {
		t.Fatalf("available = %v, want two providers", names)
	}
	if p := mgr.Available(); p == nil || p.Name() != "perplexity" {
		t.Errorf("preferred provider should be perplexity, got %v", p)
	}
	if mgr.ByName("claude") != nil {
		t.Error("claude should not be available without a key")
	}
}

func TestPickFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.Providers.OpenAIAPIKey = "sk-test"
	mgr := Providers(cfg)

	p := pick(mgr, "claude")

	if p == nil || p.Name() != "openai" {
		t.Errorf("pick should fall back to the available provider, got %v", p)
	}
}

func TestBuildEngineWithoutProviders(t *testing.T) {
	e := BuildEngine(config.Default())

	if e == nil {
		t.Fatal("engine should build without any credentials")
	}
}

func TestCatalogRegistersReviewFeeds(t *testing.T) {
	cfg := config.Default()
	cfg.ReviewFeeds = []string{"https://example.com/reviews.xml"}

	if Catalog(cfg) == nil {
		t.Fatal("catalog should build")
	}
}
