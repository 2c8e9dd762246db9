// Package config loads bookscout configuration from a YAML file with
// environment-variable overrides for secrets. A missing config file is not
// an error; defaults cover local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP API listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ProviderConfig holds AI provider credentials and model choices.
type ProviderConfig struct {
	PerplexityAPIKey string `yaml:"perplexity_api_key"`
	ClaudeAPIKey     string `yaml:"claude_api_key"`
	OpenAIAPIKey     string `yaml:"openai_api_key"`

	PerplexityModel string `yaml:"perplexity_model"`
	ClaudeModel     string `yaml:"claude_model"`
	OpenAIModel     string `yaml:"openai_model"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// RecommendConfig tunes the recommendation pipeline.
type RecommendConfig struct {
	MaxRecommendations int     `yaml:"max_recommendations"`
	MinMatchScore      float64 `yaml:"min_match_score"`
	MaxItemsPerAuthor  int     `yaml:"max_items_per_author"`
	MaxItemsPerGenre   int     `yaml:"max_items_per_genre"`
}

// CacheConfig tunes the in-memory recommendation cache.
type CacheConfig struct {
	TTL  time.Duration `yaml:"ttl"`
	Size int           `yaml:"size"`
}

// StoreConfig points at the SQLite database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Config is the full application configuration.
type Config struct {
	Server      ServerConfig    `yaml:"server"`
	Providers   ProviderConfig  `yaml:"providers"`
	Recommend   RecommendConfig `yaml:"recommend"`
	Cache       CacheConfig     `yaml:"cache"`
	Store       StoreConfig     `yaml:"store"`
	ReviewFeeds []string        `yaml:"review_feeds"`
}

// Default returns sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Providers: ProviderConfig{
			PerplexityModel: "sonar",
			ClaudeModel:     "claude-3-5-sonnet-20241022",
			OpenAIModel:     "gpt-4o-mini",
			RequestTimeout:  60 * time.Second,
		},
		Recommend: RecommendConfig{
			MaxRecommendations: 10,
			MinMatchScore:      0.5,
			MaxItemsPerAuthor:  3,
			MaxItemsPerGenre:   3,
		},
		Cache: CacheConfig{
			TTL:  time.Hour,
			Size: 1024,
		},
		Store: StoreConfig{
			Path: defaultStorePath(),
		},
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookscout.db"
	}
	return filepath.Join(home, ".bookscout", "bookscout.db")
}

// Load reads the YAML config at path (if it exists), applies environment
// overrides, and validates the result. A .env file in the working directory
// is honored when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv fills in secrets and overrides from environment variables. API
// keys never belong in config files checked into source control.
func (c *Config) applyEnv() {
	if v := os.Getenv("PERPLEXITY_API_KEY"); v != "" {
		c.Providers.PerplexityAPIKey = v
	}
	if v := os.Getenv("CLAUDE_API_KEY"); v != "" {
		c.Providers.ClaudeAPIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && c.Providers.ClaudeAPIKey == "" {
		c.Providers.ClaudeAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Providers.OpenAIAPIKey = v
	}
	if v := os.Getenv("BOOKSCOUT_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("BOOKSCOUT_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("BOOKSCOUT_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			c.Server.Port = port
		}
	}
}

// Validate checks that all configuration values are coherent.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Recommend.MaxRecommendations <= 0 {
		return fmt.Errorf("max_recommendations must be positive, got %d", c.Recommend.MaxRecommendations)
	}
	if c.Recommend.MinMatchScore < 0 || c.Recommend.MinMatchScore > 1 {
		return fmt.Errorf("min_match_score must be in [0, 1], got %g", c.Recommend.MinMatchScore)
	}
	if c.Recommend.MaxItemsPerAuthor <= 0 {
		return fmt.Errorf("max_items_per_author must be positive, got %d", c.Recommend.MaxItemsPerAuthor)
	}
	if c.Recommend.MaxItemsPerGenre <= 0 {
		return fmt.Errorf("max_items_per_genre must be positive, got %d", c.Recommend.MaxItemsPerGenre)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	}
	if c.Providers.RequestTimeout <= 0 {
		return fmt.Errorf("provider request_timeout must be positive, got %s", c.Providers.RequestTimeout)
	}
	return nil
}

// Addr returns the host:port string for the HTTP listener.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
