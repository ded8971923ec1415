package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SHOWCASE_STORE_BACKEND.
const EnvPrefix = "SHOWCASE"

// Storage backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendREST     = "rest"
)

// Config holds all configuration values
type Config struct {
	Addr         string        `yaml:"addr" split_words:"true" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout time.Duration `yaml:"write_timeout" split_words:"true"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" split_words:"true"`
	RateLimit    int           `yaml:"rate_limit" split_words:"true" validate:"gte=0"` // requests per minute per IP, 0 disables

	Store     Store     `yaml:"store" split_words:"true"`
	Cache     Cache     `yaml:"cache" split_words:"true"`
	Catalog   Catalog   `yaml:"catalog" split_words:"true"`
	Site      Site      `yaml:"site" split_words:"true"`
	Community Community `yaml:"community" split_words:"true"`
	Log       Log       `yaml:"log" split_words:"true"`

	DBPathSource string `yaml:"-" ignored:"true"` // where Store.DBPath was set from: "default", "yaml file", or "env var"
	DemoMode     bool   `yaml:"-" ignored:"true"` // load sample data on new database (set via -demo flag)
}

// Store selects where products and app-download links are read from.
type Store struct {
	Backend        string        `yaml:"backend" split_words:"true" validate:"oneof=sqlite postgres rest"`
	DBPath         string        `yaml:"db_path" split_words:"true" validate:"required_if=Backend sqlite"`
	PostgresDSN    string        `yaml:"postgres_dsn" split_words:"true" validate:"required_if=Backend postgres"`
	RestURL        string        `yaml:"rest_url" split_words:"true" validate:"omitempty,url"`
	RestKey        string        `yaml:"rest_key" split_words:"true" validate:"required_if=Backend rest"`
	RequestTimeout time.Duration `yaml:"request_timeout" split_words:"true"`
}

// Cache configures the optional Redis response cache. An empty RedisURL disables it.
type Cache struct {
	RedisURL string        `yaml:"redis_url" split_words:"true"`
	TTL      time.Duration `yaml:"ttl" split_words:"true" validate:"gte=0"`
}

// Catalog controls how the recommended grid is revealed.
type Catalog struct {
	InitialVisible int           `yaml:"initial_visible" split_words:"true" validate:"gte=1"`
	RevealStep     int           `yaml:"reveal_step" split_words:"true" validate:"gte=1"`
	RevealDelay    time.Duration `yaml:"reveal_delay" split_words:"true" validate:"gte=0"`
	Locale         string        `yaml:"locale" split_words:"true"`
	CurrencySymbol string        `yaml:"currency_symbol" split_words:"true"`
}

// Site holds storefront copy.
type Site struct {
	Title    string `yaml:"title" split_words:"true"`
	Headline string `yaml:"headline" split_words:"true"`
	Badge    string `yaml:"badge" split_words:"true"`
	Button   string `yaml:"button" split_words:"true"`
}

// Community is the call-to-action panel. The panel is hidden when URL is empty.
type Community struct {
	Title  string `yaml:"title" split_words:"true"`
	Text   string `yaml:"text" split_words:"true"`
	Button string `yaml:"button" split_words:"true"`
	URL    string `yaml:"url" split_words:"true" validate:"omitempty,url"`
}

type Log struct {
	Level  string `yaml:"level" split_words:"true"`
	Pretty bool   `yaml:"pretty" split_words:"true"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:         ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		RateLimit:    120,
		Store: Store{
			Backend:        BackendSQLite,
			DBPath:         "./showcase.db",
			RequestTimeout: 10 * time.Second,
		},
		Cache: Cache{
			TTL: 30 * time.Second,
		},
		Catalog: Catalog{
			InitialVisible: 12,
			RevealStep:     4,
			RevealDelay:    500 * time.Millisecond,
			Locale:         "en",
			CurrencySymbol: "$",
		},
		Site: Site{
			Title:    "WELCOME ACBUY",
			Headline: "Here's a pair of shoes that acbuy got for me for 10% off",
			Badge:    "APP New User Exclusive",
			Button:   "GET IT IN THE APP",
		},
		Community: Community{
			Title:  "JOIN THE COMMUNITY",
			Text:   "Share your hauls, get QC photos reviewed and catch new drops first.",
			Button: "JOIN NOW",
		},
		Log: Log{
			Level: "info",
		},
		DBPathSource: "default",
	}
}

// Load loads configuration from YAML file and overrides with env vars if present.
// A .env file in the working directory is read first; it never replaces
// variables that are already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	// Load from YAML if file exists
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		prevDBPath := cfg.Store.DBPath
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		if cfg.Store.DBPath != prevDBPath {
			cfg.DBPathSource = "yaml file"
		}
	}

	// Override with environment variables
	prevDBPath := cfg.Store.DBPath
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if cfg.Store.DBPath != prevDBPath {
		cfg.DBPathSource = "env var"
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}

	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Store.Backend == BackendREST && c.Store.RestURL == "" {
		return errors.New("invalid config: store.rest_url is required for the rest backend")
	}
	return nil
}
