package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"acbuy.com/showcase/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return cfgPath
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when config file does not exist", func(t *testing.T) {
		cfg, err := config.Load("nonexistent.yaml")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if cfg.Store.Backend != config.BackendSQLite {
			t.Errorf("expected backend %q, got %q", config.BackendSQLite, cfg.Store.Backend)
		}
		if cfg.Store.DBPath != "./showcase.db" {
			t.Errorf("expected DBPath './showcase.db', got %q", cfg.Store.DBPath)
		}
		if cfg.DBPathSource != "default" {
			t.Errorf("expected DBPathSource 'default', got %q", cfg.DBPathSource)
		}
		if cfg.ReadTimeout != 5*time.Second {
			t.Errorf("expected ReadTimeout 5s, got %v", cfg.ReadTimeout)
		}
		if cfg.Catalog.InitialVisible != 12 {
			t.Errorf("expected InitialVisible 12, got %d", cfg.Catalog.InitialVisible)
		}
		if cfg.Catalog.RevealStep != 4 {
			t.Errorf("expected RevealStep 4, got %d", cfg.Catalog.RevealStep)
		}
		if cfg.Catalog.RevealDelay != 500*time.Millisecond {
			t.Errorf("expected RevealDelay 500ms, got %v", cfg.Catalog.RevealDelay)
		}
		if cfg.Cache.RedisURL != "" {
			t.Errorf("expected cache disabled by default, got %q", cfg.Cache.RedisURL)
		}
	})

	t.Run("loads values from YAML file", func(t *testing.T) {
		cfgPath := writeConfig(t, `
addr: ":9090"
read_timeout: 15s
store:
  backend: rest
  rest_url: "https://abc.supabase.co"
  rest_key: "anon-key"
cache:
  redis_url: "redis://localhost:6379/0"
  ttl: 1m
catalog:
  initial_visible: 8
  reveal_step: 2
  reveal_delay: 0s
community:
  url: "https://discord.gg/acbuy"
`)

		cfg, err := config.Load(cfgPath)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if cfg.Addr != ":9090" {
			t.Errorf("expected Addr ':9090', got %q", cfg.Addr)
		}
		if cfg.ReadTimeout != 15*time.Second {
			t.Errorf("expected ReadTimeout 15s, got %v", cfg.ReadTimeout)
		}
		if cfg.Store.Backend != config.BackendREST {
			t.Errorf("expected backend rest, got %q", cfg.Store.Backend)
		}
		if cfg.Store.RestURL != "https://abc.supabase.co" {
			t.Errorf("unexpected RestURL %q", cfg.Store.RestURL)
		}
		if cfg.Cache.TTL != time.Minute {
			t.Errorf("expected TTL 1m, got %v", cfg.Cache.TTL)
		}
		if cfg.Catalog.InitialVisible != 8 || cfg.Catalog.RevealStep != 2 {
			t.Errorf("unexpected pager config %+v", cfg.Catalog)
		}
		if cfg.Catalog.RevealDelay != 0 {
			t.Errorf("expected RevealDelay 0, got %v", cfg.Catalog.RevealDelay)
		}
		// untouched sections keep their defaults
		if cfg.Site.Title != "WELCOME ACBUY" {
			t.Errorf("expected default site title, got %q", cfg.Site.Title)
		}
	})

	t.Run("env vars override YAML values", func(t *testing.T) {
		cfgPath := writeConfig(t, `
store:
  db_path: "/yaml/path.db"
catalog:
  reveal_step: 6
`)
		t.Setenv("SHOWCASE_STORE_DB_PATH", "/env/override.db")
		t.Setenv("SHOWCASE_CATALOG_REVEAL_DELAY", "250ms")

		cfg, err := config.Load(cfgPath)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if cfg.Store.DBPath != "/env/override.db" {
			t.Errorf("expected DBPath '/env/override.db', got %q", cfg.Store.DBPath)
		}
		if cfg.DBPathSource != "env var" {
			t.Errorf("expected DBPathSource 'env var', got %q", cfg.DBPathSource)
		}
		if cfg.Catalog.RevealDelay != 250*time.Millisecond {
			t.Errorf("expected RevealDelay 250ms, got %v", cfg.Catalog.RevealDelay)
		}
		// Others should come from YAML
		if cfg.Catalog.RevealStep != 6 {
			t.Errorf("expected RevealStep 6, got %d", cfg.Catalog.RevealStep)
		}
	})

	t.Run("yaml db path records its source", func(t *testing.T) {
		cfgPath := writeConfig(t, `
store:
  db_path: "/yaml/path.db"
`)
		cfg, err := config.Load(cfgPath)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.DBPathSource != "yaml file" {
			t.Errorf("expected DBPathSource 'yaml file', got %q", cfg.DBPathSource)
		}
	})

	t.Run("PORT overrides addr", func(t *testing.T) {
		t.Setenv("PORT", "3000")

		cfg, err := config.Load("nonexistent.yaml")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Addr != ":3000" {
			t.Errorf("expected Addr ':3000', got %q", cfg.Addr)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		cfgPath := writeConfig(t, `
addr: ":9090"
  invalid indentation
store:
  db_path: "/data/test.db"
`)

		_, err := config.Load(cfgPath)
		if err == nil {
			t.Error("expected error for invalid YAML, got nil")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"defaults are valid", func(*config.Config) {}, false},
		{"unknown backend", func(c *config.Config) { c.Store.Backend = "mysql" }, true},
		{"postgres without dsn", func(c *config.Config) { c.Store.Backend = config.BackendPostgres }, true},
		{"postgres with dsn", func(c *config.Config) {
			c.Store.Backend = config.BackendPostgres
			c.Store.PostgresDSN = "postgres://u:p@localhost:5432/db"
		}, false},
		{"rest without url", func(c *config.Config) {
			c.Store.Backend = config.BackendREST
			c.Store.RestKey = "key"
		}, true},
		{"rest without key", func(c *config.Config) {
			c.Store.Backend = config.BackendREST
			c.Store.RestURL = "https://abc.supabase.co"
		}, true},
		{"rest with bad url", func(c *config.Config) {
			c.Store.Backend = config.BackendREST
			c.Store.RestURL = "not a url"
			c.Store.RestKey = "key"
		}, true},
		{"zero reveal step", func(c *config.Config) { c.Catalog.RevealStep = 0 }, true},
		{"zero initial visible", func(c *config.Config) { c.Catalog.InitialVisible = 0 }, true},
		{"bad community url", func(c *config.Config) { c.Community.URL = "discord" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}
