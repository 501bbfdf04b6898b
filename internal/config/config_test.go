package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:      HTTPConfig{Port: 8080},
		Catalog:   CatalogConfig{CSVPath: "data/products.csv"},
		Cache:     CacheConfig{Driver: "file", Dir: "data/emb_cache"},
		Embedding: EmbeddingConfig{APIKey: "test-key"},
		Search:    SearchConfig{DefaultTopK: 10, MaxTopK: 100},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingCSVPath(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.CSVPath = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing csv path")
	}
}

func TestValidate_InvalidCacheDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Driver = "memcached"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown cache driver")
	}

	expected := `cache.driver must be "file" or "redis", got "memcached"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_RedisDriverRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Driver = "redis"
	cfg.Cache.Addrs = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for redis driver without addrs")
	}
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing embedding api key")
	}
}

func TestValidate_DefaultTopKAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DefaultTopK = 200
	cfg.Search.MaxTopK = 100

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for default_top_k above max_top_k")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Cache.Driver != "file" {
		t.Errorf("expected Driver='file', got %q", cfg.Cache.Driver)
	}
	if cfg.Cache.Dir != "data/emb_cache" {
		t.Errorf("expected Dir='data/emb_cache', got %q", cfg.Cache.Dir)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default embedding model, got %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.BatchSize != 32 {
		t.Errorf("expected BatchSize=32, got %d", cfg.Embedding.BatchSize)
	}
	if cfg.Search.DefaultTopK != 10 {
		t.Errorf("expected DefaultTopK=10, got %d", cfg.Search.DefaultTopK)
	}
	if cfg.Search.MaxTopK != 100 {
		t.Errorf("expected MaxTopK=100, got %d", cfg.Search.MaxTopK)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Cache:     CacheConfig{Driver: "redis", Addrs: []string{"localhost:6379"}},
		Embedding: EmbeddingConfig{Model: "custom-model", BatchSize: 8},
		Search:    SearchConfig{DefaultTopK: 20, MaxTopK: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Cache.Driver != "redis" {
		t.Errorf("expected Driver='redis', got %q", cfg.Cache.Driver)
	}
	if cfg.Embedding.Model != "custom-model" {
		t.Errorf("expected Model='custom-model', got %q", cfg.Embedding.Model)
	}
	if cfg.Search.DefaultTopK != 20 {
		t.Errorf("expected DefaultTopK=20, got %d", cfg.Search.DefaultTopK)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("RETAILRANK_TEST_KEY", "secret")

	got := string(expandEnvVars([]byte("api_key: ${RETAILRANK_TEST_KEY}\nmodel: ${RETAILRANK_UNSET:-fallback}\n")))
	want := "api_key: secret\nmodel: fallback\n"
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}
