package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_NonPositiveTopK(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.TopK = -3

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive top_k")
	}
}

func TestApplyDefaults_Retrieval(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Retrieval.TopK != 10 {
		t.Errorf("expected default top_k 10, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Retrieval.IndexName != "airline-reviews" {
		t.Errorf("expected default index name airline-reviews, got %q", cfg.Retrieval.IndexName)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("expected default dimensions 384, got %d", cfg.Embedding.Dimensions)
	}
}

func TestApplyDefaults_Vocab(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if len(cfg.Vocab.Airlines) != 10 {
		t.Fatalf("expected 10 default airlines, got %d", len(cfg.Vocab.Airlines))
	}
	found := false
	for _, a := range cfg.Vocab.Airlines {
		if a == "British Airways" {
			found = true
		}
	}
	if !found {
		t.Error("expected British Airways in default airlines")
	}
	if len(cfg.Vocab.TravellerTypes) == 0 || len(cfg.Vocab.SeatTypes) == 0 {
		t.Error("expected default traveller and seat type sets")
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Retrieval: RetrievalConfig{TopK: 25},
		Vocab:     VocabConfig{Airlines: []string{"Emirates"}},
	}
	cfg.ApplyDefaults()

	if cfg.Retrieval.TopK != 25 {
		t.Errorf("expected explicit top_k 25 kept, got %d", cfg.Retrieval.TopK)
	}
	if len(cfg.Vocab.Airlines) != 1 || cfg.Vocab.Airlines[0] != "Emirates" {
		t.Errorf("expected explicit airline list kept, got %v", cfg.Vocab.Airlines)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("FI_TEST_KEY", "secret")
	defer os.Unsetenv("FI_TEST_KEY")

	in := []byte("api_key: ${FI_TEST_KEY}\nmodel: ${FI_TEST_MODEL:-gemini-1.5-flash}\n")
	out := string(expandEnvVars(in))

	want := "api_key: secret\nmodel: gemini-1.5-flash\n"
	if out != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, want)
	}
}
