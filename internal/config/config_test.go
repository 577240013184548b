package config

import "testing"

func TestLoadRequiresDB(t *testing.T) {
	t.Setenv("COUNCIL_DB", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when COUNCIL_DB is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COUNCIL_DB", "council.db")
	t.Setenv("COUNCIL_ADDR", "")
	t.Setenv("PORT", "")
	t.Setenv("COUNCIL_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":3001" {
		t.Errorf("expected default addr :3001, got %s", cfg.Addr)
	}
	if cfg.Production {
		t.Error("expected development mode by default")
	}
}

func TestLoadPortFallback(t *testing.T) {
	t.Setenv("COUNCIL_DB", "council.db")
	t.Setenv("COUNCIL_ADDR", "")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Addr)
	}
}
