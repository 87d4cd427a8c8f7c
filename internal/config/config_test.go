package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MAX_PAGES", "CACHE_TTL", "KODE_PROVINSI"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("port default = %q", cfg.Port)
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("cache TTL default = %v", cfg.CacheTTL)
	}
	if cfg.MaxPages != 0 {
		t.Fatalf("max pages default = %d", cfg.MaxPages)
	}
	if cfg.ProvinceCode != defaultProvinceCode {
		t.Fatalf("province default = %q", cfg.ProvinceCode)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAX_PAGES", "3")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("KODE_PROVINSI", "32")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxPages != 3 || cfg.CacheTTL != 15*time.Minute || cfg.ProvinceCode != "32" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MAX_PAGES", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("negative MAX_PAGES must be rejected")
	}

	t.Setenv("MAX_PAGES", "2")
	t.Setenv("CACHE_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("unparseable CACHE_TTL must be rejected")
	}
}
