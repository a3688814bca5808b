package config

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CALORIESCAN_HTTP_TIMEOUT", "")
	t.Setenv("CALORIESCAN_SCAN_INTERVAL", "")
	t.Setenv("CALORIESCAN_SEARCH_PAGE_SIZE", "")

	cfg := Load(zap.NewNop())

	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("http timeout = %v, want 10s", cfg.HTTPTimeout)
	}
	if cfg.ScanInterval != time.Second {
		t.Fatalf("scan interval = %v, want 1s", cfg.ScanInterval)
	}
	if cfg.SearchPageSize != 10 {
		t.Fatalf("page size = %d, want 10", cfg.SearchPageSize)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("CALORIESCAN_DB", "/tmp/test.db")
	t.Setenv("CALORIESCAN_LOOKUP_BASE_URL", "http://localhost:8080")
	t.Setenv("CALORIESCAN_HTTP_TIMEOUT", "3s")
	t.Setenv("CALORIESCAN_SCAN_INTERVAL", "250ms")
	t.Setenv("CALORIESCAN_SEARCH_PAGE_SIZE", "25")

	cfg := Load(zap.NewNop())
	if cfg.DBPath != "/tmp/test.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.LookupBaseURL != "http://localhost:8080" {
		t.Fatalf("base url = %q", cfg.LookupBaseURL)
	}
	if cfg.HTTPTimeout != 3*time.Second || cfg.ScanInterval != 250*time.Millisecond {
		t.Fatalf("durations = %v / %v", cfg.HTTPTimeout, cfg.ScanInterval)
	}
	if cfg.SearchPageSize != 25 {
		t.Fatalf("page size = %d, want 25", cfg.SearchPageSize)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("CALORIESCAN_HTTP_TIMEOUT", "soon")
	t.Setenv("CALORIESCAN_SCAN_INTERVAL", "-5s")
	t.Setenv("CALORIESCAN_SEARCH_PAGE_SIZE", "zero")

	cfg := Load(zap.NewNop())
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("invalid timeout not defaulted: %v", cfg.HTTPTimeout)
	}
	if cfg.ScanInterval != time.Second {
		t.Fatalf("non-positive interval not defaulted: %v", cfg.ScanInterval)
	}
	if cfg.SearchPageSize != 10 {
		t.Fatalf("invalid page size not defaulted: %d", cfg.SearchPageSize)
	}
}
