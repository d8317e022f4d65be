package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		configPathEnv, "PORT", "WHOIS_API_KEY", "GOOGLE_SAFE_BROWSING_KEY",
		"CHROME_DEBUG_URL", "LOOKUP_TIMEOUT", "WHOIS_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Addr() != ":8080" {
		t.Fatalf("unexpected port: %q", cfg.Port)
	}
	if cfg.LookupTimeout != 8*time.Second || cfg.WhoisTimeout != 10*time.Second {
		t.Fatalf("unexpected timeouts: %s / %s", cfg.LookupTimeout, cfg.WhoisTimeout)
	}
	if cfg.WhoisAPIKey != "" || cfg.SafeBrowsingAPIKey != "" {
		t.Fatal("api keys should be empty by default")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "safyscore.yaml")
	data := []byte(`
port: "9000"
whoisApiKey: file-whois
safeBrowsingApiKey: file-sb
chromeDebugUrl: http://127.0.0.1:9222
lookupTimeout: 3s
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv("GOOGLE_SAFE_BROWSING_KEY", "env-sb")
	t.Setenv("WHOIS_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.WhoisAPIKey != "file-whois" {
		t.Fatalf("whois key = %q", cfg.WhoisAPIKey)
	}
	if cfg.SafeBrowsingAPIKey != "env-sb" {
		t.Fatalf("env should override file, got %q", cfg.SafeBrowsingAPIKey)
	}
	if cfg.ChromeDebugURL != "http://127.0.0.1:9222" {
		t.Fatalf("chrome url = %q", cfg.ChromeDebugURL)
	}
	if cfg.LookupTimeout != 3*time.Second || cfg.WhoisTimeout != 2*time.Second {
		t.Fatalf("timeouts = %s / %s", cfg.LookupTimeout, cfg.WhoisTimeout)
	}
}

func TestLoadBrokenFileFallsBack(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("port: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "http")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric PORT")
	}
}

func TestLoadIgnoresUnparsableDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOOKUP_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LookupTimeout != 8*time.Second {
		t.Fatalf("lookup timeout = %s", cfg.LookupTimeout)
	}
}
