package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "SAFYSCORE_CONFIG"

// Config holds the service and lookup settings.
type Config struct {
	Port string `yaml:"port"`

	// API keys for the lookup services
	WhoisAPIKey        string `yaml:"whoisApiKey"`
	SafeBrowsingAPIKey string `yaml:"safeBrowsingApiKey"`

	// Chrome DevTools endpoint used to read the active tab, e.g. http://127.0.0.1:9222
	ChromeDebugURL string `yaml:"chromeDebugUrl"`

	LookupTimeout time.Duration `yaml:"lookupTimeout"`
	WhoisTimeout  time.Duration `yaml:"whoisTimeout"`
}

func defaultConfig() Config {
	return Config{
		Port:          "8080",
		LookupTimeout: 8 * time.Second,
		WhoisTimeout:  10 * time.Second,
	}
}

// Load reads the optional YAML file named by SAFYSCORE_CONFIG, then applies
// environment overrides. A broken file is logged and ignored.
func Load() (Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("[Config] cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			fileCfg := defaultConfig()
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("[Config] cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = fileCfg
			}
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.WhoisAPIKey = getEnv("WHOIS_API_KEY", cfg.WhoisAPIKey)
	cfg.SafeBrowsingAPIKey = getEnv("GOOGLE_SAFE_BROWSING_KEY", cfg.SafeBrowsingAPIKey)
	cfg.ChromeDebugURL = getEnv("CHROME_DEBUG_URL", cfg.ChromeDebugURL)
	cfg.LookupTimeout = getEnvDuration("LOOKUP_TIMEOUT", cfg.LookupTimeout)
	cfg.WhoisTimeout = getEnvDuration("WHOIS_TIMEOUT", cfg.WhoisTimeout)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("LOOKUP_TIMEOUT must be > 0 (got %s)", c.LookupTimeout)
	}
	if c.WhoisTimeout <= 0 {
		return fmt.Errorf("WHOIS_TIMEOUT must be > 0 (got %s)", c.WhoisTimeout)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves an environment variable as a duration or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("[Config] ignoring %s=%q: %v", key, value, err)
		return defaultValue
	}
	return d
}
