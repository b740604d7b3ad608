package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names. A .env file in the working directory is
// loaded first (existing process variables win), then each variable
// overlays the config when set.
const (
	EnvAPIBaseURL          = "MYCOMMUNITY_API_URL"
	EnvDatabasePath        = "MYCOMMUNITY_DB_PATH"
	EnvDeviceKeyPath       = "MYCOMMUNITY_DEVICE_KEY_PATH"
	EnvFeedPollInterval    = "MYCOMMUNITY_FEED_POLL_INTERVAL"
	EnvBalancePollInterval = "MYCOMMUNITY_BALANCE_POLL_INTERVAL"
	EnvHTTPTimeout         = "MYCOMMUNITY_HTTP_TIMEOUT"
)

func parseEnv(cfg *Config) {
	// missing .env is fine; explicit env vars still apply
	_ = godotenv.Load()

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv(EnvDeviceKeyPath); v != "" {
		cfg.DeviceKeyPath = v
	}
	if d, ok := envDuration(EnvFeedPollInterval); ok {
		cfg.FeedPollInterval = d
	}
	if d, ok := envDuration(EnvBalancePollInterval); ok {
		cfg.BalancePollInterval = d
	}
	if d, ok := envDuration(EnvHTTPTimeout); ok {
		cfg.HTTPTimeout = d
	}
}

// envDuration parses a duration variable like "45s". Unparseable values
// are ignored rather than fatal.
func envDuration(name string) (time.Duration, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}
