package config

import "time"

// Config holds runtime settings for the MyCommunity CLI.
type Config struct {
	// APIBaseURL is the root of the community backend, without a
	// trailing slash.
	APIBaseURL string

	// DatabasePath is the sqlite file holding the keystore and feed cache.
	DatabasePath string

	// DeviceKeyPath is the file holding the local sealing key material.
	DeviceKeyPath string

	// FeedPollInterval is how often feed queries re-fetch in the background.
	FeedPollInterval time.Duration

	// BalancePollInterval is how often wallet queries re-fetch.
	BalancePollInterval time.Duration

	// HTTPTimeout bounds each individual backend request.
	HTTPTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.DatabasePath = "community.db"
	c.DeviceKeyPath = "device.key"
	c.FeedPollInterval = 30 * time.Second
	c.BalancePollInterval = 60 * time.Second
	c.HTTPTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
