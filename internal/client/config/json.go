package config

import (
	"encoding/json"
	"os"

	"github.com/rferrari/mycommunity-app-sub000/internal/flagx"
	"github.com/rferrari/mycommunity-app-sub000/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds. Zero values mean "not set" and leave the
// corresponding Config field alone.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	DatabasePath        string         `json:"database_path"`
	DeviceKeyPath       string         `json:"device_key_path"`
	FeedPollInterval    timex.Duration `json:"feed_poll_interval"`
	BalancePollInterval timex.Duration `json:"balance_poll_interval"`
	HTTPTimeout         timex.Duration `json:"http_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file selected
// via -c or -config. With no such flag it is a no-op. Read or unmarshal
// errors panic; config must be valid if supplied.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.DeviceKeyPath != "" {
		cfg.DeviceKeyPath = jc.DeviceKeyPath
	}
	if jc.FeedPollInterval.Duration != 0 {
		cfg.FeedPollInterval = jc.FeedPollInterval.Duration
	}
	if jc.BalancePollInterval.Duration != 0 {
		cfg.BalancePollInterval = jc.BalancePollInterval.Duration
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
}
