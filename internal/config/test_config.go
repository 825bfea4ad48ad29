package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "http://127.0.0.1:0",
			Timeout:      5 * time.Second,
			UserAgent:    "sietch-test/1.0",
			PageSize:     DefaultPageSize,
			AllowPrivate: true,
		},
		UI:   defaultConfig().UI,
		Keys: defaultConfig().Keys,
		Journal: JournalConfig{
			Enabled: false,
			Timeout: 1 * time.Second,
		},
		Log: LogConfig{Level: "off"},
	}
}
