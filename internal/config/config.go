package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Keys    KeyConfig     `mapstructure:"keys"`
	Journal JournalConfig `mapstructure:"journal"`
	Log     LogConfig     `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
	PageSize     int           `mapstructure:"page_size"`
	AllowPrivate bool          `mapstructure:"allow_private"`
}

type UIConfig struct {
	Theme      string `mapstructure:"theme"`
	ThemeFile  string `mapstructure:"theme_file"`
	ChartWidth int    `mapstructure:"chart_width"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit     string `mapstructure:"quit"`
	Search   string `mapstructure:"search"`
	Breed    string `mapstructure:"breed"`
	Rename   string `mapstructure:"rename"`
	Recycle  string `mapstructure:"recycle"`
	Refresh  string `mapstructure:"refresh"`
	Theme    string `mapstructure:"theme"`
	NextPage string `mapstructure:"next_page"`
	PrevPage string `mapstructure:"prev_page"`
	Back     string `mapstructure:"back"`
	Help     string `mapstructure:"help"`
}

type JournalConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Path    string        `mapstructure:"path"`
	Index   string        `mapstructure:"index"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

const (
	DefaultBaseURL  = "https://arrakis-backend.onrender.com"
	DefaultPageSize = 5
)

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".sietch")

	return &Config{
		API: APIConfig{
			BaseURL:      DefaultBaseURL,
			Timeout:      30 * time.Second,
			UserAgent:    "sietch/1.0 (https://github.com/pders01/sietch)",
			PageSize:     DefaultPageSize,
			AllowPrivate: false,
		},
		UI: UIConfig{
			Theme:      "dark",
			ChartWidth: 30,
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:     "q",
				Search:   "s",
				Breed:    "n",
				Rename:   "e",
				Recycle:  "x",
				Refresh:  "r",
				Theme:    "t",
				NextPage: "right",
				PrevPage: "left",
				Back:     "esc",
				Help:     "?",
			},
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    filepath.Join(dataDir, "journal.db"),
			Index:   filepath.Join(dataDir, "journal.bleve"),
			Timeout: 1 * time.Second,
		},
		Log: LogConfig{
			Level: "off",
			File:  filepath.Join(dataDir, "sietch.log"),
		},
	}
}

// defaults flattens cfg into dotted viper keys so that a config file
// setting a single key keeps the defaults of its siblings.
func defaults(cfg *Config) map[string]any {
	return map[string]any{
		"api.base_url":      cfg.API.BaseURL,
		"api.timeout":       cfg.API.Timeout,
		"api.user_agent":    cfg.API.UserAgent,
		"api.page_size":     cfg.API.PageSize,
		"api.allow_private": cfg.API.AllowPrivate,
		"ui.theme":          cfg.UI.Theme,
		"ui.theme_file":     cfg.UI.ThemeFile,
		"ui.chart_width":    cfg.UI.ChartWidth,
		"keys.modifier":     cfg.Keys.Modifier,
		"keys.bindings":     cfg.Keys.Bindings,
		"journal.enabled":   cfg.Journal.Enabled,
		"journal.path":      cfg.Journal.Path,
		"journal.index":     cfg.Journal.Index,
		"journal.timeout":   cfg.Journal.Timeout,
		"log.level":         cfg.Log.Level,
		"log.file":          cfg.Log.File,
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults(defaultConfig()) {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "sietch")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SIETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.API.PageSize <= 0 {
		config.API.PageSize = DefaultPageSize
	}
	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")

	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Journal.Path = expandPath(cfg.Journal.Path)
	cfg.Journal.Index = expandPath(cfg.Journal.Index)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.UI.ThemeFile = expandPath(cfg.UI.ThemeFile)
}

// IsDarkTheme reports whether the configured initial theme is dark.
func (c *Config) IsDarkTheme() bool {
	return !strings.EqualFold(strings.TrimSpace(c.UI.Theme), "light")
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations as strings for TOML readability
	apiCfg := map[string]interface{}{
		"base_url":      config.API.BaseURL,
		"timeout":       config.API.Timeout.String(),
		"user_agent":    config.API.UserAgent,
		"page_size":     config.API.PageSize,
		"allow_private": config.API.AllowPrivate,
	}

	uiCfg := map[string]interface{}{
		"theme":       config.UI.Theme,
		"theme_file":  config.UI.ThemeFile,
		"chart_width": config.UI.ChartWidth,
	}

	b := config.Keys.Bindings
	keysCfg := map[string]interface{}{
		"modifier": config.Keys.Modifier,
		"bindings": map[string]interface{}{
			"quit":      b.Quit,
			"search":    b.Search,
			"breed":     b.Breed,
			"rename":    b.Rename,
			"recycle":   b.Recycle,
			"refresh":   b.Refresh,
			"theme":     b.Theme,
			"next_page": b.NextPage,
			"prev_page": b.PrevPage,
			"back":      b.Back,
			"help":      b.Help,
		},
	}

	journalCfg := map[string]interface{}{
		"enabled": config.Journal.Enabled,
		"path":    config.Journal.Path,
		"index":   config.Journal.Index,
		"timeout": config.Journal.Timeout.String(),
	}

	logCfg := map[string]interface{}{
		"level": config.Log.Level,
		"file":  config.Log.File,
	}

	v.Set("api", apiCfg)
	v.Set("ui", uiCfg)
	v.Set("keys", keysCfg)
	v.Set("journal", journalCfg)
	v.Set("log", logCfg)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
