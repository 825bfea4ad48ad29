package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %s, want %s", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.API.PageSize != 5 {
		t.Errorf("API.PageSize = %d, want 5", cfg.API.PageSize)
	}
	if cfg.API.UserAgent == "" {
		t.Error("API.UserAgent should not be empty")
	}
	if cfg.API.AllowPrivate {
		t.Error("API.AllowPrivate should be off by default")
	}

	if !cfg.IsDarkTheme() {
		t.Error("default theme should be dark")
	}
	if cfg.UI.ChartWidth != 30 {
		t.Errorf("UI.ChartWidth = %d, want 30", cfg.UI.ChartWidth)
	}

	if !cfg.Journal.Enabled {
		t.Error("Journal should be enabled by default")
	}
	if filepath.Base(cfg.Journal.Path) != "journal.db" {
		t.Errorf("Journal.Path = %s, want journal.db base", cfg.Journal.Path)
	}

	if cfg.Keys.Modifier != "ctrl" {
		t.Errorf("Keys.Modifier = %s, want 'ctrl'", cfg.Keys.Modifier)
	}
	if cfg.Keys.Bindings.Quit != "q" {
		t.Errorf("Keys.Bindings.Quit = %s, want 'q'", cfg.Keys.Bindings.Quit)
	}
	if cfg.Keys.Bindings.NextPage != "right" || cfg.Keys.Bindings.PrevPage != "left" {
		t.Errorf("page bindings = %s/%s, want right/left", cfg.Keys.Bindings.NextPage, cfg.Keys.Bindings.PrevPage)
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.API.PageSize != DefaultPageSize {
		t.Errorf("API.PageSize = %d, want %d", cfg.API.PageSize, DefaultPageSize)
	}
	if cfg.Log.Level != "off" {
		t.Errorf("Log.Level = %s, want off", cfg.Log.Level)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "test-config.toml")
	configContent := `
[api]
base_url = "http://localhost:3000/"
timeout = "10s"
page_size = 0

[ui]
theme = "light"

[keys.bindings]
next_page = "]"
`

	if writeErr := os.WriteFile(configPath, []byte(configContent), 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:3000" {
		t.Errorf("API.BaseURL = %s, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.API.PageSize != DefaultPageSize {
		t.Errorf("API.PageSize = %d, want fallback %d", cfg.API.PageSize, DefaultPageSize)
	}
	if cfg.API.UserAgent == "" {
		t.Error("API.UserAgent default lost when [api] was partially set")
	}
	if cfg.IsDarkTheme() {
		t.Error("theme = light should not be dark")
	}
	if cfg.Keys.Bindings.NextPage != "]" {
		t.Errorf("Keys.Bindings.NextPage = %s, want ]", cfg.Keys.Bindings.NextPage)
	}
	if cfg.Keys.Bindings.PrevPage != "left" {
		t.Errorf("Keys.Bindings.PrevPage = %s, want default left", cfg.Keys.Bindings.PrevPage)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SIETCH_API_BASE_URL", "http://127.0.0.1:9999")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:9999" {
		t.Errorf("API.BaseURL = %s, want env override", cfg.API.BaseURL)
	}
}

func TestLoad_AllowPrivateFromEnv(t *testing.T) {
	t.Setenv("SIETCH_API_ALLOW_PRIVATE", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.API.AllowPrivate {
		t.Error("API.AllowPrivate should follow SIETCH_API_ALLOW_PRIVATE")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load() with a missing explicit path should fail")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	if got := expandPath(""); got != "" {
		t.Errorf("expandPath(\"\") = %q, want empty", got)
	}
	if got := expandPath("~/journal.db"); got != filepath.Join(home, "journal.db") {
		t.Errorf("expandPath(~/journal.db) = %q", got)
	}
	if got := expandPath("/tmp/journal.db"); got != "/tmp/journal.db" {
		t.Errorf("expandPath(/tmp/journal.db) = %q", got)
	}
	if got := expandPath("journal.db"); !filepath.IsAbs(got) {
		t.Errorf("expandPath(journal.db) = %q, want absolute", got)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := defaultConfig()
	cfg.API.BaseURL = "http://localhost:3000"
	cfg.API.Timeout = 45 * time.Second
	cfg.UI.Theme = "light"
	cfg.UI.ChartWidth = 12
	cfg.Keys.Modifier = "alt"
	cfg.Keys.Bindings.NextPage = "pgdown"
	cfg.Journal.Path = "/test/journal.db"

	savePath := filepath.Join(tmpDir, "saved-config.toml")
	if saveErr := Save(cfg, savePath); saveErr != nil {
		t.Fatalf("Save() error = %v", saveErr)
	}

	if _, statErr := os.Stat(savePath); os.IsNotExist(statErr) {
		t.Fatal("Save() did not create config file")
	}

	loaded, err := Load(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.API.BaseURL != cfg.API.BaseURL {
		t.Errorf("Loaded API.BaseURL = %s, want %s", loaded.API.BaseURL, cfg.API.BaseURL)
	}
	if loaded.API.Timeout != cfg.API.Timeout {
		t.Errorf("Loaded API.Timeout = %v, want %v", loaded.API.Timeout, cfg.API.Timeout)
	}
	if loaded.UI.ChartWidth != 12 {
		t.Errorf("Loaded UI.ChartWidth = %d, want 12", loaded.UI.ChartWidth)
	}
	if loaded.Keys.Modifier != cfg.Keys.Modifier {
		t.Errorf("Loaded Keys.Modifier = %s, want %s", loaded.Keys.Modifier, cfg.Keys.Modifier)
	}
	if loaded.Keys.Bindings.NextPage != "pgdown" {
		t.Errorf("Loaded Keys.Bindings.NextPage = %s, want pgdown", loaded.Keys.Bindings.NextPage)
	}
	if loaded.Journal.Path != cfg.Journal.Path {
		t.Errorf("Loaded Journal.Path = %s, want %s", loaded.Journal.Path, cfg.Journal.Path)
	}
}

func TestGenerateDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "generated.toml")
	if genErr := GenerateDefaultConfig(configPath); genErr != nil {
		t.Fatalf("GenerateDefaultConfig() error = %v", genErr)
	}

	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		t.Fatal("GenerateDefaultConfig() did not create file")
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}

	if cfg.Keys.Modifier != "ctrl" {
		t.Errorf("Generated config has Keys.Modifier = %s, want 'ctrl'", cfg.Keys.Modifier)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("Generated config has API.BaseURL = %s, want %s", cfg.API.BaseURL, DefaultBaseURL)
	}
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	if cfg == nil {
		t.Fatal("TestConfig() returned nil")
	}

	if cfg.Journal.Enabled {
		t.Error("TestConfig should not open a journal")
	}
	if cfg.API.UserAgent != "sietch-test/1.0" {
		t.Errorf("TestConfig API.UserAgent = %s, want 'sietch-test/1.0'", cfg.API.UserAgent)
	}
}
