package config

import (
	"os"
	"path/filepath"
)

// Store backends.
const (
	BackendGist   = "gist"
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
)

// Translation providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config holds every trilex setting.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Store     StoreConfig     `toml:"store"`
	Translate TranslateConfig `toml:"translate"`
	Editor    EditorConfig    `toml:"editor"`
	Theme     ThemeConfig     `toml:"theme"`
	Keys      KeysConfig      `toml:"keys"`
}

// LogConfig configures the application log.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
	// File receives the log while the editor owns the terminal.
	File string `toml:"file"`
}

// StoreConfig selects and configures the dictionary store.
type StoreConfig struct {
	// Backend is gist, dir or sqlite.
	Backend string `toml:"backend"`

	GistID string `toml:"gist_id"`
	// Token is a GitHub token with the gist scope.
	Token string `toml:"token"`
	// APIURL overrides the GitHub API endpoint.
	APIURL string `toml:"api_url"`

	// Dir holds the five JSON files for the dir backend.
	Dir string `toml:"dir"`
	// Watch reloads the dir store when its files change on disk.
	Watch bool `toml:"watch"`

	// SQLite is the database path for the sqlite backend.
	SQLite string `toml:"sqlite"`

	// TimeoutSeconds bounds each load or save.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// TranslateConfig configures the LLM provider.
type TranslateConfig struct {
	// Provider is openai, anthropic or gemini.
	Provider string `toml:"provider"`
	// Model overrides the provider's default model.
	Model string `toml:"model"`
	// BaseURL overrides the provider endpoint.
	BaseURL string `toml:"base_url"`

	OpenAIKey    string `toml:"openai_api_key"`
	AnthropicKey string `toml:"anthropic_api_key"`
	GeminiKey    string `toml:"gemini_api_key"`

	Temperature float64 `toml:"temperature"`
	// Concurrency bounds parallel requests during bulk translation.
	Concurrency int `toml:"concurrency"`
}

// EditorConfig configures the grid editor.
type EditorConfig struct {
	// MaxLines caps how many lines a wrapped row may take.
	MaxLines int `toml:"max_lines"`
	// SelectionPolicy is follow or clear: what happens to the selection
	// after rows are moved.
	SelectionPolicy string `toml:"selection_policy"`
	// Fields are the column names to show, in order.
	Fields []string `toml:"fields"`
	// ReadOnly opens the dictionary without editing.
	ReadOnly bool `toml:"read_only"`
}

// ThemeConfig holds the theme's base colours as hex strings.
type ThemeConfig struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Accent     string `toml:"accent"`
	Error      string `toml:"error"`
}

// KeysConfig configures English key derivation.
type KeysConfig struct {
	// Script is a Lua file defining make_key(english, korean).
	Script string `toml:"script"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(StateDir(), "trilex.log"),
		},
		Store: StoreConfig{
			Backend:        BackendDir,
			APIURL:         "https://api.github.com",
			Dir:            "translations",
			SQLite:         "trilex.db",
			TimeoutSeconds: 30,
		},
		Translate: TranslateConfig{
			Provider:    ProviderOpenAI,
			Temperature: 0.2,
			Concurrency: 4,
		},
		Editor: EditorConfig{
			MaxLines:        3,
			SelectionPolicy: "follow",
			Fields:          []string{"korean", "description", "key", "english", "arabic"},
		},
		Theme: ThemeConfig{
			Background: "#1e1f29",
			Foreground: "#d8dee9",
			Accent:     "#3b82f6",
			Error:      "#e5484d",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/trilex/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "trilex", "config.toml")
}

// StateDir returns $XDG_STATE_HOME/trilex, falling back to
// ~/.local/state/trilex.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "trilex")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "trilex")
	}
	return filepath.Join(home, ".local", "state", "trilex")
}

// APIKey returns the key for the configured provider.
func (c *TranslateConfig) APIKey() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.AnthropicKey
	case ProviderGemini:
		return c.GeminiKey
	default:
		return c.OpenAIKey
	}
}

// StoreName describes the configured store for the status line.
func (c *StoreConfig) StoreName() string {
	switch c.Backend {
	case BackendGist:
		id := c.GistID
		if len(id) > 8 {
			id = id[:8]
		}
		return "gist:" + id
	case BackendSQLite:
		return "sqlite:" + filepath.Base(c.SQLite)
	default:
		return "dir:" + c.Dir
	}
}
