package config

import (
	"slices"
	"strings"

	"github.com/dshills/trilex/internal/dictionary"
	"github.com/dshills/trilex/internal/drag"
	"github.com/dshills/trilex/internal/renderer/core"
)

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	v := &ValidationError{}

	if !slices.Contains(logLevels, c.Log.Level) {
		v.add("log.level", "must be debug, info, warn or error", c.Log.Level)
	}

	switch c.Store.Backend {
	case BackendGist:
		if c.Store.GistID == "" {
			v.add("store.gist_id", "required for the gist backend", c.Store.GistID)
		}
	case BackendDir:
		if c.Store.Dir == "" {
			v.add("store.dir", "required for the dir backend", c.Store.Dir)
		}
	case BackendSQLite:
		if c.Store.SQLite == "" {
			v.add("store.sqlite", "required for the sqlite backend", c.Store.SQLite)
		}
	default:
		v.add("store.backend", "must be gist, dir or sqlite", c.Store.Backend)
	}
	if c.Store.TimeoutSeconds < 1 {
		v.add("store.timeout_seconds", "must be positive", c.Store.TimeoutSeconds)
	}

	switch c.Translate.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
	default:
		v.add("translate.provider", "must be openai, anthropic or gemini", c.Translate.Provider)
	}
	if c.Translate.Temperature < 0 || c.Translate.Temperature > 2 {
		v.add("translate.temperature", "must be between 0 and 2", c.Translate.Temperature)
	}
	if c.Translate.Concurrency < 1 {
		v.add("translate.concurrency", "must be at least 1", c.Translate.Concurrency)
	}

	if c.Editor.MaxLines < 1 {
		v.add("editor.max_lines", "must be at least 1", c.Editor.MaxLines)
	}
	if _, ok := drag.ParsePolicy(c.Editor.SelectionPolicy); !ok {
		v.add("editor.selection_policy", "must be follow or clear", c.Editor.SelectionPolicy)
	}
	if _, err := c.Editor.ParseFields(); err != nil {
		v.add("editor.fields", err.Error(), c.Editor.Fields)
	}

	for path, hex := range map[string]string{
		"theme.background": c.Theme.Background,
		"theme.foreground": c.Theme.Foreground,
		"theme.accent":     c.Theme.Accent,
		"theme.error":      c.Theme.Error,
	} {
		if hex == "" {
			continue
		}
		if _, err := core.ColorFromHex(hex); err != nil {
			v.add(path, "not a hex colour", hex)
		}
	}

	if len(v.Fields) > 0 {
		slices.SortFunc(v.Fields, func(a, b FieldError) int {
			return strings.Compare(a.Path, b.Path)
		})
		return v
	}
	return nil
}

// ParseFields converts the configured column names.
func (c *EditorConfig) ParseFields() ([]dictionary.Field, error) {
	out := make([]dictionary.Field, 0, len(c.Fields))
	for _, name := range c.Fields {
		f, err := dictionary.ParseField(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Policy returns the parsed selection policy, defaulting to follow.
func (c *EditorConfig) Policy() drag.Policy {
	p, ok := drag.ParsePolicy(c.SelectionPolicy)
	if !ok {
		return drag.PolicyFollow
	}
	return p
}
