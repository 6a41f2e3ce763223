package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/dshills/trilex/internal/dictionary"
	"github.com/dshills/trilex/internal/drag"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, b := range envBindings {
		t.Setenv(b.env, "")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Backend != BackendDir || cfg.Editor.MaxLines != 3 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[log]
level = "debug"

[store]
backend = "sqlite"
sqlite = "words.db"

[translate]
provider = "anthropic"
temperature = 0.5

[editor]
max_lines = 5
selection_policy = "clear"
fields = ["korean", "english"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Store.Backend != BackendSQLite || cfg.Store.SQLite != "words.db" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Translate.Temperature != 0.5 || cfg.Translate.Concurrency != 4 {
		t.Errorf("translate = %+v", cfg.Translate)
	}
	if cfg.Editor.MaxLines != 5 || cfg.Editor.Policy() != drag.PolicyClear {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	fields, err := cfg.Editor.ParseFields()
	if err != nil || !slices.Equal(fields, []dictionary.Field{dictionary.FieldKorean, dictionary.FieldEnglish}) {
		t.Errorf("fields = %v, %v", fields, err)
	}
	if cfg.Theme.Accent != "#3b82f6" {
		t.Errorf("untouched section lost its default: %q", cfg.Theme.Accent)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[store]
backend = "dir"

[translate]
model = "from-file"
`)
	t.Setenv("TRILEX_STORE", "gist")
	t.Setenv("TRILEX_GIST_ID", "abc123")
	t.Setenv("GITHUB_TOKEN", "ghp_x")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("TRILEX_MODEL", "gpt-4.1-mini")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Backend != BackendGist || cfg.Store.GistID != "abc123" || cfg.Store.Token != "ghp_x" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Translate.Model != "gpt-4.1-mini" {
		t.Errorf("model = %q, want TRILEX_MODEL to win", cfg.Translate.Model)
	}
	if cfg.Translate.APIKey() != "sk-test" {
		t.Errorf("APIKey = %q", cfg.Translate.APIKey())
	}
}

func TestParseErrorPosition(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[log]\nlevel = \n")
	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ParseError", err)
	}
	if perr.Line != 2 {
		t.Errorf("line = %d, want 2", perr.Line)
	}
}

func TestUnknownSetting(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[editor]\ntab_size = 4\n")
	_, err := Load(path)
	if !errors.Is(err, ErrUnknownSetting) {
		t.Fatalf("err = %v, want ErrUnknownSetting", err)
	}
}

func TestValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Store.Backend = "gist"
	cfg.Translate.Provider = "mistral"
	cfg.Editor.SelectionPolicy = "keep"
	cfg.Editor.Fields = []string{"korean", "french"}
	cfg.Theme.Accent = "blue"

	err := cfg.Validate()
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("err = %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatal("not a ValidationError")
	}
	var paths []string
	for _, f := range verr.Fields {
		paths = append(paths, f.Path)
	}
	want := []string{
		"editor.fields",
		"editor.selection_policy",
		"log.level",
		"store.gist_id",
		"theme.accent",
		"translate.provider",
	}
	if !slices.Equal(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestStoreName(t *testing.T) {
	tests := []struct {
		store StoreConfig
		want  string
	}{
		{StoreConfig{Backend: BackendGist, GistID: "0123456789abcdef"}, "gist:01234567"},
		{StoreConfig{Backend: BackendDir, Dir: "translations"}, "dir:translations"},
		{StoreConfig{Backend: BackendSQLite, SQLite: "/tmp/x/words.db"}, "sqlite:words.db"},
	}
	for _, tt := range tests {
		if got := tt.store.StoreName(); got != tt.want {
			t.Errorf("StoreName() = %q, want %q", got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	base := map[string]any{"a": map[string]any{"x": 1, "y": 2}, "b": 1}
	over := map[string]any{"a": map[string]any{"y": 3}}
	got := deepMerge(base, over)
	a := got["a"].(map[string]any)
	if a["x"] != 1 || a["y"] != 3 || got["b"] != 1 {
		t.Errorf("deepMerge = %v", got)
	}
	if base["a"].(map[string]any)["y"] != 2 {
		t.Error("deepMerge modified its input")
	}
}
