package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Engine != EngineGoldmark {
		t.Errorf("expected default engine %q, got %q", EngineGoldmark, cfg.Engine)
	}
	if !cfg.Goldmark.HardWraps {
		t.Error("expected hard wraps enabled by default")
	}
	if cfg.WrapClass != DefaultWrapClass {
		t.Errorf("expected default wrap_class %q, got %q", DefaultWrapClass, cfg.WrapClass)
	}
	if cfg.InlineTimeout() != 100*time.Millisecond {
		t.Errorf("expected default inline timeout 100ms, got %v", cfg.InlineTimeout())
	}

	// Defaults must not share backing arrays with the package variables.
	cfg.Include[0] = "changed"
	if DefaultIncludes[0] == "changed" {
		t.Error("DefaultConfig aliases DefaultIncludes")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.chatmark.yml")

	original := DefaultConfig()
	original.Engine = EngineSubset
	original.Goldmark.HighlightStyle = "monokai"
	original.Goldmark.Sanitize = false
	original.InlineTimeoutMS = 250
	original.Include = []string{"chats/**/*.md"}
	original.OutputDir = "output"

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Engine != original.Engine {
		t.Errorf("engine: got %q, want %q", loaded.Engine, original.Engine)
	}
	if loaded.Goldmark != original.Goldmark {
		t.Errorf("goldmark: got %+v, want %+v", loaded.Goldmark, original.Goldmark)
	}
	if loaded.InlineTimeoutMS != original.InlineTimeoutMS {
		t.Errorf("inline_timeout_ms: got %d, want %d", loaded.InlineTimeoutMS, original.InlineTimeoutMS)
	}
	if loaded.OutputDir != original.OutputDir {
		t.Errorf("output_dir: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	// A shorter list in the file replaces the default list entirely.
	if len(loaded.Include) != 1 || loaded.Include[0] != "chats/**/*.md" {
		t.Errorf("include: got %q, want %q", loaded.Include, original.Include)
	}
}

func TestLoadPartialSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("goldmark:\n  gfm: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Goldmark.GFM {
		t.Error("gfm should be overridden to false")
	}
	if cfg.Goldmark.HighlightStyle != "github" {
		t.Errorf("untouched keys should keep defaults, got style %q", cfg.Goldmark.HighlightStyle)
	}
	if len(cfg.Include) != len(DefaultIncludes) {
		t.Errorf("include should keep defaults, got %q", cfg.Include)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Engine != EngineGoldmark {
		t.Errorf("expected default engine, got %q", cfg.Engine)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("CHATMARK_ENGINE", "subset")
	t.Setenv("CHATMARK_GOLDMARK__HARD_WRAPS", "false")
	t.Setenv("CHATMARK_INLINE_TIMEOUT_MS", "40")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Engine != EngineSubset {
		t.Errorf("env override failed: got %q, want %q", loaded.Engine, EngineSubset)
	}
	if loaded.Goldmark.HardWraps {
		t.Error("nested env override failed: hard_wraps still true")
	}
	if loaded.InlineTimeout() != 40*time.Millisecond {
		t.Errorf("inline timeout: got %v", loaded.InlineTimeout())
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"CHATMARK_ENGINE":                   "engine",
		"CHATMARK_OUTPUT_DIR":               "output_dir",
		"CHATMARK_GOLDMARK__HIGHLIGHT_STYLE": "goldmark.highlight_style",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty engine", func(c *Config) { c.Engine = "" }},
		{"unknown engine", func(c *Config) { c.Engine = "marked" }},
		{"missing style", func(c *Config) { c.Goldmark.HighlightStyle = "" }},
		{"negative timeout", func(c *Config) { c.InlineTimeoutMS = -1 }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tt.name)
			}
		})
	}
}

func TestValidateStyleOptionalWithoutHighlight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Goldmark.Highlight = false
	cfg.Goldmark.HighlightStyle = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("style should not be required without highlighting: %v", err)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.md", []string{"**/*.md"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
