package config

import "time"

// EngineType selects the preferred Markdown renderer. The subset renderer
// is always the fallback.
type EngineType string

const (
	EngineSubset   EngineType = "subset"
	EngineGoldmark EngineType = "goldmark"
)

// Config is the top-level chatmark configuration, corresponding to .chatmark.yml.
type Config struct {
	Engine          EngineType     `yaml:"engine" koanf:"engine"`
	Goldmark        GoldmarkConfig `yaml:"goldmark" koanf:"goldmark"`
	InlineTimeoutMS int            `yaml:"inline_timeout_ms" koanf:"inline_timeout_ms"`
	WrapClass       string         `yaml:"wrap_class" koanf:"wrap_class"`
	Include         []string       `yaml:"include" koanf:"include"`
	Exclude         []string       `yaml:"exclude" koanf:"exclude"`
	OutputDir       string         `yaml:"output_dir" koanf:"output_dir"`
}

// GoldmarkConfig holds settings for the full Markdown engine.
type GoldmarkConfig struct {
	GFM            bool   `yaml:"gfm" koanf:"gfm"`
	HardWraps      bool   `yaml:"hard_wraps" koanf:"hard_wraps"`
	Highlight      bool   `yaml:"highlight" koanf:"highlight"`
	HighlightStyle string `yaml:"highlight_style" koanf:"highlight_style"`
	Sanitize       bool   `yaml:"sanitize" koanf:"sanitize"`
}

// InlineTimeout returns the per-pass match timeout of the subset renderer.
func (c *Config) InlineTimeout() time.Duration {
	return time.Duration(c.InlineTimeoutMS) * time.Millisecond
}
