package config

// DefaultWrapClass mirrors the container class of the website chat widget.
const DefaultWrapClass = "message-content markdown-body"

// DefaultIncludes select saved chat transcripts for batch rendering.
var DefaultIncludes = []string{
	"**/*.md",
	"**/*.txt",
}

// DefaultExcludes are glob patterns excluded from batch rendering by default.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"README.md",
	"CHANGELOG.md",
	"LICENSE.txt",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineGoldmark,
		Goldmark: GoldmarkConfig{
			GFM:            true,
			HardWraps:      true,
			Highlight:      true,
			HighlightStyle: "github",
			Sanitize:       true,
		},
		InlineTimeoutMS: 100,
		WrapClass:       DefaultWrapClass,
		Include:         append([]string(nil), DefaultIncludes...),
		Exclude:         append([]string(nil), DefaultExcludes...),
		OutputDir:       "rendered",
	}
}
