package cmd

import (
	"fmt"

	"github.com/alloftech/chatmark/internal/config"
	"github.com/alloftech/chatmark/internal/engine"
	"github.com/alloftech/chatmark/internal/markdown"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `chatmark init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func engineKind(cfg *config.Config, override string) config.EngineType {
	if override != "" {
		return config.EngineType(override)
	}
	return cfg.Engine
}

// renderSettings describes every option that changes rendered output, for
// batch.Options.Settings. Goldmark options only count when goldmark is used.
func renderSettings(cfg *config.Config, override string) string {
	kind := engineKind(cfg, override)
	s := fmt.Sprintf("engine=%s inline_timeout_ms=%d", kind, cfg.InlineTimeoutMS)
	if kind == config.EngineGoldmark {
		s += fmt.Sprintf(" goldmark=%+v", cfg.Goldmark)
	}
	return s
}

// newRenderer builds the renderer described by cfg. A non-empty override
// replaces the configured engine.
func newRenderer(cfg *config.Config, override string) (*markdown.Renderer, error) {
	kind := engineKind(cfg, override)

	var external markdown.ExternalRenderer
	switch kind {
	case config.EngineSubset:
	case config.EngineGoldmark:
		external = engine.New(engine.Options{
			GFM:            cfg.Goldmark.GFM,
			HardWraps:      cfg.Goldmark.HardWraps,
			Highlight:      cfg.Goldmark.Highlight,
			HighlightStyle: cfg.Goldmark.HighlightStyle,
			Sanitize:       cfg.Goldmark.Sanitize,
		})
	default:
		return nil, fmt.Errorf("unknown engine %q: must be one of subset, goldmark", kind)
	}

	return markdown.NewRenderer(external, markdown.NewSubset(cfg.InlineTimeout())), nil
}
