package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override the config file.
const EnvPrefix = "CHATMARK_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CHATMARK_*). A double underscore descends
// into a section: CHATMARK_GOLDMARK__HARD_WRAPS -> goldmark.hard_wraps.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// ZeroFields replaces default slices instead of merging into them.
	err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
			Result:           cfg,
			WeaklyTypedInput: true,
			ZeroFields:       true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validEngines is the set of recognized engine values.
var validEngines = map[EngineType]bool{
	EngineSubset:   true,
	EngineGoldmark: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Engine == "" {
		return fmt.Errorf("engine is required")
	}
	if !validEngines[c.Engine] {
		return fmt.Errorf("invalid engine %q: must be one of subset, goldmark", c.Engine)
	}

	if c.Goldmark.Highlight && c.Goldmark.HighlightStyle == "" {
		return fmt.Errorf("goldmark.highlight_style is required when highlighting is enabled")
	}

	if c.InlineTimeoutMS < 0 {
		return fmt.Errorf("inline_timeout_ms must be non-negative")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	return nil
}
