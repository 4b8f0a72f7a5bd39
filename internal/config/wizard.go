package config

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// highlightStyles are offered by the wizard; any chroma style name is
// accepted in the config file.
var highlightStyles = []string{"github", "monokai", "dracula", "solarized-light", "nord"}

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to chatmark! Let's configure reply rendering.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Engine selection.
	enginePrompt := promptui.Select{
		Label: "Select the preferred renderer",
		Items: []string{
			"goldmark: full Markdown, subset renderer as fallback",
			"subset:   headings, lists, bold, italic and links only",
		},
	}
	engineIdx, _, err := enginePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("engine selection: %w", err)
	}
	cfg.Engine = []EngineType{EngineGoldmark, EngineSubset}[engineIdx]

	if cfg.Engine == EngineGoldmark {
		// 2. Line breaks.
		wrapPrompt := promptui.Select{
			Label: "Treat single newlines as line breaks?",
			Items: []string{"yes", "no"},
		}
		wrapIdx, _, err := wrapPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("hard wraps: %w", err)
		}
		cfg.Goldmark.HardWraps = wrapIdx == 0

		// 3. Highlight style.
		stylePrompt := promptui.Select{
			Label: "Code highlight style",
			Items: highlightStyles,
		}
		_, style, err := stylePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("highlight style: %w", err)
		}
		cfg.Goldmark.HighlightStyle = style
	}

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for batch rendering",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 5. Include patterns.
	includePrompt := promptui.Prompt{
		Label:   "Transcript patterns (comma-separated globs)",
		Default: strings.Join(DefaultIncludes, ","),
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	if include := splitAndTrim(includeStr); len(include) > 0 {
		cfg.Include = include
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
