package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alloftech/chatmark/internal/markdown"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a single reply to HTML",
	Long: `Renders a file, or standard input when no file is given, and writes the
HTML fragment to standard output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("engine", "", "engine to prefer: subset or goldmark (overrides config)")
	renderCmd.Flags().Bool("wrap", false, "wrap the fragment in a message container using wrap_class")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engineName, _ := cmd.Flags().GetString("engine")
	wrap, _ := cmd.Flags().GetBool("wrap")

	renderer, err := newRenderer(cfg, engineName)
	if err != nil {
		return err
	}

	var input []byte
	if len(args) == 1 {
		input, err = os.ReadFile(args[0])
	} else {
		input, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	out := renderer.Render(string(input))
	if wrap {
		out = markdown.Wrap(out, cfg.WrapClass)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
