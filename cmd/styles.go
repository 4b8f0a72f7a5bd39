package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alloftech/chatmark/internal/engine"
)

var stylesCmd = &cobra.Command{
	Use:   "styles [style]",
	Short: "Print the CSS for highlighted code blocks",
	Long: `Prints the stylesheet that matches the class-based code highlighting of
the goldmark engine. Without an argument the configured highlight_style is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		style := ""
		if len(args) == 1 {
			style = args[0]
		} else if cfg, err := loadConfig(); err == nil {
			style = cfg.Goldmark.HighlightStyle
		}

		css, err := engine.HighlightCSS(style)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), css)
		return err
	},
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}
