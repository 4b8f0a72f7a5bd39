package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "chatmark",
	Short: "Render chat replies and transcripts into safe HTML fragments",
	Long: `chatmark turns the Markdown-ish text of chat assistant replies into
HTML fragments ready for a chat bubble. It prefers a full Markdown engine
and falls back to a small built-in renderer that escapes everything and
never fails.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".chatmark.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
