package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alloftech/chatmark/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize chatmark configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure chatmark and writes the result to the --config path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		useDefaults, _ := cmd.Flags().GetBool("defaults")
		if !useDefaults {
			_, err := config.RunWizard(cfgFile)
			return err
		}
		if err := config.DefaultConfig().Save(cfgFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", cfgFile)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("defaults", false, "write the default configuration without prompting")
	rootCmd.AddCommand(initCmd)
}
