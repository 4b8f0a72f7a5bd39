package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/alloftech/chatmark/internal/batch"
	"github.com/alloftech/chatmark/internal/progress"
)

var batchCmd = &cobra.Command{
	Use:   "batch [root]",
	Short: "Render every transcript under a directory",
	Long: `Walks a directory of saved transcripts and writes one HTML fragment per
file into the output directory. Unchanged transcripts are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("output", "", "output directory (overrides config)")
	batchCmd.Flags().Bool("force", false, "re-render unchanged transcripts")
	batchCmd.Flags().String("engine", "", "engine to prefer: subset or goldmark (overrides config)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cfg.OutputDir
	}
	force, _ := cmd.Flags().GetBool("force")
	engineName, _ := cmd.Flags().GetString("engine")

	renderer, err := newRenderer(cfg, engineName)
	if err != nil {
		return err
	}

	res, err := batch.Run(ctx, batch.Options{
		Root:      root,
		OutputDir: output,
		Include:   cfg.Include,
		Exclude:   cfg.Exclude,
		WrapClass: cfg.WrapClass,
		Settings:  renderSettings(cfg, engineName),
		Force:     force,
		Verbose:   verbose,
		Renderer:  renderer,
		Reporter:  progress.NewReporter(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Rendered %d of %d transcripts into %s (%d unchanged", res.Rendered, res.Total, output, res.Skipped)
	if res.Removed > 0 {
		fmt.Fprintf(out, ", %d removed", res.Removed)
	}
	if res.Shadowed > 0 {
		fmt.Fprintf(out, ", %d shadowed", res.Shadowed)
	}
	fmt.Fprintf(out, ") in %s\n", time.Since(start).Round(time.Millisecond))
	if res.Failed > 0 {
		return fmt.Errorf("%d transcripts failed to render", res.Failed)
	}
	return nil
}
