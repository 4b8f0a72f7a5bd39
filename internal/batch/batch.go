// Package batch renders saved chat transcripts into HTML fragments on disk.
// Runs are incremental: a transcript is re-rendered only when its content,
// its output or the render settings changed.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alloftech/chatmark/internal/markdown"
	"github.com/alloftech/chatmark/internal/progress"
	"github.com/alloftech/chatmark/internal/walker"
)

// Options configures a batch run.
type Options struct {
	Root      string
	OutputDir string
	Include   []string
	Exclude   []string
	WrapClass string // empty writes bare fragments
	Force     bool   // re-render unchanged transcripts
	Verbose   bool

	// Settings describes the renderer configuration (engine, engine
	// options, inline timeout). Outputs from a run with different Settings
	// or WrapClass are re-rendered.
	Settings string

	Renderer *markdown.Renderer
	Reporter progress.Reporter
}

// Result summarises a batch run.
type Result struct {
	Total    int
	Rendered int
	Skipped  int
	Failed   int
	Removed  int
	Shadowed int // sources dropped because another file maps to the same output
}

// OutputPath maps a transcript's relative path to its fragment path by
// swapping the extension for .html.
func OutputPath(relPath string) string {
	return walker.Stem(relPath) + ".html"
}

// Run renders every transcript under opts.Root into opts.OutputDir.
// Outputs of transcripts that disappeared since the last run are removed.
// Cancelling ctx stops the run between files; progress so far is kept.
func Run(ctx context.Context, opts Options) (Result, error) {
	var res Result
	if opts.Renderer == nil {
		return res, errors.New("batch: renderer is required")
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = progress.Discard{}
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return res, fmt.Errorf("batch: resolve root: %w", err)
	}
	outDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return res, fmt.Errorf("batch: resolve output dir: %w", err)
	}

	// Never pick up our own output when it lives inside the root.
	exclude := append([]string(nil), opts.Exclude...)
	if rel, err := filepath.Rel(root, outDir); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		exclude = append(exclude, filepath.ToSlash(rel)+"/**")
	}

	found, err := walker.Walk(walker.Options{Root: root, Include: opts.Include, Exclude: exclude})
	if err != nil {
		return res, err
	}
	transcripts, shadowed := walker.Dedupe(found)
	for _, t := range shadowed {
		log.Printf("batch: skipping %s: %s is rendered from another source", t.RelPath, OutputPath(t.RelPath))
	}
	res.Total = len(transcripts)
	res.Shadowed = len(shadowed)

	state, err := LoadState(outDir)
	if err != nil {
		return res, fmt.Errorf("batch: loading state: %w", err)
	}
	if state.Adopt(Fingerprint(opts.Settings, opts.WrapClass)) && len(state.Outputs) > 0 && opts.Verbose {
		log.Printf("batch: render settings changed, re-rendering all transcripts")
	}

	reporter.Start(len(transcripts))
	defer reporter.Finish()

	seen := make(map[string]bool, len(transcripts))
	produced := make(map[string]bool, len(transcripts))
	for i, t := range transcripts {
		if err := ctx.Err(); err != nil {
			if saveErr := state.Save(outDir); saveErr != nil {
				log.Printf("batch: saving state: %v", saveErr)
			}
			return res, err
		}
		seen[t.RelPath] = true
		output := OutputPath(t.RelPath)
		produced[output] = true
		outPath := filepath.Join(outDir, filepath.FromSlash(output))

		if !opts.Force && state.Fresh(t.RelPath, t.Hash, output) && fileExists(outPath) {
			res.Skipped++
			reporter.Update(i+1, "unchanged "+t.RelPath)
			continue
		}

		if err := renderFile(opts, t.Path, outPath); err != nil {
			log.Printf("batch: %s: %v", t.RelPath, err)
			res.Failed++
			reporter.Update(i+1, "failed "+t.RelPath)
			continue
		}
		if opts.Verbose {
			log.Printf("batch: rendered %s -> %s", t.RelPath, outPath)
		}
		state.Record(t.RelPath, t.Hash, output)
		res.Rendered++
		reporter.Update(i+1, t.RelPath)
	}

	for relPath, e := range state.Outputs {
		if seen[relPath] {
			continue
		}
		delete(state.Outputs, relPath)
		if produced[e.Output] {
			continue
		}
		if err := os.Remove(filepath.Join(outDir, filepath.FromSlash(e.Output))); err != nil && !os.IsNotExist(err) {
			log.Printf("batch: removing stale %s: %v", e.Output, err)
			continue
		}
		res.Removed++
	}

	if err := state.Save(outDir); err != nil {
		return res, fmt.Errorf("batch: saving state: %w", err)
	}
	return res, nil
}

func renderFile(opts Options, src, dst string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	fragment := markdown.Wrap(opts.Renderer.Render(string(content)), opts.WrapClass)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, []byte(fragment+"\n"), 0o644)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
