// Package engine adapts goldmark as the full Markdown engine for chat
// replies. Engine output is passed through a bluemonday policy so links open
// in a new browsing context without opener or referrer access, matching the
// fallback renderer.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultStyle is the chroma style used when Options.HighlightStyle is empty.
const DefaultStyle = "github"

// ErrUnavailable is returned by TryRender on a disabled engine.
var ErrUnavailable = errors.New("engine: goldmark is disabled")

// Options selects goldmark features.
type Options struct {
	Disabled       bool
	GFM            bool
	HardWraps      bool
	Highlight      bool
	HighlightStyle string
	Sanitize       bool
}

// Goldmark renders Markdown with goldmark. It implements
// markdown.ExternalRenderer and is safe for concurrent use.
type Goldmark struct {
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	disabled bool
}

// New builds a Goldmark engine. Raw HTML in the source is never passed
// through.
func New(opts Options) *Goldmark {
	var exts []goldmark.Extender
	if opts.GFM {
		exts = append(exts, extension.GFM)
	}
	if opts.Highlight {
		style := opts.HighlightStyle
		if style == "" {
			style = DefaultStyle
		}
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		))
	}

	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}

	g := &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithRendererOptions(rendererOpts...),
		),
		disabled: opts.Disabled,
	}
	if opts.Sanitize {
		g.policy = chatPolicy()
	}
	return g
}

// chatPolicy is the UGC policy plus link safety attributes and the class
// attributes emitted by class-based highlighting.
func chatPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("pre", "code", "span")
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Available reports whether the engine may be used.
func (g *Goldmark) Available() bool {
	return g != nil && !g.disabled && g.md != nil
}

// TryRender converts text to an HTML fragment.
func (g *Goldmark) TryRender(text string) (string, error) {
	if !g.Available() {
		return "", ErrUnavailable
	}

	var buf bytes.Buffer
	if err := g.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("goldmark: converting markdown: %w", err)
	}

	out := buf.String()
	if g.policy != nil {
		out = g.policy.Sanitize(out)
	}
	return strings.TrimRight(out, "\n"), nil
}

// HighlightCSS returns the stylesheet for class-based code highlighting in
// the named chroma style.
func HighlightCSS(style string) (string, error) {
	if style == "" {
		style = DefaultStyle
	}
	if !slices.Contains(styles.Names(), style) {
		return "", fmt.Errorf("engine: unknown highlight style %q", style)
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("engine: writing css: %w", err)
	}
	return buf.String(), nil
}
