// Package markdown renders chat replies into HTML fragments for a chat bubble.
//
// A Renderer prefers an injected full Markdown engine and falls back to the
// built-in Subset renderer, which understands headings 1-3, bold, italic,
// links, list items, paragraphs and blank-line breaks. The Subset renderer
// escapes its input before introducing any markup and never fails: on an
// internal fault it returns the escaped, unformatted text.
package markdown

import (
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultInlineTimeout bounds each inline pass over a message.
const DefaultInlineTimeout = 100 * time.Millisecond

// Inline patterns run in this order: link, bold, italic. Italic must follow
// bold so that "**x**" is not split into two emphasis pairs, and none of the
// patterns cross a line break.
const (
	linkPattern   = `\[([^\]\n]+)\]\(([^)\n]+)\)`
	boldPattern   = `\*\*([^*\n]+?)\*\*`
	italicPattern = `(?<!\*)\*(?![\s*])([^*\n]+?)(?<!\s)\*(?!\*)`
)

// safeSchemes lists the link schemes allowed in a generated href. Targets
// without a scheme are treated as relative links.
var safeSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// Subset is the fallback renderer. It is safe for concurrent use.
type Subset struct {
	link   *regexp2.Regexp
	bold   *regexp2.Regexp
	italic *regexp2.Regexp
}

// NewSubset compiles the inline patterns with the given per-pass timeout.
// A non-positive timeout selects DefaultInlineTimeout.
func NewSubset(timeout time.Duration) *Subset {
	if timeout <= 0 {
		timeout = DefaultInlineTimeout
	}
	s := &Subset{
		link:   regexp2.MustCompile(linkPattern, regexp2.None),
		bold:   regexp2.MustCompile(boldPattern, regexp2.None),
		italic: regexp2.MustCompile(italicPattern, regexp2.None),
	}
	for _, re := range []*regexp2.Regexp{s.link, s.bold, s.italic} {
		re.MatchTimeout = timeout
	}
	return s
}

var defaultSubset = NewSubset(DefaultInlineTimeout)

// Render converts text with the default Subset renderer.
func Render(text string) string {
	return defaultSubset.Render(text)
}

// Render converts text into an HTML fragment. It never panics; if a pass
// fails the escaped input is returned unformatted. Each run of invalid UTF-8
// becomes a single U+FFFD.
func (s *Subset) Render(text string) (out string) {
	escaped := html.EscapeString(normalizeNewlines(strings.ToValidUTF8(text, "\uFFFD")))

	defer func() {
		if r := recover(); r != nil {
			log.Printf("markdown: subset render recovered: %v", r)
			out = escaped
		}
	}()

	fragments, err := s.fragments(escaped)
	if err != nil {
		log.Printf("markdown: subset render failed: %v", err)
		return escaped
	}
	return strings.ReplaceAll(strings.Join(fragments, "\n"), "<p></p>", "")
}

// fragments runs the inline passes over already escaped text and assembles
// one fragment per block or list run.
func (s *Subset) fragments(escaped string) ([]string, error) {
	formatted, err := s.inline(escaped)
	if err != nil {
		return nil, err
	}

	var a assembler
	for _, line := range strings.Split(formatted, "\n") {
		a.feed(Classify(line))
	}
	return a.finish(), nil
}

func (s *Subset) inline(text string) (string, error) {
	out, err := s.link.ReplaceFunc(text, linkHTML, -1, -1)
	if err != nil {
		return "", &passError{pass: "link", size: len(text)}
	}
	text = out
	if out, err = s.bold.Replace(text, "<strong>$1</strong>", -1, -1); err != nil {
		return "", &passError{pass: "bold", size: len(text)}
	}
	text = out
	if out, err = s.italic.Replace(text, "<em>$1</em>", -1, -1); err != nil {
		return "", &passError{pass: "italic", size: len(text)}
	}
	return out, nil
}

// passError reports a failed inline pass. regexp2 quotes the whole input in
// its timeout error, so only the pass name and input size are kept.
type passError struct {
	pass string
	size int
}

func (e *passError) Error() string {
	return fmt.Sprintf("%s pass timed out on %d bytes", e.pass, e.size)
}

// linkHTML builds the anchor for a [label](target) match. Asterisks in the
// target are percent-encoded so the emphasis passes cannot reach into the
// attribute. Targets with an unsafe scheme keep only their label.
func linkHTML(m regexp2.Match) string {
	label := m.GroupByNumber(1).String()
	target := strings.TrimSpace(m.GroupByNumber(2).String())
	if !safeTarget(target) {
		return label
	}
	href := strings.ReplaceAll(target, "*", "%2A")
	return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + label + `</a>`
}

func safeTarget(target string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, target)
	scheme, _, found := strings.Cut(cleaned, ":")
	if !found || strings.ContainsAny(scheme, "/?#") {
		return cleaned != ""
	}
	return safeSchemes[strings.ToLower(scheme)]
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
