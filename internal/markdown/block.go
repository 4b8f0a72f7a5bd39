package markdown

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind identifies how a single line of chat text is rendered.
type Kind int

const (
	KindBreak Kind = iota
	KindHeading
	KindListItem
	KindParagraph
)

// Block is one classified line.
type Block struct {
	Kind    Kind
	Level   int    // heading level, 1-3
	Ordered bool   // list item came from a "1. " marker
	Text    string // inner content, already escaped and inline-formatted
}

// Classify decides what a single line is. Headings are checked before list
// items, and list items before paragraphs. Headings go from ### down to #
// so that "### x" is never read as "#" followed by "## x".
func Classify(line string) Block {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Block{Kind: KindBreak}
	}

	for level := 3; level >= 1; level-- {
		if rest, ok := cutMarker(trimmed, strings.Repeat("#", level)); ok {
			return Block{Kind: KindHeading, Level: level, Text: rest}
		}
	}

	if rest, ok := cutMarker(trimmed, "-"); ok {
		return Block{Kind: KindListItem, Text: rest}
	}
	if rest, ok := cutMarker(trimmed, "*"); ok {
		return Block{Kind: KindListItem, Text: rest}
	}
	if rest, ok := cutOrdinal(trimmed); ok {
		return Block{Kind: KindListItem, Ordered: true, Text: rest}
	}

	return Block{Kind: KindParagraph, Text: line}
}

// HTML returns the tag for a non-list block. List items are emitted by the
// list assembler inside their container.
func (b Block) HTML() string {
	switch b.Kind {
	case KindHeading:
		return fmt.Sprintf("<h%d>%s</h%d>", b.Level, b.Text, b.Level)
	case KindListItem:
		return "<li>" + b.Text + "</li>"
	case KindParagraph:
		return "<p>" + b.Text + "</p>"
	default:
		return "<br>"
	}
}

// cutMarker strips marker from the front of s when it is followed by at
// least one whitespace character and some content.
func cutMarker(s, marker string) (string, bool) {
	rest, ok := strings.CutPrefix(s, marker)
	if !ok {
		return "", false
	}
	content := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if len(content) == len(rest) || content == "" {
		return "", false
	}
	return content, true
}

// cutOrdinal strips a "12. " style marker.
func cutOrdinal(s string) (string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return "", false
	}
	return cutMarker(s[i:], ".")
}

type listState int

const (
	noOpenList listState = iota
	openList
)

// assembler turns classified lines into fragments. It holds at most one open
// list; any non-item line closes it before being emitted.
type assembler struct {
	state listState
	items []string
	out   []string
}

func (a *assembler) feed(b Block) {
	if b.Kind == KindListItem {
		a.state = openList
		a.items = append(a.items, b.HTML())
		return
	}
	a.closeList()
	a.out = append(a.out, b.HTML())
}

func (a *assembler) closeList() {
	if a.state != openList {
		return
	}
	a.out = append(a.out, "<ul>"+strings.Join(a.items, "")+"</ul>")
	a.items = nil
	a.state = noOpenList
}

func (a *assembler) finish() []string {
	a.closeList()
	return a.out
}
