// Package mdtext turns the constrained markdown-like narrative the backend
// produces into display blocks. It is a best-effort line classifier, not a
// markdown engine: only headers, numbered terms, bullets, and inline bold
// are recognized; everything else renders as literal text.
package mdtext

import (
	"regexp"
	"strings"
)

// LineKind tags one classified input line.
type LineKind int

const (
	LineBlank LineKind = iota
	LineHeader
	LineNumbered
	LineBullet
	LineParagraph
)

// Line is the result of classifying a single input line.
type Line struct {
	Kind LineKind
	// Text is the header text, bullet content, or paragraph content. For
	// numbered lines it holds the detail after the bold term.
	Text string
	// Term is the bold leading term of a numbered line.
	Term string
}

var (
	hashHeaderRe = regexp.MustCompile(`^#{1,3}\s+(.+)`)
	boldHeaderRe = regexp.MustCompile(`^\*\*(.+)\*\*:?\s*$`)
	numberedRe   = regexp.MustCompile(`^\d+\.\s+\*\*(.+?)\*\*:?\s*(.*)$`)
	bulletRe     = regexp.MustCompile(`^[-•]\s+(.+)$`)
)

// ClassifyLine tags a single line. Classification is independent of any
// surrounding lines; grouping into blocks happens in Parse.
func ClassifyLine(line string) Line {
	if m := hashHeaderRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: LineHeader, Text: strings.TrimSpace(m[1])}
	}
	if m := boldHeaderRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: LineHeader, Text: strings.TrimSpace(m[1])}
	}
	if m := numberedRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: LineNumbered, Term: m[1], Text: m[2]}
	}
	if m := bulletRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: LineBullet, Text: m[1]}
	}
	if strings.TrimSpace(line) == "" {
		return Line{Kind: LineBlank}
	}
	return Line{Kind: LineParagraph, Text: line}
}

// Span is a run of inline text, optionally bold.
type Span struct {
	Text string
	Bold bool
}

var inlineBoldRe = regexp.MustCompile(`(\*\*[^*]+\*\*)`)

// Spans splits text into plain and bold runs. Unmatched markers stay
// literal.
func Spans(text string) []Span {
	parts := inlineBoldRe.Split(text, -1)
	matches := inlineBoldRe.FindAllString(text, -1)

	spans := make([]Span, 0, len(parts)+len(matches))
	for i, part := range parts {
		if part != "" {
			spans = append(spans, Span{Text: part})
		}
		if i < len(matches) {
			spans = append(spans, Span{Text: strings.TrimSuffix(strings.TrimPrefix(matches[i], "**"), "**"), Bold: true})
		}
	}
	return spans
}
