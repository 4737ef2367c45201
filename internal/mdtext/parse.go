package mdtext

import "strings"

// BlockKind tags one display block.
type BlockKind int

const (
	BlockHeader BlockKind = iota
	BlockList
	BlockParagraph
)

// ListStyle distinguishes numbered from bullet lists.
type ListStyle int

const (
	ListBullet ListStyle = iota
	ListNumbered
)

// Item is one list entry. Term is set for numbered items; Spans carry the
// item's inline content.
type Item struct {
	Term  string
	Spans []Span
}

// Block is one display unit: a header, a list, or a paragraph.
type Block struct {
	Kind  BlockKind
	Text  string // header text
	Style ListStyle
	Items []Item
	Spans []Span // paragraph content
}

// Parse converts narrative text into display blocks. At most one list is
// open at a time: a blank line or a line of a different block type closes
// it before the next block starts.
func Parse(text string) []Block {
	var blocks []Block
	var open []Item
	var openStyle ListStyle
	listOpen := false

	closeList := func() {
		if !listOpen {
			return
		}
		blocks = append(blocks, Block{Kind: BlockList, Style: openStyle, Items: open})
		open = nil
		listOpen = false
	}

	for _, raw := range strings.Split(text, "\n") {
		line := ClassifyLine(raw)
		switch line.Kind {
		case LineHeader:
			closeList()
			blocks = append(blocks, Block{Kind: BlockHeader, Text: line.Text})
		case LineNumbered:
			if listOpen && openStyle != ListNumbered {
				closeList()
			}
			listOpen = true
			openStyle = ListNumbered
			open = append(open, Item{Term: line.Term, Spans: Spans(line.Text)})
		case LineBullet:
			if listOpen && openStyle != ListBullet {
				closeList()
			}
			listOpen = true
			openStyle = ListBullet
			open = append(open, Item{Spans: Spans(line.Text)})
		case LineParagraph:
			closeList()
			blocks = append(blocks, Block{Kind: BlockParagraph, Spans: Spans(line.Text)})
		case LineBlank:
			closeList()
		}
	}
	closeList()

	return blocks
}
