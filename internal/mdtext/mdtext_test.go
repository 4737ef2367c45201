package mdtext

import (
	"testing"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		in   string
		kind LineKind
		text string
		term string
	}{
		{"# Big Header", LineHeader, "Big Header", ""},
		{"### Small Header", LineHeader, "Small Header", ""},
		{"**Valuation**:", LineHeader, "Valuation", ""},
		{"**Valuation**", LineHeader, "Valuation", ""},
		{"1. **Revenue**: up 12%", LineNumbered, "up 12%", "Revenue"},
		{"2. **Margins**", LineNumbered, "", "Margins"},
		{"- bullet point", LineBullet, "bullet point", ""},
		{"• unicode bullet", LineBullet, "unicode bullet", ""},
		{"plain sentence", LineParagraph, "plain sentence", ""},
		{"", LineBlank, "", ""},
		{"   ", LineBlank, "", ""},
		{"#### too deep", LineParagraph, "#### too deep", ""},
	}

	for _, tt := range tests {
		got := ClassifyLine(tt.in)
		if got.Kind != tt.kind {
			t.Errorf("ClassifyLine(%q): kind %v, want %v", tt.in, got.Kind, tt.kind)
			continue
		}
		if got.Text != tt.text {
			t.Errorf("ClassifyLine(%q): text %q, want %q", tt.in, got.Text, tt.text)
		}
		if got.Term != tt.term {
			t.Errorf("ClassifyLine(%q): term %q, want %q", tt.in, got.Term, tt.term)
		}
	}
}

func TestParseHeaderThenList(t *testing.T) {
	blocks := Parse("**Header**\n- a\n- b\n")

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Kind != BlockHeader || blocks[0].Text != "Header" {
		t.Fatalf("unexpected first block: %+v", blocks[0])
	}
	if blocks[1].Kind != BlockList || len(blocks[1].Items) != 2 {
		t.Fatalf("unexpected second block: %+v", blocks[1])
	}
	if blocks[1].Items[0].Spans[0].Text != "a" || blocks[1].Items[1].Spans[0].Text != "b" {
		t.Fatalf("unexpected list items: %+v", blocks[1].Items)
	}
}

func TestParseNumberedTermAndDetail(t *testing.T) {
	blocks := Parse("1. **Term**: detail")

	if len(blocks) != 1 || blocks[0].Kind != BlockList {
		t.Fatalf("expected one list block, got %+v", blocks)
	}
	if blocks[0].Style != ListNumbered {
		t.Fatalf("expected numbered style")
	}
	item := blocks[0].Items[0]
	if item.Term != "Term" {
		t.Fatalf("expected term %q, got %q", "Term", item.Term)
	}
	if len(item.Spans) != 1 || item.Spans[0].Text != "detail" || item.Spans[0].Bold {
		t.Fatalf("unexpected detail spans: %+v", item.Spans)
	}
}

func TestParseBlankLineClosesList(t *testing.T) {
	blocks := Parse("- a\n\n- b")

	if len(blocks) != 2 {
		t.Fatalf("expected 2 list blocks, got %d", len(blocks))
	}
	for i, b := range blocks {
		if b.Kind != BlockList || len(b.Items) != 1 {
			t.Fatalf("block %d should be a single-item list: %+v", i, b)
		}
	}
}

func TestParseListStyleSwitchClosesList(t *testing.T) {
	blocks := Parse("- bullet\n1. **Term**: detail")

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Style != ListBullet || blocks[1].Style != ListNumbered {
		t.Fatalf("expected bullet then numbered, got %+v", blocks)
	}
}

func TestParseParagraphClosesList(t *testing.T) {
	blocks := Parse("- a\nplain text\n- b")

	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Kind != BlockList || blocks[1].Kind != BlockParagraph || blocks[2].Kind != BlockList {
		t.Fatalf("unexpected block sequence: %+v", blocks)
	}
}

func TestSpansInlineBold(t *testing.T) {
	spans := Spans("growth of **12%** yoy")

	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %+v", spans)
	}
	if spans[0].Text != "growth of " || spans[0].Bold {
		t.Fatalf("unexpected first span: %+v", spans[0])
	}
	if spans[1].Text != "12%" || !spans[1].Bold {
		t.Fatalf("unexpected bold span: %+v", spans[1])
	}
	if spans[2].Text != " yoy" || spans[2].Bold {
		t.Fatalf("unexpected last span: %+v", spans[2])
	}
}

func TestSpansUnmatchedMarkersStayLiteral(t *testing.T) {
	spans := Spans("a ** b")

	if len(spans) != 1 || spans[0].Text != "a ** b" || spans[0].Bold {
		t.Fatalf("unmatched markers should stay literal: %+v", spans)
	}
}
