package markup

import (
	"reflect"
	"testing"
)

func wantBlock[T Block](t *testing.T, doc Document, i int) T {
	t.Helper()
	if i >= len(doc.Blocks) {
		t.Fatalf("document has %d blocks, want at least %d", len(doc.Blocks), i+1)
	}
	b, ok := doc.Blocks[i].(T)
	if !ok {
		t.Fatalf("block %d = %T, want %T", i, doc.Blocks[i], b)
	}
	return b
}

func TestParse_Headings(t *testing.T) {
	doc := Parse("# One\n## Two\n### Three")
	if len(doc.Blocks) != 3 {
		t.Fatalf("len(Blocks) = %d, want 3", len(doc.Blocks))
	}
	for i, want := range []Heading{
		{Level: 1, Text: "One"},
		{Level: 2, Text: "Two"},
		{Level: 3, Text: "Three"},
	} {
		if got := wantBlock[Heading](t, doc, i); got != want {
			t.Errorf("block %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestParse_DeepHeadingIsParagraph(t *testing.T) {
	doc := Parse("#### Four")
	p := wantBlock[Paragraph](t, doc, 0)
	if p.Text != "#### Four" {
		t.Errorf("Text = %q, want %q", p.Text, "#### Four")
	}
}

func TestParse_HeadingRequiresSpace(t *testing.T) {
	doc := Parse("#hashtag")
	if p := wantBlock[Paragraph](t, doc, 0); p.Text != "#hashtag" {
		t.Errorf("Text = %q, want %q", p.Text, "#hashtag")
	}
}

func TestParse_ParagraphJoinsLines(t *testing.T) {
	doc := Parse("line one\nline two\n\nnext paragraph")
	if len(doc.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(doc.Blocks))
	}
	if p := wantBlock[Paragraph](t, doc, 0); p.Text != "line one line two" {
		t.Errorf("first paragraph = %q, want %q", p.Text, "line one line two")
	}
	if p := wantBlock[Paragraph](t, doc, 1); p.Text != "next paragraph" {
		t.Errorf("second paragraph = %q, want %q", p.Text, "next paragraph")
	}
}

func TestParse_UnorderedList(t *testing.T) {
	doc := Parse("- alpha\n- beta\n* gamma")
	l := wantBlock[List](t, doc, 0)
	if l.Ordered {
		t.Error("Ordered = true, want false")
	}
	if want := []string{"alpha", "beta", "gamma"}; !reflect.DeepEqual(l.Items, want) {
		t.Errorf("Items = %v, want %v", l.Items, want)
	}
}

func TestParse_OrderedList(t *testing.T) {
	doc := Parse("1. first\n2. second\n10. tenth")
	l := wantBlock[List](t, doc, 0)
	if !l.Ordered {
		t.Error("Ordered = false, want true")
	}
	if want := []string{"first", "second", "tenth"}; !reflect.DeepEqual(l.Items, want) {
		t.Errorf("Items = %v, want %v", l.Items, want)
	}
}

func TestParse_ListKindChangeStartsNewList(t *testing.T) {
	doc := Parse("- bullet\n1. numbered")
	if len(doc.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(doc.Blocks))
	}
	if l := wantBlock[List](t, doc, 0); l.Ordered {
		t.Error("first list Ordered = true, want false")
	}
	if l := wantBlock[List](t, doc, 1); !l.Ordered {
		t.Error("second list Ordered = false, want true")
	}
}

func TestParse_DashWithoutSpaceIsText(t *testing.T) {
	doc := Parse("-dash")
	if p := wantBlock[Paragraph](t, doc, 0); p.Text != "-dash" {
		t.Errorf("Text = %q, want %q", p.Text, "-dash")
	}
}

func TestParse_CodeFence(t *testing.T) {
	doc := Parse("```go\nx := 1\n  indented\n```\nafter")
	c := wantBlock[CodeBlock](t, doc, 0)
	if want := []string{"x := 1", "  indented"}; !reflect.DeepEqual(c.Lines, want) {
		t.Errorf("Lines = %q, want %q", c.Lines, want)
	}
	if p := wantBlock[Paragraph](t, doc, 1); p.Text != "after" {
		t.Errorf("trailing paragraph = %q, want %q", p.Text, "after")
	}
}

func TestParse_UnterminatedFenceClosesAtEOF(t *testing.T) {
	doc := Parse("```\nonly line")
	c := wantBlock[CodeBlock](t, doc, 0)
	if want := []string{"only line"}; !reflect.DeepEqual(c.Lines, want) {
		t.Errorf("Lines = %q, want %q", c.Lines, want)
	}
}

func TestParse_FencePreservesBlankLines(t *testing.T) {
	doc := Parse("```\na\n\nb\n```")
	c := wantBlock[CodeBlock](t, doc, 0)
	if want := []string{"a", "", "b"}; !reflect.DeepEqual(c.Lines, want) {
		t.Errorf("Lines = %q, want %q", c.Lines, want)
	}
}

func TestParse_QuoteJoinsLines(t *testing.T) {
	doc := Parse("> wise\n> words")
	q := wantBlock[Quote](t, doc, 0)
	if q.Text != "wise words" {
		t.Errorf("Text = %q, want %q", q.Text, "wise words")
	}
}

func TestParse_Rule(t *testing.T) {
	doc := Parse("---\n-----")
	if len(doc.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(doc.Blocks))
	}
	wantBlock[Rule](t, doc, 0)
	wantBlock[Rule](t, doc, 1)
}

func TestParse_ShortDashRunIsText(t *testing.T) {
	doc := Parse("--")
	if p := wantBlock[Paragraph](t, doc, 0); p.Text != "--" {
		t.Errorf("Text = %q, want %q", p.Text, "--")
	}
}

func TestParse_Empty(t *testing.T) {
	doc := Parse("")
	if len(doc.Blocks) != 0 {
		t.Errorf("len(Blocks) = %d, want 0", len(doc.Blocks))
	}
}

func TestParse_CRLF(t *testing.T) {
	doc := Parse("# Title\r\nbody text\r\n")
	if h := wantBlock[Heading](t, doc, 0); h.Text != "Title" {
		t.Errorf("heading = %q, want %q", h.Text, "Title")
	}
	if p := wantBlock[Paragraph](t, doc, 1); p.Text != "body text" {
		t.Errorf("paragraph = %q, want %q", p.Text, "body text")
	}
}

func TestParse_MixedDocument(t *testing.T) {
	src := `# Photosynthesis

Plants convert light into energy.

## Steps

1. Absorb light
2. Split water

> Light is the limiting factor.

---
`
	doc := Parse(src)
	want := []Block{
		Heading{Level: 1, Text: "Photosynthesis"},
		Paragraph{Text: "Plants convert light into energy."},
		Heading{Level: 2, Text: "Steps"},
		List{Ordered: true, Items: []string{"Absorb light", "Split water"}},
		Quote{Text: "Light is the limiting factor."},
		Rule{},
	}
	if !reflect.DeepEqual(doc.Blocks, want) {
		t.Errorf("Blocks = %+v, want %+v", doc.Blocks, want)
	}
}
