// Package markup parses and renders the lightweight markup dialect used
// for lesson bodies: #/##/### headings, -/1. lists, ``` code fences,
// > quotes, --- rules, and **bold**, *italic*, `code` inline spans.
//
// Parsing is total. Malformed input degrades to plain paragraphs; there
// is no error path.
package markup

// Document is a parsed markup source ready for rendering.
type Document struct {
	Blocks []Block
}

// Block is one top-level element of a document.
type Block interface {
	isBlock()
}

// Heading is a section title. Level runs 1 (largest) to 3.
type Heading struct {
	Level int
	Text  string
}

// List is a run of consecutive bullet or numbered items.
type List struct {
	Ordered bool
	Items   []string
}

// CodeBlock is a fenced run of verbatim lines.
type CodeBlock struct {
	Lines []string
}

// Quote is a callout introduced with ">".
type Quote struct {
	Text string
}

// Rule is a horizontal divider.
type Rule struct{}

// Paragraph is running text. Consecutive source lines are soft-wrapped
// into one paragraph.
type Paragraph struct {
	Text string
}

func (Heading) isBlock()   {}
func (List) isBlock()      {}
func (CodeBlock) isBlock() {}
func (Quote) isBlock()     {}
func (Rule) isBlock()      {}
func (Paragraph) isBlock() {}
