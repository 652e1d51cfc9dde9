package markup

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/devika/tutora/internal/ui/theme"
)

const defaultWidth = 80

var (
	h1Style = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	h2Style = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	h3Style = lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)

	bodyStyle     = lipgloss.NewStyle().Foreground(theme.Text)
	codeSpanStyle = lipgloss.NewStyle().Foreground(theme.Accent)

	codeBlockStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
	quoteStyle     = lipgloss.NewStyle().Italic(true).Foreground(theme.TextDim)
	quoteBarStyle  = lipgloss.NewStyle().Foreground(theme.Secondary)
	ruleStyle      = lipgloss.NewStyle().Foreground(theme.Border)
)

// Render lays a parsed document out for the terminal at the given
// width. A width of zero or less falls back to 80 columns.
func Render(doc Document, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	rendered := make([]string, 0, len(doc.Blocks))
	for _, block := range doc.Blocks {
		switch b := block.(type) {
		case Heading:
			rendered = append(rendered, headingStyle(b.Level).Render(b.Text))
		case Paragraph:
			body := renderSpans(b.Text, bodyStyle)
			rendered = append(rendered, lipgloss.NewStyle().Width(width).Render(body))
		case List:
			rendered = append(rendered, renderList(b, width))
		case CodeBlock:
			rendered = append(rendered, renderCode(b))
		case Quote:
			rendered = append(rendered, renderQuote(b, width))
		case Rule:
			rendered = append(rendered, ruleStyle.Render(strings.Repeat("─", width)))
		}
	}
	return strings.Join(rendered, "\n\n")
}

func headingStyle(level int) lipgloss.Style {
	switch level {
	case 1:
		return h1Style
	case 2:
		return h2Style
	default:
		return h3Style
	}
}

// renderSpans styles the inline spans of a single block of text. Bold
// and italic build on the surrounding block style so quotes keep their
// dimming inside emphasized runs.
func renderSpans(text string, base lipgloss.Style) string {
	var b strings.Builder
	for _, span := range ParseSpans(text) {
		switch span.Kind {
		case SpanBold:
			b.WriteString(base.Bold(true).Render(span.Text))
		case SpanItalic:
			b.WriteString(base.Italic(true).Render(span.Text))
		case SpanCode:
			b.WriteString(codeSpanStyle.Render(span.Text))
		default:
			b.WriteString(base.Render(span.Text))
		}
	}
	return b.String()
}

func renderList(l List, width int) string {
	var lines []string
	for i, item := range l.Items {
		marker := "• "
		if l.Ordered {
			marker = fmt.Sprintf("%d. ", i+1)
		}
		lines = append(lines, indentWrapped(marker, renderSpans(item, bodyStyle), width))
	}
	return strings.Join(lines, "\n")
}

// indentWrapped wraps body beside marker with continuation lines
// aligned under the start of the body text.
func indentWrapped(marker, body string, width int) string {
	markerWidth := lipgloss.Width(marker)
	inner := width - markerWidth
	if inner < 10 {
		inner = 10
	}
	pad := strings.Repeat(" ", markerWidth)
	lines := strings.Split(lipgloss.NewStyle().Width(inner).Render(body), "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = marker + lines[i]
		} else {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// renderCode indents fenced lines verbatim. No wrapping: fenced blocks
// carry ASCII diagrams whose alignment must survive.
func renderCode(c CodeBlock) string {
	lines := make([]string, len(c.Lines))
	for i, line := range c.Lines {
		lines[i] = "  " + codeBlockStyle.Render(line)
	}
	return strings.Join(lines, "\n")
}

func renderQuote(q Quote, width int) string {
	inner := width - 2
	if inner < 10 {
		inner = 10
	}
	bar := quoteBarStyle.Render("│")
	body := lipgloss.NewStyle().Width(inner).Render(renderSpans(q.Text, quoteStyle))
	lines := strings.Split(body, "\n")
	for i := range lines {
		lines[i] = bar + " " + lines[i]
	}
	return strings.Join(lines, "\n")
}
