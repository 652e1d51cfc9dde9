package markup

import "strings"

// Parse converts markup source into a Document. It never fails: lines
// that match no construct become paragraph text.
func Parse(src string) Document {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	var doc Document
	for i := 0; i < len(lines); {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			i++

		case isFence(trimmed):
			block, next := parseFence(lines, i+1)
			doc.Blocks = append(doc.Blocks, block)
			i = next

		case isRule(trimmed):
			doc.Blocks = append(doc.Blocks, Rule{})
			i++

		case headingLevel(trimmed) > 0:
			level := headingLevel(trimmed)
			text := strings.TrimSpace(trimmed[level+1:])
			doc.Blocks = append(doc.Blocks, Heading{Level: level, Text: text})
			i++

		case isQuote(trimmed):
			var parts []string
			for i < len(lines) && isQuote(strings.TrimSpace(lines[i])) {
				parts = append(parts, quoteText(strings.TrimSpace(lines[i])))
				i++
			}
			doc.Blocks = append(doc.Blocks, Quote{Text: strings.Join(parts, " ")})

		case isListItem(trimmed):
			first, _ := splitListItem(trimmed)
			var items []string
			for i < len(lines) {
				item, ok := splitListItem(strings.TrimSpace(lines[i]))
				if !ok || item.ordered != first.ordered {
					break
				}
				items = append(items, item.text)
				i++
			}
			doc.Blocks = append(doc.Blocks, List{Ordered: first.ordered, Items: items})

		default:
			var parts []string
			for i < len(lines) {
				t := strings.TrimSpace(lines[i])
				if t == "" || isFence(t) || isRule(t) || headingLevel(t) > 0 || isQuote(t) || isListItem(t) {
					break
				}
				parts = append(parts, t)
				i++
			}
			doc.Blocks = append(doc.Blocks, Paragraph{Text: strings.Join(parts, " ")})
		}
	}
	return doc
}

// parseFence collects verbatim lines from start until a closing fence.
// An unterminated fence closes at end of input.
func parseFence(lines []string, start int) (CodeBlock, int) {
	var block CodeBlock
	i := start
	for ; i < len(lines); i++ {
		if isFence(strings.TrimSpace(lines[i])) {
			return block, i + 1
		}
		block.Lines = append(block.Lines, lines[i])
	}
	return block, i
}

func isFence(trimmed string) bool {
	return strings.HasPrefix(trimmed, "```")
}

// isRule reports whether the line is a horizontal rule: three or more
// dashes and nothing else.
func isRule(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if r != '-' {
			return false
		}
	}
	return true
}

// headingLevel returns 1-3 for "# ", "## ", "### " lines and 0
// otherwise. Deeper heading markers are treated as plain text.
func headingLevel(trimmed string) int {
	for level := 3; level >= 1; level-- {
		if strings.HasPrefix(trimmed, strings.Repeat("#", level)+" ") {
			return level
		}
	}
	return 0
}

func isQuote(trimmed string) bool {
	return strings.HasPrefix(trimmed, ">")
}

func quoteText(trimmed string) string {
	return strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))
}

func isListItem(trimmed string) bool {
	_, ok := splitListItem(trimmed)
	return ok
}

type listItem struct {
	text    string
	ordered bool
}

// splitListItem recognizes "- ", "* ", and "1. " style markers.
func splitListItem(trimmed string) (listItem, bool) {
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return listItem{text: strings.TrimSpace(trimmed[2:])}, true
	}
	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits > 0 && strings.HasPrefix(trimmed[digits:], ". ") {
		return listItem{text: strings.TrimSpace(trimmed[digits+2:]), ordered: true}, true
	}
	return listItem{}, false
}
