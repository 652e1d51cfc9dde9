package markup

import "strings"

// SpanKind classifies a run of inline text.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanItalic
	SpanCode
)

// Span is a run of text with one inline style applied.
type Span struct {
	Kind SpanKind
	Text string
}

// ParseSpans splits text on **bold**, *italic*, and `code` markers,
// scanning left to right. A marker with no matching close, or one
// enclosing nothing, stays literal text.
func ParseSpans(s string) []Span {
	var spans []Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Kind: SpanText, Text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(s) {
		marker, kind := matchMarker(s[i:])
		if marker == "" {
			plain.WriteByte(s[i])
			i++
			continue
		}
		rest := s[i+len(marker):]
		end := strings.Index(rest, marker)
		if end <= 0 {
			plain.WriteString(marker)
			i += len(marker)
			continue
		}
		flush()
		spans = append(spans, Span{Kind: kind, Text: rest[:end]})
		i += len(marker)*2 + end
	}
	flush()
	return spans
}

// matchMarker checks the longest marker first so ** is never read as
// two italic markers.
func matchMarker(s string) (string, SpanKind) {
	switch {
	case strings.HasPrefix(s, "**"):
		return "**", SpanBold
	case strings.HasPrefix(s, "*"):
		return "*", SpanItalic
	case strings.HasPrefix(s, "`"):
		return "`", SpanCode
	}
	return "", SpanText
}
