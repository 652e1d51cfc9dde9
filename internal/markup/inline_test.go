package markup

import (
	"reflect"
	"testing"
)

func TestParseSpans(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{
			name: "plain",
			in:   "hello world",
			want: []Span{{Kind: SpanText, Text: "hello world"}},
		},
		{
			name: "bold",
			in:   "a **b** c",
			want: []Span{
				{Kind: SpanText, Text: "a "},
				{Kind: SpanBold, Text: "b"},
				{Kind: SpanText, Text: " c"},
			},
		},
		{
			name: "italic",
			in:   "*emphasis*",
			want: []Span{{Kind: SpanItalic, Text: "emphasis"}},
		},
		{
			name: "code",
			in:   "run `go env` now",
			want: []Span{
				{Kind: SpanText, Text: "run "},
				{Kind: SpanCode, Text: "go env"},
				{Kind: SpanText, Text: " now"},
			},
		},
		{
			name: "double star is bold not two italics",
			in:   "**b**",
			want: []Span{{Kind: SpanBold, Text: "b"}},
		},
		{
			name: "unclosed marker stays literal",
			in:   "**dangling",
			want: []Span{{Kind: SpanText, Text: "**dangling"}},
		},
		{
			name: "lone star stays literal",
			in:   "a * b",
			want: []Span{{Kind: SpanText, Text: "a * b"}},
		},
		{
			name: "empty marker pair stays literal",
			in:   "****",
			want: []Span{{Kind: SpanText, Text: "****"}},
		},
		{
			name: "stars inside code stay literal",
			in:   "`a*b`",
			want: []Span{{Kind: SpanCode, Text: "a*b"}},
		},
		{
			name: "mixed styles",
			in:   "**bold** and *italic* and `code`",
			want: []Span{
				{Kind: SpanBold, Text: "bold"},
				{Kind: SpanText, Text: " and "},
				{Kind: SpanItalic, Text: "italic"},
				{Kind: SpanText, Text: " and "},
				{Kind: SpanCode, Text: "code"},
			},
		},
		{
			name: "multibyte text survives",
			in:   "héllo **wörld**",
			want: []Span{
				{Kind: SpanText, Text: "héllo "},
				{Kind: SpanBold, Text: "wörld"},
			},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSpans(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSpans(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
