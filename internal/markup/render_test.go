package markup

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestRender_Heading(t *testing.T) {
	out := ansi.Strip(Render(Parse("# Title"), 40))
	if !strings.Contains(out, "Title") {
		t.Errorf("output %q does not contain heading text", out)
	}
	if strings.Contains(out, "#") {
		t.Errorf("output %q still contains heading marker", out)
	}
}

func TestRender_ParagraphWrapsToWidth(t *testing.T) {
	src := "the quick brown fox jumps over the lazy dog again and again"
	out := ansi.Strip(Render(Parse(src), 24))
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("got %d lines, want wrapped output", len(lines))
	}
	for i, line := range lines {
		if lipgloss.Width(line) > 24 {
			t.Errorf("line %d width = %d, want <= 24", i, lipgloss.Width(line))
		}
	}
}

func TestRender_InlineMarkersConsumed(t *testing.T) {
	out := ansi.Strip(Render(Parse("make it **bold** and `mono`"), 60))
	for _, want := range []string{"bold", "mono"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
	for _, marker := range []string{"**", "`"} {
		if strings.Contains(out, marker) {
			t.Errorf("output %q still contains marker %q", out, marker)
		}
	}
}

func TestRender_UnorderedList(t *testing.T) {
	out := ansi.Strip(Render(Parse("- alpha\n- beta"), 40))
	for _, want := range []string{"• alpha", "• beta"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestRender_OrderedListRenumbers(t *testing.T) {
	out := ansi.Strip(Render(Parse("5. five\n7. seven"), 40))
	for _, want := range []string{"1. five", "2. seven"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestRender_ListHangingIndent(t *testing.T) {
	out := ansi.Strip(Render(Parse("- a very long list item that has to wrap"), 20))
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("got %d lines, want wrapped item", len(lines))
	}
	if !strings.HasPrefix(lines[0], "• ") {
		t.Errorf("first line %q does not start with bullet", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  ") || strings.HasPrefix(lines[1], "• ") {
		t.Errorf("continuation line %q is not indented under the item", lines[1])
	}
}

func TestRender_CodeBlockVerbatim(t *testing.T) {
	out := ansi.Strip(Render(Parse("```\n+--+\n|ok|\n+--+\n```"), 40))
	if want := "  +--+\n  |ok|\n  +--+"; !strings.Contains(out, want) {
		t.Errorf("output %q does not contain indented block %q", out, want)
	}
}

func TestRender_CodeBlockNotWrapped(t *testing.T) {
	long := strings.Repeat("x", 30)
	out := ansi.Strip(Render(Parse("```\n"+long+"\n```"), 10))
	if !strings.Contains(out, long) {
		t.Errorf("output %q broke up the code line", out)
	}
}

func TestRender_Quote(t *testing.T) {
	out := ansi.Strip(Render(Parse("> stay curious"), 40))
	if !strings.Contains(out, "│ stay curious") {
		t.Errorf("output %q does not contain guttered quote", out)
	}
}

func TestRender_Rule(t *testing.T) {
	out := ansi.Strip(Render(Parse("---"), 12))
	if want := strings.Repeat("─", 12); out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRender_ZeroWidthUsesDefault(t *testing.T) {
	out := ansi.Strip(Render(Parse("---"), 0))
	if lipgloss.Width(out) != 80 {
		t.Errorf("rule width = %d, want 80", lipgloss.Width(out))
	}
}

func TestRender_BlocksSeparatedByBlankLine(t *testing.T) {
	out := ansi.Strip(Render(Parse("# A\n\nsome text"), 40))
	if !strings.HasPrefix(out, "A\n\n") {
		t.Errorf("output %q does not separate blocks with a blank line", out)
	}
}

func TestRender_EmptyDocument(t *testing.T) {
	if out := Render(Parse(""), 40); out != "" {
		t.Errorf("output = %q, want empty", out)
	}
}
