package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/devika/tutora/internal/quiz"
	"github.com/devika/tutora/internal/router"
	"github.com/devika/tutora/internal/screen"
	"github.com/devika/tutora/internal/ui/layout"
	"github.com/devika/tutora/internal/ui/theme"
)

// SummaryScreen displays a finished quiz's report with a per-question
// review. It replaces the quiz on the stack, so popping returns to the
// lesson underneath.
type SummaryScreen struct {
	report    *quiz.Report
	questions []quiz.Question
	retake    func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. retake builds a fresh quiz screen for
// the same lesson; nil disables the retake key.
func New(report *quiz.Report, questions []quiz.Question, retake func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{report: report, questions: questions, retake: retake}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Back to lesson"},
	}
	if s.retake != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retake"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "r":
		if s.retake == nil {
			return s, nil
		}
		next := s.retake()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.report
	if r == nil {
		return ""
	}

	var b strings.Builder

	// Title.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(verdictColor(r.Percentage)).
		Bold(true).
		Render(verdict(r.Percentage)))
	b.WriteString("\n\n")

	// Duration.
	mins := r.DurationSeconds / 60
	secs := r.DurationSeconds % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	// Stats line.
	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Score: %d%%",
		r.TotalQuestions, r.Score, r.Percentage)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	// Review divider.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	// Per-question results.
	for i, rec := range r.Answers {
		prompt := ""
		if i < len(s.questions) {
			prompt = truncate(s.questions[i].Prompt, min(width-20, 52))
		}

		var line string
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if rec.IsCorrect {
			line = fmt.Sprintf("  ✓ %s", prompt)
			style = style.Foreground(theme.Success)
		} else {
			line = fmt.Sprintf("  ✗ %s  (answer: %c)", prompt, 'A'+rec.Correct)
			style = style.Foreground(theme.Error)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func verdict(pct int) string {
	switch {
	case pct >= 90:
		return "Excellent work!"
	case pct >= 70:
		return "Good job!"
	case pct >= 50:
		return "Getting there."
	default:
		return "Keep practicing, it will click."
	}
}

func verdictColor(pct int) color.Color {
	switch {
	case pct >= 70:
		return theme.Success
	case pct >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}

// truncate shortens s to at most n runes, marking the cut with an
// ellipsis.
func truncate(s string, n int) string {
	if n < 4 {
		n = 4
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
