package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/devika/tutora/internal/quiz"
	"github.com/devika/tutora/internal/ui/components"
	"github.com/devika/tutora/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.confirmQuit:
		return renderQuitConfirm(width)
	case s.generating:
		return renderGenerating(width, s.req.Topic)
	case s.controller.State() == qz.StateFinished:
		return renderScoring(width)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	q := s.controller.CurrentQuestion()
	if q == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")

	answered := len(s.controller.Answers())
	total := s.controller.TotalQuestions()
	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", s.controller.CurrentIndex()+1, total),
		float64(answered)/float64(total),
		false,
		cw,
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")

	if s.usedCanned {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render("practice questions (generator unavailable)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(q.Prompt))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderOptions(q)))
	b.WriteString("\n")
	b.WriteString(s.renderFeedback(width))
	return b.String()
}

func (s *QuizScreen) renderOptions(q *qz.Question) string {
	list := components.OptionList{
		Options:  q.Options,
		Selected: -1,
	}
	if i, ok := s.controller.SelectedOption(); ok {
		list.Selected = i
	}

	if s.controller.State() == qz.StateAnswerRevealed {
		answers := s.controller.Answers()
		rec := answers[len(answers)-1]
		list.Revealed = true
		list.Correct = rec.Correct
		list.Chosen = rec.Selected
	}
	return list.View()
}

func (s *QuizScreen) renderFeedback(width int) string {
	if s.status != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.status)
	}

	if s.controller.State() != qz.StateAnswerRevealed {
		return ""
	}
	answers := s.controller.Answers()
	rec := answers[len(answers)-1]

	var line string
	if rec.IsCorrect {
		line = lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("✓ Correct!")
	} else {
		line = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render(fmt.Sprintf("✗ Not quite. The answer was %c.", 'A'+rec.Correct))
	}
	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Press any key to continue.")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, hint)
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Quit this quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("An unfinished attempt is not recorded."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, quit"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func renderGenerating(width int, topic string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n  Writing questions about %s...", topic))
}

func renderScoring(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Scoring...")
}
