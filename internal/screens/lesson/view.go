package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/devika/tutora/internal/lessons"
	"github.com/devika/tutora/internal/markup"
	"github.com/devika/tutora/internal/ui/components"
	"github.com/devika/tutora/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	switch s.mode {
	case modeChat:
		return s.renderChat(width, height)
	case modeDiagram:
		return s.renderDiagram(width, height)
	}
	return s.renderLesson(width, height)
}

// ensureRendered lays the lesson body out at the given width, reusing
// the cached result while the width is stable.
func (s *LessonScreen) ensureRendered(width int) {
	if s.renderedWidth == width && s.lines != nil {
		return
	}
	rendered := markup.Render(markup.Parse(s.lesson.Body), width)
	s.lines = strings.Split(rendered, "\n")
	s.renderedWidth = width
}

func (s *LessonScreen) renderLesson(width, height int) string {
	cw := components.ContentWidth(width)
	s.ensureRendered(cw)

	visible := height - 4
	if visible < 1 {
		visible = 1
	}
	s.pageSize = visible

	maxScroll := len(s.lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	if s.scroll < 0 {
		s.scroll = 0
	}

	var b strings.Builder
	b.WriteString(s.renderMeta(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	end := s.scroll + visible
	if end > len(s.lines) {
		end = len(s.lines)
	}
	body := strings.Join(s.lines[s.scroll:end], "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
	b.WriteString("\n")

	b.WriteString(s.renderStatus(width, maxScroll))
	return b.String()
}

func (s *LessonScreen) renderMeta(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Difficulty: %s", lessons.Describe(s.lesson.Difficulty)))
	if s.lesson.Fallback {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  (offline content)")
	}

	var rightParts []string
	if s.completed() {
		rightParts = append(rightParts, lipgloss.NewStyle().Foreground(theme.Success).Render("✓ completed"))
	}
	if s.progress != nil && s.progress.Score > 0 {
		rightParts = append(rightParts, lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("★ best %d%%", s.progress.Score)))
	}
	right := strings.Join(rightParts, "  ")

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 && right != "" {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func (s *LessonScreen) renderStatus(width, maxScroll int) string {
	if s.status != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.status)
	}

	pct := 100
	if maxScroll > 0 {
		pct = s.scroll * 100 / maxScroll
	}
	indicator := fmt.Sprintf("%d%%", pct)
	pad := width - lipgloss.Width(indicator) - 4
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + lipgloss.NewStyle().Foreground(theme.TextDim).Render(indicator)
}

func (s *LessonScreen) renderChat(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	heading := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Ask the tutor")
	heading += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  (about: " + s.lesson.Topic + ")")
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	transcript := s.renderTranscript(cw)
	visible := height - 7
	if visible < 1 {
		visible = 1
	}
	if len(transcript) > visible {
		transcript = transcript[len(transcript)-visible:]
	}
	block := strings.Join(transcript, "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(block)))
	b.WriteString("\n\n")

	input := s.chatInput.View()
	if s.chatBusy {
		input = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Waiting for the tutor...")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, input))
	return b.String()
}

// renderTranscript flattens the exchanges into wrapped display lines,
// oldest first.
func (s *LessonScreen) renderTranscript(width int) []string {
	if len(s.transcript) == 0 {
		return []string{lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("No questions yet. Type one below, or paste an image path for study notes.")}
	}

	questionStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	answerStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
	pendingStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	var lines []string
	for _, entry := range s.transcript {
		lines = append(lines, questionStyle.Render("You: "+entry.question))
		if entry.answer == "" {
			lines = append(lines, pendingStyle.Render("thinking..."))
		} else {
			lines = append(lines, strings.Split(answerStyle.Render(entry.answer), "\n")...)
		}
		lines = append(lines, "")
	}
	return lines
}

func (s *LessonScreen) renderDiagram(width, height int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("Diagram: " + s.lesson.Topic)

	var body string
	if s.diagramBusy {
		body = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Sketching...")
	} else {
		body = lipgloss.NewStyle().Foreground(theme.Text).Render(s.diagram)
	}

	hint := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("r to redraw, any other key to go back")

	content := title + "\n\n" + body + "\n\n" + hint
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
