package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/devika/tutora/internal/router"
	"github.com/devika/tutora/internal/screen"
	"github.com/devika/tutora/internal/store"
	"github.com/devika/tutora/internal/ui/layout"
	"github.com/devika/tutora/internal/ui/theme"
)

// historyLimit caps how many attempts the screen loads.
const historyLimit = 50

type historyLoadedMsg struct {
	Results []store.ResultEntry
	Err     error
}

// HistoryScreen displays past quiz attempts, newest first. Enter expands
// an attempt into its per-question breakdown.
type HistoryScreen struct {
	resultRepo store.QuizResultRepo
	results    []store.ResultEntry
	selected   int
	expanded   map[int]bool
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(resultRepo store.QuizResultRepo) *HistoryScreen {
	return &HistoryScreen{
		resultRepo: resultRepo,
		expanded:   make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		if s.resultRepo == nil {
			return historyLoadedMsg{}
		}
		results, err := s.resultRepo.ListRecent(context.Background(), historyLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Results: results}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Finish a lesson to unlock its quiz.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.results {
		dateStr := r.CreatedAt.Format("Jan 02, 2006")
		mins := r.TimeTaken / 60
		secs := r.TimeTaken % 60
		durationStr := fmt.Sprintf("%d:%02d", mins, secs)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d/%d  %d%%  %s",
			prefix, dateStr, r.Topic, r.Score, r.TotalQuestions, r.Percentage, durationStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		// Show expanded per-question breakdown.
		if s.expanded[i] {
			if len(r.Answers) == 0 {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
						Render("    No answer breakdown for this attempt")))
				b.WriteString("\n")
			} else {
				for qi, a := range r.Answers {
					var qline string
					var style lipgloss.Style
					if a.IsCorrect {
						qline = fmt.Sprintf("    Q%d ✓ %c", qi+1, 'A'+a.Selected)
						style = lipgloss.NewStyle().Foreground(theme.Success)
					} else {
						qline = fmt.Sprintf("    Q%d ✗ %c (answer: %c)", qi+1, 'A'+a.Selected, 'A'+a.Correct)
						style = lipgloss.NewStyle().Foreground(theme.Error)
					}
					b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
						style.Render(qline)))
					b.WriteString("\n")
				}
			}
		}
	}

	return b.String()
}
