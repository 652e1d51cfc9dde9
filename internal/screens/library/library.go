package library

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/devika/tutora/internal/lessons"
	"github.com/devika/tutora/internal/quiz"
	"github.com/devika/tutora/internal/quizgen"
	"github.com/devika/tutora/internal/router"
	"github.com/devika/tutora/internal/screen"
	lessonscreen "github.com/devika/tutora/internal/screens/lesson"
	"github.com/devika/tutora/internal/store"
	"github.com/devika/tutora/internal/tutor"
	"github.com/devika/tutora/internal/ui/components"
	"github.com/devika/tutora/internal/ui/layout"
	"github.com/devika/tutora/internal/ui/theme"
)

type overviewLoadedMsg struct {
	entries []store.LessonStatus
	err     error
}

// LibraryScreen lists every stored lesson with its completion state and
// best quiz score, newest first. Enter reopens a lesson.
type LibraryScreen struct {
	progressRepo store.ProgressRepo
	generator    quizgen.Generator
	tutorService *tutor.Service
	recorder     quiz.Recorder

	entries  []store.LessonStatus
	loaded   bool
	loadErr  error
	selected int
	scroll   int
	pageSize int
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)

// New creates the library listing.
func New(progressRepo store.ProgressRepo, generator quizgen.Generator, tutorService *tutor.Service, recorder quiz.Recorder) *LibraryScreen {
	return &LibraryScreen{
		progressRepo: progressRepo,
		generator:    generator,
		tutorService: tutorService,
		recorder:     recorder,
	}
}

// Init reloads the listing. It runs again each time a lesson pops back,
// so background generations and fresh quiz scores show up.
func (s *LibraryScreen) Init() tea.Cmd {
	return s.loadOverview
}

func (s *LibraryScreen) Title() string {
	return "Library"
}

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LibraryScreen) loadOverview() tea.Msg {
	if s.progressRepo == nil {
		return overviewLoadedMsg{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries, err := s.progressRepo.Overview(ctx)
	if err != nil {
		slog.Warn("failed to load library overview", "error", err)
		return overviewLoadedMsg{err: err}
	}
	return overviewLoadedMsg{entries: entries}
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewLoadedMsg:
		s.loaded = true
		s.loadErr = msg.err
		s.entries = msg.entries
		if s.selected >= len(s.entries) {
			s.selected = len(s.entries) - 1
		}
		if s.selected < 0 {
			s.selected = 0
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LibraryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.entries)-1 {
			s.selected++
		}
	case "enter":
		return s.openSelected()
	}
	return s, nil
}

func (s *LibraryScreen) openSelected() (screen.Screen, tea.Cmd) {
	if s.selected >= len(s.entries) {
		return s, nil
	}
	st := s.entries[s.selected]
	lsn := &lessons.Lesson{
		ID:         st.Lesson.ID,
		Topic:      st.Lesson.Topic,
		Difficulty: st.Lesson.Difficulty,
		Body:       st.Lesson.Content,
		CreatedAt:  st.Lesson.CreatedAt,
	}

	generator := s.generator
	tutorService := s.tutorService
	progressRepo := s.progressRepo
	recorder := s.recorder
	return s, func() tea.Msg {
		return router.PushScreenMsg{
			Screen: lessonscreen.New(lsn, generator, tutorService, progressRepo, recorder),
		}
	}
}

func (s *LibraryScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Opening the library...")
	}
	if len(s.entries) == 0 {
		return s.renderEmpty(width, height)
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d lessons, newest first", len(s.entries))))
	b.WriteString("\n")
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	visible := height - 6
	if visible < 1 {
		visible = 1
	}
	s.pageSize = visible
	s.clampScroll(visible)

	end := s.scroll + visible
	if end > len(s.entries) {
		end = len(s.entries)
	}
	for i := s.scroll; i < end; i++ {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderRow(i, cw)))
		b.WriteString("\n")
	}

	if s.loadErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Some lessons may be missing: " + s.loadErr.Error()))
	}
	return b.String()
}

// clampScroll keeps the selection on screen.
func (s *LibraryScreen) clampScroll(visible int) {
	if s.selected < s.scroll {
		s.scroll = s.selected
	}
	if s.selected >= s.scroll+visible {
		s.scroll = s.selected - visible + 1
	}
	maxScroll := len(s.entries) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}

func (s *LibraryScreen) renderRow(i, cw int) string {
	st := s.entries[i]

	topicW := cw - 26
	if topicW < 10 {
		topicW = 10
	}
	topic := fmt.Sprintf("%-*s", topicW, truncate(st.Lesson.Topic, topicW))

	var status string
	switch {
	case st.Completed && st.Score > 0:
		status = lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("%-7s", fmt.Sprintf("✓ %d%%", st.Score)))
	case st.Completed:
		status = lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("%-7s", "✓ done"))
	default:
		status = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%-7s", "· new"))
	}

	meta := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("lvl %d  %s", st.Lesson.Difficulty, st.Lesson.CreatedAt.Format("Jan 02")))

	if i == s.selected {
		marker := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ")
		return marker + lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(topic) + status + "  " + meta
	}
	return "  " + lipgloss.NewStyle().Foreground(theme.Text).Render(topic) + status + "  " + meta
}

func (s *LibraryScreen) renderEmpty(width, height int) string {
	content := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("No lessons yet.\nPick \"New Lesson\" from the home menu to generate your first.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
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
