package newlesson

import (
	"context"
	"fmt"
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

// pollInterval is how often the screen checks for a finished lesson.
const pollInterval = 200 * time.Millisecond

type pollTickMsg time.Time

// NewLessonScreen collects a topic and difficulty, kicks off lesson
// generation, and opens the lesson once it is ready.
type NewLessonScreen struct {
	lessonService *lessons.Service
	generator     quizgen.Generator
	tutorService  *tutor.Service
	progressRepo  store.ProgressRepo
	recorder      quiz.Recorder

	input      components.TextInput
	difficulty int
	generating bool
	ticks      int
}

var _ screen.Screen = (*NewLessonScreen)(nil)
var _ screen.KeyHintProvider = (*NewLessonScreen)(nil)

// New creates the lesson request form.
func New(lessonService *lessons.Service, generator quizgen.Generator, tutorService *tutor.Service, progressRepo store.ProgressRepo, recorder quiz.Recorder) *NewLessonScreen {
	return &NewLessonScreen{
		lessonService: lessonService,
		generator:     generator,
		tutorService:  tutorService,
		progressRepo:  progressRepo,
		recorder:      recorder,
		input:         components.NewTextInput("e.g. photosynthesis", 64),
		difficulty:    3,
	}
}

func (s *NewLessonScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *NewLessonScreen) Title() string {
	return "New Lesson"
}

func (s *NewLessonScreen) KeyHints() []layout.KeyHint {
	if s.generating {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Difficulty"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *NewLessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pollTickMsg:
		return s.handlePollTick()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if !s.generating {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *NewLessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.generating {
		if msg.String() == "esc" {
			// The request keeps running; a finished lesson still lands
			// in the library.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		return s.submit()
	case "up":
		if s.difficulty < 5 {
			s.difficulty++
		}
		return s, nil
	case "down":
		if s.difficulty > 1 {
			s.difficulty--
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *NewLessonScreen) submit() (screen.Screen, tea.Cmd) {
	topic := strings.TrimSpace(s.input.Value())
	if topic == "" || s.lessonService == nil {
		s.input.Submit(false)
		return s, nil
	}
	s.input.Submit(true)
	s.generating = true
	s.ticks = 0

	// Drop the result of an abandoned earlier request before starting
	// this one.
	s.lessonService.ConsumeLesson()
	s.lessonService.RequestLesson(context.Background(), lessons.Input{
		Topic:      topic,
		Difficulty: s.difficulty,
	})
	return s, s.pollTick()
}

func (s *NewLessonScreen) pollTick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

func (s *NewLessonScreen) handlePollTick() (screen.Screen, tea.Cmd) {
	if !s.generating {
		return s, nil
	}
	s.ticks++

	lsn, ok := s.lessonService.ConsumeLesson()
	if !ok {
		return s, s.pollTick()
	}

	generator := s.generator
	tutorService := s.tutorService
	progressRepo := s.progressRepo
	recorder := s.recorder
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: lessonscreen.New(lsn, generator, tutorService, progressRepo, recorder),
		}
	}
}

func (s *NewLessonScreen) View(width, height int) string {
	if s.generating {
		return s.renderGenerating(width, height)
	}
	return s.renderForm(width, height)
}

func (s *NewLessonScreen) renderForm(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("What do you want to learn?")

	topicLine := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Topic: ") + s.input.View()
	difficultyLine := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Difficulty: ") +
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(lessons.Describe(s.difficulty))

	card := components.Card(topicLine+"\n\n"+difficultyLine, cw)

	hint := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("↑/↓ adjust difficulty")

	content := title + "\n\n" + card + "\n\n" + hint
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *NewLessonScreen) renderGenerating(width, height int) string {
	dots := strings.Repeat(".", s.ticks%4)

	head := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Writing your lesson" + dots)

	sub := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s, difficulty %s", strings.TrimSpace(s.input.Value()), lessons.Describe(s.difficulty)))

	hint := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("Esc to go back (the lesson will finish in the background)")

	content := head + "\n\n" + sub + "\n\n" + hint
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
