package lesson

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/devika/tutora/internal/lessons"
	"github.com/devika/tutora/internal/quiz"
	"github.com/devika/tutora/internal/quizgen"
	"github.com/devika/tutora/internal/router"
	"github.com/devika/tutora/internal/screen"
	quizscreen "github.com/devika/tutora/internal/screens/quiz"
	"github.com/devika/tutora/internal/store"
	"github.com/devika/tutora/internal/tutor"
	"github.com/devika/tutora/internal/ui/components"
	"github.com/devika/tutora/internal/ui/layout"
)

type mode int

const (
	modeRead mode = iota
	modeChat
	modeDiagram
)

// chatEntry is one question/answer exchange with the tutor. answer is
// empty while the reply is in flight.
type chatEntry struct {
	question string
	answer   string
}

// LessonScreen displays a lesson with scrolling, tutor chat, a concept
// diagram, and the gate into the lesson's quiz.
type LessonScreen struct {
	lesson       *lessons.Lesson
	generator    quizgen.Generator
	tutorService *tutor.Service
	progressRepo store.ProgressRepo
	recorder     quiz.Recorder

	progress *store.Progress
	openedAt time.Time

	// rendered lesson body, cached per width
	lines         []string
	renderedWidth int
	scroll        int
	pageSize      int

	mode       mode
	chatInput  components.TextInput
	transcript []chatEntry
	chatBusy   bool

	diagram     string
	diagramBusy bool

	status string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a LessonScreen for a generated or stored lesson.
func New(lsn *lessons.Lesson, generator quizgen.Generator, tutorService *tutor.Service, progressRepo store.ProgressRepo, recorder quiz.Recorder) *LessonScreen {
	return &LessonScreen{
		lesson:       lsn,
		generator:    generator,
		tutorService: tutorService,
		progressRepo: progressRepo,
		recorder:     recorder,
		chatInput:    components.NewTextInput("Ask about this lesson...", 200),
		openedAt:     time.Now(),
	}
}

// Init loads stored progress. It runs again when the quiz pops back,
// picking up the new best score; the reading clock restarts with it.
func (s *LessonScreen) Init() tea.Cmd {
	s.openedAt = time.Now()
	return s.loadProgress
}

func (s *LessonScreen) loadProgress() tea.Msg {
	if s.progressRepo == nil || s.lesson.ID == 0 {
		return progressLoadedMsg{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p, err := s.progressRepo.Get(ctx, s.lesson.ID)
	if err != nil {
		slog.Warn("failed to load lesson progress", "lesson_id", s.lesson.ID, "error", err)
		return progressLoadedMsg{}
	}
	return progressLoadedMsg{progress: p}
}

func (s *LessonScreen) Title() string {
	return s.lesson.Topic
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeChat:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ask"},
			{Key: "Esc", Description: "Back to lesson"},
		}
	case modeDiagram:
		return []layout.KeyHint{
			{Key: "R", Description: "Redraw"},
			{Key: "any key", Description: "Back"},
		}
	}

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "C", Description: "Chat"},
		{Key: "D", Description: "Diagram"},
	}
	if s.completed() {
		hints = append(hints, layout.KeyHint{Key: "Q", Description: "Quiz"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "M", Description: "Mark complete"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		if msg.progress != nil {
			s.progress = msg.progress
		}
		return s, nil

	case chatReplyMsg:
		return s.handleChatReply(msg)

	case diagramReadyMsg:
		s.diagramBusy = false
		if msg.err != nil {
			s.mode = modeRead
			s.status = "Diagram failed: " + msg.err.Error()
			return s, nil
		}
		s.diagram = msg.art
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == modeChat && !s.chatBusy {
		var cmd tea.Cmd
		s.chatInput, cmd = s.chatInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.mode {
	case modeChat:
		return s.handleChatKey(msg)
	case modeDiagram:
		return s.handleDiagramKey(msg)
	}
	return s.handleReadKey(msg)
}

func (s *LessonScreen) handleReadKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.status = ""

	switch msg.String() {
	case "esc":
		s.flushReadingTime()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		s.scroll--
	case "down", "j":
		s.scroll++
	case "pgup":
		s.scroll -= s.page()
	case "pgdown":
		s.scroll += s.page()
	case "m":
		return s.markComplete()
	case "q":
		return s.startQuiz()
	case "c":
		s.mode = modeChat
		return s, s.chatInput.Init()
	case "d":
		return s.showDiagram()
	}
	// Out-of-range scroll positions are clamped during render, when the
	// window height is known.
	return s, nil
}

func (s *LessonScreen) page() int {
	if s.pageSize > 0 {
		return s.pageSize
	}
	return 10
}

func (s *LessonScreen) completed() bool {
	return s.progress != nil && s.progress.Completed
}

// ensureProgress returns the progress row, creating an empty one in
// memory on first use.
func (s *LessonScreen) ensureProgress() *store.Progress {
	if s.progress == nil {
		s.progress = &store.Progress{LessonID: s.lesson.ID}
	}
	return s.progress
}

// flushReadingTime folds the time since the screen was (re)opened into
// the stored progress and restarts the clock.
func (s *LessonScreen) flushReadingTime() {
	elapsed := int(time.Since(s.openedAt).Seconds())
	s.openedAt = time.Now()

	p := s.ensureProgress()
	p.TimeSpent += elapsed

	if s.progressRepo == nil || s.lesson.ID == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.progressRepo.Upsert(ctx, p); err != nil {
		slog.Warn("failed to save lesson progress", "lesson_id", s.lesson.ID, "error", err)
	}
}

func (s *LessonScreen) markComplete() (screen.Screen, tea.Cmd) {
	if s.completed() {
		s.status = "Already marked complete."
		return s, nil
	}
	p := s.ensureProgress()
	p.Completed = true
	now := time.Now().UTC()
	p.CompletedAt = &now
	s.flushReadingTime()
	s.status = "Lesson complete! Press q to take the quiz."
	return s, nil
}

func (s *LessonScreen) startQuiz() (screen.Screen, tea.Cmd) {
	if !s.completed() {
		s.status = "Finish the lesson first: press m to mark it complete."
		return s, nil
	}
	s.flushReadingTime()

	req := quizgen.Request{
		LessonID:   s.lesson.ID,
		Topic:      s.lesson.Topic,
		Difficulty: s.lesson.Difficulty,
		LessonBody: s.lesson.Body,
	}
	generator := s.generator
	recorder := s.recorder
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: quizscreen.New(req, generator, recorder)}
	}
}

func (s *LessonScreen) showDiagram() (screen.Screen, tea.Cmd) {
	if s.tutorService == nil {
		s.status = "Tutor unavailable."
		return s, nil
	}
	s.mode = modeDiagram
	if s.diagram != "" || s.diagramBusy {
		return s, nil
	}
	s.diagramBusy = true
	return s, s.fetchDiagram
}

func (s *LessonScreen) fetchDiagram() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	art, err := s.tutorService.Diagram(ctx, s.lesson.Topic, "")
	return diagramReadyMsg{art: art, err: err}
}

func (s *LessonScreen) handleDiagramKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "r" && !s.diagramBusy {
		s.diagram = ""
		s.diagramBusy = true
		return s, s.fetchDiagram
	}
	s.mode = modeRead
	return s, nil
}

func (s *LessonScreen) handleChatKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeRead
		return s, nil
	case "enter":
		return s.sendChat()
	}

	if s.chatBusy {
		return s, nil
	}
	var cmd tea.Cmd
	s.chatInput, cmd = s.chatInput.Update(msg)
	return s, cmd
}

func (s *LessonScreen) sendChat() (screen.Screen, tea.Cmd) {
	if s.chatBusy {
		return s, nil
	}
	question := strings.TrimSpace(s.chatInput.Value())
	if question == "" {
		return s, nil
	}
	if s.tutorService == nil {
		s.mode = modeRead
		s.status = "Tutor unavailable."
		return s, nil
	}

	s.transcript = append(s.transcript, chatEntry{question: question})
	s.chatBusy = true
	s.chatInput = components.NewTextInput("Ask about this lesson...", 200)

	tutorService := s.tutorService
	body := s.lesson.Body
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		// A pasted image path gets study notes instead of a chat answer.
		if tutor.IsImagePath(question) {
			analysis, err := tutorService.AnalyzeImage(ctx, question)
			if err != nil {
				return chatReplyMsg{err: err}
			}
			return chatReplyMsg{answer: analysis.Notes()}
		}

		answer, err := tutorService.Chat(ctx, question, body)
		return chatReplyMsg{answer: answer, err: err}
	}
}

func (s *LessonScreen) handleChatReply(msg chatReplyMsg) (screen.Screen, tea.Cmd) {
	s.chatBusy = false
	if len(s.transcript) == 0 {
		return s, nil
	}
	last := &s.transcript[len(s.transcript)-1]
	if msg.err != nil {
		last.answer = "Sorry, that didn't go through: " + msg.err.Error()
		return s, nil
	}
	last.answer = msg.answer
	return s, nil
}
