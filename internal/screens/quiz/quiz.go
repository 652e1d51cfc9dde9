package quiz

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	qz "github.com/devika/tutora/internal/quiz"
	"github.com/devika/tutora/internal/quizgen"
	"github.com/devika/tutora/internal/router"
	"github.com/devika/tutora/internal/screen"
	"github.com/devika/tutora/internal/screens/summary"
	"github.com/devika/tutora/internal/ui/layout"
)

type questionsReadyMsg struct {
	set    *quizgen.QuestionSet
	canned bool
}

// QuizScreen runs one quiz attempt end to end: generate questions, walk
// them one at a time through the session controller, then hand off to
// the summary. Quitting mid-quiz discards the attempt; only finished
// quizzes are recorded.
type QuizScreen struct {
	req       quizgen.Request
	generator quizgen.Generator
	recorder  qz.Recorder

	controller *qz.Controller
	questions  []qz.Question

	generating  bool
	usedCanned  bool
	confirmQuit bool
	status      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for the given request. A nil generator serves
// canned questions.
func New(req quizgen.Request, generator quizgen.Generator, recorder qz.Recorder) *QuizScreen {
	return &QuizScreen{
		req:        req,
		generator:  generator,
		recorder:   recorder,
		controller: qz.New(recorder),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.controller.State() != qz.StateIdle {
		return nil
	}
	s.generating = true
	return s.generate
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.generating:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	case s.controller.State() == qz.StateAnswerRevealed:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓/1-4", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

// generate asks the configured generator for a question set, degrading
// to the canned fallback on any failure so a quiz always starts.
func (s *QuizScreen) generate() tea.Msg {
	ctx := context.Background()
	if s.generator != nil {
		set, err := s.generator.Generate(ctx, s.req)
		if err == nil {
			return questionsReadyMsg{set: set}
		}
		slog.Warn("quiz generation failed, serving canned questions",
			"topic", s.req.Topic,
			"error", err)
	}
	set, _ := (&quizgen.Fallback{}).Generate(ctx, s.req)
	return questionsReadyMsg{set: set, canned: true}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		return s.handleQuestionsReady(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleQuestionsReady(msg questionsReadyMsg) (screen.Screen, tea.Cmd) {
	s.generating = false
	s.usedCanned = msg.canned
	s.questions = msg.set.Questions

	if err := s.controller.Start(s.req.LessonID, msg.set.Questions); err != nil {
		slog.Error("quiz could not start", "topic", s.req.Topic, "error", err)
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirmQuit {
		return s.handleConfirmKey(msg)
	}

	if s.generating {
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if msg.String() == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	switch s.controller.State() {
	case qz.StateAwaitingSelection, qz.StateAnswerSelected:
		return s.handleAnswerKey(msg)
	case qz.StateAnswerRevealed:
		return s.advance()
	}
	return s, nil
}

func (s *QuizScreen) handleConfirmKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "y" {
		// Unfinished attempt, nothing recorded.
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	s.confirmQuit = false
	return s, nil
}

func (s *QuizScreen) handleAnswerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	s.status = ""
	q := s.controller.CurrentQuestion()
	if q == nil {
		return s, nil
	}

	switch key := msg.String(); key {
	case "enter":
		return s.submit()
	case "up", "k":
		return s.moveSelection(q, -1)
	case "down", "j":
		return s.moveSelection(q, +1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		i := int(key[0] - '1')
		if i < len(q.Options) {
			if err := s.controller.SelectOption(i); err != nil {
				slog.Warn("option select rejected", "option", i, "error", err)
			}
		}
	}
	return s, nil
}

// moveSelection steps the highlighted option, starting from the top when
// nothing is chosen yet.
func (s *QuizScreen) moveSelection(q *qz.Question, delta int) (screen.Screen, tea.Cmd) {
	i, ok := s.controller.SelectedOption()
	if !ok {
		i = 0
	} else {
		i += delta
		if i < 0 {
			i = 0
		}
		if i >= len(q.Options) {
			i = len(q.Options) - 1
		}
	}
	if err := s.controller.SelectOption(i); err != nil {
		slog.Warn("option select rejected", "option", i, "error", err)
	}
	return s, nil
}

func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	if err := s.controller.SubmitAnswer(); err != nil {
		s.status = "Pick an answer first."
		return s, nil
	}
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.controller.Advance(); err != nil {
		slog.Warn("quiz advance rejected", "error", err)
		return s, nil
	}
	if s.controller.State() != qz.StateFinished {
		return s, nil
	}

	report := s.controller.Report()
	questions := s.questions
	req := s.req
	generator := s.generator
	recorder := s.recorder
	retake := func() screen.Screen { return New(req, generator, recorder) }
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(report, questions, retake)}
	}
}
