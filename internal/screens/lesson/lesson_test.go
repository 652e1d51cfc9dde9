package lesson

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/devika/tutora/internal/lessons"
	"github.com/devika/tutora/internal/router"
	quizscreen "github.com/devika/tutora/internal/screens/quiz"
	"github.com/devika/tutora/internal/tutor"
)

func testLesson() *lessons.Lesson {
	return &lessons.Lesson{
		Topic:      "Photosynthesis",
		Difficulty: 3,
		Body:       "# Photosynthesis\n\nPlants convert light into energy.\n\n- chlorophyll\n- glucose\n- oxygen",
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestQuizGatedOnCompletion(t *testing.T) {
	s := New(testLesson(), nil, nil, nil, nil)

	_, cmd := s.Update(keyPress('q'))
	if cmd != nil {
		t.Fatal("quiz must not start before the lesson is complete")
	}
	if !strings.Contains(s.status, "Finish the lesson first") {
		t.Errorf("status = %q, want the completion nudge", s.status)
	}

	s.Update(keyPress('m'))
	if !s.completed() {
		t.Fatal("m should mark the lesson complete")
	}
	if s.progress.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}

	_, cmd = s.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("expected a command once complete")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*quizscreen.QuizScreen); !ok {
		t.Errorf("pushed screen is %T, want *quizscreen.QuizScreen", msg.Screen)
	}
}

func TestMarkCompleteTwiceIsNoop(t *testing.T) {
	s := New(testLesson(), nil, nil, nil, nil)
	s.Update(keyPress('m'))
	first := s.progress.CompletedAt

	s.Update(keyPress('m'))
	if s.progress.CompletedAt != first {
		t.Error("second m must not touch CompletedAt")
	}
	if !strings.Contains(s.status, "Already") {
		t.Errorf("status = %q, want the already-complete notice", s.status)
	}
}

func TestScrollStaysInRange(t *testing.T) {
	s := New(testLesson(), nil, nil, nil, nil)

	for i := 0; i < 50; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	s.View(80, 24)
	if s.scroll < 0 || s.scroll >= len(s.lines) {
		t.Errorf("scroll = %d out of range for %d lines", s.scroll, len(s.lines))
	}

	for i := 0; i < 50; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	}
	s.View(80, 24)
	if s.scroll != 0 {
		t.Errorf("scroll = %d after scrolling to top, want 0", s.scroll)
	}
}

func TestEscFlushesReadingTime(t *testing.T) {
	s := New(testLesson(), nil, nil, nil, nil)
	s.openedAt = time.Now().Add(-65 * time.Second)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on esc")
	}
	if s.progress == nil || s.progress.TimeSpent < 65 {
		t.Errorf("reading time not flushed, progress = %+v", s.progress)
	}
}

func TestChatRoundtrip(t *testing.T) {
	s := New(testLesson(), nil, tutor.NewService(nil), nil, nil)

	s.Update(keyPress('c'))
	if s.mode != modeChat {
		t.Fatal("c should enter chat mode")
	}

	s.chatInput.Model.SetValue("What makes leaves green?")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a chat command")
	}
	if !s.chatBusy {
		t.Fatal("chat should be busy while waiting")
	}
	if len(s.transcript) != 1 || s.transcript[0].question != "What makes leaves green?" {
		t.Fatalf("transcript = %+v", s.transcript)
	}

	reply, ok := cmd().(chatReplyMsg)
	if !ok {
		t.Fatalf("expected chatReplyMsg, got %T", cmd())
	}
	if reply.err != nil {
		t.Fatalf("fallback chat returned error: %v", reply.err)
	}

	s.Update(reply)
	if s.chatBusy {
		t.Error("chat still busy after the reply")
	}
	if s.transcript[0].answer == "" {
		t.Error("reply was not folded into the transcript")
	}
}

func TestDiagramFallback(t *testing.T) {
	s := New(testLesson(), nil, tutor.NewService(nil), nil, nil)

	_, cmd := s.Update(keyPress('d'))
	if s.mode != modeDiagram {
		t.Fatal("d should enter diagram mode")
	}
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}

	msg, ok := cmd().(diagramReadyMsg)
	if !ok {
		t.Fatalf("expected diagramReadyMsg, got %T", cmd())
	}
	if msg.err != nil {
		t.Fatalf("fallback diagram returned error: %v", msg.err)
	}

	s.Update(msg)
	if s.diagram == "" {
		t.Error("diagram not stored")
	}
	if s.diagramBusy {
		t.Error("diagram still marked busy")
	}

	// Any key returns to reading.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.mode != modeRead {
		t.Error("expected to be back in read mode")
	}
}

func TestDiagramWithoutTutor(t *testing.T) {
	s := New(testLesson(), nil, nil, nil, nil)
	_, cmd := s.Update(keyPress('d'))
	if cmd != nil {
		t.Error("no tutor should mean no fetch")
	}
	if s.mode != modeRead {
		t.Error("mode should stay read without a tutor")
	}
	if s.status == "" {
		t.Error("expected an unavailable notice")
	}
}
