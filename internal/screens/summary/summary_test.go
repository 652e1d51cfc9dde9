package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/devika/tutora/internal/quiz"
	"github.com/devika/tutora/internal/router"
	"github.com/devika/tutora/internal/screen"
)

func testReport() (*quiz.Report, []quiz.Question) {
	questions := []quiz.Question{
		{Prompt: "What is 2+2?", Options: []string{"3", "4", "5", "6"}, Correct: 1},
		{Prompt: "What is 3*3?", Options: []string{"6", "7", "8", "9"}, Correct: 3},
		{Prompt: "What is 10/2?", Options: []string{"5", "4", "2", "20"}, Correct: 0},
	}
	report := &quiz.Report{
		Score:           2,
		TotalQuestions:  3,
		Percentage:      67,
		DurationSeconds: 95,
		Answers: []quiz.AnswerRecord{
			{Selected: 1, Correct: 1, IsCorrect: true},
			{Selected: 0, Correct: 3, IsCorrect: false},
			{Selected: 0, Correct: 0, IsCorrect: true},
		},
	}
	return report, questions
}

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                          { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                   { return "" }
func (stubScreen) Title() string                          { return "stub" }

func TestSummaryScreen_Title(t *testing.T) {
	report, questions := testReport()
	s := New(report, questions, nil)
	if s.Title() != "Quiz Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	report, questions := testReport()
	s := New(report, questions, nil)
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	for _, want := range []string{"Quiz complete!", "Score: 67%", "1:35", "What is 2+2?", "answer: D"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	report, questions := testReport()
	s := New(report, questions, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Enter")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	report, questions := testReport()
	s := New(report, questions, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Esc")
	}
}

func TestSummaryScreen_Retake(t *testing.T) {
	report, questions := testReport()
	called := false
	s := New(report, questions, func() screen.Screen {
		called = true
		return stubScreen{}
	})

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r'})
	if cmd == nil {
		t.Fatal("expected a command on r (retake)")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg on r")
	}
	if !called {
		t.Error("retake factory was not called")
	}
	if _, ok := msg.Screen.(stubScreen); !ok {
		t.Error("replacement is not the retake screen")
	}
}

func TestSummaryScreen_RetakeDisabledWithoutFactory(t *testing.T) {
	report, questions := testReport()
	s := New(report, questions, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r'})
	if cmd != nil {
		t.Error("retake without a factory should do nothing")
	}

	hints := s.KeyHints()
	if len(hints) != 1 {
		t.Errorf("KeyHints length = %d, want 1 without retake", len(hints))
	}
}

func TestVerdictThresholds(t *testing.T) {
	cases := []struct {
		pct  int
		want string
	}{
		{100, "Excellent work!"},
		{90, "Excellent work!"},
		{70, "Good job!"},
		{50, "Getting there."},
		{0, "Keep practicing, it will click."},
	}
	for _, tc := range cases {
		if got := verdict(tc.pct); got != tc.want {
			t.Errorf("verdict(%d) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}
