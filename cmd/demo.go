package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/devika/tutora/internal/app"
	"github.com/devika/tutora/internal/lessons"
	"github.com/devika/tutora/internal/llm"
	"github.com/devika/tutora/internal/logging"
	"github.com/devika/tutora/internal/quizgen"
	"github.com/devika/tutora/internal/screen"
	"github.com/devika/tutora/internal/screens/home"
	"github.com/devika/tutora/internal/screens/welcome"
	"github.com/devika/tutora/internal/store"
	"github.com/devika/tutora/internal/tutor"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Tour the app with canned content, no API key needed",
	Long: `Runs the full lesson-quiz loop against a throwaway in-memory database
and a scripted provider. Generate a lesson on any topic, mark it
complete, and take its quiz; nothing touches your real data.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The demo database is throwaway; its log lines should not
		// outlive it in the real log file.
		logging.InitWriter(io.Discard)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open("file::memory:?cache=shared")
		if err != nil {
			return fmt.Errorf("open in-memory store: %w", err)
		}
		defer st.Close()

		provider := demoProvider()
		generator := quizgen.New(provider, quizgen.DefaultConfig())
		lessonService := lessons.NewService(provider, st.LessonRepo(), lessons.DefaultConfig())
		tutorService := tutor.NewService(provider)
		recorder := store.NewResultRecorder(st)

		first := welcome.New(func() screen.Screen {
			return home.New(lessonService, generator, tutorService, st, recorder, nil, version, false)
		})
		return app.Run(first, st.ProgressRepo(), st.QuizResultRepo())
	},
}

// demoProvider serves the scripted tour: the first lesson request gets the
// tour lesson, the first quiz request gets its question set. Once the queue
// drains, every service falls back to its canned offline content.
func demoProvider() *llm.MockProvider {
	return llm.NewMockProvider(
		llm.MockResponse{
			Content: json.RawMessage(demoLesson),
			Usage:   llm.Usage{InputTokens: 120, OutputTokens: 340},
		},
		llm.MockResponse{
			Content: json.RawMessage(demoQuiz),
			Usage:   llm.Usage{InputTokens: 200, OutputTokens: 280},
		},
	)
}

const demoLesson = `# Welcome to Tutora

This demo lesson walks through how the app works. Everything here runs
against a throwaway database, so nothing you do is saved once you quit.

## The loop

1. Generate a lesson on any topic
2. Read it, then mark it complete
3. Take the quiz to lock the ideas in

Your best quiz score per lesson shows up in the **Library**, and every
attempt lands in the **History**.

## Reading keys

- Scroll with the arrow keys
- Press *m* to mark the lesson complete
- Press *q* to start the quiz once the lesson is complete
- Press *c* to ask the tutor a question about the lesson

> Tip: in the real app, set an API key and every lesson is written
> fresh for your topic and difficulty.

---

Mark this lesson complete and take the quiz to see the whole loop.`

const demoQuiz = `{
  "questions": [
    {
      "question": "What happens to your data when you quit the demo?",
      "options": [
        "It is uploaded for review",
        "It is discarded with the throwaway database",
        "It is merged into your real history",
        "It is emailed to you"
      ],
      "correct_answer": 1
    },
    {
      "question": "Which key marks a lesson complete?",
      "options": ["m", "x", "tab", "backspace"],
      "correct_answer": 0
    },
    {
      "question": "When does a lesson's quiz unlock?",
      "options": [
        "As soon as the lesson opens",
        "After you ask the tutor a question",
        "After the lesson is marked complete",
        "Only on the second reading"
      ],
      "correct_answer": 2
    },
    {
      "question": "Where do your past quiz attempts show up?",
      "options": ["The welcome screen", "The lesson body", "The tutor chat", "The History screen"],
      "correct_answer": 3
    },
    {
      "question": "What does the Library track for each lesson?",
      "options": [
        "Your best quiz score",
        "The time of day you read it",
        "How many keys you pressed",
        "Nothing at all"
      ],
      "correct_answer": 0
    }
  ]
}`
