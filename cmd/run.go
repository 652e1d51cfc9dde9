package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devika/tutora/internal/app"
	"github.com/devika/tutora/internal/lessons"
	"github.com/devika/tutora/internal/llm"
	"github.com/devika/tutora/internal/quizgen"
	"github.com/devika/tutora/internal/screen"
	"github.com/devika/tutora/internal/screens/home"
	"github.com/devika/tutora/internal/screens/welcome"
	"github.com/devika/tutora/internal/selfupdate"
	"github.com/devika/tutora/internal/store"
	"github.com/devika/tutora/internal/tutor"
)

// runApp opens the store, builds the services, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	// The app runs without a provider: lessons, quizzes, and the tutor
	// all degrade to canned content.
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	offline := err != nil
	if offline {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Lessons and quizzes will use canned offline content.")
	}

	quizCfg := quizgen.ConfigFromEnv()
	var generator quizgen.Generator
	if provider != nil {
		generator = quizgen.New(provider, quizCfg)
	} else {
		generator = &quizgen.Fallback{Count: quizCfg.QuestionCount}
	}

	lessonService := lessons.NewService(provider, st.LessonRepo(), lessons.DefaultConfig())
	tutorService := tutor.NewService(provider)
	recorder := store.NewResultRecorder(st)
	checker := selfupdate.NewChecker()

	first := welcome.New(func() screen.Screen {
		return home.New(lessonService, generator, tutorService, st, recorder, checker, version, offline)
	})
	return app.Run(first, st.ProgressRepo(), st.QuizResultRepo())
}
