package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/devika/tutora/internal/logging"
	"github.com/devika/tutora/internal/store"
)

// closeLog flushes the log sink. Console mode makes it a no-op.
var closeLog = func() error { return nil }

var rootCmd = &cobra.Command{
	Use:   "tutora",
	Short: "AI tutor in your terminal",
	Long:  "Tutora — terminal tutor that turns any topic into a lesson, quizzes you on it, and keeps score.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Real environment variables win over .env entries.
		_ = godotenv.Load()

		// The TUI owns the terminal, so the default action logs to a
		// file; plain CLI commands log to stderr.
		mode := logging.Console
		if cmd.Name() == cmd.Root().Name() {
			mode = logging.File
		}
		cl, err := logging.Init(mode)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		closeLog = cl
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TUTORA_DB env var)")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TUTORA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
