package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local database",
	Long:  "Deletes every stored lesson, quiz result, and progress record. There is no undo.",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			fmt.Printf("Nothing to reset: %s does not exist.\n", dbPath)
			return nil
		}

		if !force {
			fmt.Printf("This deletes all lessons, quiz results, and progress in\n  %s\nType yes to continue: ", dbPath)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if strings.TrimSpace(line) != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		// SQLite sidecar files go with the database.
		for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove %s: %w", p, err)
			}
		}
		fmt.Println("Deleted", dbPath)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
