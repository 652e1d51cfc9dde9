package cmd

import (
	"fmt"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning totals from the stored history",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		overview, err := s.ProgressRepo().Overview(ctx)
		if err != nil {
			return fmt.Errorf("load lessons: %w", err)
		}
		totals, err := s.QuizResultRepo().Totals(ctx)
		if err != nil {
			return fmt.Errorf("load quiz totals: %w", err)
		}
		usage, err := s.EventRepo().TotalLLMUsage(ctx)
		if err != nil {
			return fmt.Errorf("load LLM usage: %w", err)
		}

		if len(overview) == 0 && totals.Attempts == 0 {
			fmt.Println("Nothing recorded yet. Run tutora and generate your first lesson.")
			return nil
		}

		var completed int
		for _, ls := range overview {
			if ls.Completed {
				completed++
			}
		}

		heading := color.New(color.FgCyan, color.Bold)
		heading.Println("Lessons")
		fmt.Printf("  Generated:  %d\n", len(overview))
		fmt.Printf("  Completed:  %d\n", completed)

		fmt.Println()
		heading.Println("Quizzes")
		fmt.Printf("  Attempts:   %d\n", totals.Attempts)
		if totals.Attempts > 0 {
			fmt.Printf("  Average:    %d%%\n", int(math.Round(totals.AvgPercentage)))
			fmt.Printf("  Best:       %d%%\n", totals.BestPercentage)
		}

		fmt.Println()
		heading.Println("LLM usage")
		fmt.Printf("  Requests:   %d", usage.Requests)
		if usage.Failures > 0 {
			fmt.Printf("  (%s failed)", color.RedString("%d", usage.Failures))
		}
		fmt.Println()
		fmt.Printf("  Tokens:     %d in / %d out\n", usage.InputTokens, usage.OutputTokens)
		fmt.Println("\nRun tutora llm stats for a per-model cost breakdown.")
		return nil
	},
}
