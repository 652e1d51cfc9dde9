package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/devika/tutora/internal/llm"
	"github.com/devika/tutora/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM provider and request history",
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active provider configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		check, _ := cmd.Flags().GetBool("check")

		cfg, source, err := activeLLMConfig()
		if err != nil {
			color.Yellow("No LLM provider configured.")
			fmt.Println(err)
			fmt.Println("The app still runs; lessons and quizzes fall back to canned content.")
			return nil
		}

		label := color.New(color.Bold)
		label.Print("Provider:  ")
		fmt.Println(cfg.Provider)
		label.Print("Model:     ")
		fmt.Println(activeModel(cfg))
		label.Print("API key:   ")
		fmt.Println(maskKey(activeKey(cfg)))
		label.Print("Source:    ")
		fmt.Println(source)

		if !check {
			return nil
		}
		return roundTrip(cmd, cfg)
	},
}

// roundTrip sends one tiny request through the configured provider. The
// event is recorded like any other, so it shows up in `llm list`.
func roundTrip(cmd *cobra.Command, cfg llm.Config) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	provider, err := llm.NewProvider(ctx, cfg, s.EventRepo())
	if err != nil {
		return fmt.Errorf("build provider: %w", err)
	}

	fmt.Println()
	fmt.Print("Sending a test request... ")
	start := time.Now()
	resp, err := provider.Generate(llm.WithPurpose(ctx, "status-check"), llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Reply with the single word: ready"},
		},
		MaxTokens:   20,
		Temperature: 0,
	})
	if err != nil {
		color.Red("failed")
		return err
	}

	color.Green("ok")
	fmt.Printf("%s answered in %s (%d in / %d out tokens)\n",
		resp.Model, time.Since(start).Round(time.Millisecond),
		resp.Usage.InputTokens, resp.Usage.OutputTokens)
	return nil
}

// activeLLMConfig resolves the provider configuration the app would run
// with, mirroring the precedence of llm.NewProviderFromEnv: explicit
// TUTORA_ variables first, then key discovery.
func activeLLMConfig() (llm.Config, string, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err == nil {
		if os.Getenv("TUTORA_PROVIDER") != "" {
			return cfg, "TUTORA_PROVIDER", nil
		}
		return cfg, "environment", nil
	} else if os.Getenv("TUTORA_PROVIDER") != "" {
		return llm.Config{}, "", err
	}

	cfg, ok := llm.DiscoverConfig()
	if !ok {
		return llm.Config{}, "", errors.New("no API key found: set OPENROUTER_API_KEY, GEMINI_API_KEY, OPENAI_API_KEY, or ANTHROPIC_API_KEY")
	}
	return cfg, "discovered API key", nil
}

func activeModel(cfg llm.Config) string {
	switch cfg.Provider {
	case "openrouter":
		return cfg.OpenRouter.Model
	case "openai":
		return cfg.OpenAI.Model
	case "anthropic":
		return cfg.Anthropic.Model
	case "gemini":
		return cfg.Gemini.Model
	}
	return ""
}

func activeKey(cfg llm.Config) string {
	switch cfg.Provider {
	case "openrouter":
		return cfg.OpenRouter.APIKey
	case "openai":
		return cfg.OpenAI.APIKey
	case "anthropic":
		return cfg.Anthropic.APIKey
	case "gemini":
		return cfg.Gemini.APIKey
	}
	return ""
}

// maskKey shows enough of an API key to recognize it without printing it.
func maskKey(key string) string {
	switch {
	case key == "":
		return "not required"
	case len(key) <= 8:
		return "set"
	default:
		return key[:4] + "…" + key[len(key)-4:]
	}
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM requests recorded yet.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-12s  %-28s  %6s  %6s  %7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))

		for _, e := range events {
			ok := color.GreenString("✓")
			if !e.Success {
				ok = color.RedString("✗")
			}
			fmt.Printf("%-5d  %-19s  %-12s  %-28s  %6d  %6d  %7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of one event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		label := color.New(color.Bold)
		label.Print("ID:        ")
		fmt.Println(e.ID)
		label.Print("Time:      ")
		fmt.Println(e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		label.Print("Provider:  ")
		fmt.Println(e.Provider)
		label.Print("Model:     ")
		fmt.Println(e.Model)
		label.Print("Purpose:   ")
		fmt.Println(e.Purpose)
		label.Print("Tokens:    ")
		fmt.Printf("%d in / %d out\n", e.InputTokens, e.OutputTokens)
		label.Print("Latency:   ")
		fmt.Printf("%dms\n", e.LatencyMs)
		label.Print("Success:   ")
		fmt.Println(e.Success)
		if e.ErrorMessage != "" {
			label.Print("Error:     ")
			color.Red(e.ErrorMessage)
		}

		printSection("REQUEST", e.RequestBody)
		printSection("RESPONSE", e.ResponseBody)
		return nil
	},
}

func printSection(title, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Println()
	fmt.Println(sep)
	fmt.Println(title)
	fmt.Println(sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		stats, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		heading := color.New(color.FgCyan, color.Bold)
		heading.Println("Usage by Purpose")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		fmt.Println(strings.Repeat("─", 72))

		var totalCalls, totalIn, totalOut int
		for _, st := range stats {
			total := st.InputTokens + st.OutputTokens
			fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
				st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, total, st.AvgLatencyMs)
			totalCalls += st.Calls
			totalIn += st.InputTokens
			totalOut += st.OutputTokens
		}

		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n",
			"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)

		modelUsage, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(modelUsage) == 0 {
			return nil
		}

		fmt.Println()
		heading.Println("Estimated Cost (USD)")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n",
			"Model", "Calls", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 72))

		var totalCost float64
		var unknownModels []string
		for _, mu := range modelUsage {
			cost := llm.LookupCost(mu.Model)
			if cost == nil {
				unknownModels = append(unknownModels, mu.Model)
				fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
					truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
				continue
			}
			c := cost.Cost(mu.InputTokens, mu.OutputTokens)
			totalCost += c
			fmt.Printf("%-32s  %6d  %10d  %10d  %9s\n",
				truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
		}

		fmt.Println(strings.Repeat("─", 72))
		label := "TOTAL"
		if len(unknownModels) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %6s  %10s  %10s  %9s\n", label, "", "", "", formatCost(totalCost))

		if len(unknownModels) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmStatusCmd.Flags().Bool("check", false, "Send a test request through the provider")
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (quiz-gen, lesson, chat, diagram)")

	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
