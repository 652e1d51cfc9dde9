package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/devika/tutora/internal/llm"
)

const diagramSystemPrompt = `You are an educational AI that explains concepts with clear ASCII diagrams.`

const (
	diagramMaxTokens   = 300
	diagramTemperature = 0.4
)

// Diagram draws an ASCII diagram explaining a concept. kind picks the
// diagram style ("flowchart", "hierarchy", "cycle"); empty means
// flowchart.
func (s *Service) Diagram(ctx context.Context, concept, kind string) (string, error) {
	if kind == "" {
		kind = "flowchart"
	}
	if s.provider == nil {
		return FallbackDiagram(concept), nil
	}

	ctx = llm.WithPurpose(ctx, "diagram")

	prompt := fmt.Sprintf("Create a simple ASCII %s diagram explaining %s. Use box-drawing characters and arrows. Keep it under 20 lines and 60 columns. Output only the diagram with no surrounding prose.", kind, concept)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: diagramSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   diagramMaxTokens,
		Temperature: diagramTemperature,
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		slog.Warn("diagram generation failed, serving fallback", "concept", concept, "error", err)
		return FallbackDiagram(concept), nil
	}

	out := stripFences(string(resp.Content))
	if strings.TrimSpace(out) == "" {
		return FallbackDiagram(concept), nil
	}
	return out, nil
}

// stripFences removes a surrounding markdown code fence, which models
// add despite being told not to.
func stripFences(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "```") {
		lines = lines[1:]
	}
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n")
}
