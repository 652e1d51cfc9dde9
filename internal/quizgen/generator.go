package quizgen

import "context"

// Generator produces quiz question sets using an LLM provider.
type Generator interface {
	// Generate produces a full question set for the given request.
	// Returns a validated QuestionSet or an error.
	// All configured validators are run on the set before returning.
	Generate(ctx context.Context, req Request) (*QuestionSet, error)
}
