package quizgen

import "fmt"

// Validator checks a generated question set for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for error
	// messages and logging), e.g. "count", "structural", "duplicates".
	Name() string

	// Validate checks the question set and returns nil if it passes.
	// Returns a ValidationError if the set fails the check. The
	// validator receives the originating request and the generator
	// config for context (e.g. the expected question count).
	Validate(set *QuestionSet, req Request, cfg Config) *ValidationError
}

// ValidationError describes why a question set failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
