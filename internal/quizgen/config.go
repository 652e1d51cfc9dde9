package quizgen

import (
	"os"
	"strconv"
)

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated question set. They execute in order; the first failure
	// stops the pipeline.
	Validators []Validator

	// QuestionCount is the number of questions in a quiz.
	QuestionCount int

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxContentChars is the maximum number of lesson content runes
	// included in the prompt.
	MaxContentChars int

	// MaxAttempts is how many times generation runs before giving up
	// when a validator rejects the set with a retryable failure.
	MaxAttempts int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&CountValidator{},
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		QuestionCount:   5,
		MaxTokens:       1500,
		Temperature:     0.5,
		MaxContentChars: 500,
		MaxAttempts:     3,
	}
}

// ConfigFromEnv returns DefaultConfig with environment overrides applied.
// TUTORA_QUIZ_QUESTIONS sets the quiz length, clamped to [3, 10]; values
// that do not parse are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("TUTORA_QUIZ_QUESTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			if n < 3 {
				n = 3
			}
			if n > 10 {
				n = 10
			}
			cfg.QuestionCount = n
		}
	}
	return cfg
}
