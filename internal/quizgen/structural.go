package quizgen

import "fmt"

// optionsPerQuestion is the fixed number of answer options on every question.
const optionsPerQuestion = 4

// maxPromptChars caps the length of a single question prompt.
const maxPromptChars = 500

// CountValidator checks that the set has exactly the configured number
// of questions.
type CountValidator struct{}

func (v *CountValidator) Name() string { return "count" }

func (v *CountValidator) Validate(set *QuestionSet, _ Request, cfg Config) *ValidationError {
	if len(set.Questions) != cfg.QuestionCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d questions, got %d", cfg.QuestionCount, len(set.Questions)),
			Retryable: true,
		}
	}
	return nil
}

// StructuralValidator checks that every question has a non-empty prompt
// within length limits, exactly 4 non-empty options, and a correct index
// inside the option range.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(set *QuestionSet, _ Request, _ Config) *ValidationError {
	for i, q := range set.Questions {
		if q.Prompt == "" {
			return v.fail(i, "question text is empty")
		}
		if len(q.Prompt) > maxPromptChars {
			return v.fail(i, fmt.Sprintf("question text exceeds %d characters", maxPromptChars))
		}
		if len(q.Options) != optionsPerQuestion {
			return v.fail(i, fmt.Sprintf("expected %d options, got %d", optionsPerQuestion, len(q.Options)))
		}
		for j, opt := range q.Options {
			if opt == "" {
				return v.fail(i, fmt.Sprintf("option %d is empty", j))
			}
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return v.fail(i, fmt.Sprintf("correct_answer %d is out of range", q.Correct))
		}
	}
	return nil
}

func (v *StructuralValidator) fail(index int, msg string) *ValidationError {
	return &ValidationError{
		Validator: v.Name(),
		Message:   fmt.Sprintf("question %d: %s", index+1, msg),
		Retryable: true,
	}
}
