package quizgen

import (
	"fmt"
	"strings"
)

// DuplicateValidator rejects sets that repeat a question prompt or reuse
// the same option text within a question. Comparison is case-insensitive
// and ignores surrounding whitespace.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicates" }

func (v *DuplicateValidator) Validate(set *QuestionSet, _ Request, _ Config) *ValidationError {
	seen := make(map[string]int, len(set.Questions))
	for i, q := range set.Questions {
		key := normalize(q.Prompt)
		if first, ok := seen[key]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d repeats question %d", i+1, first+1),
				Retryable: true,
			}
		}
		seen[key] = i

		opts := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			k := normalize(opt)
			if opts[k] {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d has duplicate option %q", i+1, opt),
					Retryable: true,
				}
			}
			opts[k] = true
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
