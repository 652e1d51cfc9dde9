package quiz

import "errors"

// Controller errors. All are recoverable by the caller; none poison the
// session they were raised against. Match with errors.Is, since operations
// wrap these with the offending state or index for context.
var (
	// ErrEmptyQuestionSet rejects Start with no questions.
	ErrEmptyQuestionSet = errors.New("empty question set")

	// ErrInvalidQuestion rejects Start when a question's correct index does
	// not point into its own options, or it has fewer than two options.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrOptionOutOfRange rejects a selection index outside the current
	// question's options.
	ErrOptionOutOfRange = errors.New("option index out of range")

	// ErrNoSelection rejects a submit with no option chosen.
	ErrNoSelection = errors.New("no option selected")

	// ErrAlreadySubmitted rejects a second submit for the same question.
	ErrAlreadySubmitted = errors.New("answer already submitted")

	// ErrInvalidTransition rejects an operation not legal in the current state.
	ErrInvalidTransition = errors.New("invalid transition")
)
