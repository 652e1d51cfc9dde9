package quiz

// State identifies where the controller is in the lifecycle of one attempt.
type State int

const (
	StateIdle              State = iota // no session
	StateAwaitingSelection              // question shown, nothing chosen yet
	StateAnswerSelected                 // a choice made, not yet submitted
	StateAnswerRevealed                 // submitted; correctness visible
	StateFinished                       // report available
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSelection:
		return "awaiting-selection"
	case StateAnswerSelected:
		return "answer-selected"
	case StateAnswerRevealed:
		return "answer-revealed"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}
