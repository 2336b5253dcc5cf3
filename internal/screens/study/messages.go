package study

import (
	"time"

	"github.com/hscprep/hscprep/internal/gateway"
)

// questionsMsg carries the result of the session-start fetch.
type questionsMsg struct {
	Questions []gateway.Question
	Err       error
}

// clockTickMsg advances the per-question clock once per second.
type clockTickMsg time.Time

// attemptSubmittedMsg carries the result of an attempt upload.
type attemptSubmittedMsg struct {
	AttemptID int
	Err       error
}
