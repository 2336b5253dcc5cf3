package practice

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hscprep/hscprep/internal/gateway"
)

// Phase is the sub-state of the current question within a session.
type Phase int

const (
	PhaseWorking   Phase = iota // question shown, answer hidden
	PhaseRevealed               // answer visible, grading in progress
	PhaseCompleted              // every question graded and submitted
)

// Session drives one continuous practice pass through a topic's
// question list. It owns no I/O: screens call the transition methods
// from their event handlers and perform the network calls themselves.
type Session struct {
	// ID correlates this session's log entries.
	ID string

	// Topic is the topic the questions were fetched for.
	Topic string

	// Questions is the ordered list being worked through. Immutable
	// for the session's lifetime.
	Questions []gateway.Question

	// Index is the current question. Invariant: 0 <= Index <
	// len(Questions) while Phase != PhaseCompleted.
	Index int

	// Phase is the current question's phase.
	Phase Phase

	// StartedAt is when the session began.
	StartedAt time.Time

	// Elapsed is whole seconds spent on the current question. Reset
	// to zero each time a new question enters PhaseWorking.
	Elapsed int

	// Draft is the grading state for the current question.
	Draft Draft

	// Submitting is true while an attempt POST is in flight. The
	// submit action stays unavailable until the response arrives.
	Submitting bool
}

// New creates a session over the fetched question list. The caller
// must ensure questions is non-empty; an empty fetch result is an
// error state, not a session.
func New(topic string, questions []gateway.Question, now time.Time) *Session {
	s := &Session{
		ID:        uuid.New().String(),
		Topic:     topic,
		Questions: questions,
		StartedAt: now,
		Phase:     PhaseWorking,
	}
	s.Draft.reset(questions[0].ID)
	return s
}

// Current returns the question being worked on. Only valid while the
// session is not completed.
func (s *Session) Current() gateway.Question {
	return s.Questions[s.Index]
}

// Total returns the number of questions in the session.
func (s *Session) Total() int {
	return len(s.Questions)
}

// Position returns the 1-based number of the current question.
func (s *Session) Position() int {
	return s.Index + 1
}

// Step returns the grading progress of the current draft.
func (s *Session) Step() GradeStep {
	return s.Draft.Step()
}

// Reveal shows the answer for the current question. Fires only from
// PhaseWorking; the answer is never revealed automatically.
func (s *Session) Reveal() bool {
	if s.Phase != PhaseWorking {
		return false
	}
	s.Phase = PhaseRevealed
	return true
}

// GradeCorrect records a correct self-grade. Any previously chosen
// mistake kind or note is discarded.
func (s *Session) GradeCorrect() bool {
	if s.Phase != PhaseRevealed || s.Submitting {
		return false
	}
	correct := true
	s.Draft.IsCorrect = &correct
	s.Draft.Kind = ""
	s.Draft.Note = ""
	return true
}

// GradeIncorrect records an incorrect self-grade. The mistake kind and
// note must follow before the draft becomes submit-ready.
func (s *Session) GradeIncorrect() bool {
	if s.Phase != PhaseRevealed || s.Submitting {
		return false
	}
	correct := false
	s.Draft.IsCorrect = &correct
	return true
}

// ChooseKind records the mistake classification. Only meaningful after
// an incorrect grade.
func (s *Session) ChooseKind(kind MistakeKind) bool {
	if s.Phase != PhaseRevealed || s.Submitting {
		return false
	}
	if s.Draft.IsCorrect == nil || *s.Draft.IsCorrect {
		return false
	}
	if kind != MistakeSilly && kind != MistakeConcept {
		return false
	}
	s.Draft.Kind = kind
	return true
}

// SetNote records the mistake note as the student types. Ignored until
// a mistake kind has been chosen.
func (s *Session) SetNote(note string) {
	if s.Draft.IsCorrect == nil || *s.Draft.IsCorrect || s.Draft.Kind == "" {
		return
	}
	s.Draft.Note = note
}

// SubmitReady reports whether the advance action is available: the
// answer is revealed, the grade is complete for its branch, and no
// submission is in flight.
func (s *Session) SubmitReady() bool {
	return s.Phase == PhaseRevealed && !s.Submitting && s.Draft.Step() == StepSubmitReady
}

// NeedsUpload reports whether submitting the current draft requires a
// gateway call. Correct answers are never reported.
func (s *Session) NeedsUpload() bool {
	return s.SubmitReady() && s.Draft.IsCorrect != nil && !*s.Draft.IsCorrect
}

// BeginSubmit marks an attempt POST in flight and returns the payload
// to send. It refuses when the draft does not need an upload or one is
// already pending, so a submission cannot be issued twice.
func (s *Session) BeginSubmit() (gateway.Submission, bool) {
	if !s.NeedsUpload() {
		return gateway.Submission{}, false
	}
	s.Submitting = true
	return gateway.Submission{
		QuestionID:  s.Draft.QuestionID,
		ErrorType:   s.Draft.Kind.ErrorType(),
		Explanation: strings.TrimSpace(s.Draft.Note),
	}, true
}

// EndSubmit clears the in-flight flag once the response has arrived,
// successful or not.
func (s *Session) EndSubmit() {
	s.Submitting = false
}

// Advance moves to the next question after a successful submission (or
// immediately for a correct grade). The draft and the question clock
// reset; the next question starts in PhaseWorking. Returns true when
// the session is complete. No effect unless the draft is submit-ready.
func (s *Session) Advance() bool {
	if !s.SubmitReady() {
		return false
	}

	if s.Index+1 < len(s.Questions) {
		s.Index++
		s.Phase = PhaseWorking
		s.Elapsed = 0
		s.Draft.reset(s.Current().ID)
		return false
	}

	s.Phase = PhaseCompleted
	return true
}

// Tick advances the question clock by one second. The clock stops once
// the session completes.
func (s *Session) Tick() {
	if s.Phase == PhaseCompleted {
		return
	}
	s.Elapsed++
}

// Clock renders the question clock as mm:ss.
func (s *Session) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.Elapsed/60, s.Elapsed%60)
}
