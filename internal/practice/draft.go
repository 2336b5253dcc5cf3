package practice

import (
	"strings"

	"github.com/hscprep/hscprep/internal/gateway"
)

// MistakeKind is the student's classification of an incorrect answer:
// a careless slip or a conceptual misunderstanding.
type MistakeKind string

const (
	MistakeSilly   MistakeKind = "silly"
	MistakeConcept MistakeKind = "concept"
)

// ErrorType maps the kind onto the backend's wire value.
func (k MistakeKind) ErrorType() gateway.ErrorType {
	switch k {
	case MistakeSilly:
		return gateway.ErrorTypeSilly
	case MistakeConcept:
		return gateway.ErrorTypeConcept
	}
	return ""
}

// GradeStep is the derived grading progress for the current question.
type GradeStep int

const (
	StepUngraded    GradeStep = iota // answer revealed, no self-grade yet
	StepPickKind                     // graded incorrect, mistake kind missing
	StepWriteNote                    // kind chosen, note still empty
	StepSubmitReady                  // all required fields present
)

// Draft collects the self-grade for exactly one question. At most one
// draft exists per session; it is reset whenever the session advances.
// Kind and Note are only meaningful while IsCorrect is false; grading
// correct clears them.
type Draft struct {
	QuestionID int
	IsCorrect  *bool
	Kind       MistakeKind
	Note       string
}

// Step derives the grading progress from the fields present. A note of
// only whitespace does not count as written.
func (d *Draft) Step() GradeStep {
	switch {
	case d.IsCorrect == nil:
		return StepUngraded
	case *d.IsCorrect:
		return StepSubmitReady
	case d.Kind == "":
		return StepPickKind
	case strings.TrimSpace(d.Note) == "":
		return StepWriteNote
	default:
		return StepSubmitReady
	}
}

// reset clears the draft for the given question.
func (d *Draft) reset(questionID int) {
	*d = Draft{QuestionID: questionID}
}
