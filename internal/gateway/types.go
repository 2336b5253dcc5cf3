package gateway

import "time"

// ErrorType classifies a recorded attempt. The backend stores "none"
// for correct answers; this client only ever submits silly or concept,
// since correct answers are not reported.
type ErrorType string

const (
	ErrorTypeNone    ErrorType = "none"
	ErrorTypeSilly   ErrorType = "silly"
	ErrorTypeConcept ErrorType = "concept"
)

// Question is one past-paper question, referenced by its image pair.
// Immutable once fetched; the list is fetched fresh per topic selection.
type Question struct {
	ID            int    `json:"question_id"`
	Topic         string `json:"topic"`
	QuestionImage string `json:"question_img"`
	AnswerImage   string `json:"answer_img"`
}

// QuestionRef is the nested question reference carried by attempts.
type QuestionRef struct {
	Topic      string `json:"topic"`
	QuestionID int    `json:"question_id"`
}

// Attempt is a persisted record of one graded answer. It is owned by
// the backend and read back for reporting; never mutated client-side.
// ErrorType decodes to the empty string when the backend stored null.
type Attempt struct {
	ID          int         `json:"id"`
	QuestionID  int         `json:"question_id"`
	ErrorType   ErrorType   `json:"error_type"`
	Explanation string      `json:"explanation"`
	Timestamp   time.Time   `json:"timestamp"`
	Question    QuestionRef `json:"question"`
}

// Submission is the payload for recording an incorrect answer.
type Submission struct {
	QuestionID  int       `json:"question_id"`
	ErrorType   ErrorType `json:"error_type"`
	Explanation string    `json:"explanation"`
}
