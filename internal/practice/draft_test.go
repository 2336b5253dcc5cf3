package practice

import "testing"

func TestDraftStep(t *testing.T) {
	correct := true
	incorrect := false

	tests := []struct {
		name string
		d    Draft
		want GradeStep
	}{
		{"ungraded", Draft{QuestionID: 1}, StepUngraded},
		{"correct", Draft{QuestionID: 1, IsCorrect: &correct}, StepSubmitReady},
		{"incorrect no kind", Draft{QuestionID: 1, IsCorrect: &incorrect}, StepPickKind},
		{"incorrect no note", Draft{QuestionID: 1, IsCorrect: &incorrect, Kind: MistakeSilly}, StepWriteNote},
		{"incorrect blank note", Draft{QuestionID: 1, IsCorrect: &incorrect, Kind: MistakeSilly, Note: "  \t"}, StepWriteNote},
		{"incorrect complete", Draft{QuestionID: 1, IsCorrect: &incorrect, Kind: MistakeConcept, Note: "sign error"}, StepSubmitReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Step(); got != tt.want {
				t.Errorf("Step() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMistakeKindErrorType(t *testing.T) {
	if got := MistakeSilly.ErrorType(); got != "silly" {
		t.Errorf("MistakeSilly.ErrorType() = %q, want silly", got)
	}
	if got := MistakeConcept.ErrorType(); got != "concept" {
		t.Errorf("MistakeConcept.ErrorType() = %q, want concept", got)
	}
}
