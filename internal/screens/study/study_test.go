package study

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/hscprep/hscprep/internal/assets"
	"github.com/hscprep/hscprep/internal/gateway"
	"github.com/hscprep/hscprep/internal/logging"
	"github.com/hscprep/hscprep/internal/practice"
	"github.com/hscprep/hscprep/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func seriesQuestions() []gateway.Question {
	return []gateway.Question{
		{ID: 1, Topic: "Series", QuestionImage: "series_q1.png", AnswerImage: "series_a1.png"},
		{ID: 2, Topic: "Series", QuestionImage: "series_q2.png", AnswerImage: "series_a2.png"},
	}
}

func testStudyScreen(t *testing.T, mock *gateway.Mock, topic string) *StudyScreen {
	t.Helper()
	lib := assets.NewLibrary(t.TempDir(), t.TempDir())
	return New(mock, lib, logging.Discard(), topic)
}

// startSession runs the Init fetch and delivers its result.
func startSession(t *testing.T, s *StudyScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a fetch command from Init")
	}
	s.Update(cmd())
}

func typeText(s *StudyScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func TestStudyScreen_SeriesScenario(t *testing.T) {
	mock := gateway.NewMock().
		StubQuestions(seriesQuestions(), nil).
		StubSubmit(41, nil)

	s := testStudyScreen(t, mock, "Series")
	startSession(t, s)
	if s.sess == nil {
		t.Fatal("expected an active session")
	}

	// Q1: reveal, grade correct, advance. Must not touch the gateway.
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('y'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("correct grade must advance without a command")
	}
	if len(mock.SubmitCalls) != 0 {
		t.Fatalf("submit calls after correct grade = %d, want 0", len(mock.SubmitCalls))
	}
	if s.sess.Position() != 2 {
		t.Fatalf("Position = %d, want 2", s.sess.Position())
	}

	// Q2: reveal, grade incorrect, pick concept, write the note.
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('n'))
	s.Update(keyPress('l'))
	s.Update(specialKey(tea.KeyEnter))
	typeText(s, "forgot ratio test")

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	_, cmd = s.Update(cmd())
	if cmd == nil {
		t.Fatal("expected a navigation command after the last question")
	}
	if _, ok := cmd().(router.HomeScreenMsg); !ok {
		t.Error("expected completion to signal home")
	}

	if len(mock.SubmitCalls) != 1 {
		t.Fatalf("submit calls = %d, want exactly 1", len(mock.SubmitCalls))
	}
	sub := mock.SubmitCalls[0]
	if sub.QuestionID != 2 {
		t.Errorf("submitted QuestionID = %d, want 2", sub.QuestionID)
	}
	if sub.ErrorType != gateway.ErrorTypeConcept {
		t.Errorf("submitted ErrorType = %q, want concept", sub.ErrorType)
	}
	if sub.Explanation != "forgot ratio test" {
		t.Errorf("submitted Explanation = %q", sub.Explanation)
	}
	if s.sess.Phase != practice.PhaseCompleted {
		t.Errorf("Phase = %d, want PhaseCompleted", s.sess.Phase)
	}
}

func TestStudyScreen_EmptyTopicShowsError(t *testing.T) {
	mock := gateway.NewMock().StubQuestions([]gateway.Question{}, nil)

	s := testStudyScreen(t, mock, "Trigonometry")
	startSession(t, s)

	if s.sess != nil {
		t.Fatal("no session must exist for an empty topic")
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "Trigonometry") {
		t.Error("error view must name the topic")
	}

	// Any key returns home.
	_, cmd := s.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("expected a navigation command from the error view")
	}
	if _, ok := cmd().(router.HomeScreenMsg); !ok {
		t.Error("expected a home signal")
	}
}

func TestStudyScreen_FetchFailureShowsError(t *testing.T) {
	mock := gateway.NewMock().
		StubQuestions(nil, &gateway.RequestError{Op: "questions_by_topic"})

	s := testStudyScreen(t, mock, "Series")
	startSession(t, s)

	if s.sess != nil {
		t.Fatal("no session must exist after a failed fetch")
	}
	if !strings.Contains(s.View(80, 24), "Series") {
		t.Error("error view must name the topic")
	}
}

func TestStudyScreen_LoadingIgnoresEscape(t *testing.T) {
	mock := gateway.NewMock().StubQuestions(seriesQuestions(), nil)

	s := testStudyScreen(t, mock, "Series")
	cmd := s.Init()

	_, escCmd := s.Update(specialKey(tea.KeyEscape))
	if escCmd != nil {
		t.Error("the start fetch must not be abandonable")
	}
	if !s.loading {
		t.Error("still loading")
	}

	// The fetch result still lands normally.
	s.Update(cmd())
	if s.sess == nil {
		t.Error("expected a session after the fetch resolved")
	}
}

func TestStudyScreen_EscapeAbandons(t *testing.T) {
	mock := gateway.NewMock().StubQuestions(seriesQuestions(), nil)

	s := testStudyScreen(t, mock, "Series")
	startSession(t, s)

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.HomeScreenMsg); !ok {
		t.Error("expected a home signal")
	}
}

func TestStudyScreen_SubmitFailureKeepsPlace(t *testing.T) {
	mock := gateway.NewMock().
		StubQuestions(seriesQuestions(), nil).
		StubSubmit(0, &gateway.StatusError{Op: "attempt", Code: 500}).
		StubSubmit(42, nil)

	s := testStudyScreen(t, mock, "Series")
	startSession(t, s)

	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('n'))
	s.Update(specialKey(tea.KeyEnter)) // silly preselected
	typeText(s, "rushed")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	_, after := s.Update(cmd())
	if after != nil {
		t.Error("a failed submit must not navigate")
	}
	if s.notice == "" {
		t.Fatal("expected a failure notice")
	}
	if s.sess.Position() != 1 {
		t.Errorf("Position = %d, want 1 (no silent advance)", s.sess.Position())
	}

	// Enter retries the same submission.
	_, retry := s.Update(specialKey(tea.KeyEnter))
	if retry == nil {
		t.Fatal("expected a retry command")
	}
	s.Update(retry())
	if s.sess.Position() != 2 {
		t.Errorf("Position = %d after retry success, want 2", s.sess.Position())
	}
	if len(mock.SubmitCalls) != 2 {
		t.Errorf("submit calls = %d, want 2", len(mock.SubmitCalls))
	}
}

func TestStudyScreen_NoticeDismiss(t *testing.T) {
	mock := gateway.NewMock().
		StubQuestions(seriesQuestions(), nil).
		StubSubmit(0, &gateway.RequestError{Op: "attempt"})

	s := testStudyScreen(t, mock, "Series")
	startSession(t, s)

	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('n'))
	s.Update(specialKey(tea.KeyEnter))
	typeText(s, "oops")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())

	// A non-enter key dismisses the notice and stays submit-ready.
	_, dismiss := s.Update(keyPress('x'))
	if dismiss != nil {
		t.Error("dismissing must not issue a command")
	}
	if s.notice != "" {
		t.Error("notice still showing after dismiss")
	}
	if !s.sess.SubmitReady() {
		t.Error("draft must stay submit-ready for a manual retry")
	}
	if len(mock.SubmitCalls) != 1 {
		t.Errorf("submit calls = %d, want 1 (no auto-retry)", len(mock.SubmitCalls))
	}
}

func TestStudyScreen_SubmitDisabledInFlight(t *testing.T) {
	mock := gateway.NewMock().
		StubQuestions(seriesQuestions(), nil).
		StubSubmit(7, nil)

	s := testStudyScreen(t, mock, "Series")
	startSession(t, s)

	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('n'))
	s.Update(specialKey(tea.KeyEnter))
	typeText(s, "slipped")

	_, first := s.Update(specialKey(tea.KeyEnter))
	if first == nil {
		t.Fatal("expected a submit command")
	}

	// A second enter while in flight does nothing.
	_, second := s.Update(specialKey(tea.KeyEnter))
	if second != nil {
		t.Error("submit must be disabled while in flight")
	}

	s.Update(first())
	if len(mock.SubmitCalls) != 1 {
		t.Errorf("submit calls = %d, want 1", len(mock.SubmitCalls))
	}
}

func TestStudyScreen_ClockTicks(t *testing.T) {
	mock := gateway.NewMock().StubQuestions(seriesQuestions(), nil)

	s := testStudyScreen(t, mock, "Series")
	startSession(t, s)

	_, cmd := s.Update(clockTickMsg{})
	if cmd == nil {
		t.Error("expected the clock to re-arm while active")
	}
	if s.sess.Elapsed != 1 {
		t.Errorf("Elapsed = %d, want 1", s.sess.Elapsed)
	}
	if s.Status() != "00:01" {
		t.Errorf("Status = %q, want 00:01", s.Status())
	}
}

func TestStudyScreen_StaleMessagesIgnored(t *testing.T) {
	mock := gateway.NewMock().StubQuestions(seriesQuestions(), nil)

	s := testStudyScreen(t, mock, "Series")
	startSession(t, s)

	// A late fetch result or submit response changes nothing.
	_, cmd := s.Update(questionsMsg{Questions: nil, Err: nil})
	if cmd != nil || s.loadErr != "" {
		t.Error("late fetch result must be ignored")
	}
	_, cmd = s.Update(attemptSubmittedMsg{AttemptID: 9})
	if cmd != nil {
		t.Error("late submit response must be ignored")
	}
	if s.sess.Position() != 1 {
		t.Errorf("Position = %d, want 1", s.sess.Position())
	}
}

func TestStudyScreen_RevealRequiredBeforeGrading(t *testing.T) {
	mock := gateway.NewMock().StubQuestions(seriesQuestions(), nil)

	s := testStudyScreen(t, mock, "Series")
	startSession(t, s)

	// Grading keys do nothing while working.
	s.Update(keyPress('y'))
	if s.sess.Phase != practice.PhaseWorking {
		t.Error("grading must be unavailable before reveal")
	}
	view := s.View(80, 24)
	if strings.Contains(view, "Answer") {
		t.Error("answer panel must not render before reveal")
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.sess.Phase != practice.PhaseRevealed {
		t.Error("expected reveal on enter")
	}
	if !strings.Contains(s.View(80, 24), "Answer") {
		t.Error("answer panel must render after reveal")
	}
}
