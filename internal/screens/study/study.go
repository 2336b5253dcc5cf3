// Package study drives one practice session for a chosen topic: fetch
// the topic's questions, walk the user through working, revealing,
// self-grading and annotating each one, and upload graded mistakes.
package study

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/hscprep/hscprep/internal/assets"
	"github.com/hscprep/hscprep/internal/gateway"
	"github.com/hscprep/hscprep/internal/practice"
	"github.com/hscprep/hscprep/internal/router"
	"github.com/hscprep/hscprep/internal/screen"
	"github.com/hscprep/hscprep/internal/ui/components"
	"github.com/hscprep/hscprep/internal/ui/layout"
)

const (
	kindSillyLabel   = "silly mistake"
	kindConceptLabel = "concept error"
)

// StudyScreen implements screen.Screen for an active practice session.
type StudyScreen struct {
	client gateway.Client
	lib    *assets.Library
	log    logrus.FieldLogger

	topic   string
	loading bool
	loadErr string

	sess    *practice.Session
	notice  string
	kindRow components.ChoiceRow
	note    components.TextInput
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.StatusProvider = (*StudyScreen)(nil)

// New creates a study screen for the given topic. The question fetch
// starts on Init.
func New(client gateway.Client, lib *assets.Library, log logrus.FieldLogger, topic string) *StudyScreen {
	return &StudyScreen{
		client:  client,
		lib:     lib,
		log:     log,
		topic:   topic,
		loading: true,
		kindRow: components.NewChoiceRow(kindSillyLabel, kindConceptLabel),
		note:    components.NewTextInput("What went wrong?", 200),
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	return s.fetchQuestions()
}

func (s *StudyScreen) Title() string {
	return s.topic
}

// Status exposes the per-question clock in the header.
func (s *StudyScreen) Status() string {
	if s.sess == nil || s.sess.Phase == practice.PhaseCompleted {
		return ""
	}
	return s.sess.Clock()
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.loading {
		return nil
	}
	if s.loadErr != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Home"}}
	}
	if s.sess == nil {
		return nil
	}
	if s.notice != "" {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Retry"},
			{Key: "any key", Description: "Dismiss"},
		}
	}
	if s.sess.Submitting {
		return []layout.KeyHint{{Key: "Esc", Description: "Home"}}
	}

	home := layout.KeyHint{Key: "Esc", Description: "Home"}
	switch s.sess.Phase {
	case practice.PhaseWorking:
		return []layout.KeyHint{{Key: "Enter", Description: "Show answer"}, home}
	case practice.PhaseRevealed:
		if s.noteActive() {
			hints := []layout.KeyHint{}
			if s.sess.SubmitReady() {
				hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Save & next"})
			}
			return append(hints, home)
		}
		switch s.sess.Step() {
		case practice.StepUngraded:
			return []layout.KeyHint{
				{Key: "Y", Description: "Got it"},
				{Key: "N", Description: "Missed it"},
				home,
			}
		case practice.StepPickKind:
			return []layout.KeyHint{
				{Key: "←/→", Description: "Choose"},
				{Key: "Enter", Description: "Confirm"},
				home,
			}
		case practice.StepSubmitReady:
			return []layout.KeyHint{
				{Key: "Enter", Description: "Next question"},
				{Key: "N", Description: "Re-grade"},
				home,
			}
		}
	}
	return []layout.KeyHint{home}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsMsg:
		return s.handleQuestions(msg)
	case clockTickMsg:
		return s.handleClockTick()
	case attemptSubmittedMsg:
		return s.handleSubmitted(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and similar component messages.
	if s.noteActive() {
		var cmd tea.Cmd
		s.note, cmd = s.note.Update(msg)
		return s, cmd
	}
	return s, nil
}

// noteActive reports whether the mistake-note input owns the keyboard.
// Derived from the draft so it can never disagree with the session.
func (s *StudyScreen) noteActive() bool {
	return s.sess != nil &&
		s.sess.Phase == practice.PhaseRevealed &&
		s.sess.Draft.IsCorrect != nil && !*s.sess.Draft.IsCorrect &&
		s.sess.Draft.Kind != ""
}

func (s *StudyScreen) handleQuestions(msg questionsMsg) (screen.Screen, tea.Cmd) {
	if !s.loading {
		return s, nil
	}
	s.loading = false

	if msg.Err != nil {
		s.loadErr = fmt.Sprintf("Couldn't load questions for %s. Check that the backend is running.", s.topic)
		s.log.WithError(msg.Err).WithField("topic", s.topic).Warn("question fetch failed")
		return s, nil
	}
	if len(msg.Questions) == 0 {
		s.loadErr = fmt.Sprintf("No questions available for %s yet.", s.topic)
		return s, nil
	}

	s.sess = practice.New(s.topic, msg.Questions, time.Now())
	s.log.WithFields(logrus.Fields{
		"session_id": s.sess.ID,
		"topic":      s.topic,
		"questions":  s.sess.Total(),
	}).Info("session started")
	return s, clockCmd()
}

func (s *StudyScreen) handleClockTick() (screen.Screen, tea.Cmd) {
	if s.sess == nil || s.sess.Phase == practice.PhaseCompleted {
		return s, nil
	}
	s.sess.Tick()
	return s, clockCmd()
}

func (s *StudyScreen) handleSubmitted(msg attemptSubmittedMsg) (screen.Screen, tea.Cmd) {
	if s.sess == nil || !s.sess.Submitting {
		return s, nil
	}
	s.sess.EndSubmit()

	if msg.Err != nil {
		s.notice = "Couldn't save your attempt."
		s.log.WithError(msg.Err).WithField("session_id", s.sess.ID).Warn("attempt submit failed")
		return s, nil
	}

	s.log.WithFields(logrus.Fields{
		"session_id": s.sess.ID,
		"attempt_id": msg.AttemptID,
	}).Info("attempt saved")
	return s.advance()
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// The start fetch cannot be abandoned; everything after it can.
	if s.loading {
		return s, nil
	}
	if s.loadErr != "" {
		return s, goHome()
	}
	if s.sess == nil {
		return s, nil
	}

	// Submit-failure notice: enter retries, anything else dismisses.
	if s.notice != "" {
		s.notice = ""
		if key == "enter" {
			return s.submit()
		}
		return s, nil
	}

	if key == "esc" {
		s.log.WithFields(logrus.Fields{
			"session_id": s.sess.ID,
			"position":   s.sess.Position(),
		}).Info("session abandoned")
		return s, goHome()
	}

	if s.sess.Submitting {
		return s, nil
	}

	switch s.sess.Phase {
	case practice.PhaseWorking:
		if key == "enter" {
			s.sess.Reveal()
		}
		return s, nil
	case practice.PhaseRevealed:
		return s.handleGradingKey(msg, key)
	}
	return s, nil
}

func (s *StudyScreen) handleGradingKey(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	if s.noteActive() {
		if key == "enter" {
			if s.sess.SubmitReady() {
				return s.submit()
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.note, cmd = s.note.Update(msg)
		s.sess.SetNote(s.note.Value())
		return s, cmd
	}

	switch key {
	case "y":
		s.sess.GradeCorrect()
		return s, nil
	case "n":
		s.sess.GradeIncorrect()
		return s, nil
	case "enter":
		switch s.sess.Step() {
		case practice.StepPickKind:
			kind := practice.MistakeSilly
			if s.kindRow.Selected == 1 {
				kind = practice.MistakeConcept
			}
			if s.sess.ChooseKind(kind) {
				return s, s.note.Init()
			}
		case practice.StepSubmitReady:
			return s.submit()
		}
		return s, nil
	}

	if s.sess.Step() == practice.StepPickKind {
		var cmd tea.Cmd
		s.kindRow, cmd = s.kindRow.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit advances directly for correct grades and uploads incorrect
// ones first. A correct grade never reaches the gateway.
func (s *StudyScreen) submit() (screen.Screen, tea.Cmd) {
	if !s.sess.SubmitReady() {
		return s, nil
	}
	if !s.sess.NeedsUpload() {
		return s.advance()
	}
	sub, ok := s.sess.BeginSubmit()
	if !ok {
		return s, nil
	}
	return s, s.submitCmd(sub)
}

func (s *StudyScreen) advance() (screen.Screen, tea.Cmd) {
	if done := s.sess.Advance(); done {
		s.log.WithFields(logrus.Fields{
			"session_id": s.sess.ID,
			"questions":  s.sess.Total(),
		}).Info("session completed")
		return s, goHome()
	}
	s.note.Reset()
	s.kindRow = components.NewChoiceRow(kindSillyLabel, kindConceptLabel)
	return s, nil
}

func (s *StudyScreen) fetchQuestions() tea.Cmd {
	client, topic := s.client, s.topic
	return func() tea.Msg {
		questions, err := client.QuestionsByTopic(context.Background(), topic)
		return questionsMsg{Questions: questions, Err: err}
	}
}

func (s *StudyScreen) submitCmd(sub gateway.Submission) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		id, err := client.SubmitAttempt(context.Background(), sub)
		return attemptSubmittedMsg{AttemptID: id, Err: err}
	}
}

func goHome() tea.Cmd {
	return func() tea.Msg { return router.HomeScreenMsg{} }
}

// clockCmd returns a 1-second tick command.
func clockCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
