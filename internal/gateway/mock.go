package gateway

import (
	"context"
	"errors"
	"sync"
)

// Mock is a deterministic Client for tests and offline development.
// Canned results are served in FIFO order per method and every call is
// recorded. An exhausted queue yields a RequestError so missing stubs
// surface in tests instead of passing silently.
type Mock struct {
	mu sync.Mutex

	questions []questionsResult
	topics    []topicsResult
	submits   []submitResult
	attempts  []attemptsResult
	reports   []reportResult

	// Recorded calls, in order.
	QuestionCalls []string
	TopicsCalls   int
	SubmitCalls   []Submission
	AttemptsCalls int
	ReportCalls   [][]Attempt
}

type questionsResult struct {
	questions []Question
	err       error
}

type topicsResult struct {
	topics []string
	err    error
}

type submitResult struct {
	id  int
	err error
}

type attemptsResult struct {
	attempts []Attempt
	err      error
}

type reportResult struct {
	report string
	err    error
}

var _ Client = (*Mock)(nil)

// NewMock creates an empty Mock; stub the calls the test will make.
func NewMock() *Mock {
	return &Mock{}
}

// StubQuestions queues a QuestionsByTopic result.
func (m *Mock) StubQuestions(questions []Question, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, questionsResult{questions: questions, err: err})
	return m
}

// StubTopics queues a Topics result.
func (m *Mock) StubTopics(topics []string, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topics = append(m.topics, topicsResult{topics: topics, err: err})
	return m
}

// StubSubmit queues a SubmitAttempt result.
func (m *Mock) StubSubmit(id int, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submits = append(m.submits, submitResult{id: id, err: err})
	return m
}

// StubAttempts queues an Attempts result.
func (m *Mock) StubAttempts(attempts []Attempt, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, attemptsResult{attempts: attempts, err: err})
	return m
}

// StubReport queues a GenerateReport result.
func (m *Mock) StubReport(report string, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, reportResult{report: report, err: err})
	return m
}

func (m *Mock) QuestionsByTopic(_ context.Context, topic string) ([]Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QuestionCalls = append(m.QuestionCalls, topic)

	if len(m.questions) == 0 {
		return nil, &RequestError{Op: opQuestions, Err: errNoStub}
	}
	r := m.questions[0]
	m.questions = m.questions[1:]
	return r.questions, r.err
}

func (m *Mock) Topics(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TopicsCalls++

	if len(m.topics) == 0 {
		return nil, &RequestError{Op: opTopics, Err: errNoStub}
	}
	r := m.topics[0]
	m.topics = m.topics[1:]
	return r.topics, r.err
}

func (m *Mock) SubmitAttempt(_ context.Context, sub Submission) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SubmitCalls = append(m.SubmitCalls, sub)

	if len(m.submits) == 0 {
		return 0, &RequestError{Op: opSubmit, Err: errNoStub}
	}
	r := m.submits[0]
	m.submits = m.submits[1:]
	return r.id, r.err
}

func (m *Mock) Attempts(_ context.Context) ([]Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AttemptsCalls++

	if len(m.attempts) == 0 {
		return nil, &RequestError{Op: opAttempts, Err: errNoStub}
	}
	r := m.attempts[0]
	m.attempts = m.attempts[1:]
	return r.attempts, r.err
}

func (m *Mock) GenerateReport(_ context.Context, attempts []Attempt) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReportCalls = append(m.ReportCalls, attempts)

	if len(m.reports) == 0 {
		return "", &RequestError{Op: opReport, Err: errNoStub}
	}
	r := m.reports[0]
	m.reports = m.reports[1:]
	return r.report, r.err
}

var errNoStub = errors.New("mock: no canned response")
