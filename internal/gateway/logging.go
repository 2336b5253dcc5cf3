package gateway

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// LoggingClient is a decorator that records every gateway call.
type LoggingClient struct {
	inner Client
	log   logrus.FieldLogger
}

// WithLogging wraps a Client with structured call logging.
func WithLogging(c Client, log logrus.FieldLogger) Client {
	return &LoggingClient{inner: c, log: log}
}

func (l *LoggingClient) QuestionsByTopic(ctx context.Context, topic string) ([]Question, error) {
	start := time.Now()
	questions, err := l.inner.QuestionsByTopic(ctx, topic)
	l.done(opQuestions, start, err, logrus.Fields{"topic": topic, "count": len(questions)})
	return questions, err
}

func (l *LoggingClient) Topics(ctx context.Context) ([]string, error) {
	start := time.Now()
	topics, err := l.inner.Topics(ctx)
	l.done(opTopics, start, err, logrus.Fields{"count": len(topics)})
	return topics, err
}

func (l *LoggingClient) SubmitAttempt(ctx context.Context, sub Submission) (int, error) {
	start := time.Now()
	id, err := l.inner.SubmitAttempt(ctx, sub)
	l.done(opSubmit, start, err, logrus.Fields{
		"question_id": sub.QuestionID,
		"error_type":  string(sub.ErrorType),
	})
	return id, err
}

func (l *LoggingClient) Attempts(ctx context.Context) ([]Attempt, error) {
	start := time.Now()
	attempts, err := l.inner.Attempts(ctx)
	l.done(opAttempts, start, err, logrus.Fields{"count": len(attempts)})
	return attempts, err
}

func (l *LoggingClient) GenerateReport(ctx context.Context, attempts []Attempt) (string, error) {
	start := time.Now()
	report, err := l.inner.GenerateReport(ctx, attempts)
	l.done(opReport, start, err, logrus.Fields{"attempts": len(attempts)})
	return report, err
}

func (l *LoggingClient) done(op string, start time.Time, err error, fields logrus.Fields) {
	entry := l.log.WithField("op", op).
		WithField("duration_ms", time.Since(start).Milliseconds()).
		WithFields(fields)

	if err != nil {
		entry.WithError(err).Warn("gateway call failed")
		return
	}
	entry.Info("gateway call")
}
