package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionsByTopic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/questions_by_topic/Linear graphs", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"question_id": 4, "topic": "Linear graphs", "question_img": "lg_q4.png", "answer_img": "lg_a4.png"},
			{"question_id": 9, "topic": "Linear graphs", "question_img": "lg_q9.png", "answer_img": "lg_a9.png"}
		]`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	questions, err := client.QuestionsByTopic(context.Background(), "Linear graphs")
	require.NoError(t, err)

	require.Len(t, questions, 2)
	assert.Equal(t, 4, questions[0].ID)
	assert.Equal(t, "lg_q4.png", questions[0].QuestionImage)
	assert.Equal(t, "lg_a9.png", questions[1].AnswerImage)
	assert.Equal(t, "Linear graphs", questions[1].Topic)
}

func TestQuestionsByTopicNotFoundIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "No questions found for this topic"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	questions, err := client.QuestionsByTopic(context.Background(), "Trigonometry")
	require.NoError(t, err)
	assert.Empty(t, questions)
	assert.NotNil(t, questions)
}

func TestQuestionsByTopicServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	_, err := client.QuestionsByTopic(context.Background(), "Algebra")
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, "questions_by_topic", se.Op)
}

func TestQuestionsByTopicTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewHTTPClient(server.URL, time.Second)
	_, err := client.QuestionsByTopic(context.Background(), "Algebra")
	require.Error(t, err)

	var re *RequestError
	assert.ErrorAs(t, err, &re)
}

func TestTopics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/topics", r.URL.Path)
		_, _ = w.Write([]byte(`["Trigonometry", "Algebra", "Fractions"]`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	topics, err := client.Topics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Trigonometry", "Algebra", "Fractions"}, topics)
}

func TestSubmitAttempt(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/attempt", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"message": "Attempt created successfully", "id": 17}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	id, err := client.SubmitAttempt(context.Background(), Submission{
		QuestionID:  4,
		ErrorType:   ErrorTypeConcept,
		Explanation: "forgot ratio test",
	})
	require.NoError(t, err)

	assert.Equal(t, 17, id)
	assert.Equal(t, float64(4), received["question_id"])
	assert.Equal(t, "concept", received["error_type"])
	assert.Equal(t, "forgot ratio test", received["explanation"])
}

func TestSubmitAttemptRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Invalid error_type"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	_, err := client.SubmitAttempt(context.Background(), Submission{QuestionID: 1, ErrorType: "bogus"})
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "Invalid error_type", se.Detail)
}

func TestAttempts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/attempts", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{
				"id": 1,
				"question_id": 4,
				"error_type": "silly",
				"explanation": "dropped a minus sign",
				"timestamp": "2025-11-02T09:15:30.123456Z",
				"question": {"topic": "Algebra", "question_id": 4}
			},
			{
				"id": 2,
				"question_id": 9,
				"error_type": null,
				"explanation": null,
				"timestamp": "2025-11-02T09:20:00Z",
				"question": {"topic": "Series", "question_id": 9}
			}
		]`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	attempts, err := client.Attempts(context.Background())
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.Equal(t, ErrorTypeSilly, attempts[0].ErrorType)
	assert.Equal(t, "Algebra", attempts[0].Question.Topic)
	assert.Equal(t, 2025, attempts[0].Timestamp.Year())

	// Null error_type decodes to the empty string, not "none".
	assert.Equal(t, ErrorType(""), attempts[1].ErrorType)
	assert.Empty(t, attempts[1].Explanation)
}

func TestGenerateReport(t *testing.T) {
	var received struct {
		Attempts []map[string]any `json:"attempts"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate-report", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"report": "**Overall Summary:**\nKeep practising."}`))
	}))
	defer server.Close()

	attempts := []Attempt{
		{
			ID:          1,
			QuestionID:  4,
			ErrorType:   ErrorTypeConcept,
			Explanation: "mixed up sin and cos",
			Question:    QuestionRef{Topic: "Trigonometry", QuestionID: 4},
		},
	}

	client := NewHTTPClient(server.URL, 5*time.Second)
	report, err := client.GenerateReport(context.Background(), attempts)
	require.NoError(t, err)

	assert.Contains(t, report, "Overall Summary")
	require.Len(t, received.Attempts, 1)
	assert.Equal(t, "concept", received.Attempts[0]["error_type"])

	// The nested question reference must survive the round trip; the
	// backend groups mistakes by it.
	question, ok := received.Attempts[0]["question"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Trigonometry", question["topic"])
}

func TestGenerateReportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 5*time.Second)
	_, err := client.GenerateReport(context.Background(), nil)
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)
}

func TestMockRecordsCalls(t *testing.T) {
	mock := NewMock().
		StubQuestions([]Question{{ID: 1, Topic: "Series"}}, nil).
		StubSubmit(5, nil)

	questions, err := mock.QuestionsByTopic(context.Background(), "Series")
	require.NoError(t, err)
	assert.Len(t, questions, 1)

	_, err = mock.SubmitAttempt(context.Background(), Submission{QuestionID: 1, ErrorType: ErrorTypeSilly})
	require.NoError(t, err)

	assert.Equal(t, []string{"Series"}, mock.QuestionCalls)
	require.Len(t, mock.SubmitCalls, 1)
	assert.Equal(t, ErrorTypeSilly, mock.SubmitCalls[0].ErrorType)

	// Exhausted queues surface as errors.
	_, err = mock.QuestionsByTopic(context.Background(), "Series")
	var re *RequestError
	assert.ErrorAs(t, err, &re)
}

func TestMockExhaustion(t *testing.T) {
	mock := NewMock()
	_, err := mock.Attempts(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNoStub))
}
