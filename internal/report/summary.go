// Package report derives study statistics from the attempt history kept
// by the gateway. Everything here is a pure computation over the fetched
// attempt list; the AI analysis text that accompanies a report is
// produced by the gateway and treated as opaque.
package report

import (
	"math"
	"sort"

	"github.com/hscprep/hscprep/internal/gateway"
)

// UnknownTopic is the grouping key for attempts whose question carries
// no topic.
const UnknownTopic = "Unknown"

// Summary holds the statistics derived from one attempt history fetch.
// It is recomputed on every load and never persisted.
type Summary struct {
	TotalQuestions int
	TotalCorrect   int
	Accuracy       int
	SillyMistakes  int
	ConceptErrors  int
	Topics         []TopicStats
}

// TopicStats is the per-topic slice of the attempt history.
type TopicStats struct {
	Topic     string
	Attempted int
	Correct   int
	Accuracy  int
}

// Build computes a Summary from the full attempt list. Attempts whose
// error type is absent on the wire count toward totals but are neither
// correct nor a classified mistake. The topic rows come back sorted by
// name so repeated builds over the same input are identical.
func Build(attempts []gateway.Attempt) Summary {
	s := Summary{TotalQuestions: len(attempts)}

	byTopic := make(map[string]*TopicStats)
	for _, a := range attempts {
		switch a.ErrorType {
		case gateway.ErrorTypeNone:
			s.TotalCorrect++
		case gateway.ErrorTypeSilly:
			s.SillyMistakes++
		case gateway.ErrorTypeConcept:
			s.ConceptErrors++
		}

		topic := a.Question.Topic
		if topic == "" {
			topic = UnknownTopic
		}
		row, ok := byTopic[topic]
		if !ok {
			row = &TopicStats{Topic: topic}
			byTopic[topic] = row
		}
		row.Attempted++
		if a.ErrorType == gateway.ErrorTypeNone {
			row.Correct++
		}
	}

	s.Accuracy = percent(s.TotalCorrect, s.TotalQuestions)

	s.Topics = make([]TopicStats, 0, len(byTopic))
	for _, row := range byTopic {
		row.Accuracy = percent(row.Correct, row.Attempted)
		s.Topics = append(s.Topics, *row)
	}
	sort.Slice(s.Topics, func(i, j int) bool {
		return s.Topics[i].Topic < s.Topics[j].Topic
	})

	return s
}

// percent rounds correct/total to a whole percentage, 0 for an empty
// total rather than NaN.
func percent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
