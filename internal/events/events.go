package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of a domain event
type EventType string

const (
	EventAssessmentGenerated EventType = "assessment.generated"
	EventAttemptGraded       EventType = "attempt.graded"
)

const (
	eventSource  = "assessment-engine"
	eventVersion = "1.0"
)

// Event is the envelope published for every domain event.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Source    string         `json:"source"`
	Version   string         `json:"version"`
	Timestamp time.Time      `json:"timestamp"`
	UserID    string         `json:"user_id"`
	Data      map[string]any `json:"data"`
}

func NewEvent(eventType EventType, userID string, data map[string]any) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Data:      data,
	}
}

// AssessmentGenerated builds the event emitted after a generated assessment is stored.
func AssessmentGenerated(userID string, assessmentID uint, totalQuestions, timeLimit int) *Event {
	return NewEvent(EventAssessmentGenerated, userID, map[string]any{
		"assessment_id":   assessmentID,
		"total_questions": totalQuestions,
		"time_limit":      timeLimit,
	})
}

// AttemptGraded builds the event emitted after an attempt is graded.
func AttemptGraded(userID string, assessmentID, attemptID uint, totalScore float64, hasReport bool) *Event {
	return NewEvent(EventAttemptGraded, userID, map[string]any{
		"assessment_id": assessmentID,
		"attempt_id":    attemptID,
		"total_score":   totalScore,
		"has_report":    hasReport,
	})
}
