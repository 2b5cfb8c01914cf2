// Package audit records structured events for scoring and review decisions,
// separate from Fiber's HTTP access logging.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventType identifies the kind of audit event.
type EventType string

const (
	// EventTermScored fires whenever a term is scored, whether or not the
	// result is persisted.
	EventTermScored EventType = "term.scored"
	// EventFeedbackSubmitted fires when a reviewer submits a correction.
	EventFeedbackSubmitted EventType = "feedback.submitted"
)

// Event is a single audit record.
type Event struct {
	ID        uuid.UUID              `json:"id"`
	EventType EventType              `json:"event_type"`
	Term      string                 `json:"term,omitempty"`
	Subject   string                 `json:"subject,omitempty"` // authenticated caller, if any
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Logger records audit events. It never returns an error: a logging
// failure must not fail the request that triggered it.
type Logger interface {
	Log(ctx context.Context, event Event)
}

// LogrusLogger writes audit events as structured log lines using the
// application's shared logrus logger.
type LogrusLogger struct {
	log *logrus.Logger
}

// NewLogrusLogger builds a LogrusLogger writing through log.
func NewLogrusLogger(log *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{log: log}
}

// Log writes event as a structured "audit" log line.
func (l *LogrusLogger) Log(_ context.Context, event Event) {
	fields := logrus.Fields{
		"audit_event": string(event.EventType),
		"event_id":    event.ID.String(),
	}
	if event.Term != "" {
		fields["term"] = event.Term
	}
	if event.Subject != "" {
		fields["subject"] = event.Subject
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}
	l.log.WithFields(fields).Info("audit event")
}

// NewTermScoredEvent builds an EventTermScored record.
func NewTermScoredEvent(term, subject string, score, confidence float64, band string) Event {
	return Event{
		ID:        uuid.New(),
		EventType: EventTermScored,
		Term:      term,
		Subject:   subject,
		Metadata: map[string]interface{}{
			"score":      score,
			"confidence": confidence,
			"band":       band,
		},
		CreatedAt: time.Now(),
	}
}

// NewFeedbackSubmittedEvent builds an EventFeedbackSubmitted record.
func NewFeedbackSubmittedEvent(term, subject, feedbackType string) Event {
	return Event{
		ID:        uuid.New(),
		EventType: EventFeedbackSubmitted,
		Term:      term,
		Subject:   subject,
		Metadata: map[string]interface{}{
			"feedback_type": feedbackType,
		},
		CreatedAt: time.Now(),
	}
}
