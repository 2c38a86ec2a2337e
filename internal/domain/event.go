package domain

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventTypeValidationFailed  EventType = "validation_failed"
	EventTypeComplianceChecked EventType = "compliance_checked"
)

// Event is a persisted engine notification. The engine itself only calls
// observers; persistence is an observer concern.
type Event struct {
	ID        int64           `json:"id"`
	SubjectID string          `json:"subject_id"`
	EventType EventType       `json:"event_type"`
	EventData json.RawMessage `json:"event_data"`
	CreatedAt time.Time       `json:"created_at"`
}

type EventStoreRepository interface {
	Save(event *Event) error
	FindByType(eventType EventType) ([]*Event, error)
	FindByTimeRange(start, end time.Time) ([]*Event, error)
}
