package service

import (
	"encoding/json"
	"time"

	"finaudit/internal/domain"
	"finaudit/pkg/logger"
)

// EventPersistingObserver writes engine notifications to the event
// store. Store failures are logged and swallowed so that persistence
// problems never fail a validation.
type EventPersistingObserver struct {
	repo   domain.EventStoreRepository
	logger logger.Logger
}

func NewEventPersistingObserver(repo domain.EventStoreRepository, logger logger.Logger) *EventPersistingObserver {
	return &EventPersistingObserver{
		repo:   repo,
		logger: logger,
	}
}

func (o *EventPersistingObserver) ValidationFailed(entryID string, entryType domain.RecordType, result *domain.ValidationResult) {
	payload := struct {
		EntryType domain.RecordType        `json:"entryType"`
		Result    *domain.ValidationResult `json:"result"`
	}{
		EntryType: entryType,
		Result:    result,
	}
	o.persist(entryID, domain.EventTypeValidationFailed, payload)
}

func (o *EventPersistingObserver) ComplianceChecked(report *domain.ComplianceReport) {
	o.persist("ledger", domain.EventTypeComplianceChecked, report)
}

func (o *EventPersistingObserver) persist(subjectID string, eventType domain.EventType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		o.logger.Error("Event payload serialization failed", map[string]interface{}{
			"event_type": string(eventType),
			"subject_id": subjectID,
			"error":      err.Error(),
		})
		return
	}

	event := &domain.Event{
		SubjectID: subjectID,
		EventType: eventType,
		EventData: data,
		CreatedAt: time.Now(),
	}

	if err := o.repo.Save(event); err != nil {
		o.logger.Error("Event store write failed", map[string]interface{}{
			"event_type": string(eventType),
			"subject_id": subjectID,
			"error":      err.Error(),
		})
	}
}
