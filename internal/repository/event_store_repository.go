package repository

import (
	"database/sql"
	"fmt"
	"time"

	"finaudit/internal/domain"
	"finaudit/pkg/logger"
)

type EventStoreRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewEventStoreRepository(db *sql.DB, logger logger.Logger) domain.EventStoreRepository {
	return &EventStoreRepository{
		db:     db,
		logger: logger,
	}
}

func (r *EventStoreRepository) Save(event *domain.Event) error {
	query := `
		INSERT INTO engine_events (subject_id, event_type, event_data, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	event.CreatedAt = time.Now()

	err := r.db.QueryRow(
		query,
		event.SubjectID,
		string(event.EventType),
		string(event.EventData),
		event.CreatedAt,
	).Scan(&event.ID)
	if err != nil {
		r.logger.Error("Engine event could not be saved", map[string]interface{}{
			"event_type": event.EventType,
			"error":      err.Error(),
		})
		return fmt.Errorf("engine event could not be saved: %w", err)
	}

	return nil
}

func (r *EventStoreRepository) FindByType(eventType domain.EventType) ([]*domain.Event, error) {
	query := `
		SELECT id, subject_id, event_type, event_data, created_at
		FROM engine_events
		WHERE event_type = $1
		ORDER BY created_at DESC
	`

	return r.queryEvents(query, string(eventType))
}

func (r *EventStoreRepository) FindByTimeRange(start, end time.Time) ([]*domain.Event, error) {
	query := `
		SELECT id, subject_id, event_type, event_data, created_at
		FROM engine_events
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC
	`

	return r.queryEvents(query, start, end)
}

func (r *EventStoreRepository) queryEvents(query string, args ...interface{}) ([]*domain.Event, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Engine events could not be listed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("engine events could not be listed: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		var event domain.Event
		var eventType, eventData string

		err := rows.Scan(
			&event.ID,
			&event.SubjectID,
			&eventType,
			&eventData,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("engine event row could not be read: %w", err)
		}

		event.EventType = domain.EventType(eventType)
		event.EventData = []byte(eventData)
		events = append(events, &event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("engine event rows could not be read: %w", err)
	}

	return events, nil
}
