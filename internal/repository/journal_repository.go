package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"finaudit/internal/domain"
	"finaudit/pkg/logger"
)

type JournalRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewJournalRepository(db *sql.DB, logger logger.Logger) domain.JournalRepository {
	return &JournalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *JournalRepository) FindByID(id string) (*domain.JournalEntry, error) {
	query := `
		SELECT id, entry_date, description, attachments
		FROM journals
		WHERE id = $1
	`

	entry, err := r.scanJournal(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Journal entry could not be read", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("journal entry could not be read: %w", err)
	}

	if err := r.loadItems(entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *JournalRepository) FindAll() ([]*domain.JournalEntry, error) {
	query := `
		SELECT id, entry_date, description, attachments
		FROM journals
		ORDER BY entry_date
	`

	return r.queryJournals(query)
}

func (r *JournalRepository) FindByDateRange(start, end time.Time) ([]*domain.JournalEntry, error) {
	query := `
		SELECT id, entry_date, description, attachments
		FROM journals
		WHERE entry_date >= $1 AND entry_date <= $2
		ORDER BY entry_date
	`

	return r.queryJournals(query, start, end)
}

func (r *JournalRepository) Create(entry *domain.JournalEntry) error {
	attachments, err := json.Marshal(entry.Attachments)
	if err != nil {
		return fmt.Errorf("attachments could not be serialized: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("transaction could not be started: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO journals (id, entry_date, description, attachments) VALUES ($1, $2, $3, $4)",
		entry.ID,
		entry.Date,
		entry.Description,
		string(attachments),
	)
	if err != nil {
		r.logger.Error("Journal entry could not be created", map[string]interface{}{"id": entry.ID, "error": err.Error()})
		return fmt.Errorf("journal entry could not be created: %w", err)
	}

	for _, item := range entry.Items {
		_, err = tx.Exec(
			"INSERT INTO journal_items (id, journal_id, account_id, item_type, amount) VALUES ($1, $2, $3, $4, $5)",
			item.ID,
			entry.ID,
			item.AccountID,
			string(item.Type),
			item.Amount,
		)
		if err != nil {
			r.logger.Error("Journal item could not be created", map[string]interface{}{"id": item.ID, "error": err.Error()})
			return fmt.Errorf("journal item could not be created: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("transaction could not be committed: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *JournalRepository) scanJournal(row rowScanner) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	var attachments string

	err := row.Scan(&entry.ID, &entry.Date, &entry.Description, &attachments)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(attachments), &entry.Attachments); err != nil {
		return nil, fmt.Errorf("attachments could not be decoded: %w", err)
	}

	return &entry, nil
}

func (r *JournalRepository) queryJournals(query string, args ...interface{}) ([]*domain.JournalEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Journal entries could not be listed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("journal entries could not be listed: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.JournalEntry, 0)
	for rows.Next() {
		entry, err := r.scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("journal row could not be read: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("journal rows could not be read: %w", err)
	}

	for _, entry := range entries {
		if err := r.loadItems(entry); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

func (r *JournalRepository) loadItems(entry *domain.JournalEntry) error {
	query := `
		SELECT id, account_id, item_type, amount
		FROM journal_items
		WHERE journal_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(query, entry.ID)
	if err != nil {
		r.logger.Error("Journal items could not be listed", map[string]interface{}{"journal_id": entry.ID, "error": err.Error()})
		return fmt.Errorf("journal items could not be listed: %w", err)
	}
	defer rows.Close()

	items := make([]domain.JournalItem, 0)
	for rows.Next() {
		var item domain.JournalItem
		var itemType string

		if err := rows.Scan(&item.ID, &item.AccountID, &itemType, &item.Amount); err != nil {
			return fmt.Errorf("journal item row could not be read: %w", err)
		}

		item.Type = domain.ItemType(itemType)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("journal item rows could not be read: %w", err)
	}

	entry.Items = items
	return nil
}
