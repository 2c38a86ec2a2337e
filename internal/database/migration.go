package database

import (
	"database/sql"
	"fmt"
	"time"

	"finaudit/pkg/logger"
)

type Migration struct {
	ID        int64
	Name      string
	AppliedAt time.Time
}

type MigrationService struct {
	db     *sql.DB
	driver string
	logger logger.Logger
}

func NewMigrationService(db *sql.DB, driver string, logger logger.Logger) *MigrationService {
	return &MigrationService{
		db:     db,
		driver: driver,
		logger: logger,
	}
}

func (m *MigrationService) InitMigrationTable() error {
	query := fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS migrations (
        id %s,
        name TEXT NOT NULL UNIQUE,
        applied_at TIMESTAMP NOT NULL
    )
    `, serialPrimaryKey(m.driver))

	_, err := m.db.Exec(query)
	if err != nil {
		m.logger.Error("Migration table could not be created", map[string]interface{}{"error": err.Error()})
		return err
	}

	return nil
}

func (m *MigrationService) IsMigrationApplied(name string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM migrations WHERE name = $1"
	err := m.db.QueryRow(query, name).Scan(&count)
	if err != nil {
		m.logger.Error("Migration status could not be checked", map[string]interface{}{"name": name, "error": err.Error()})
		return false, err
	}

	return count > 0, nil
}

func (m *MigrationService) RecordMigration(name string) error {
	query := "INSERT INTO migrations (name, applied_at) VALUES ($1, $2)"
	_, err := m.db.Exec(query, name, time.Now())
	if err != nil {
		m.logger.Error("Migration could not be recorded", map[string]interface{}{"name": name, "error": err.Error()})
		return err
	}

	return nil
}

func (m *MigrationService) ApplyMigration(name string, migrationFunc func(*sql.DB, string) error) error {
	applied, err := m.IsMigrationApplied(name)
	if err != nil {
		return err
	}

	if applied {
		return nil
	}

	m.logger.Info("Applying migration", map[string]interface{}{"name": name})

	if err = migrationFunc(m.db, m.driver); err != nil {
		m.logger.Error("Migration failed", map[string]interface{}{"name": name, "error": err.Error()})
		return err
	}

	if err = m.RecordMigration(name); err != nil {
		return err
	}

	return nil
}

func (m *MigrationService) RunMigrations() error {
	if err := m.InitMigrationTable(); err != nil {
		return fmt.Errorf("migration table could not be created: %w", err)
	}

	migrations := []struct {
		Name string
		Func func(*sql.DB, string) error
	}{
		{"create_accounts_table", CreateAccountsTable},
		{"create_journals_table", CreateJournalsTable},
		{"create_journal_items_table", CreateJournalItemsTable},
		{"create_engine_events_table", CreateEngineEventsTable},
	}

	for _, migration := range migrations {
		if err := m.ApplyMigration(migration.Name, migration.Func); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
	}

	return nil
}

// serialPrimaryKey returns the dialect-specific auto-increment column
// definition.
func serialPrimaryKey(driver string) string {
	if driver == "postgres" {
		return "id BIGSERIAL PRIMARY KEY"
	}
	return "id INTEGER PRIMARY KEY AUTOINCREMENT"
}

func CreateAccountsTable(db *sql.DB, driver string) error {
	query := `
    CREATE TABLE IF NOT EXISTS accounts (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        type TEXT NOT NULL,
        sub_type TEXT NOT NULL DEFAULT '',
        balance NUMERIC(18,2) NOT NULL DEFAULT 0,
        is_active BOOLEAN NOT NULL DEFAULT TRUE
    )
    `

	_, err := db.Exec(query)
	return err
}

func CreateJournalsTable(db *sql.DB, driver string) error {
	query := `
    CREATE TABLE IF NOT EXISTS journals (
        id TEXT PRIMARY KEY,
        entry_date TIMESTAMP NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        attachments TEXT NOT NULL DEFAULT '[]'
    )
    `

	_, err := db.Exec(query)
	return err
}

func CreateJournalItemsTable(db *sql.DB, driver string) error {
	query := `
    CREATE TABLE IF NOT EXISTS journal_items (
        id TEXT PRIMARY KEY,
        journal_id TEXT NOT NULL,
        account_id TEXT NOT NULL,
        item_type TEXT NOT NULL,
        amount NUMERIC(18,2) NOT NULL,
        FOREIGN KEY (journal_id) REFERENCES journals (id),
        FOREIGN KEY (account_id) REFERENCES accounts (id)
    )
    `

	_, err := db.Exec(query)
	return err
}

func CreateEngineEventsTable(db *sql.DB, driver string) error {
	query := fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS engine_events (
        %s,
        subject_id TEXT NOT NULL DEFAULT '',
        event_type TEXT NOT NULL,
        event_data TEXT NOT NULL,
        created_at TIMESTAMP NOT NULL
    )
    `, serialPrimaryKey(driver))

	_, err := db.Exec(query)
	return err
}
