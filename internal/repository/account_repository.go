package repository

import (
	"database/sql"
	"fmt"

	"finaudit/internal/domain"
	"finaudit/pkg/logger"
)

type AccountRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewAccountRepository(db *sql.DB, logger logger.Logger) domain.AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AccountRepository) FindByID(id string) (*domain.Account, error) {
	query := `
		SELECT id, name, type, sub_type, balance, is_active
		FROM accounts
		WHERE id = $1
	`

	var account domain.Account
	var accountType string

	err := r.db.QueryRow(query, id).Scan(
		&account.ID,
		&account.Name,
		&accountType,
		&account.SubType,
		&account.Balance,
		&account.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Account could not be read", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("account could not be read: %w", err)
	}

	account.Type = domain.AccountType(accountType)
	return &account, nil
}

func (r *AccountRepository) FindAll() ([]*domain.Account, error) {
	query := `
		SELECT id, name, type, sub_type, balance, is_active
		FROM accounts
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Error("Accounts could not be listed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("accounts could not be listed: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		var accountType string

		err := rows.Scan(
			&account.ID,
			&account.Name,
			&accountType,
			&account.SubType,
			&account.Balance,
			&account.IsActive,
		)
		if err != nil {
			r.logger.Error("Account row could not be read", map[string]interface{}{"error": err.Error()})
			return nil, fmt.Errorf("account row could not be read: %w", err)
		}

		account.Type = domain.AccountType(accountType)
		accounts = append(accounts, &account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("account rows could not be read: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Create(account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, name, type, sub_type, balance, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(
		query,
		account.ID,
		account.Name,
		string(account.Type),
		account.SubType,
		account.Balance,
		account.IsActive,
	)
	if err != nil {
		r.logger.Error("Account could not be created", map[string]interface{}{"id": account.ID, "error": err.Error()})
		return fmt.Errorf("account could not be created: %w", err)
	}

	return nil
}

func (r *AccountRepository) UpdateBalance(id string, balance float64) error {
	query := "UPDATE accounts SET balance = $1 WHERE id = $2"

	result, err := r.db.Exec(query, balance, id)
	if err != nil {
		r.logger.Error("Account balance could not be updated", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("account balance could not be updated: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}

	return nil
}
