package ledger

import (
	"math"

	"finaudit/internal/domain"
	"finaudit/pkg/logger"
)

// SQL reads the ledger from the account and journal repositories on every
// call. The domain.Ledger interface carries no error returns, so query
// failures are logged and surface as an empty view.
type SQL struct {
	accounts domain.AccountRepository
	journals domain.JournalRepository
	logger   logger.Logger
}

func NewSQL(accounts domain.AccountRepository, journals domain.JournalRepository, logger logger.Logger) *SQL {
	return &SQL{
		accounts: accounts,
		journals: journals,
		logger:   logger,
	}
}

func (l *SQL) Account(id string) (*domain.Account, bool) {
	account, err := l.accounts.FindByID(id)
	if err != nil || account == nil {
		return nil, false
	}
	return account, true
}

func (l *SQL) Accounts() []*domain.Account {
	accounts, err := l.accounts.FindAll()
	if err != nil {
		l.logger.Error("Account lookup failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return accounts
}

func (l *SQL) Journal(id string) (*domain.JournalEntry, bool) {
	entry, err := l.journals.FindByID(id)
	if err != nil || entry == nil {
		return nil, false
	}
	return entry, true
}

func (l *SQL) Journals() []*domain.JournalEntry {
	entries, err := l.journals.FindAll()
	if err != nil {
		l.logger.Error("Journal lookup failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return entries
}

func (l *SQL) AccountBalance(id string) float64 {
	account, err := l.accounts.FindByID(id)
	if err != nil || account == nil {
		return 0
	}
	return account.Balance
}

func (l *SQL) Round(n float64) float64 {
	return math.Round(n*100) / 100
}
