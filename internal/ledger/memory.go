// Package ledger provides the financial-system collaborator the engine
// audits: an in-memory implementation for tests and batch runs, and a
// SQL-backed implementation reading from the repositories.
package ledger

import (
	"math"

	"finaudit/internal/domain"
)

// Memory is an in-memory ledger with insertion-ordered iteration.
type Memory struct {
	accounts     map[string]*domain.Account
	accountOrder []string
	journals     map[string]*domain.JournalEntry
	journalOrder []string
}

func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[string]*domain.Account),
		journals: make(map[string]*domain.JournalEntry),
	}
}

func (m *Memory) AddAccount(account *domain.Account) {
	if _, ok := m.accounts[account.ID]; !ok {
		m.accountOrder = append(m.accountOrder, account.ID)
	}
	m.accounts[account.ID] = account
}

func (m *Memory) AddJournal(entry *domain.JournalEntry) {
	if _, ok := m.journals[entry.ID]; !ok {
		m.journalOrder = append(m.journalOrder, entry.ID)
	}
	m.journals[entry.ID] = entry
}

func (m *Memory) Account(id string) (*domain.Account, bool) {
	account, ok := m.accounts[id]
	return account, ok
}

func (m *Memory) Accounts() []*domain.Account {
	out := make([]*domain.Account, 0, len(m.accountOrder))
	for _, id := range m.accountOrder {
		out = append(out, m.accounts[id])
	}
	return out
}

func (m *Memory) Journal(id string) (*domain.JournalEntry, bool) {
	entry, ok := m.journals[id]
	return entry, ok
}

func (m *Memory) Journals() []*domain.JournalEntry {
	out := make([]*domain.JournalEntry, 0, len(m.journalOrder))
	for _, id := range m.journalOrder {
		out = append(out, m.journals[id])
	}
	return out
}

func (m *Memory) AccountBalance(id string) float64 {
	if account, ok := m.accounts[id]; ok {
		return account.Balance
	}
	return 0
}

// Round rounds to two decimals for report details.
func (m *Memory) Round(n float64) float64 {
	return math.Round(n*100) / 100
}
