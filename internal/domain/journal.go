package domain

import "time"

type AccountType string
type ItemType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"

	// Accounts carrying this sub-type participate in the liquidity check.
	AccountSubTypeCurrent = "current"

	ItemTypeDebit  ItemType = "debit"
	ItemTypeCredit ItemType = "credit"
)

type Account struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     AccountType `json:"type"`
	SubType  string      `json:"sub_type,omitempty"`
	Balance  float64     `json:"balance"`
	IsActive bool        `json:"is_active"`
}

type JournalItem struct {
	ID        string   `json:"id"`
	AccountID string   `json:"account_id"`
	Type      ItemType `json:"type"`
	Amount    float64  `json:"amount"`
}

type JournalEntry struct {
	ID          string        `json:"id"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
	Attachments []string      `json:"attachments,omitempty"`
	Items       []JournalItem `json:"items"`
}

// DebitTotal sums the debit side of the entry.
func (e *JournalEntry) DebitTotal() float64 {
	var total float64
	for _, item := range e.Items {
		if item.Type == ItemTypeDebit {
			total += item.Amount
		}
	}
	return total
}

// CreditTotal sums the credit side of the entry.
func (e *JournalEntry) CreditTotal() float64 {
	var total float64
	for _, item := range e.Items {
		if item.Type == ItemTypeCredit {
			total += item.Amount
		}
	}
	return total
}

type AccountRepository interface {
	FindByID(id string) (*Account, error)
	FindAll() ([]*Account, error)
	Create(account *Account) error
	UpdateBalance(id string, balance float64) error
}

type JournalRepository interface {
	FindByID(id string) (*JournalEntry, error)
	FindAll() ([]*JournalEntry, error)
	FindByDateRange(start, end time.Time) ([]*JournalEntry, error)
	Create(entry *JournalEntry) error
}
