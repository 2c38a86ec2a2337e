package domain

// Ledger is the financial system the engine audits. It is read-only from
// the engine's point of view: balances are owned by the collaborator and
// Round is used for display rounding in report details only, never for
// comparison logic.
type Ledger interface {
	Account(id string) (*Account, bool)
	Accounts() []*Account
	Journal(id string) (*JournalEntry, bool)
	Journals() []*JournalEntry
	AccountBalance(id string) float64
	Round(n float64) float64
}
