package domain

import "errors"

var (
	ErrInvalidRule     = errors.New("invalid rule definition")
	ErrRuleExists      = errors.New("rule already registered")
	ErrRuleNotFound    = errors.New("rule not found")
	ErrNilLedger       = errors.New("ledger is required")
	ErrAccountNotFound = errors.New("account not found")
	ErrJournalNotFound = errors.New("journal entry not found")
	ErrUnknownDriver   = errors.New("unknown database driver")
)
