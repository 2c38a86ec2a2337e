package engine

import (
	"strings"
	"time"

	"finaudit/internal/domain"
)

// Default journal rule identifiers.
const (
	RuleBalancedJournal       = "BALANCED_JOURNAL"
	RuleValidDate             = "VALID_DATE"
	RuleActiveAccount         = "ACTIVE_ACCOUNT"
	RuleDescriptionRequired   = "DESCRIPTION_REQUIRED"
	RulePositiveAmount        = "POSITIVE_AMOUNT"
	RuleDocumentationRequired = "DOCUMENTATION_REQUIRED"
)

// maxEntryAge is how far in the past a journal entry may be dated.
const maxEntryAge = 365 * 24 * time.Hour

// BalancedJournalRule requires the debit and credit sides of an entry to
// agree within the balance epsilon.
type BalancedJournalRule struct{}

func (BalancedJournalRule) Evaluate(entry *domain.JournalEntry) bool {
	diff := entry.DebitTotal() - entry.CreditTotal()
	if diff < 0 {
		diff = -diff
	}
	return diff < balanceEpsilon
}

// ValidDateRule requires the entry date to be no later than now and no
// more than a year in the past.
type ValidDateRule struct{}

func (ValidDateRule) Evaluate(entry *domain.JournalEntry) bool {
	now := time.Now()
	if entry.Date.After(now) {
		return false
	}
	return now.Sub(entry.Date) <= maxEntryAge
}

// ActiveAccountRule requires every referenced account to exist in the
// ledger and be active.
type ActiveAccountRule struct {
	Ledger domain.Ledger
}

func (r ActiveAccountRule) Evaluate(entry *domain.JournalEntry) bool {
	for _, item := range entry.Items {
		account, ok := r.Ledger.Account(item.AccountID)
		if !ok || !account.IsActive {
			return false
		}
	}
	return true
}

// DescriptionRequiredRule requires a non-whitespace description.
type DescriptionRequiredRule struct{}

func (DescriptionRequiredRule) Evaluate(entry *domain.JournalEntry) bool {
	return strings.TrimSpace(entry.Description) != ""
}

// PositiveAmountRule requires every line item amount to be positive.
type PositiveAmountRule struct{}

func (PositiveAmountRule) Evaluate(entry *domain.JournalEntry) bool {
	for _, item := range entry.Items {
		if item.Amount <= 0 {
			return false
		}
	}
	return true
}

// DocumentationRequiredRule requires at least one attachment.
type DocumentationRequiredRule struct{}

func (DocumentationRequiredRule) Evaluate(entry *domain.JournalEntry) bool {
	return len(entry.Attachments) > 0
}

func (e *Engine) registerDefaultRules() error {
	defaults := []domain.ValidationRule{
		{
			ID:          RuleBalancedJournal,
			Name:        "Balanced Journal Entry",
			Description: "Debit and credit totals must be equal",
			Severity:    domain.SeverityCritical,
			Rule:        BalancedJournalRule{},
		},
		{
			ID:          RuleValidDate,
			Name:        "Valid Entry Date",
			Description: "Entry date must not be in the future or older than one year",
			Severity:    domain.SeverityHigh,
			Rule:        ValidDateRule{},
		},
		{
			ID:          RuleActiveAccount,
			Name:        "Active Account",
			Description: "Referenced accounts must exist and be active",
			Severity:    domain.SeverityCritical,
			Rule:        ActiveAccountRule{Ledger: e.ledger},
		},
		{
			ID:          RuleDescriptionRequired,
			Name:        "Description Required",
			Description: "Entry description must not be empty",
			Severity:    domain.SeverityMedium,
			Rule:        DescriptionRequiredRule{},
		},
		{
			ID:          RulePositiveAmount,
			Name:        "Positive Amount",
			Description: "Line item amounts must be greater than zero",
			Severity:    domain.SeverityCritical,
			Rule:        PositiveAmountRule{},
		},
		{
			ID:          RuleDocumentationRequired,
			Name:        "Documentation Required",
			Description: "Entry must have at least one attachment",
			Severity:    domain.SeverityHigh,
			Rule:        DocumentationRequiredRule{},
		},
	}

	for _, rule := range defaults {
		if _, err := e.AddValidationRule(rule.ID, rule); err != nil {
			return err
		}
	}

	return nil
}
