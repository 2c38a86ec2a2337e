package domain

import "time"

type Severity string
type CheckFrequency string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	// SeverityError marks a rule whose evaluation itself failed, not a
	// domain violation.
	SeverityError Severity = "error"

	FrequencyDaily     CheckFrequency = "daily"
	FrequencyWeekly    CheckFrequency = "weekly"
	FrequencyMonthly   CheckFrequency = "monthly"
	FrequencyQuarterly CheckFrequency = "quarterly"
)

// Rule is the strategy evaluated against a single journal entry. A rule
// must be pure; a panicking rule is recovered by the validator and
// reported as an error-severity violation.
type Rule interface {
	Evaluate(entry *JournalEntry) bool
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(entry *JournalEntry) bool

func (f RuleFunc) Evaluate(entry *JournalEntry) bool {
	return f(entry)
}

// ValidationRule is a registered entry-level rule.
type ValidationRule struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Rule        Rule      `json:"-"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ComplianceRule applies to aggregate ledger state rather than a single
// record.
type ComplianceRule struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Frequency   CheckFrequency `json:"checkFrequency"`
	IsEnabled   bool           `json:"isEnabled"`
	CreatedAt   time.Time      `json:"createdAt"`
}
