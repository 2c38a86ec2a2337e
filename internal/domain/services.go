package domain

import "time"

// BatchStats reports the outcome of a batch validation run through the
// worker pool.
type BatchStats struct {
	Submitted      int64
	Completed      int64
	Failed         int64
	Rejected       int64
	AvgProcessTime time.Duration
	QueueLength    int
	QueueCapacity  int
}

type ValidationService interface {
	AddValidationRule(id string, rule ValidationRule) (*ValidationRule, error)
	AddComplianceRule(id string, rule ComplianceRule) (*ComplianceRule, error)
	SetRuleActive(id string, active bool) error

	ValidateJournalEntry(entry *JournalEntry) *ValidationResult
	ValidateExpense(expense *Expense) *ValidationResult
	ValidateInvoice(invoice *Invoice) *ValidationResult
	ValidateBatch(entries []*JournalEntry) (processed int, failed int, err error)

	GetViolationReport(limit int) *ViolationReport
	GetAuditTrail(filter AuditFilter) []AuditEntry
	GenerateValidationSummary() *ValidationSummary

	PoolStats() (BatchStats, error)
	Shutdown()
}

type ComplianceService interface {
	CheckFinancialCompliance() *ComplianceReport
	ExportComplianceReport(format string) (any, error)
}
