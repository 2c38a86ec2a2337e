package domain

import "time"

type RecordType string

const (
	RecordTypeJournal RecordType = "journal"
	RecordTypeExpense RecordType = "expense"
	RecordTypeInvoice RecordType = "invoice"
)

type Violation struct {
	RuleID    string    `json:"ruleId"`
	RuleName  string    `json:"ruleName"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidationResult is produced fresh per validation call. IsValid is
// computed from critical violations only: medium and high findings do
// not fail the record.
type ValidationResult struct {
	IsValid    bool        `json:"isValid"`
	Violations []Violation `json:"violations"`
	Warnings   []Violation `json:"warnings"`
	Errors     []Violation `json:"errors"`
	Timestamp  time.Time   `json:"timestamp"`
}

// ViolationLogEntry records a failed validation in the violation queue.
// Passing validations are not logged.
type ViolationLogEntry struct {
	EntryID    string      `json:"entryId"`
	EntryType  RecordType  `json:"entryType"`
	Violations []Violation `json:"violations"`
	Timestamp  time.Time   `json:"timestamp"`
}

// BucketedViolation tags a violation with the entry it was logged under.
type BucketedViolation struct {
	EntryID string `json:"entryId"`
	Violation
}

// ViolationReport buckets recent violations by severity. Violations with
// a severity outside critical/high/medium (error) are counted in
// TotalViolations but appear in no bucket.
type ViolationReport struct {
	TotalViolations int                 `json:"totalViolations"`
	CriticalCount   int                 `json:"criticalCount"`
	HighCount       int                 `json:"highCount"`
	MediumCount     int                 `json:"mediumCount"`
	Critical        []BucketedViolation `json:"critical"`
	High            []BucketedViolation `json:"high"`
	Medium          []BucketedViolation `json:"medium"`
}
