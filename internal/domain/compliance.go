package domain

import "time"

const (
	ViolationTypeAccountingEquation = "ACCOUNTING_EQUATION"
	ViolationTypeLiquidity          = "LIQUIDITY"
	ViolationTypeDebtRatio          = "DEBT_RATIO"
	ViolationTypeSuspiciousActivity = "SUSPICIOUS_ACTIVITY"
)

type ComplianceCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Details string `json:"details"`
}

type ComplianceViolation struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Details  any      `json:"details,omitempty"`
}

// SuspiciousItem describes a journal line item whose amount exceeds the
// anomaly threshold.
type SuspiciousItem struct {
	JournalID     string    `json:"journalId"`
	ItemID        string    `json:"itemId"`
	Amount        float64   `json:"amount"`
	AverageAmount float64   `json:"averageAmount"`
	Multiplier    float64   `json:"multiplier"`
	Timestamp     time.Time `json:"timestamp"`
	Reason        string    `json:"reason"`
}

type Recommendation struct {
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Action   string `json:"action"`
}

// ComplianceReport is recomputed on every audit invocation and never
// persisted. The score counts only the structural checks present in
// Checks; suspicious-activity detection surfaces in Violations alone.
type ComplianceReport struct {
	Timestamp       time.Time             `json:"timestamp"`
	Checks          []ComplianceCheck     `json:"checks"`
	Violations      []ComplianceViolation `json:"violations"`
	Recommendations []Recommendation      `json:"recommendations"`
	ComplianceScore float64               `json:"complianceScore"`
}

type ValidationSummary struct {
	TotalRules           int                 `json:"totalRules"`
	ActiveRules          int                 `json:"activeRules"`
	TotalViolations      int                 `json:"totalViolations"`
	ViolationsBySeverity map[Severity]int    `json:"violationsByType"`
	RecentViolations     []ViolationLogEntry `json:"recentViolations"`
}

// ExportedReport bundles a fresh compliance check, a fresh validation
// summary and the tail of the audit trail.
type ExportedReport struct {
	GeneratedAt        time.Time          `json:"generatedAt"`
	ComplianceOverview *ComplianceReport  `json:"complianceOverview"`
	ValidationSummary  *ValidationSummary `json:"validationSummary"`
	AuditTrail         []AuditEntry       `json:"auditTrail"`
}
