package domain

import "time"

const (
	ActionRuleAdded           = "RULE_ADDED"
	ActionRuleActivated       = "RULE_ACTIVATED"
	ActionRuleDeactivated     = "RULE_DEACTIVATED"
	ActionComplianceRuleAdded = "COMPLIANCE_RULE_ADDED"

	AuditUser = "system"
)

// AuditEntry records an administrative action against the rule registry.
// The trail is bounded: the oldest entry is evicted once the capacity is
// exceeded.
type AuditEntry struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	TargetID    string    `json:"targetId"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	User        string    `json:"user"`
}

// AuditFilter narrows an audit trail query. All fields are optional and
// combine with AND; zero times disable the range bounds.
type AuditFilter struct {
	Action    string
	TargetID  string
	StartDate time.Time
	EndDate   time.Time
}

// Matches reports whether the entry satisfies every set filter field.
func (f AuditFilter) Matches(entry *AuditEntry) bool {
	if f.Action != "" && entry.Action != f.Action {
		return false
	}
	if f.TargetID != "" && entry.TargetID != f.TargetID {
		return false
	}
	if !f.StartDate.IsZero() && entry.Timestamp.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && entry.Timestamp.After(f.EndDate) {
		return false
	}
	return true
}
