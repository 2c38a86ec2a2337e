package engine

import (
	"strconv"
	"time"

	"finaudit/internal/domain"
)

const defaultViolationReportLimit = 100

// auditTrail is a bounded ring over audit entries. Appending beyond the
// capacity evicts the single oldest entry in O(1); insertion order is
// preserved.
type auditTrail struct {
	buf   []domain.AuditEntry
	head  int
	count int
}

func newAuditTrail(capacity int) *auditTrail {
	return &auditTrail{buf: make([]domain.AuditEntry, capacity)}
}

func (t *auditTrail) append(entry domain.AuditEntry) {
	if t.count == len(t.buf) {
		t.buf[t.head] = entry
		t.head = (t.head + 1) % len(t.buf)
		return
	}
	t.buf[(t.head+t.count)%len(t.buf)] = entry
	t.count++
}

func (t *auditTrail) len() int {
	return t.count
}

// snapshot returns the entries oldest first.
func (t *auditTrail) snapshot() []domain.AuditEntry {
	out := make([]domain.AuditEntry, t.count)
	for i := 0; i < t.count; i++ {
		out[i] = t.buf[(t.head+i)%len(t.buf)]
	}
	return out
}

func (e *Engine) logAudit(action, targetID, description string) {
	now := time.Now()
	e.trail.append(domain.AuditEntry{
		ID:          "AUDIT_" + strconv.FormatInt(now.UnixMilli(), 10),
		Action:      action,
		TargetID:    targetID,
		Description: description,
		Timestamp:   now,
		User:        domain.AuditUser,
	})
}

// AuditTrailLen reports the number of retained audit entries.
func (e *Engine) AuditTrailLen() int {
	return e.trail.len()
}

// GetAuditTrail returns the entries matching the filter, most recent
// first.
func (e *Engine) GetAuditTrail(filter domain.AuditFilter) []domain.AuditEntry {
	snapshot := e.trail.snapshot()
	out := make([]domain.AuditEntry, 0, len(snapshot))
	for i := len(snapshot) - 1; i >= 0; i-- {
		if filter.Matches(&snapshot[i]) {
			out = append(out, snapshot[i])
		}
	}
	return out
}

// GetViolationReport buckets the most recent failed validations by
// severity. The queue is truncated to limit before bucketing, so the
// per-severity lists never cover more than the window. Violations whose
// severity is not critical, high or medium (rule evaluation errors) are
// counted in TotalViolations but dropped from the buckets.
func (e *Engine) GetViolationReport(limit int) *domain.ViolationReport {
	if limit <= 0 {
		limit = defaultViolationReportLimit
	}

	recent := make([]domain.ViolationLogEntry, 0, limit)
	for i := len(e.violations) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, e.violations[i])
	}

	report := &domain.ViolationReport{
		Critical: []domain.BucketedViolation{},
		High:     []domain.BucketedViolation{},
		Medium:   []domain.BucketedViolation{},
	}

	for _, entry := range recent {
		for _, violation := range entry.Violations {
			report.TotalViolations++
			tagged := domain.BucketedViolation{EntryID: entry.EntryID, Violation: violation}
			switch violation.Severity {
			case domain.SeverityCritical:
				report.Critical = append(report.Critical, tagged)
			case domain.SeverityHigh:
				report.High = append(report.High, tagged)
			case domain.SeverityMedium:
				report.Medium = append(report.Medium, tagged)
			}
		}
	}

	report.CriticalCount = len(report.Critical)
	report.HighCount = len(report.High)
	report.MediumCount = len(report.Medium)

	return report
}

// ViolationLog returns the full violation queue, oldest first.
func (e *Engine) ViolationLog() []domain.ViolationLogEntry {
	out := make([]domain.ViolationLogEntry, len(e.violations))
	copy(out, e.violations)
	return out
}
