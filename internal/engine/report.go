package engine

import (
	"encoding/json"
	"fmt"
	"time"

	"finaudit/internal/domain"
)

const (
	recentViolationCount = 10
	exportTrailCount     = 50
)

// GenerateValidationSummary snapshots the registry and the full violation
// history. The by-severity breakdown counts every violation ever logged,
// not a window.
func (e *Engine) GenerateValidationSummary() *domain.ValidationSummary {
	summary := &domain.ValidationSummary{
		TotalRules:           len(e.rules),
		ActiveRules:          e.activeRuleCount(),
		TotalViolations:      len(e.violations),
		ViolationsBySeverity: make(map[domain.Severity]int),
		RecentViolations:     []domain.ViolationLogEntry{},
	}

	for _, entry := range e.violations {
		for _, violation := range entry.Violations {
			summary.ViolationsBySeverity[violation.Severity]++
		}
	}

	for i := len(e.violations) - 1; i >= 0 && len(summary.RecentViolations) < recentViolationCount; i-- {
		summary.RecentViolations = append(summary.RecentViolations, e.violations[i])
	}

	return summary
}

// ExportComplianceReport bundles a fresh compliance check, a fresh
// validation summary and the last 50 audit entries. "json" yields a
// pretty-printed string and "html" a minimal static document; any other
// format returns the raw bundle rather than failing.
func (e *Engine) ExportComplianceReport(format string) (any, error) {
	compliance := e.CheckFinancialCompliance()
	summary := e.GenerateValidationSummary()

	trail := e.GetAuditTrail(domain.AuditFilter{})
	if len(trail) > exportTrailCount {
		trail = trail[:exportTrailCount]
	}

	report := &domain.ExportedReport{
		GeneratedAt:        time.Now(),
		ComplianceOverview: compliance,
		ValidationSummary:  summary,
		AuditTrail:         trail,
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("report serialization failed: %w", err)
		}
		return string(data), nil
	case "html":
		return renderHTML(report), nil
	default:
		return report, nil
	}
}

func renderHTML(report *domain.ExportedReport) string {
	passed := 0
	for _, check := range report.ComplianceOverview.Checks {
		if check.Passed {
			passed++
		}
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Compliance Report</title></head>
<body>
<h1>Compliance Report</h1>
<p>Generated: %s</p>
<p>Compliance score: %.0f%%</p>
<p>Checks passed: %d/%d</p>
<p>Violations: %d</p>
<p>Rules: %d total, %d active</p>
<p>Logged validation failures: %d</p>
</body>
</html>`,
		report.GeneratedAt.Format(time.RFC3339),
		report.ComplianceOverview.ComplianceScore,
		passed,
		len(report.ComplianceOverview.Checks),
		len(report.ComplianceOverview.Violations),
		report.ValidationSummary.TotalRules,
		report.ValidationSummary.ActiveRules,
		report.ValidationSummary.TotalViolations,
	)
}
