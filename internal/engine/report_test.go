package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finaudit/internal/domain"
)

func TestGenerateValidationSummary(t *testing.T) {
	e := newTestEngine(t, nil)

	entry := validEntry()
	entry.Description = ""
	entry.Attachments = nil
	entry.Items[0].Amount = 999
	e.ValidateJournalEntry(entry)

	summary := e.GenerateValidationSummary()

	assert.Equal(t, 6, summary.TotalRules)
	assert.Equal(t, 6, summary.ActiveRules)
	assert.Equal(t, 1, summary.TotalViolations)
	assert.Equal(t, 1, summary.ViolationsBySeverity[domain.SeverityCritical])
	assert.Equal(t, 1, summary.ViolationsBySeverity[domain.SeverityHigh])
	assert.Equal(t, 1, summary.ViolationsBySeverity[domain.SeverityMedium])
	require.Len(t, summary.RecentViolations, 1)
	assert.Equal(t, "j-1", summary.RecentViolations[0].EntryID)
}

func TestGenerateValidationSummaryRecentWindow(t *testing.T) {
	e := newTestEngine(t, nil)

	for i := 0; i < 15; i++ {
		failEntry(e, fmt.Sprintf("j-%d", i))
	}

	summary := e.GenerateValidationSummary()

	// The severity breakdown covers the full history even though the
	// recent list is capped at ten.
	assert.Equal(t, 15, summary.TotalViolations)
	assert.Equal(t, 15, summary.ViolationsBySeverity[domain.SeverityCritical])
	require.Len(t, summary.RecentViolations, 10)
	assert.Equal(t, "j-14", summary.RecentViolations[0].EntryID)
}

func TestExportComplianceReportJSON(t *testing.T) {
	e := newTestEngine(t, balanceSheet(1000, 400, 600))

	out, err := e.ExportComplianceReport("json")
	require.NoError(t, err)

	raw, ok := out.(string)
	require.True(t, ok)

	var parsed struct {
		ComplianceOverview struct {
			ComplianceScore float64 `json:"complianceScore"`
		} `json:"complianceOverview"`
		ValidationSummary struct {
			TotalRules int `json:"totalRules"`
		} `json:"validationSummary"`
		AuditTrail []domain.AuditEntry `json:"auditTrail"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))

	assert.GreaterOrEqual(t, parsed.ComplianceOverview.ComplianceScore, float64(0))
	assert.LessOrEqual(t, parsed.ComplianceOverview.ComplianceScore, float64(100))
	assert.Equal(t, 6, parsed.ValidationSummary.TotalRules)
	assert.NotEmpty(t, parsed.AuditTrail)
}

func TestExportComplianceReportHTML(t *testing.T) {
	e := newTestEngine(t, balanceSheet(1000, 400, 600))

	out, err := e.ExportComplianceReport("html")
	require.NoError(t, err)

	html, ok := out.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Compliance score")
}

func TestExportComplianceReportUnknownFormatReturnsRaw(t *testing.T) {
	e := newTestEngine(t, balanceSheet(1000, 400, 600))

	out, err := e.ExportComplianceReport("xml")
	require.NoError(t, err)

	report, ok := out.(*domain.ExportedReport)
	require.True(t, ok)
	assert.NotNil(t, report.ComplianceOverview)
	assert.NotNil(t, report.ValidationSummary)
}

func TestExportComplianceReportTrailWindow(t *testing.T) {
	e := newTestEngine(t, balanceSheet(1000, 400, 600))

	// 6 default registrations plus 60 more rules overflow the 50-entry
	// export window.
	for i := 0; i < 60; i++ {
		_, err := e.AddValidationRule(fmt.Sprintf("RULE_%d", i), domain.ValidationRule{
			Name:     fmt.Sprintf("Rule %d", i),
			Severity: domain.SeverityMedium,
			Rule:     domain.RuleFunc(func(*domain.JournalEntry) bool { return true }),
		})
		require.NoError(t, err)
	}

	out, err := e.ExportComplianceReport("raw")
	require.NoError(t, err)

	report := out.(*domain.ExportedReport)
	assert.Len(t, report.AuditTrail, 50)
	// Most recent first.
	assert.Equal(t, "RULE_59", report.AuditTrail[0].TargetID)
}
