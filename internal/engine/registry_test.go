package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finaudit/internal/domain"
)

func TestNewInstallsDefaultRules(t *testing.T) {
	e := newTestEngine(t, nil)

	rules := e.ValidationRules()
	require.Len(t, rules, 6)

	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule.ID)
		assert.True(t, rule.IsActive)
		assert.False(t, rule.CreatedAt.IsZero())
	}
	assert.Equal(t, []string{
		RuleBalancedJournal,
		RuleValidDate,
		RuleActiveAccount,
		RuleDescriptionRequired,
		RulePositiveAmount,
		RuleDocumentationRequired,
	}, ids)

	// Every default registration is audited.
	trail := e.GetAuditTrail(domain.AuditFilter{Action: domain.ActionRuleAdded})
	assert.Len(t, trail, 6)
}

func TestNewRequiresLedger(t *testing.T) {
	_, err := New(nil, Config{})
	assert.ErrorIs(t, err, domain.ErrNilLedger)
}

func TestAddValidationRule(t *testing.T) {
	alwaysPass := domain.RuleFunc(func(*domain.JournalEntry) bool { return true })

	tests := []struct {
		name    string
		rule    domain.ValidationRule
		wantErr error
	}{
		{
			name:    "missing name",
			rule:    domain.ValidationRule{Rule: alwaysPass, Severity: domain.SeverityHigh},
			wantErr: domain.ErrInvalidRule,
		},
		{
			name:    "missing predicate",
			rule:    domain.ValidationRule{Name: "No Predicate", Severity: domain.SeverityHigh},
			wantErr: domain.ErrInvalidRule,
		},
		{
			name:    "missing severity",
			rule:    domain.ValidationRule{Name: "No Severity", Rule: alwaysPass},
			wantErr: domain.ErrInvalidRule,
		},
		{
			name: "complete rule",
			rule: domain.ValidationRule{Name: "Complete", Description: "desc", Rule: alwaysPass, Severity: domain.SeverityHigh},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, nil)
			stored, err := e.AddValidationRule("CUSTOM", tt.rule)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "CUSTOM", stored.ID)
			assert.True(t, stored.IsActive)
			assert.False(t, stored.CreatedAt.IsZero())
		})
	}
}

func TestAddValidationRuleRejectsDuplicateID(t *testing.T) {
	e := newTestEngine(t, nil)

	rule := domain.ValidationRule{
		Name:     "Duplicate",
		Rule:     domain.RuleFunc(func(*domain.JournalEntry) bool { return true }),
		Severity: domain.SeverityMedium,
	}

	_, err := e.AddValidationRule("DUP", rule)
	require.NoError(t, err)

	_, err = e.AddValidationRule("DUP", rule)
	assert.ErrorIs(t, err, domain.ErrRuleExists)
}

func TestAddComplianceRule(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.AddComplianceRule("MONTHLY_CLOSE", domain.ComplianceRule{Description: "no name"})
	assert.ErrorIs(t, err, domain.ErrInvalidRule)

	_, err = e.AddComplianceRule("MONTHLY_CLOSE", domain.ComplianceRule{Name: "no description"})
	assert.ErrorIs(t, err, domain.ErrInvalidRule)

	stored, err := e.AddComplianceRule("MONTHLY_CLOSE", domain.ComplianceRule{
		Name:        "Monthly Close",
		Description: "Books must be closed monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyDaily, stored.Frequency)
	assert.True(t, stored.IsEnabled)

	stored, err = e.AddComplianceRule("QUARTERLY_REVIEW", domain.ComplianceRule{
		Name:        "Quarterly Review",
		Description: "Management review every quarter",
		Frequency:   domain.FrequencyQuarterly,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyQuarterly, stored.Frequency)

	assert.Len(t, e.ComplianceRules(), 2)
}

func TestSetRuleActive(t *testing.T) {
	e := newTestEngine(t, nil)

	err := e.SetRuleActive("NOPE", false)
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)

	require.NoError(t, e.SetRuleActive(RuleDescriptionRequired, false))
	assert.Equal(t, 5, e.activeRuleCount())

	trail := e.GetAuditTrail(domain.AuditFilter{Action: domain.ActionRuleDeactivated})
	require.Len(t, trail, 1)
	assert.Equal(t, RuleDescriptionRequired, trail[0].TargetID)

	// Toggling to the current state is a no-op and not audited.
	require.NoError(t, e.SetRuleActive(RuleDescriptionRequired, false))
	assert.Len(t, e.GetAuditTrail(domain.AuditFilter{Action: domain.ActionRuleDeactivated}), 1)

	require.NoError(t, e.SetRuleActive(RuleDescriptionRequired, true))
	assert.Equal(t, 6, e.activeRuleCount())
}
