package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finaudit/internal/domain"
	"finaudit/internal/ledger"
)

func balanceSheet(asset, liability, equity float64) *ledger.Memory {
	l := ledger.NewMemory()
	l.AddAccount(&domain.Account{ID: "a", Type: domain.AccountTypeAsset, Balance: asset, IsActive: true})
	l.AddAccount(&domain.Account{ID: "l", Type: domain.AccountTypeLiability, Balance: liability, IsActive: true})
	l.AddAccount(&domain.Account{ID: "e", Type: domain.AccountTypeEquity, Balance: equity, IsActive: true})
	return l
}

func findCheck(t *testing.T, report *domain.ComplianceReport, name string) domain.ComplianceCheck {
	t.Helper()
	for _, check := range report.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("check %q not found in %+v", name, report.Checks)
	return domain.ComplianceCheck{}
}

func findViolation(report *domain.ComplianceReport, violationType string) (domain.ComplianceViolation, bool) {
	for _, v := range report.Violations {
		if v.Type == violationType {
			return v, true
		}
	}
	return domain.ComplianceViolation{}, false
}

func TestAccountingEquation(t *testing.T) {
	t.Run("balanced", func(t *testing.T) {
		e := newTestEngine(t, balanceSheet(1000, 400, 600))
		report := e.CheckFinancialCompliance()

		assert.True(t, findCheck(t, report, CheckAccountingEquation).Passed)
		_, found := findViolation(report, domain.ViolationTypeAccountingEquation)
		assert.False(t, found)
	})

	t.Run("unbalanced", func(t *testing.T) {
		e := newTestEngine(t, balanceSheet(1000, 400, 550))
		report := e.CheckFinancialCompliance()

		assert.False(t, findCheck(t, report, CheckAccountingEquation).Passed)
		violation, found := findViolation(report, domain.ViolationTypeAccountingEquation)
		require.True(t, found)
		assert.Equal(t, domain.SeverityCritical, violation.Severity)

		details, ok := violation.Details.(map[string]float64)
		require.True(t, ok)
		assert.InDelta(t, 50, details["difference"], 0.001)
	})
}

func TestLiquidityRatioBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		assets      float64
		liabilities float64
		want        bool
	}{
		{"ratio at lower bound", 150, 100, true},
		{"ratio below lower bound", 149, 100, false},
		{"ratio at upper bound", 300, 100, true},
		{"ratio above upper bound", 301, 100, false},
		{"no current liabilities", 100, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.NewMemory()
			l.AddAccount(&domain.Account{ID: "ca", Type: domain.AccountTypeAsset, SubType: domain.AccountSubTypeCurrent, Balance: tt.assets, IsActive: true})
			l.AddAccount(&domain.Account{ID: "cl", Type: domain.AccountTypeLiability, SubType: domain.AccountSubTypeCurrent, Balance: tt.liabilities, IsActive: true})

			e := newTestEngine(t, l)
			report := e.CheckFinancialCompliance()

			assert.Equal(t, tt.want, findCheck(t, report, CheckLiquidityRatio).Passed)
			_, found := findViolation(report, domain.ViolationTypeLiquidity)
			assert.Equal(t, !tt.want, found)
		})
	}
}

func TestDebtRatio(t *testing.T) {
	tests := []struct {
		name        string
		assets      float64
		liabilities float64
		want        bool
	}{
		{"low leverage", 1000, 200, true},
		{"at threshold", 1000, 500, false},
		{"over threshold", 1000, 700, false},
		{"no assets", 0, 500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.NewMemory()
			l.AddAccount(&domain.Account{ID: "a", Type: domain.AccountTypeAsset, Balance: tt.assets, IsActive: true})
			l.AddAccount(&domain.Account{ID: "l", Type: domain.AccountTypeLiability, Balance: tt.liabilities, IsActive: true})

			e := newTestEngine(t, l)
			report := e.CheckFinancialCompliance()

			assert.Equal(t, tt.want, findCheck(t, report, CheckDebtRatio).Passed)
		})
	}
}

func TestSuspiciousTransactionThreshold(t *testing.T) {
	// Four items summing to 400 put the average at exactly 100, so the
	// threshold sits at 300.
	buildLedger := func(topAmount float64) *ledger.Memory {
		l := ledger.NewMemory()
		l.AddJournal(&domain.JournalEntry{
			ID:   "j-1",
			Date: time.Now(),
			Items: []domain.JournalItem{
				{ID: "i-1", Amount: topAmount},
				{ID: "i-2", Amount: 400 - topAmount - 66},
				{ID: "i-3", Amount: 33},
				{ID: "i-4", Amount: 33},
			},
		})
		return l
	}

	t.Run("just over threshold is flagged", func(t *testing.T) {
		e := newTestEngine(t, buildLedger(301))
		report := e.CheckFinancialCompliance()

		violation, found := findViolation(report, domain.ViolationTypeSuspiciousActivity)
		require.True(t, found)
		assert.Equal(t, domain.SeverityMedium, violation.Severity)

		flagged, ok := violation.Details.([]domain.SuspiciousItem)
		require.True(t, ok)
		require.Len(t, flagged, 1)
		assert.Equal(t, "i-1", flagged[0].ItemID)
		assert.Equal(t, "j-1", flagged[0].JournalID)
		assert.InDelta(t, 3.01, flagged[0].Multiplier, 0.001)
	})

	t.Run("exactly at threshold is not flagged", func(t *testing.T) {
		e := newTestEngine(t, buildLedger(300))
		report := e.CheckFinancialCompliance()

		_, found := findViolation(report, domain.ViolationTypeSuspiciousActivity)
		assert.False(t, found)
	})

	t.Run("detection never adds a checks entry", func(t *testing.T) {
		e := newTestEngine(t, buildLedger(301))
		report := e.CheckFinancialCompliance()

		assert.Len(t, report.Checks, 4)
	})
}

func TestDocumentationCompleteness(t *testing.T) {
	buildLedger := func(documented, total int) *ledger.Memory {
		l := ledger.NewMemory()
		for i := 0; i < total; i++ {
			entry := &domain.JournalEntry{ID: fmt.Sprintf("j-%d", i), Date: time.Now()}
			if i < documented {
				entry.Attachments = []string{"doc.pdf"}
			}
			l.AddJournal(entry)
		}
		return l
	}

	t.Run("rate at threshold passes", func(t *testing.T) {
		e := newTestEngine(t, buildLedger(9, 10))
		report := e.CheckFinancialCompliance()
		assert.True(t, findCheck(t, report, CheckDocumentation).Passed)
	})

	t.Run("rate below threshold fails", func(t *testing.T) {
		e := newTestEngine(t, buildLedger(8, 10))
		report := e.CheckFinancialCompliance()
		assert.False(t, findCheck(t, report, CheckDocumentation).Passed)
	})
}

func TestComplianceScoreExcludesSuspiciousCheck(t *testing.T) {
	// Balanced books with a suspicious spike: all four structural checks
	// can pass while the anomaly still surfaces as a violation.
	l := ledger.NewMemory()
	l.AddAccount(&domain.Account{ID: "ca", Type: domain.AccountTypeAsset, SubType: domain.AccountSubTypeCurrent, Balance: 200, IsActive: true})
	l.AddAccount(&domain.Account{ID: "cl", Type: domain.AccountTypeLiability, SubType: domain.AccountSubTypeCurrent, Balance: 80, IsActive: true})
	l.AddAccount(&domain.Account{ID: "e", Type: domain.AccountTypeEquity, Balance: 120, IsActive: true})
	l.AddJournal(&domain.JournalEntry{
		ID:          "j-1",
		Date:        time.Now(),
		Attachments: []string{"doc.pdf"},
		Items: []domain.JournalItem{
			{ID: "i-1", Amount: 301},
			{ID: "i-2", Amount: 33},
			{ID: "i-3", Amount: 33},
			{ID: "i-4", Amount: 33},
		},
	})

	e := newTestEngine(t, l)
	report := e.CheckFinancialCompliance()

	assert.Equal(t, float64(100), report.ComplianceScore)
	_, found := findViolation(report, domain.ViolationTypeSuspiciousActivity)
	assert.True(t, found)

	// A perfect score generates no recommendations, even with the
	// suspicious-activity violation present.
	assert.Empty(t, report.Recommendations)
}

func TestRecommendations(t *testing.T) {
	e := newTestEngine(t, balanceSheet(1000, 700, 400))
	report := e.CheckFinancialCompliance()

	// Equation fails (1000 != 1100) and debt ratio fails (0.7), and the
	// liquidity check fails with no current accounts.
	assert.Less(t, report.ComplianceScore, float64(100))

	types := make([]string, 0, len(report.Recommendations))
	for _, rec := range report.Recommendations {
		types = append(types, rec.Type)
		assert.NotEmpty(t, rec.Priority)
		assert.NotEmpty(t, rec.Action)
	}
	assert.ElementsMatch(t, []string{
		domain.ViolationTypeAccountingEquation,
		domain.ViolationTypeLiquidity,
		domain.ViolationTypeDebtRatio,
	}, types)
}

func TestComplianceNotifiesObserver(t *testing.T) {
	observer := &recordingObserver{}
	e, err := New(balanceSheet(100, 0, 100), Config{Observers: []domain.EngineObserver{observer}})
	require.NoError(t, err)

	e.CheckFinancialCompliance()
	assert.Equal(t, 1, observer.reports)
}

func TestEmptyLedgerGuards(t *testing.T) {
	e := newTestEngine(t, ledger.NewMemory())
	report := e.CheckFinancialCompliance()

	// Empty denominators degrade to zero ratios rather than NaN.
	assert.True(t, findCheck(t, report, CheckAccountingEquation).Passed)
	assert.False(t, findCheck(t, report, CheckLiquidityRatio).Passed)
	assert.True(t, findCheck(t, report, CheckDebtRatio).Passed)
	assert.False(t, findCheck(t, report, CheckDocumentation).Passed)
	assert.Equal(t, float64(50), report.ComplianceScore)
}
