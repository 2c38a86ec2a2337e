package engine

import (
	"fmt"
	"time"

	"finaudit/internal/domain"
)

// Names of the structural checks, in the order they run.
const (
	CheckAccountingEquation = "Accounting Equation"
	CheckLiquidityRatio     = "Liquidity Ratio"
	CheckDebtRatio          = "Debt Ratio"
	CheckDocumentation      = "Documentation Completeness"
)

// Liquidity and debt thresholds.
const (
	minCurrentRatio = 1.5
	maxCurrentRatio = 3.0
	maxDebtRatio    = 0.5
)

// recommendationTexts maps a violation type to its canned recommendation.
// Suspicious activity and documentation shortfalls deliberately have no
// entry: the report surfaces them as violations or failed checks without
// a recommendation.
var recommendationTexts = map[string]domain.Recommendation{
	domain.ViolationTypeAccountingEquation: {
		Type:     domain.ViolationTypeAccountingEquation,
		Priority: "critical",
		Action:   "Review the general ledger for unbalanced postings and correct them immediately",
	},
	domain.ViolationTypeLiquidity: {
		Type:     domain.ViolationTypeLiquidity,
		Priority: "high",
		Action:   "Rebalance current assets and liabilities to bring the current ratio between 1.5 and 3",
	},
	domain.ViolationTypeDebtRatio: {
		Type:     domain.ViolationTypeDebtRatio,
		Priority: "high",
		Action:   "Reduce leverage: total liabilities should stay below half of total assets",
	},
}

// CheckFinancialCompliance runs the structural checks against the current
// ledger snapshot and scores the result. Each invocation is stateless
// aggregation; nothing persists between calls.
func (e *Engine) CheckFinancialCompliance() *domain.ComplianceReport {
	report := &domain.ComplianceReport{
		Timestamp:       time.Now(),
		Checks:          []domain.ComplianceCheck{},
		Violations:      []domain.ComplianceViolation{},
		Recommendations: []domain.Recommendation{},
	}

	e.checkAccountingEquation(report)
	e.checkLiquidityRatio(report)
	e.checkDebtRatio(report)
	e.detectSuspiciousTransactions(report)
	e.checkDocumentation(report)

	passed := 0
	for _, check := range report.Checks {
		if check.Passed {
			passed++
		}
	}
	report.ComplianceScore = float64(passed) / float64(len(report.Checks)) * 100

	if report.ComplianceScore < 100 {
		for _, violation := range report.Violations {
			if rec, ok := recommendationTexts[violation.Type]; ok {
				report.Recommendations = append(report.Recommendations, rec)
			}
		}
	}

	e.notifyComplianceChecked(report)

	return report
}

func (e *Engine) checkAccountingEquation(report *domain.ComplianceReport) {
	var assets, liabilities, equity float64
	for _, account := range e.ledger.Accounts() {
		balance := e.ledger.AccountBalance(account.ID)
		switch account.Type {
		case domain.AccountTypeAsset:
			assets += balance
		case domain.AccountTypeLiability:
			liabilities += balance
		case domain.AccountTypeEquity:
			equity += balance
		}
	}

	diff := assets - (liabilities + equity)
	if diff < 0 {
		diff = -diff
	}
	passed := diff < balanceEpsilon

	report.Checks = append(report.Checks, domain.ComplianceCheck{
		Name:   CheckAccountingEquation,
		Passed: passed,
		Details: fmt.Sprintf("assets=%v liabilities=%v equity=%v difference=%v",
			e.ledger.Round(assets), e.ledger.Round(liabilities), e.ledger.Round(equity), e.ledger.Round(diff)),
	})

	if !passed {
		report.Violations = append(report.Violations, domain.ComplianceViolation{
			Type:     domain.ViolationTypeAccountingEquation,
			Severity: domain.SeverityCritical,
			Message:  "Assets do not equal liabilities plus equity",
			Details:  map[string]float64{"difference": e.ledger.Round(diff)},
		})
	}
}

func (e *Engine) checkLiquidityRatio(report *domain.ComplianceReport) {
	var currentAssets, currentLiabilities float64
	for _, account := range e.ledger.Accounts() {
		if account.SubType != domain.AccountSubTypeCurrent {
			continue
		}
		balance := e.ledger.AccountBalance(account.ID)
		switch account.Type {
		case domain.AccountTypeAsset:
			currentAssets += balance
		case domain.AccountTypeLiability:
			currentLiabilities += balance
		}
	}

	currentRatio := 0.0
	if currentLiabilities != 0 {
		currentRatio = currentAssets / currentLiabilities
	}
	passed := currentRatio >= minCurrentRatio && currentRatio <= maxCurrentRatio

	report.Checks = append(report.Checks, domain.ComplianceCheck{
		Name:   CheckLiquidityRatio,
		Passed: passed,
		Details: fmt.Sprintf("currentAssets=%v currentLiabilities=%v ratio=%v",
			e.ledger.Round(currentAssets), e.ledger.Round(currentLiabilities), e.ledger.Round(currentRatio)),
	})

	if !passed {
		report.Violations = append(report.Violations, domain.ComplianceViolation{
			Type:     domain.ViolationTypeLiquidity,
			Severity: domain.SeverityHigh,
			Message:  fmt.Sprintf("Current ratio %v is outside the %v-%v range", e.ledger.Round(currentRatio), minCurrentRatio, maxCurrentRatio),
			Details:  map[string]float64{"currentRatio": e.ledger.Round(currentRatio)},
		})
	}
}

func (e *Engine) checkDebtRatio(report *domain.ComplianceReport) {
	var totalAssets, totalLiabilities float64
	for _, account := range e.ledger.Accounts() {
		balance := e.ledger.AccountBalance(account.ID)
		switch account.Type {
		case domain.AccountTypeAsset:
			totalAssets += balance
		case domain.AccountTypeLiability:
			totalLiabilities += balance
		}
	}

	debtRatio := 0.0
	if totalAssets != 0 {
		debtRatio = totalLiabilities / totalAssets
	}
	passed := debtRatio < maxDebtRatio

	report.Checks = append(report.Checks, domain.ComplianceCheck{
		Name:   CheckDebtRatio,
		Passed: passed,
		Details: fmt.Sprintf("totalAssets=%v totalLiabilities=%v ratio=%v",
			e.ledger.Round(totalAssets), e.ledger.Round(totalLiabilities), e.ledger.Round(debtRatio)),
	})

	if !passed {
		report.Violations = append(report.Violations, domain.ComplianceViolation{
			Type:     domain.ViolationTypeDebtRatio,
			Severity: domain.SeverityHigh,
			Message:  fmt.Sprintf("Debt ratio %v exceeds %v", e.ledger.Round(debtRatio), maxDebtRatio),
			Details:  map[string]float64{"debtRatio": e.ledger.Round(debtRatio)},
		})
	}
}

// detectSuspiciousTransactions flags line items above the anomaly
// threshold. Unlike the structural checks it contributes no Checks entry
// and therefore does not count toward the compliance score.
func (e *Engine) detectSuspiciousTransactions(report *domain.ComplianceReport) {
	var total float64
	var count int
	for _, journal := range e.ledger.Journals() {
		for _, item := range journal.Items {
			total += item.Amount
			count++
		}
	}

	average := 0.0
	if count != 0 {
		average = total / float64(count)
	}
	threshold := average * e.suspiciousMultiplier

	var flagged []domain.SuspiciousItem
	for _, journal := range e.ledger.Journals() {
		for _, item := range journal.Items {
			if item.Amount <= threshold {
				continue
			}
			multiplier := 0.0
			if average != 0 {
				multiplier = item.Amount / average
			}
			flagged = append(flagged, domain.SuspiciousItem{
				JournalID:     journal.ID,
				ItemID:        item.ID,
				Amount:        item.Amount,
				AverageAmount: e.ledger.Round(average),
				Multiplier:    e.ledger.Round(multiplier),
				Timestamp:     journal.Date,
				Reason:        fmt.Sprintf("Amount exceeds %vx the average transaction", e.suspiciousMultiplier),
			})
		}
	}

	if len(flagged) > 0 {
		report.Violations = append(report.Violations, domain.ComplianceViolation{
			Type:     domain.ViolationTypeSuspiciousActivity,
			Severity: domain.SeverityMedium,
			Message:  fmt.Sprintf("%d transactions exceed the anomaly threshold", len(flagged)),
			Details:  flagged,
		})
	}
}

func (e *Engine) checkDocumentation(report *domain.ComplianceReport) {
	journals := e.ledger.Journals()
	documented := 0
	for _, journal := range journals {
		if len(journal.Attachments) > 0 {
			documented++
		}
	}

	rate := 0.0
	if len(journals) != 0 {
		rate = float64(documented) / float64(len(journals))
	}
	passed := rate >= e.documentationRate

	report.Checks = append(report.Checks, domain.ComplianceCheck{
		Name:    CheckDocumentation,
		Passed:  passed,
		Details: fmt.Sprintf("documented=%d total=%d rate=%v", documented, len(journals), e.ledger.Round(rate*100)),
	})
}
