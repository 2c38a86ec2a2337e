package engine

import (
	"fmt"
	"time"

	"finaudit/internal/domain"
)

// ValidateJournalEntry runs every active registry rule against the entry.
// A rule that panics is reported as an error-severity violation and never
// aborts the pass; every remaining rule still runs.
func (e *Engine) ValidateJournalEntry(entry *domain.JournalEntry) *domain.ValidationResult {
	now := time.Now()
	var violations []domain.Violation

	for _, rule := range e.rules {
		if !rule.IsActive {
			continue
		}

		passed, err := evaluateRule(rule.Rule, entry)
		if err != nil {
			violations = append(violations, domain.Violation{
				RuleID:    rule.ID,
				RuleName:  rule.Name,
				Severity:  domain.SeverityError,
				Message:   fmt.Sprintf("rule evaluation failed: %v", err),
				Timestamp: now,
			})
			continue
		}
		if !passed {
			violations = append(violations, domain.Violation{
				RuleID:    rule.ID,
				RuleName:  rule.Name,
				Severity:  rule.Severity,
				Message:   rule.Description,
				Timestamp: now,
			})
		}
	}

	result := classify(violations, now)
	if !result.IsValid {
		e.logViolations(entry.ID, domain.RecordTypeJournal, result)
	}

	return result
}

// evaluateRule recovers a panicking rule into an error so the rule's own
// failure degrades to a reported violation.
func evaluateRule(rule domain.Rule, entry *domain.JournalEntry) (passed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return rule.Evaluate(entry), nil
}

// ValidateExpense checks an expense against its fixed rule set. The rules
// are compiled in, not drawn from the registry: the expense shape is
// stable and needs no runtime extension.
func (e *Engine) ValidateExpense(expense *domain.Expense) *domain.ValidationResult {
	now := time.Now()
	var violations []domain.Violation

	add := func(id, name string, severity domain.Severity, message string) {
		violations = append(violations, domain.Violation{
			RuleID:    id,
			RuleName:  name,
			Severity:  severity,
			Message:   message,
			Timestamp: now,
		})
	}

	if expense.Amount <= 0 {
		add("EXPENSE_POSITIVE_AMOUNT", "Positive Amount", domain.SeverityCritical, "Expense amount must be greater than zero")
	}
	if expense.Category == "" {
		add("EXPENSE_CATEGORY_REQUIRED", "Category Required", domain.SeverityCritical, "Expense category is required")
	}
	if _, ok := e.ledger.Account(expense.AccountID); !ok {
		add("EXPENSE_VALID_ACCOUNT", "Valid Account", domain.SeverityCritical, "Expense account does not exist")
	}
	if expense.Amount > 10000 && expense.ApprovedBy == "" {
		add("EXPENSE_APPROVAL_REQUIRED", "Approval Required", domain.SeverityHigh, "Expenses over 10000 require approval")
	}

	result := classify(violations, now)
	if !result.IsValid {
		e.logViolations(expense.ID, domain.RecordTypeExpense, result)
	}

	return result
}

// ValidateInvoice checks an invoice against its fixed rule set.
func (e *Engine) ValidateInvoice(invoice *domain.Invoice) *domain.ValidationResult {
	now := time.Now()
	var violations []domain.Violation

	add := func(id, name string, severity domain.Severity, message string) {
		violations = append(violations, domain.Violation{
			RuleID:    id,
			RuleName:  name,
			Severity:  severity,
			Message:   message,
			Timestamp: now,
		})
	}

	if invoice.InvoiceNumber == "" {
		add("INVOICE_NUMBER_REQUIRED", "Invoice Number Required", domain.SeverityCritical, "Invoice number is required")
	}
	if invoice.CustomerID == "" {
		add("INVOICE_CUSTOMER_REQUIRED", "Customer Required", domain.SeverityCritical, "Invoice customer is required")
	}
	if len(invoice.Items) == 0 {
		add("INVOICE_ITEMS_REQUIRED", "Items Required", domain.SeverityCritical, "Invoice must have at least one item")
	}

	for i, item := range invoice.Items {
		if item.Description == "" {
			add("INVOICE_ITEM_DESCRIPTION", "Item Description Required", domain.SeverityHigh,
				fmt.Sprintf("Invoice item %d has no description", i+1))
		}
		if item.Quantity <= 0 {
			add("INVOICE_ITEM_QUANTITY", "Positive Item Quantity", domain.SeverityCritical,
				fmt.Sprintf("Invoice item %d quantity must be greater than zero", i+1))
		}
		if item.UnitPrice <= 0 {
			add("INVOICE_ITEM_PRICE", "Positive Item Price", domain.SeverityCritical,
				fmt.Sprintf("Invoice item %d unit price must be greater than zero", i+1))
		}
	}

	computed := invoice.ComputedTotal()
	diff := computed - invoice.TotalAmount
	if diff < 0 {
		diff = -diff
	}
	if diff >= balanceEpsilon {
		add("INVOICE_TOTAL_MISMATCH", "Total Mismatch", domain.SeverityCritical,
			fmt.Sprintf("Invoice total %.2f does not match computed total %.2f", invoice.TotalAmount, computed))
	}

	if invoice.IssueDate.IsZero() || invoice.IssueDate.After(now) {
		add("INVOICE_ISSUE_DATE", "Valid Issue Date", domain.SeverityCritical, "Invoice issue date must be present and not in the future")
	}
	if invoice.DueDate.Before(invoice.IssueDate) {
		add("INVOICE_DUE_DATE", "Valid Due Date", domain.SeverityCritical, "Invoice due date must not precede the issue date")
	}

	result := classify(violations, now)
	if !result.IsValid {
		e.logViolations(invoice.ID, domain.RecordTypeInvoice, result)
	}

	return result
}

// classify buckets violations into the result shape. Validity depends on
// critical violations only; medium findings become warnings, critical and
// error findings become errors.
func classify(violations []domain.Violation, now time.Time) *domain.ValidationResult {
	result := &domain.ValidationResult{
		IsValid:    true,
		Violations: violations,
		Timestamp:  now,
	}

	for _, v := range violations {
		switch v.Severity {
		case domain.SeverityCritical:
			result.IsValid = false
			result.Errors = append(result.Errors, v)
		case domain.SeverityError:
			result.Errors = append(result.Errors, v)
		case domain.SeverityMedium:
			result.Warnings = append(result.Warnings, v)
		}
	}

	return result
}

// logViolations records a failed validation and notifies observers.
func (e *Engine) logViolations(entryID string, entryType domain.RecordType, result *domain.ValidationResult) {
	e.violations = append(e.violations, domain.ViolationLogEntry{
		EntryID:    entryID,
		EntryType:  entryType,
		Violations: result.Violations,
		Timestamp:  result.Timestamp,
	})
	e.notifyValidationFailed(entryID, entryType, result)
}
