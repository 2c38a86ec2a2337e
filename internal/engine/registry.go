package engine

import (
	"fmt"
	"time"

	"finaudit/internal/domain"
)

// AddValidationRule registers an entry-level rule under the given id.
// Name, Rule and Severity are required; CreatedAt and IsActive are set by
// the registry. Registration is audited.
func (e *Engine) AddValidationRule(id string, rule domain.ValidationRule) (*domain.ValidationRule, error) {
	if rule.Name == "" {
		return nil, fmt.Errorf("%w: rule %q has no name", domain.ErrInvalidRule, id)
	}
	if rule.Rule == nil {
		return nil, fmt.Errorf("%w: rule %q has no predicate", domain.ErrInvalidRule, id)
	}
	if rule.Severity == "" {
		return nil, fmt.Errorf("%w: rule %q has no severity", domain.ErrInvalidRule, id)
	}
	if _, exists := e.ruleIndex[id]; exists {
		return nil, fmt.Errorf("%w: %q", domain.ErrRuleExists, id)
	}

	stored := rule
	stored.ID = id
	stored.IsActive = true
	stored.CreatedAt = time.Now()

	e.rules = append(e.rules, &stored)
	e.ruleIndex[id] = &stored

	e.logAudit(domain.ActionRuleAdded, id, fmt.Sprintf("Validation rule added: %s", stored.Name))

	return &stored, nil
}

// AddComplianceRule registers an organization-level rule. Name and
// Description are required; the check frequency defaults to daily.
func (e *Engine) AddComplianceRule(id string, rule domain.ComplianceRule) (*domain.ComplianceRule, error) {
	if rule.Name == "" {
		return nil, fmt.Errorf("%w: compliance rule %q has no name", domain.ErrInvalidRule, id)
	}
	if rule.Description == "" {
		return nil, fmt.Errorf("%w: compliance rule %q has no description", domain.ErrInvalidRule, id)
	}
	if _, exists := e.complianceIndex[id]; exists {
		return nil, fmt.Errorf("%w: %q", domain.ErrRuleExists, id)
	}

	stored := rule
	stored.ID = id
	if stored.Frequency == "" {
		stored.Frequency = domain.FrequencyDaily
	}
	stored.IsEnabled = true
	stored.CreatedAt = time.Now()

	e.complianceRules = append(e.complianceRules, &stored)
	e.complianceIndex[id] = &stored

	e.logAudit(domain.ActionComplianceRuleAdded, id, fmt.Sprintf("Compliance rule added: %s", stored.Name))

	return &stored, nil
}

// SetRuleActive toggles a validation rule without removing it from the
// registry. Rules are never physically deleted.
func (e *Engine) SetRuleActive(id string, active bool) error {
	rule, ok := e.ruleIndex[id]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrRuleNotFound, id)
	}
	if rule.IsActive == active {
		return nil
	}

	rule.IsActive = active

	action := domain.ActionRuleDeactivated
	if active {
		action = domain.ActionRuleActivated
	}
	e.logAudit(action, id, fmt.Sprintf("Validation rule %s: %s", action, rule.Name))

	return nil
}

// ValidationRules returns the registered entry rules in registration
// order.
func (e *Engine) ValidationRules() []*domain.ValidationRule {
	out := make([]*domain.ValidationRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// ComplianceRules returns the registered organization rules in
// registration order.
func (e *Engine) ComplianceRules() []*domain.ComplianceRule {
	out := make([]*domain.ComplianceRule, len(e.complianceRules))
	copy(out, e.complianceRules)
	return out
}

func (e *Engine) activeRuleCount() int {
	count := 0
	for _, rule := range e.rules {
		if rule.IsActive {
			count++
		}
	}
	return count
}
