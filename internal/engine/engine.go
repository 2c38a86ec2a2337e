// Package engine implements the rule-based financial validation and
// compliance core. The engine is a pure synchronous computation over its
// ledger collaborator: no I/O, no goroutines, no internal locking. A host
// invoking it from concurrent contexts must serialize access itself (see
// internal/service).
package engine

import (
	"finaudit/internal/domain"
)

const (
	defaultTrailCapacity        = 10000
	defaultSuspiciousMultiplier = 3.0
	defaultDocumentationRate    = 0.9

	// balanceEpsilon bounds every monetary comparison in the engine.
	balanceEpsilon = 0.01
)

type Config struct {
	// TrailCapacity bounds the audit trail ring. Defaults to 10000.
	TrailCapacity int
	// SuspiciousMultiplier is the anomaly threshold as a multiple of the
	// average line-item amount. Defaults to 3.
	SuspiciousMultiplier float64
	// DocumentationRate is the minimum fraction of journals that must
	// carry at least one attachment. Defaults to 0.9.
	DocumentationRate float64
	// Observers are notified synchronously on failed validations and
	// completed compliance checks.
	Observers []domain.EngineObserver
}

type Engine struct {
	ledger domain.Ledger

	rules           []*domain.ValidationRule
	ruleIndex       map[string]*domain.ValidationRule
	complianceRules []*domain.ComplianceRule
	complianceIndex map[string]*domain.ComplianceRule

	trail      *auditTrail
	violations []domain.ViolationLogEntry
	observers  []domain.EngineObserver

	suspiciousMultiplier float64
	documentationRate    float64
}

// New builds an engine bound to the given ledger and installs the default
// journal rule set.
func New(ledger domain.Ledger, cfg Config) (*Engine, error) {
	if ledger == nil {
		return nil, domain.ErrNilLedger
	}

	if cfg.TrailCapacity <= 0 {
		cfg.TrailCapacity = defaultTrailCapacity
	}
	if cfg.SuspiciousMultiplier <= 0 {
		cfg.SuspiciousMultiplier = defaultSuspiciousMultiplier
	}
	if cfg.DocumentationRate <= 0 {
		cfg.DocumentationRate = defaultDocumentationRate
	}

	e := &Engine{
		ledger:               ledger,
		ruleIndex:            make(map[string]*domain.ValidationRule),
		complianceIndex:      make(map[string]*domain.ComplianceRule),
		trail:                newAuditTrail(cfg.TrailCapacity),
		observers:            cfg.Observers,
		suspiciousMultiplier: cfg.SuspiciousMultiplier,
		documentationRate:    cfg.DocumentationRate,
	}

	if err := e.registerDefaultRules(); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Engine) notifyValidationFailed(entryID string, entryType domain.RecordType, result *domain.ValidationResult) {
	for _, o := range e.observers {
		o.ValidationFailed(entryID, entryType, result)
	}
}

func (e *Engine) notifyComplianceChecked(report *domain.ComplianceReport) {
	for _, o := range e.observers {
		o.ComplianceChecked(report)
	}
}
