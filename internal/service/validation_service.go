package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"finaudit/internal/concurrent"
	"finaudit/internal/domain"
	"finaudit/internal/engine"
	"finaudit/pkg/logger"
	"finaudit/pkg/metrics"
)

const batchDrainTimeout = 30 * time.Second

// FinancialAuditService serializes access to the rule engine. The engine
// itself takes no locks; every call path into it goes through mu.
type FinancialAuditService struct {
	engine *engine.Engine
	mu     sync.Mutex
	logger logger.Logger

	workerPool  *concurrent.WorkerPool
	initialized bool
	initMutex   sync.Mutex
	workerCount int
	queueSize   int
}

func NewFinancialAuditService(
	ledger domain.Ledger,
	cfg engine.Config,
	workerCount int,
	queueSize int,
	logger logger.Logger,
) (*FinancialAuditService, error) {
	eng, err := engine.New(ledger, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating rule engine: %w", err)
	}

	return &FinancialAuditService{
		engine:      eng,
		logger:      logger,
		workerCount: workerCount,
		queueSize:   queueSize,
	}, nil
}

func (s *FinancialAuditService) initWorkerPool() {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		return
	}

	processor := func(entry *domain.JournalEntry) error {
		result := s.ValidateJournalEntry(entry)
		if !result.IsValid {
			return fmt.Errorf("entry %s has %d critical violation(s)", entry.ID, len(result.Errors))
		}
		return nil
	}

	s.workerPool = concurrent.NewWorkerPool(s.workerCount, s.queueSize, processor, s.logger)
	s.workerPool.Start()
	s.initialized = true

	s.logger.Info("Validation worker pool started", map[string]interface{}{
		"num_workers": s.workerCount,
		"queue_size":  s.queueSize,
	})
}

func (s *FinancialAuditService) ensureWorkerPoolInitialized() {
	if !s.initialized {
		s.initWorkerPool()
	}
}

func (s *FinancialAuditService) AddValidationRule(id string, rule domain.ValidationRule) (*domain.ValidationRule, error) {
	s.mu.Lock()
	added, err := s.engine.AddValidationRule(id, rule)
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("Validation rule rejected", map[string]interface{}{
			"rule_id": id,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Validation rule registered", map[string]interface{}{
		"rule_id":  added.ID,
		"severity": string(added.Severity),
	})
	return added, nil
}

func (s *FinancialAuditService) AddComplianceRule(id string, rule domain.ComplianceRule) (*domain.ComplianceRule, error) {
	s.mu.Lock()
	added, err := s.engine.AddComplianceRule(id, rule)
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("Compliance rule rejected", map[string]interface{}{
			"rule_id": id,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Compliance rule registered", map[string]interface{}{
		"rule_id":   added.ID,
		"frequency": string(added.Frequency),
	})
	return added, nil
}

func (s *FinancialAuditService) SetRuleActive(id string, active bool) error {
	s.mu.Lock()
	err := s.engine.SetRuleActive(id, active)
	s.mu.Unlock()

	if err != nil {
		if !errors.Is(err, domain.ErrRuleNotFound) {
			s.logger.Error("Rule activation failed", map[string]interface{}{
				"rule_id": id,
				"error":   err.Error(),
			})
		}
		return err
	}

	s.logger.Info("Rule activation changed", map[string]interface{}{
		"rule_id": id,
		"active":  active,
	})
	return nil
}

func (s *FinancialAuditService) ValidateJournalEntry(entry *domain.JournalEntry) *domain.ValidationResult {
	s.mu.Lock()
	result := s.engine.ValidateJournalEntry(entry)
	trailLen := s.engine.AuditTrailLen()
	s.mu.Unlock()

	s.recordValidation(domain.RecordTypeJournal, result)
	metrics.AuditTrailSize.Set(float64(trailLen))

	if !result.IsValid {
		s.logger.Warn("Journal entry failed validation", map[string]interface{}{
			"entry_id":  entry.ID,
			"errors":    len(result.Errors),
			"warnings":  len(result.Warnings),
			"violation": firstViolationName(result),
		})
	}
	return result
}

func (s *FinancialAuditService) ValidateExpense(expense *domain.Expense) *domain.ValidationResult {
	s.mu.Lock()
	result := s.engine.ValidateExpense(expense)
	s.mu.Unlock()

	s.recordValidation(domain.RecordTypeExpense, result)

	if !result.IsValid {
		s.logger.Warn("Expense failed validation", map[string]interface{}{
			"expense_id": expense.ID,
			"errors":     len(result.Errors),
		})
	}
	return result
}

func (s *FinancialAuditService) ValidateInvoice(invoice *domain.Invoice) *domain.ValidationResult {
	s.mu.Lock()
	result := s.engine.ValidateInvoice(invoice)
	s.mu.Unlock()

	s.recordValidation(domain.RecordTypeInvoice, result)

	if !result.IsValid {
		s.logger.Warn("Invoice failed validation", map[string]interface{}{
			"invoice_id": invoice.ID,
			"errors":     len(result.Errors),
		})
	}
	return result
}

// ValidateBatch submits entries to the worker pool and waits for the
// whole batch to drain. Entries rejected by a full queue count as failed.
func (s *FinancialAuditService) ValidateBatch(entries []*domain.JournalEntry) (int, int, error) {
	s.ensureWorkerPoolInitialized()

	before := s.workerPool.GetStats()

	rejected := 0
	for _, entry := range entries {
		if !s.workerPool.Submit(entry) {
			rejected++
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchDrainTimeout)
	defer cancel()

	if err := s.workerPool.Drain(ctx); err != nil {
		return 0, 0, fmt.Errorf("draining validation batch: %w", err)
	}

	after := s.workerPool.GetStats()
	processed := int(after.Completed - before.Completed)
	failed := int(after.Failed-before.Failed) + rejected

	s.logger.Info("Batch validation finished", map[string]interface{}{
		"submitted": len(entries),
		"processed": processed,
		"failed":    failed,
		"rejected":  rejected,
	})
	return processed, failed, nil
}

func (s *FinancialAuditService) GetViolationReport(limit int) *domain.ViolationReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.GetViolationReport(limit)
}

func (s *FinancialAuditService) GetAuditTrail(filter domain.AuditFilter) []domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.GetAuditTrail(filter)
}

func (s *FinancialAuditService) GenerateValidationSummary() *domain.ValidationSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.GenerateValidationSummary()
}

func (s *FinancialAuditService) PoolStats() (domain.BatchStats, error) {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if !s.initialized {
		return domain.BatchStats{}, errors.New("worker pool not started")
	}

	stats := s.workerPool.GetStats()
	return domain.BatchStats{
		Submitted:      stats.Submitted,
		Completed:      stats.Completed,
		Failed:         stats.Failed,
		Rejected:       stats.Rejected,
		AvgProcessTime: stats.AvgProcessTime,
		QueueLength:    s.workerPool.QueueLength(),
		QueueCapacity:  s.workerPool.QueueCapacity(),
	}, nil
}

func (s *FinancialAuditService) Shutdown() {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		s.workerPool.Stop()
		s.initialized = false
	}
}

func (s *FinancialAuditService) recordValidation(recordType domain.RecordType, result *domain.ValidationResult) {
	outcome := "valid"
	if !result.IsValid {
		outcome = "invalid"
	}
	metrics.ValidationsTotal.WithLabelValues(string(recordType), outcome).Inc()

	for _, v := range result.Violations {
		metrics.ViolationsTotal.WithLabelValues(string(v.Severity)).Inc()
	}
}

func firstViolationName(result *domain.ValidationResult) string {
	if len(result.Violations) == 0 {
		return ""
	}
	return result.Violations[0].RuleName
}
