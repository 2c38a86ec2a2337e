package service

import (
	"finaudit/internal/domain"
	"finaudit/pkg/metrics"
)

func (s *FinancialAuditService) CheckFinancialCompliance() *domain.ComplianceReport {
	s.mu.Lock()
	report := s.engine.CheckFinancialCompliance()
	s.mu.Unlock()

	metrics.ComplianceChecksTotal.Inc()
	metrics.ComplianceScore.Set(report.ComplianceScore)

	fields := map[string]interface{}{
		"score":      report.ComplianceScore,
		"checks":     len(report.Checks),
		"violations": len(report.Violations),
	}
	if len(report.Violations) > 0 {
		s.logger.Warn("Compliance check found violations", fields)
	} else {
		s.logger.Info("Compliance check passed", fields)
	}
	return report
}

func (s *FinancialAuditService) ExportComplianceReport(format string) (any, error) {
	s.mu.Lock()
	report, err := s.engine.ExportComplianceReport(format)
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Report export failed", map[string]interface{}{
			"format": format,
			"error":  err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Compliance report exported", map[string]interface{}{
		"format": format,
	})
	return report, nil
}
