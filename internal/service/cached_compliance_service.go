package service

import (
	"context"
	"errors"
	"time"

	"finaudit/internal/domain"
	"finaudit/pkg/cache"
	"finaudit/pkg/circuitbreaker"
	"finaudit/pkg/logger"
	"finaudit/pkg/metrics"
)

const complianceReportCacheKey = "compliance:report"

// CachedComplianceService wraps ComplianceService with report caching.
// Redis calls run behind a circuit breaker; when the breaker is open or
// the cache errors, calls fall through to the inner service.
type CachedComplianceService struct {
	inner   domain.ComplianceService
	cache   cache.Cache
	breaker *circuitbreaker.CircuitBreaker
	ttl     time.Duration
	logger  logger.Logger
}

func NewCachedComplianceService(
	inner domain.ComplianceService,
	cacheInstance cache.Cache,
	ttl time.Duration,
	logger logger.Logger,
) domain.ComplianceService {
	breaker := circuitbreaker.New(circuitbreaker.Settings{
		Name: "compliance-report-cache",
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn("Cache circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	return &CachedComplianceService{
		inner:   inner,
		cache:   cacheInstance,
		breaker: breaker,
		ttl:     ttl,
		logger:  logger,
	}
}

// CheckFinancialCompliance serves a cached report when one is fresh
// enough, otherwise recomputes and caches the result.
func (s *CachedComplianceService) CheckFinancialCompliance() *domain.ComplianceReport {
	ctx := context.Background()

	// A miss is a normal outcome, not a breaker failure.
	var cached domain.ComplianceReport
	missed := false
	err := s.breaker.Execute(func() error {
		getErr := s.cache.Get(ctx, complianceReportCacheKey, &cached)
		if errors.Is(getErr, cache.ErrMiss) {
			missed = true
			return nil
		}
		return getErr
	})
	if err == nil && !missed {
		metrics.ReportCacheOps.WithLabelValues("hit").Inc()
		return &cached
	}
	if err != nil {
		s.logger.Warn("Compliance report cache read failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	metrics.ReportCacheOps.WithLabelValues("miss").Inc()

	report := s.inner.CheckFinancialCompliance()

	if setErr := s.breaker.Execute(func() error {
		return s.cache.Set(ctx, complianceReportCacheKey, report, s.ttl)
	}); setErr != nil {
		s.logger.Warn("Compliance report cache write failed", map[string]interface{}{
			"error": setErr.Error(),
		})
	}

	return report
}

// ExportComplianceReport always recomputes: exports embed a fresh audit
// trail tail and must not serve stale state.
func (s *CachedComplianceService) ExportComplianceReport(format string) (any, error) {
	return s.inner.ExportComplianceReport(format)
}
