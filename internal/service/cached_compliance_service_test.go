package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finaudit/internal/domain"
	"finaudit/pkg/cache"
	"finaudit/pkg/logger"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failing bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c.failing {
		return errors.New("cache unavailable")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = data
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.failing {
		return errors.New("cache unavailable")
	}
	c.mu.Lock()
	data, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	_, ok := c.entries[key]
	c.mu.Unlock()
	return ok, nil
}

func (c *memoryCache) Ping(ctx context.Context) error {
	return nil
}

type countingComplianceService struct {
	checks  int
	exports int
}

func (s *countingComplianceService) CheckFinancialCompliance() *domain.ComplianceReport {
	s.checks++
	return &domain.ComplianceReport{
		Timestamp:       time.Now(),
		ComplianceScore: 75,
		Checks: []domain.ComplianceCheck{
			{Name: "accounting_equation", Passed: true},
		},
	}
}

func (s *countingComplianceService) ExportComplianceReport(format string) (any, error) {
	s.exports++
	return "{}", nil
}

func TestCachedComplianceServiceCachesReports(t *testing.T) {
	inner := &countingComplianceService{}
	svc := NewCachedComplianceService(inner, newMemoryCache(), time.Minute, logger.NewNop())

	first := svc.CheckFinancialCompliance()
	second := svc.CheckFinancialCompliance()

	assert.Equal(t, 1, inner.checks)
	assert.InDelta(t, first.ComplianceScore, second.ComplianceScore, 0.001)
	require.Len(t, second.Checks, 1)
	assert.Equal(t, "accounting_equation", second.Checks[0].Name)
}

func TestCachedComplianceServiceFallsThroughOnCacheFailure(t *testing.T) {
	inner := &countingComplianceService{}
	failing := newMemoryCache()
	failing.failing = true
	svc := NewCachedComplianceService(inner, failing, time.Minute, logger.NewNop())

	report := svc.CheckFinancialCompliance()
	require.NotNil(t, report)
	assert.Equal(t, 1, inner.checks)

	report = svc.CheckFinancialCompliance()
	require.NotNil(t, report)
	assert.Equal(t, 2, inner.checks)
}

func TestCachedComplianceServiceExportBypassesCache(t *testing.T) {
	inner := &countingComplianceService{}
	svc := NewCachedComplianceService(inner, newMemoryCache(), time.Minute, logger.NewNop())

	_, err := svc.ExportComplianceReport("json")
	require.NoError(t, err)
	_, err = svc.ExportComplianceReport("json")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.exports)
}
