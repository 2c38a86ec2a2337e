package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finaudit_validations_total",
			Help: "Total validation runs by record type and outcome",
		},
		[]string{"record_type", "result"},
	)

	ViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finaudit_violations_total",
			Help: "Total rule violations by severity",
		},
		[]string{"severity"},
	)

	ComplianceChecksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "finaudit_compliance_checks_total",
			Help: "Total compliance audit invocations",
		},
	)

	ComplianceScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "finaudit_compliance_score",
			Help: "Compliance score of the most recent audit (0-100)",
		},
	)

	AuditTrailSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "finaudit_audit_trail_entries",
			Help: "Number of retained audit trail entries",
		},
	)

	BatchQueueSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "finaudit_batch_queue_size",
			Help: "Journal entries waiting in the batch validation queue",
		},
	)

	ReportCacheOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finaudit_report_cache_operations_total",
			Help: "Compliance report cache operations by outcome",
		},
		[]string{"result"},
	)
)
