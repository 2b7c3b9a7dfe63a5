package observability

import (
	"context"
	"strconv"
	"time"

	wordledomain "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports service and resolver observations to Prometheus.
type Metrics struct {
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	messages   *prometheus.CounterVec
	lookups    *prometheus.CounterVec
	steps      prometheus.Histogram
}

// NewMetrics registers the wordle collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordle",
			Name:      "operations_total",
			Help:      "Service operations by outcome.",
		}, []string{"operation", "outcome"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wordle",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		messages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordle",
			Name:      "messages_total",
			Help:      "Handled chat messages by kind.",
		}, []string{"kind", "duplicate"}),
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordle",
			Name:      "puzzle_lookups_total",
			Help:      "Puzzle date lookups by outcome.",
		}, []string{"outcome"}),
		steps: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wordle",
			Name:      "resolution_steps",
			Help:      "Lookups needed to resolve one puzzle date.",
			Buckets:   []float64{1, 2, 3, 5, 10, 30, 100, 365, 1000},
		}),
	}
}

func (m *Metrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "attempt").Inc()
}

func (m *Metrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "success").Inc()
}

func (m *Metrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operations.WithLabelValues(operation, "failure").Inc()
}

func (m *Metrics) RecordOperationDuration(_ context.Context, operation string, d time.Duration) {
	m.durations.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) RecordMessage(_ context.Context, kind wordledomain.Kind, duplicate bool) {
	m.messages.WithLabelValues(kind.String(), strconv.FormatBool(duplicate)).Inc()
}

func (m *Metrics) RecordLookup(outcome string) {
	m.lookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordResolutionSteps(steps int) {
	m.steps.Observe(float64(steps))
}
