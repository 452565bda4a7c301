// Package metrics counts dispatched invocations.
//
// The Collector keeps two views of the same counts: Prometheus series on its
// own registry, served by the HTTP server at /metrics, and plain counters
// returned by Snapshot for CLI output. All methods are nil-receiver safe so
// callers can run without metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pithecene-io/catalogi/types"
)

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	Invocations int64 `json:"invocations"`
	Succeeded   int64 `json:"succeeded"`
	Empty       int64 `json:"empty"`
	Failed      int64 `json:"failed"`

	ValidationFailures int64 `json:"validation_failures"`

	JournalWriteSuccess int64 `json:"journal_write_success"`
	JournalWriteFailure int64 `json:"journal_write_failure"`

	NotifySuccess int64 `json:"notify_success"`
	NotifyFailure int64 `json:"notify_failure"`

	// ByOperation counts invocations per operation or command name.
	ByOperation map[string]int64 `json:"by_operation"`
}

// Collector accumulates invocation metrics.
// Thread-safe via sync.Mutex.
type Collector struct {
	registry *prometheus.Registry

	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	validation  *prometheus.CounterVec
	journal     *prometheus.CounterVec
	notify      *prometheus.CounterVec

	mu   sync.Mutex
	snap Snapshot
}

// NewCollector creates a Collector with a fresh Prometheus registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogi_invocations_total",
			Help: "Total number of dispatched invocations, labelled by kind, operation and outcome.",
		}, []string{"kind", "operation", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalogi_invocation_duration_ms",
			Help:    "Service call latency in milliseconds.",
			Buckets: []float64{5, 25, 100, 250, 500, 1000, 2500, 5000, 15000, 60000},
		}, []string{"kind", "operation"}),
		validation: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogi_validation_failures_total",
			Help: "Total number of configurations rejected by schema validation.",
		}, []string{"operation"}),
		journal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogi_journal_writes_total",
			Help: "Total number of journal writes, labelled by result.",
		}, []string{"result"}),
		notify: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalogi_notifications_total",
			Help: "Total number of completion notifications, labelled by result.",
		}, []string{"result"}),
		snap: Snapshot{ByOperation: make(map[string]int64)},
	}
}

// Registry returns the Prometheus registry holding the collector's series.
// Returns nil for a nil collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ObserveInvocation records a finished invocation.
func (c *Collector) ObserveInvocation(inv *types.Invocation) {
	if c == nil || inv == nil {
		return
	}
	c.invocations.WithLabelValues(string(inv.Kind), inv.Operation, string(inv.Outcome)).Inc()
	c.duration.WithLabelValues(string(inv.Kind), inv.Operation).Observe(float64(inv.DurationMs))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.Invocations++
	c.snap.ByOperation[inv.Operation]++
	switch inv.Outcome {
	case types.OutcomeSuccess:
		c.snap.Succeeded++
	case types.OutcomeEmpty:
		c.snap.Empty++
	case types.OutcomeError:
		c.snap.Failed++
	}
}

// IncValidationFailure records a rejected configuration.
func (c *Collector) IncValidationFailure(operation string) {
	if c == nil {
		return
	}
	c.validation.WithLabelValues(operation).Inc()
	c.mu.Lock()
	c.snap.ValidationFailures++
	c.mu.Unlock()
}

// IncJournalWrite records the result of a journal write.
func (c *Collector) IncJournalWrite(ok bool) {
	if c == nil {
		return
	}
	c.journal.WithLabelValues(result(ok)).Inc()
	c.mu.Lock()
	if ok {
		c.snap.JournalWriteSuccess++
	} else {
		c.snap.JournalWriteFailure++
	}
	c.mu.Unlock()
}

// IncNotify records the result of a completion notification.
func (c *Collector) IncNotify(ok bool) {
	if c == nil {
		return
	}
	c.notify.WithLabelValues(result(ok)).Inc()
	c.mu.Lock()
	if ok {
		c.snap.NotifySuccess++
	} else {
		c.snap.NotifyFailure++
	}
	c.mu.Unlock()
}

// Snapshot returns a copy of the counters. Returns the zero Snapshot for a
// nil collector.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.snap
	s.ByOperation = make(map[string]int64, len(c.snap.ByOperation))
	for k, v := range c.snap.ByOperation {
		s.ByOperation[k] = v
	}
	return s
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
