// Package metrics exports store telemetry as Prometheus collectors.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/beesaferoot/condo-console/internal/store"
)

const namespace = "condo_console"

// Collector implements store.Observer.
type Collector struct {
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
	busy     *prometheus.GaugeVec
	size     *prometheus.GaugeVec
}

func New() *Collector {
	return &Collector{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Store operations by entity, operation and outcome.",
		}, []string{"entity", "op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Wall time of store operations, including reconciliation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "op"}),
		busy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_busy",
			Help:      "1 while a store operation is in flight.",
		}, []string{"entity"}),
		size: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_items",
			Help:      "Number of items in the local mirror.",
		}, []string{"entity"}),
	}
}

// Register adds every collector to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.ops, c.duration, c.busy, c.size} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) ObserveOp(entity string, op store.Op, err error, elapsed time.Duration) {
	c.ops.WithLabelValues(entity, string(op), Outcome(err)).Inc()
	if store.KindOf(err) != store.KindBusy {
		c.duration.WithLabelValues(entity, string(op)).Observe(elapsed.Seconds())
	}
}

func (c *Collector) SetBusy(entity string, busy bool) {
	v := 0.0
	if busy {
		v = 1
	}
	c.busy.WithLabelValues(entity).Set(v)
}

func (c *Collector) SetSize(entity string, n int) {
	c.size.WithLabelValues(entity).Set(float64(n))
}

// Outcome is the label value recorded for an operation's result.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var se *store.Error
	if errors.As(err, &se) {
		return se.Kind.String()
	}
	return "error"
}
