package production

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exports container and history activity to Prometheus.
// It implements core.Instrument; ObserveHistory matches core.WithOnMove.
type Metrics struct {
	reg *prometheus.Registry

	applies      *prometheus.CounterVec
	forcedSets   prometheus.Counter
	duration     prometheus.Histogram
	historySize  prometheus.Gauge
	historyIndex prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		reg: reg,
		applies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "immutablectx_applies_total",
			Help: "Total Apply calls by result (ok: snapshot published, failed: mutator aborted)",
		}, []string{"result"}),
		forcedSets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "immutablectx_forced_sets_total",
			Help: "Total snapshots replaced through ForceSet (undo/redo)",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "immutablectx_apply_duration_seconds",
			Help:    "Time from draft clone to last subscriber notification",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		historySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "immutablectx_history_size",
			Help: "Number of snapshots held by the history manager",
		}),
		historyIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "immutablectx_history_index",
			Help: "Current history cursor",
		}),
	}

	for _, c := range []prometheus.Collector{m.applies, m.forcedSets, m.duration, m.historySize, m.historyIndex} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// Applied records one Apply outcome.
func (m *Metrics) Applied(start time.Time, err error) {
	if err != nil {
		m.applies.WithLabelValues("failed").Inc()
		return
	}
	m.applies.WithLabelValues("ok").Inc()
	m.duration.Observe(time.Since(start).Seconds())
}

// Forced records one ForceSet.
func (m *Metrics) Forced(time.Time) {
	m.forcedSets.Inc()
}

// ObserveHistory updates the history gauges.
func (m *Metrics) ObserveHistory(index, size int) {
	m.historyIndex.Set(float64(index))
	m.historySize.Set(float64(size))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
