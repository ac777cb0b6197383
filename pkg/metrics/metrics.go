// Package metrics provides prometheus collectors for queue, admission, publishing and scheduled tasks.
// All methods are safe to call on a nil *Metrics, so components can run without instrumentation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/postguard/pkg/domain"
)

// Metrics holds all collectors registered on its own registry
type Metrics struct {
	reg *prometheus.Registry

	submitted       *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	admission       *prometheus.CounterVec
	published       *prometheus.CounterVec
	publishDuration *prometheus.HistogramVec
	cycles          *prometheus.CounterVec
	taskRuns        *prometheus.CounterVec
	taskSkips       *prometheus.CounterVec
	killSwitch      prometheus.Gauge
	hourlyRemaining prometheus.Gauge
}

// New makes metrics with a fresh registry, including go and process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		submitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "postguard_items_submitted_total",
			Help: "Number of drafts submitted to the queue",
		}, []string{"platform", "compliant"}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "postguard_item_transitions_total",
			Help: "Number of item status transitions",
		}, []string{"from", "to"}),
		admission: f.NewCounterVec(prometheus.CounterOpts{
			Name: "postguard_admission_decisions_total",
			Help: "Number of admission decisions by reason",
		}, []string{"reason"}),
		published: f.NewCounterVec(prometheus.CounterOpts{
			Name: "postguard_publish_total",
			Help: "Number of publish attempts by platform and result",
		}, []string{"platform", "result"}),
		publishDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "postguard_publish_duration_seconds",
			Help:    "Duration of publish calls",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"platform"}),
		cycles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "postguard_posting_cycles_total",
			Help: "Number of posting cycles by the reason they stopped",
		}, []string{"stopped_by"}),
		taskRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "postguard_task_runs_total",
			Help: "Number of scheduled task runs by result",
		}, []string{"task", "result"}),
		taskSkips: f.NewCounterVec(prometheus.CounterOpts{
			Name: "postguard_task_skips_total",
			Help: "Number of scheduled task ticks skipped because the task was still running",
		}, []string{"task"}),
		killSwitch: f.NewGauge(prometheus.GaugeOpts{
			Name: "postguard_kill_switch",
			Help: "1 if the kill switch is on",
		}),
		hourlyRemaining: f.NewGauge(prometheus.GaugeOpts{
			Name: "postguard_hourly_remaining",
			Help: "Posts left in the global hourly budget",
		}),
	}
}

// Handler returns http handler exposing the registry
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Submitted counts a new draft
func (m *Metrics) Submitted(platform domain.Platform, compliant bool) {
	if m == nil {
		return
	}
	c := "false"
	if compliant {
		c = "true"
	}
	m.submitted.WithLabelValues(string(platform), c).Inc()
}

// Transition counts a status change
func (m *Metrics) Transition(from, to domain.Status) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(string(from), string(to)).Inc()
}

// Admission counts an admission decision
func (m *Metrics) Admission(d domain.Decision) {
	if m == nil {
		return
	}
	reason := string(d.Reason)
	if d.Allowed {
		reason = "allowed"
	}
	m.admission.WithLabelValues(reason).Inc()
}

// Publish records a publish attempt and its duration
func (m *Metrics) Publish(platform domain.Platform, err error, dur time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.published.WithLabelValues(string(platform), result).Inc()
	m.publishDuration.WithLabelValues(string(platform)).Observe(dur.Seconds())
}

// Cycle counts a finished posting cycle, stoppedBy is empty for complete cycles
func (m *Metrics) Cycle(stoppedBy domain.DenyReason) {
	if m == nil {
		return
	}
	reason := string(stoppedBy)
	if reason == "" {
		reason = "completed"
	}
	m.cycles.WithLabelValues(reason).Inc()
}

// TaskRun counts a scheduled task run
func (m *Metrics) TaskRun(task string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.taskRuns.WithLabelValues(task, result).Inc()
}

// TaskSkipped counts a tick coalesced into a running task
func (m *Metrics) TaskSkipped(task string) {
	if m == nil {
		return
	}
	m.taskSkips.WithLabelValues(task).Inc()
}

// KillSwitch sets the kill switch gauge
func (m *Metrics) KillSwitch(on bool) {
	if m == nil {
		return
	}
	v := 0.0
	if on {
		v = 1
	}
	m.killSwitch.Set(v)
}

// HourlyRemaining sets the global budget gauge
func (m *Metrics) HourlyRemaining(n int) {
	if m == nil {
		return
	}
	m.hourlyRemaining.Set(float64(n))
}
