package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the tool daemon.
type Metrics struct {
	registry        *prometheus.Registry
	ToolInvocations *prometheus.CounterVec
	ToolDuration    *prometheus.HistogramVec
	ActiveRequests  *prometheus.GaugeVec
	TransportErrs   *prometheus.CounterVec
	ProcessRuns     *prometheus.CounterVec
}

// NewMetrics constructs a metrics registry with tool collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	invocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "se333_tool_invocations_total",
		Help: "Tool invocations by tool name and result status",
	}, []string{"tool", "status"})

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "se333_tool_duration_seconds",
		Help:    "Tool invocation duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})

	active := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "se333_active_requests",
		Help: "In-flight tool requests by transport",
	}, []string{"transport"})

	trErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "se333_transport_errors_total",
		Help: "Transport-level errors by transport and reason",
	}, []string{"transport", "reason"})

	procRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "se333_process_runs_total",
		Help: "External process invocations by command and outcome",
	}, []string{"command", "outcome"})

	reg.MustRegister(invocations, durations, active, trErrors, procRuns)

	return &Metrics{
		registry:        reg,
		ToolInvocations: invocations,
		ToolDuration:    durations,
		ActiveRequests:  active,
		TransportErrs:   trErrors,
		ProcessRuns:     procRuns,
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordInvocation records a completed tool call with its status label.
func (m *Metrics) RecordInvocation(tool, status string, duration time.Duration) {
	if m == nil {
		return
	}
	if tool == "" {
		tool = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	m.ToolInvocations.WithLabelValues(tool, status).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// IncActiveRequests increments the in-flight request gauge.
func (m *Metrics) IncActiveRequests(transport string) {
	if m == nil {
		return
	}
	m.ActiveRequests.WithLabelValues(transport).Inc()
}

// DecActiveRequests decrements the in-flight request gauge.
func (m *Metrics) DecActiveRequests(transport string) {
	if m == nil {
		return
	}
	m.ActiveRequests.WithLabelValues(transport).Dec()
}

// RecordTransportError records a transport-level error.
func (m *Metrics) RecordTransportError(transport, reason string) {
	if m == nil {
		return
	}
	if transport == "" {
		transport = "unknown"
	}
	if reason == "" {
		reason = "unknown"
	}
	m.TransportErrs.WithLabelValues(transport, reason).Inc()
}

// RecordProcessRun records an external command invocation outcome.
func (m *Metrics) RecordProcessRun(command, outcome string) {
	if m == nil {
		return
	}
	if command == "" {
		command = "unknown"
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.ProcessRuns.WithLabelValues(command, outcome).Inc()
}
