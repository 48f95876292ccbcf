package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus counters and gauges for one tracker instance.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	admissions        prometheus.Counter
	rejections        prometheus.Counter
	reports           prometheus.Counter
	persistFailures   prometheus.Counter
	commands          *prometheus.CounterVec
	sessionsReclaimed prometheus.Counter
	vehiclesInactive  prometheus.Counter
	sweeps            *prometheus.CounterVec
	activeStreams     prometheus.Gauge
}

// NewMetrics creates and registers the tracker metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		admissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_admissions_total",
			Help: "Streams admitted after claiming a vehicle session",
		}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_duplicate_rejections_total",
			Help: "Streams rejected because the vehicle already had a fresh session",
		}),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_reports_total",
			Help: "Position reports processed on admitted streams",
		}),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_persist_failures_total",
			Help: "Store writes that failed during report processing",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_commands_total",
			Help: "Commands pushed to vehicles, by command",
		}, []string{"command"}),
		sessionsReclaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_sessions_reclaimed_total",
			Help: "Stale sessions deleted by the liveness sweeper",
		}),
		vehiclesInactive: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tracker_vehicles_deactivated_total",
			Help: "Vehicles marked inactive by the liveness sweeper",
		}),
		sweeps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tracker_sweeps_total",
			Help: "Liveness sweeper passes, by result",
		}, []string{"result"}),
		activeStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tracker_active_streams",
			Help: "Admitted streams currently held by this instance",
		}),
	}

	m.registry.MustRegister(
		m.admissions,
		m.rejections,
		m.reports,
		m.persistFailures,
		m.commands,
		m.sessionsReclaimed,
		m.vehiclesInactive,
		m.sweeps,
		m.activeStreams,
	)
	return m
}

func (m *Metrics) IncAdmissions() {
	if m != nil {
		m.admissions.Inc()
	}
}

func (m *Metrics) IncRejections() {
	if m != nil {
		m.rejections.Inc()
	}
}

func (m *Metrics) IncReports() {
	if m != nil {
		m.reports.Inc()
	}
}

func (m *Metrics) IncPersistFailures() {
	if m != nil {
		m.persistFailures.Inc()
	}
}

// IncCommands counts one command sent to a vehicle.
func (m *Metrics) IncCommands(command string) {
	if m != nil {
		m.commands.WithLabelValues(command).Inc()
	}
}

// ObserveSweep records the outcome of one sweeper pass.
func (m *Metrics) ObserveSweep(reclaimed, deactivated int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.sweeps.WithLabelValues("error").Inc()
		return
	}
	m.sweeps.WithLabelValues("ok").Inc()
	m.sessionsReclaimed.Add(float64(reclaimed))
	m.vehiclesInactive.Add(float64(deactivated))
}

// SetActiveStreams sets the local stream gauge.
func (m *Metrics) SetActiveStreams(n int) {
	if m != nil {
		m.activeStreams.Set(float64(n))
	}
}

// Handler serves the registry in the Prometheus text format. updateGauges is
// called before each scrape to refresh gauges computed on demand.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
