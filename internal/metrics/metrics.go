package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics of the tagging pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	LinesAccepted  prometheus.Counter
	LinesMalformed prometheus.Counter
	RecordsByTag   *prometheus.CounterVec
	LookupEntries  prometheus.Gauge
	WriterErrors   *prometheus.CounterVec
	Runs           prometheus.Counter
}

// NewMetrics creates the pipeline metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LinesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowtag_lines_accepted_total",
			Help: "Total number of flow log lines counted",
		}),
		LinesMalformed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowtag_lines_malformed_total",
			Help: "Total number of flow log lines skipped by the shape check",
		}),
		RecordsByTag: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowtag_records_total",
			Help: "Total number of flow records per assigned tag",
		}, []string{"tag"}),
		LookupEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "flowtag_lookup_entries",
			Help: "Number of port/protocol entries in the loaded lookup table",
		}),
		WriterErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowtag_writer_errors_total",
			Help: "Total number of failed report writes per writer",
		}, []string{"writer"}),
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowtag_runs_total",
			Help: "Total number of pipeline runs",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.LinesAccepted,
			m.LinesMalformed,
			m.RecordsByTag,
			m.LookupEntries,
			m.WriterErrors,
			m.Runs,
		)
	}
	return m
}

// ObserveAccepted records one counted flow under tag.
func (m *Metrics) ObserveAccepted(tag string) {
	if m == nil {
		return
	}
	m.LinesAccepted.Inc()
	m.RecordsByTag.WithLabelValues(tag).Inc()
}

// ObserveMalformed records one skipped line.
func (m *Metrics) ObserveMalformed() {
	if m == nil {
		return
	}
	m.LinesMalformed.Inc()
}

// SetLookupEntries records the size of the loaded lookup table.
func (m *Metrics) SetLookupEntries(n int) {
	if m == nil {
		return
	}
	m.LookupEntries.Set(float64(n))
}

// ObserveWriterError records a failed write for the named writer.
func (m *Metrics) ObserveWriterError(writer string) {
	if m == nil {
		return
	}
	m.WriterErrors.WithLabelValues(writer).Inc()
}

// ObserveRun records a completed pipeline run.
func (m *Metrics) ObserveRun() {
	if m == nil {
		return
	}
	m.Runs.Inc()
}
