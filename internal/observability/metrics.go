package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Statements       *prometheus.CounterVec
	StatementLatency *prometheus.HistogramVec
	Batches          *prometheus.CounterVec
	RecordsInserted  prometheus.Counter
	ImportRuns       *prometheus.CounterVec
}

// NewMetrics registers the service collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Statements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "store_statements_total",
			Help: "Statements sent to the record store, by kind and outcome",
		}, []string{"kind", "outcome"}),
		StatementLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "store_statement_duration_seconds",
			Help:    "Record store statement latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		Batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "import_batches_total",
			Help: "Import batches attempted, by outcome",
		}, []string{"outcome"}),
		RecordsInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "import_records_inserted_total",
			Help: "Records inserted by the batch importer",
		}),
		ImportRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "import_runs_total",
			Help: "Import runs finished, by status",
		}, []string{"status"}),
	}

	reg.MustRegister(m.Statements, m.StatementLatency, m.Batches, m.RecordsInserted, m.ImportRuns)
	return m
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
