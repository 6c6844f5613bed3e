// Package observability expõe as métricas Prometheus do pipeline de sincronização
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "metrics_sync"

var (
	SyncJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "total",
			Help:      "Jobs de sincronização finalizados por status",
		},
		[]string{"status"},
	)

	SyncJobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "duration_seconds",
			Help:      "Duração de um job de sincronização",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	MetaRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "meta",
			Name:      "insights_requests_total",
			Help:      "Chamadas de insights ao Meta por nível e resultado",
		},
		[]string{"level", "result"},
	)

	RecordsWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "records_written_total",
			Help:      "Registros de métricas gravados por tabela",
		},
		[]string{"table"},
	)

	StoreChunkErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "chunk_errors_total",
			Help:      "Lotes de upsert que falharam por tabela",
		},
		[]string{"table"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duração das requisições HTTP por método e status",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	PermissionIssuesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "meta",
			Name:      "permission_issues_total",
			Help:      "Jobs que encontraram erro de permissão no Meta",
		},
	)
)

// Resultados usados no rótulo result de MetaRequestsTotal
const (
	ResultSuccess    = "success"
	ResultPermission = "permission"
	ResultError      = "error"
)

// ObserveJob registra o status final e a duração de um job
func ObserveJob(status string, startedAt time.Time) {
	SyncJobsTotal.WithLabelValues(status).Inc()
	SyncJobDuration.Observe(time.Since(startedAt).Seconds())
}

// Handler serve as métricas no formato de exposição do Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
