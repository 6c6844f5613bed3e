package handler

import (
	"net/http"

	"github.com/vfg2006/metrics-sync-api/internal/api/handler/router"
	"github.com/vfg2006/metrics-sync-api/internal/observability"
	"github.com/vfg2006/metrics-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/metrics-sync-api/pkg/middleware"
)

func Healthcheck(deps map[string]Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(deps),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: observability.Handler(),
		},
	}
}

func MetricsSync(service syncing.MetricsSyncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/metrics/sync",
			Method:      http.MethodPost,
			Handler:     SyncMetrics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sync-jobs/:id",
			Method:      http.MethodGet,
			Handler:     GetSyncJob(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(runner CronRunner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/metrics/run",
			Method:      http.MethodPost,
			Handler:     RunMetricsCron(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(runner),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
