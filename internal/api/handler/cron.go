package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/metrics-sync-api/pkg/apiErrors"
)

// CronRunner é o agendador que pode ser disparado manualmente
type CronRunner interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// RunMetricsCron dispara a rodada de sincronização de todas as contas
func RunMetricsCron(runner CronRunner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunMetricsCron")

		if !runner.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, "Sincronização já em andamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    "metrics",
		})
	})
}

// GetCronStatus retorna o status do agendador de métricas
func GetCronStatus(runner CronRunner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"metrics": runner.GetStatus(),
		})
	})
}
