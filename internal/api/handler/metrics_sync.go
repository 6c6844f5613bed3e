package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
	"github.com/vfg2006/metrics-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/metrics-sync-api/pkg/apiErrors"
	"github.com/vfg2006/metrics-sync-api/pkg/log"
	"github.com/vfg2006/metrics-sync-api/pkg/middleware"
)

type syncMetricsRequest struct {
	AdAccountID string `json:"ad_account_id"`
	AccessToken string `json:"access_token,omitempty"`
	EntityType  string `json:"entityType,omitempty"`
	EntityID    string `json:"entityId,omitempty"`
	TimeRange   string `json:"timeRange,omitempty"`
}

type syncMetricsResponse struct {
	JobID  string           `json:"job_id"`
	Status domain.JobStatus `json:"status"`
}

// SyncMetrics executa a sincronização da conta e responde com o job já finalizado
func SyncMetrics(service syncing.MetricsSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var body syncMetricsRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		req := syncing.SyncRequest{
			UserID:      claims.UserID,
			AdAccountID: body.AdAccountID,
			AccessToken: body.AccessToken,
			DatePreset:  domain.DatePreset(body.TimeRange),
			EntityID:    body.EntityID,
		}

		if body.EntityType != "" {
			level, err := domain.ParseEntityLevel(body.EntityType)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}
			req.EntityType = level
		}

		jobID, err := service.SyncAllMetrics(r.Context(), req)
		if err != nil {
			logger.WithError(err).WithField("ad_account_id", body.AdAccountID).Error("Erro ao sincronizar métricas")
			writeSyncError(w, err)
			return
		}

		status := domain.JobStatusCompleted
		if job, err := service.GetJob(r.Context(), jobID); err == nil {
			status = job.Status
		} else {
			logger.WithError(err).WithField("job_id", jobID).Warn("Não foi possível ler o status final do job")
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(syncMetricsResponse{JobID: jobID, Status: status}); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetSyncJob devolve um job do usuário autenticado
func GetSyncJob(service syncing.MetricsSyncer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.UserFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		jobID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if jobID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do job não informado", nil)
			return
		}

		job, err := service.GetJob(r.Context(), jobID)
		if err != nil {
			if errors.Is(err, syncing.ErrJobNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrJobNotFound, "Job não encontrado", nil)
				return
			}
			log.ForContext(r.Context()).WithError(err).WithField("job_id", jobID).Error("Erro ao buscar job")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar job", nil)
			return
		}

		// jobs de outros usuários só são visíveis para administradores
		if job.UserID != claims.UserID && claims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrJobNotFound, "Job não encontrado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(job); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func writeSyncError(w http.ResponseWriter, err error) {
	var orchErr *domain.OrchestrationError

	switch {
	case errors.Is(err, syncing.ErrUserIDRequired),
		errors.Is(err, syncing.ErrAdAccountIDRequired),
		errors.Is(err, syncing.ErrEntityIDRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, syncing.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta de anúncios não conectada", nil)

	case errors.Is(err, syncing.ErrMissingAccessToken):
		apiErrors.WriteError(w, apiErrors.ErrMissingAccessToken, "Conta sem token de acesso", nil)

	case errors.As(err, &orchErr):
		var details any
		if orchErr.JobID != "" {
			details = map[string]string{"job_id": orchErr.JobID}
		}
		apiErrors.WriteError(w, apiErrors.ErrSyncFailed, "Falha ao registrar a sincronização", details)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao sincronizar métricas", nil)
	}
}
