package syncing

import (
	"context"
	"time"

	"github.com/vfg2006/metrics-sync-api/internal/domain"
	"github.com/vfg2006/metrics-sync-api/internal/observability"
	"github.com/vfg2006/metrics-sync-api/pkg/log"
)

// SyncRequest pede a sincronização de métricas de uma conta. EntityType e
// EntityID restringem a execução a uma subárvore da hierarquia.
type SyncRequest struct {
	UserID      string
	AdAccountID string
	AccessToken string
	DatePreset  domain.DatePreset
	EntityType  domain.EntityLevel
	EntityID    string
}

func (r SyncRequest) Validate() error {
	if r.UserID == "" {
		return ErrUserIDRequired
	}
	if r.AdAccountID == "" {
		return ErrAdAccountIDRequired
	}
	if r.EntityType != "" {
		if _, err := domain.ParseEntityLevel(string(r.EntityType)); err != nil {
			return err
		}
		if r.EntityID == "" {
			return ErrEntityIDRequired
		}
	}
	return nil
}

type Service struct {
	entities   EntityRepository
	fetcher    MetricsFetcher
	prober     CredentialProber
	reconciler *Reconciler
	store      *MetricsStore
	tracker    *JobTracker
}

// NewService monta o orquestrador. prober pode ser nil quando a verificação de
// escopos estiver desligada.
func NewService(
	entities EntityRepository,
	fetcher MetricsFetcher,
	prober CredentialProber,
	reconciler *Reconciler,
	store *MetricsStore,
	tracker *JobTracker,
) *Service {
	return &Service{
		entities:   entities,
		fetcher:    fetcher,
		prober:     prober,
		reconciler: reconciler,
		store:      store,
		tracker:    tracker,
	}
}

// SyncAllMetrics sincroniza campaign, adset e ad em sequência e devolve o id do
// job. O job termina completed mesmo com níveis degradados; só falhas do próprio
// acompanhamento do job o marcam como failed.
func (s *Service) SyncAllMetrics(ctx context.Context, req SyncRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	token, err := s.resolveAccessToken(ctx, req)
	if err != nil {
		return "", err
	}
	req.AccessToken = token

	startedAt := time.Now()
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id":       req.UserID,
		"ad_account_id": req.AdAccountID,
		"entity_type":   req.EntityType,
		"entity_id":     req.EntityID,
	})

	jobID, err := s.tracker.Create(ctx, req.UserID, req.AdAccountID, domain.JobTypeMetrics)
	if err != nil {
		logger.WithError(err).Error("sync: falha ao criar job")
		return "", &domain.OrchestrationError{Op: "create job", Err: err}
	}

	logger = logger.WithField("job_id", jobID)

	if err := s.tracker.Begin(ctx, jobID); err != nil {
		return jobID, s.failJob(ctx, logger, jobID, "begin job", err, startedAt)
	}

	details := &domain.JobDetails{}
	if s.probeCredential(ctx, logger, req.AccessToken) {
		details.PermissionIssues = true
	}

	run := &levelRun{jobID: jobID, req: req, details: details}
	s.runStages(ctx, run, buildStages(req))

	if details.PermissionIssues {
		observability.PermissionIssuesTotal.Inc()
	}

	// o job precisa terminar mesmo que a requisição tenha sido cancelada
	if err := s.tracker.Succeed(context.WithoutCancel(ctx), jobID, details); err != nil {
		return jobID, s.failJob(ctx, logger, jobID, "complete job", err, startedAt)
	}

	observability.ObserveJob(string(domain.JobStatusCompleted), startedAt)

	logger.WithFields(log.Fields{
		"campaigns_synced":  details.CampaignsSynced,
		"adsets_synced":     details.AdSetsSynced,
		"ads_synced":        details.AdsSynced,
		"permission_issues": details.PermissionIssues,
		"level_errors":      len(details.LevelErrors),
		"elapsed":           time.Since(startedAt).String(),
	}).Info("sync: job concluído")

	return jobID, nil
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*domain.SyncJob, error) {
	return s.tracker.Get(ctx, jobID)
}

func (s *Service) failJob(ctx context.Context, logger log.Logger, jobID, op string, cause error, startedAt time.Time) error {
	orchErr := &domain.OrchestrationError{JobID: jobID, Op: op, Err: cause}
	logger.WithError(cause).Error("sync: job interrompido")

	if err := s.tracker.Fail(context.WithoutCancel(ctx), jobID, cause.Error()); err != nil {
		logger.WithError(err).Error("sync: falha ao marcar job como failed")
	}

	observability.ObserveJob(string(domain.JobStatusFailed), startedAt)
	return orchErr
}

// probeCredential indica se o token não tem os escopos exigidos. Uma falha na
// verificação só é registrada.
func (s *Service) probeCredential(ctx context.Context, logger log.Logger, accessToken string) bool {
	if s.prober == nil {
		return false
	}

	missing, err := s.prober.CheckPermissions(ctx, accessToken)
	if err != nil {
		if isPermissionFailure(err) {
			return true
		}
		logger.WithError(err).Warn("sync: não foi possível verificar as permissões do token")
		return false
	}

	if len(missing) > 0 {
		logger.WithField("missing_scopes", missing).Warn("sync: token sem escopos exigidos")
		return true
	}

	return false
}

// resolveAccessToken exige que a conta pertença ao usuário. O token enviado na
// requisição tem prioridade sobre o armazenado.
func (s *Service) resolveAccessToken(ctx context.Context, req SyncRequest) (string, error) {
	account, err := s.entities.GetConnectedAccount(ctx, req.UserID, req.AdAccountID)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", ErrAccountNotFound
	}
	if req.AccessToken != "" {
		return req.AccessToken, nil
	}
	if account.AccessToken == "" {
		return "", ErrMissingAccessToken
	}
	return account.AccessToken, nil
}
