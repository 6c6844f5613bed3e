package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/metrics-sync-api/internal/config"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
	"github.com/vfg2006/metrics-sync-api/internal/usecases/syncing"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=metrics_sync.go -destination=mocks/metrics_sync.go -package=mocks

// AccountLister devolve as contas com token armazenado que entram na rodada agendada
type AccountLister interface {
	ListConnectedAccounts(ctx context.Context) ([]domain.ConnectedAccount, error)
}

// MetricsSyncConfig representa a configuração do agendador de métricas
type MetricsSyncConfig struct {
	CronSchedule      string
	DatePreset        domain.DatePreset
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// RunSummary resume a última rodada do agendador
type RunSummary struct {
	Accounts int      `json:"accounts"`
	Started  int      `json:"started"`
	Failed   int      `json:"failed"`
	JobIDs   []string `json:"job_ids"`
}

// MetricsSyncService dispara a sincronização de todas as contas conectadas no horário do cron
type MetricsSyncService struct {
	scheduler           *gocron.Scheduler
	config              MetricsSyncConfig
	accounts            AccountLister
	syncer              syncing.MetricsSyncer
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRun             RunSummary
}

func NewMetricsSyncService(accounts AccountLister, syncer syncing.MetricsSyncer, appConfig *config.Config) *MetricsSyncService {
	syncConfig := MetricsSyncConfig{
		CronSchedule:      appConfig.MetricsSync.CronSchedule,
		DatePreset:        domain.DatePreset(appConfig.MetricsSync.DatePreset).Normalize(),
		MaxConcurrentJobs: appConfig.MetricsSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.MetricsSync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs <= 0 {
		syncConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"date_preset":         syncConfig.DatePreset,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de métricas carregada")

	return &MetricsSyncService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    syncConfig,
		accounts:  accounts,
		syncer:    syncer,
		baseCtx:   context.Background(),
	}
}

// Start agenda a rodada e para o agendador quando ctx for cancelado
func (s *MetricsSyncService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada de métricas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de métricas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllAccounts(s.baseCtx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de métricas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de métricas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllAccounts roda uma sincronização por conta conectada. Uma rodada em
// andamento faz a seguinte ser ignorada.
func (s *MetricsSyncService) syncAllAccounts(ctx context.Context) {
	if !s.acquire() {
		logrus.Info("Sincronização de métricas já em andamento, ignorando")
		return
	}
	defer s.release()

	startTime := time.Now()

	accounts, err := s.accounts.ListConnectedAccounts(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar contas conectadas para sincronização")
		return
	}

	if len(accounts) == 0 {
		logrus.Info("Nenhuma conta conectada encontrada para sincronização")
		s.finish(RunSummary{})
		return
	}

	var (
		mu      sync.Mutex
		summary = RunSummary{Accounts: len(accounts), JobIDs: []string{}}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.MaxConcurrentJobs)

	for _, account := range accounts {
		if account.AccessToken == "" {
			logrus.WithField("ad_account_id", account.AdAccountID).Warn("Conta sem token armazenado. Pulando.")
			continue
		}

		acc := account
		g.Go(func() error {
			jobID, err := s.syncer.SyncAllMetrics(gctx, syncing.SyncRequest{
				UserID:      acc.UserID,
				AdAccountID: acc.AdAccountID,
				AccessToken: acc.AccessToken,
				DatePreset:  s.config.DatePreset,
			})

			mu.Lock()
			defer mu.Unlock()

			if jobID != "" {
				summary.Started++
				summary.JobIDs = append(summary.JobIDs, jobID)
			}
			if err != nil {
				summary.Failed++
				logrus.WithFields(logrus.Fields{
					"user_id":       acc.UserID,
					"ad_account_id": acc.AdAccountID,
					"job_id":        jobID,
					"error":         err.Error(),
				}).Error("Erro na sincronização agendada da conta")
			}

			// uma conta com falha não interrompe as outras
			return nil
		})
	}

	_ = g.Wait()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"accounts": summary.Accounts,
		"started":  summary.Started,
		"failed":   summary.Failed,
	}).Info("Sincronização agendada de métricas concluída")

	s.finish(summary)
}

func (s *MetricsSyncService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *MetricsSyncService) release() {
	s.syncMutex.Lock()
	s.syncRunning = false
	s.syncMutex.Unlock()
}

func (s *MetricsSyncService) finish(summary RunSummary) {
	s.syncMutex.Lock()
	s.lastRun = summary
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()
}

// TriggerManualSync inicia uma rodada fora do horário. Retorna false quando
// já existe uma rodada em andamento.
func (s *MetricsSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Sincronização de métricas já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual de métricas")
	go s.syncAllAccounts(context.WithoutCancel(s.baseCtx))
	return true
}

// GetStatus retorna o status atual do agendador
func (s *MetricsSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_date_preset":       s.config.DatePreset,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_run":               s.lastRun,
	}
}
