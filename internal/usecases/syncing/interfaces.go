package syncing

import (
	"context"
	"time"

	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// EntityRepository lista a hierarquia de anúncios mantida fora do pipeline
type EntityRepository interface {
	ListEntities(ctx context.Context, level domain.EntityLevel, parentIDs []string) ([]domain.Entity, error)
	GetConnectedAccount(ctx context.Context, userID, adAccountID string) (*domain.ConnectedAccount, error)
}

// MetricsFetcher busca as linhas diárias de insights no Meta
type MetricsFetcher interface {
	FetchInsights(ctx context.Context, query domain.InsightsQuery) ([]domain.RawMetricRow, error)
}

// CredentialProber devolve os escopos exigidos que o token não possui
type CredentialProber interface {
	CheckPermissions(ctx context.Context, accessToken string) ([]string, error)
}

type MetricsRepository interface {
	UpsertMetrics(ctx context.Context, level domain.EntityLevel, records []domain.MetricRecord) (int64, error)
	MarkSynced(ctx context.Context, level domain.EntityLevel, entityIDs []string, syncedAt time.Time) error
}

type SyncJobRepository interface {
	Create(ctx context.Context, job *domain.SyncJob) error
	GetByID(ctx context.Context, id string) (*domain.SyncJob, error)
	Transition(ctx context.Context, id string, t domain.JobTransition) (bool, error)
}

// ChangeNotifier publica as mutações para assinantes filtrados por tabela e usuário
type ChangeNotifier interface {
	Publish(ctx context.Context, event domain.ChangeEvent) error
}

// MetricsSyncer é o ponto de entrada usado pela API e pelo agendador
type MetricsSyncer interface {
	SyncAllMetrics(ctx context.Context, req SyncRequest) (string, error)
	GetJob(ctx context.Context, jobID string) (*domain.SyncJob, error)
}
