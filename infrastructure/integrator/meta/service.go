package meta

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/metrics-sync-api/internal/config"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
	"github.com/vfg2006/metrics-sync-api/internal/observability"
	"github.com/vfg2006/metrics-sync-api/pkg/retry"
	"github.com/vfg2006/metrics-sync-api/pkg/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// MetaIntegrator busca insights diários no Meta dividindo os ids em lotes
// de no máximo 10, que é o limite de filtro por chamada.
type MetaIntegrator struct {
	cfg         *config.Config
	Client      metaclient.Client
	limiter     *rate.Limiter
	retryPolicy retry.Policy
}

type Option func(*MetaIntegrator)

// WithRetryPolicy troca a política de novas tentativas por lote
func WithRetryPolicy(policy retry.Policy) Option {
	return func(s *MetaIntegrator) {
		if policy != nil {
			s.retryPolicy = policy
		}
	}
}

// WithRateLimiter troca o limitador de chamadas ao Meta
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(s *MetaIntegrator) {
		s.limiter = limiter
	}
}

func New(cfg *config.Config, client metaclient.Client, opts ...Option) *MetaIntegrator {
	s := &MetaIntegrator{
		cfg:         cfg,
		Client:      client,
		retryPolicy: retry.None(),
	}

	if cfg.Meta.RequestsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Meta.RequestsPerSecond), 1)
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FetchInsights devolve as linhas de todos os lotes que responderam e, quando
// algum lote falha, um erro agregado com as falhas. As linhas obtidas continuam
// válidas mesmo com erro.
func (s *MetaIntegrator) FetchInsights(ctx context.Context, query domain.InsightsQuery) ([]domain.RawMetricRow, error) {
	if len(query.EntityIDs) == 0 {
		return []domain.RawMetricRow{}, nil
	}

	batchSize := s.cfg.MetricsSync.BatchSize
	if batchSize <= 0 || batchSize > config.MaxInsightsBatchSize {
		batchSize = config.MaxInsightsBatchSize
	}

	concurrency := s.cfg.MetricsSync.MaxConcurrentBatches
	if concurrency <= 0 {
		concurrency = 1
	}

	batches := utils.Chunk(query.EntityIDs, batchSize)
	results := make([][]domain.RawMetricRow, len(batches))

	var (
		mu        sync.Mutex
		batchErrs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, batch := range batches {
		g.Go(func() error {
			rows, err := s.fetchBatch(gctx, query, batch)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"entity_level": query.Level,
					"batch":        i,
					"batch_size":   len(batch),
					"error":        err.Error(),
				}).Warn("insights: falha ao buscar lote")

				mu.Lock()
				batchErrs = append(batchErrs, fmt.Errorf("lote %d (%d ids): %w", i, len(batch), err))
				mu.Unlock()
				// a falha de um lote não cancela os demais
				return nil
			}
			results[i] = rows
			return nil
		})
	}

	_ = g.Wait()

	rows := make([]domain.RawMetricRow, 0)
	for _, batchRows := range results {
		rows = append(rows, batchRows...)
	}

	logrus.WithFields(logrus.Fields{
		"entity_level": query.Level,
		"ids":          len(query.EntityIDs),
		"batches":      len(batches),
		"rows":         len(rows),
		"failed":       len(batchErrs),
	}).Debug("insights: busca concluída")

	return rows, errors.Join(batchErrs...)
}

func (s *MetaIntegrator) fetchBatch(ctx context.Context, query domain.InsightsQuery, ids []string) ([]domain.RawMetricRow, error) {
	req := metaclient.InsightsRequest{
		AdAccountID: query.AdAccountID,
		Level:       string(query.Level),
		IDs:         ids,
		DatePreset:  string(query.DatePreset.Normalize()),
		AccessToken: query.AccessToken,
	}

	var insightRows []metadomain.InsightRow
	err := s.retryPolicy.Do(ctx, func() error {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		var err error
		insightRows, err = s.Client.GetInsights(ctx, req)
		observability.MetaRequestsTotal.WithLabelValues(string(query.Level), requestResult(err)).Inc()
		return err
	}, domain.IsTransientFetchError)
	if err != nil {
		return nil, err
	}

	return FactoryRawMetricRows(query.Level, insightRows), nil
}

// CheckPermissions devolve os escopos exigidos que o token não concedeu
func (s *MetaIntegrator) CheckPermissions(ctx context.Context, accessToken string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	permissions, err := s.Client.GetPermissions(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	granted := make([]string, 0, len(permissions))
	for _, p := range permissions {
		if p.Granted() {
			granted = append(granted, p.Permission)
		}
	}

	missing := make([]string, 0)
	for _, scope := range s.cfg.Meta.RequiredScopes {
		if !slices.Contains(granted, scope) {
			missing = append(missing, scope)
		}
	}

	return missing, nil
}

func requestResult(err error) string {
	switch {
	case err == nil:
		return observability.ResultSuccess
	case domain.IsPermissionError(err):
		return observability.ResultPermission
	default:
		return observability.ResultError
	}
}
