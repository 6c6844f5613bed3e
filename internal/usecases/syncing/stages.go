package syncing

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/metrics-sync-api/internal/domain"
	"github.com/vfg2006/metrics-sync-api/pkg/log"
)

// stage é um nível da hierarquia no pipeline. Quando seed está preenchido o
// nível não é listado: as entidades já são conhecidas.
type stage struct {
	level domain.EntityLevel
	seed  []domain.Entity
}

// buildStages monta a sequência campaign -> adset -> ad a partir do escopo do pedido
func buildStages(req SyncRequest) []stage {
	start := domain.LevelCampaign
	var seed []domain.Entity

	if req.EntityType != "" {
		start = req.EntityType
		seed = []domain.Entity{{ID: req.EntityID, Level: req.EntityType}}
	}

	stages := []stage{{level: start, seed: seed}}
	for level, ok := start.Child(); ok; level, ok = level.Child() {
		stages = append(stages, stage{level: level})
	}

	return stages
}

// levelRun carrega o estado de um job enquanto os estágios executam
type levelRun struct {
	jobID   string
	req     SyncRequest
	details *domain.JobDetails
}

// runStages executa os níveis em ordem. Uma falha em um nível fica registrada
// nos detalhes e o próximo nível roda mesmo assim.
func (s *Service) runStages(ctx context.Context, run *levelRun, stages []stage) {
	parentIDs := []string{run.req.AdAccountID}

	for _, st := range stages {
		entities, err := s.resolveEntities(ctx, st, parentIDs)
		if err != nil {
			log.ForContext(ctx).WithFields(log.Fields{
				"job_id":       run.jobID,
				"entity_level": st.level,
				"error":        err.Error(),
			}).Error("sync: falha ao listar entidades do nível")
			run.details.AddLevelError(st.level, err)
			entities = []domain.Entity{}
		}

		run.details.SetSynced(st.level, len(entities))

		if len(entities) > 0 {
			if err := s.syncLevel(ctx, run, st.level, entities); err != nil {
				run.details.AddLevelError(st.level, err)
			}
		}

		parentIDs = domain.EntityIDs(entities)
	}
}

func (s *Service) resolveEntities(ctx context.Context, st stage, parentIDs []string) ([]domain.Entity, error) {
	if st.seed != nil {
		return st.seed, nil
	}
	if len(parentIDs) == 0 {
		return []domain.Entity{}, nil
	}

	entities, err := s.entities.ListEntities(ctx, st.level, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar %s: %w", st.level.EntityTable(), err)
	}
	return entities, nil
}

// syncLevel busca, reconcilia e grava um nível. Uma busca que falha ainda gera
// a série zerada para as entidades sem dados.
func (s *Service) syncLevel(ctx context.Context, run *levelRun, level domain.EntityLevel, entities []domain.Entity) error {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"job_id":       run.jobID,
		"entity_level": level,
		"entity_count": len(entities),
	})

	entityIDs := domain.EntityIDs(entities)
	preset := run.req.DatePreset.Normalize()

	rows, fetchErr := s.fetcher.FetchInsights(ctx, domain.InsightsQuery{
		AdAccountID: run.req.AdAccountID,
		Level:       level,
		EntityIDs:   entityIDs,
		DatePreset:  preset,
		AccessToken: run.req.AccessToken,
	})
	if fetchErr != nil {
		if isPermissionFailure(fetchErr) {
			run.details.PermissionIssues = true
			logger.WithField("error", fetchErr.Error()).Warn("sync: token sem permissão para buscar insights")
		} else {
			logger.WithField("error", fetchErr.Error()).Error("sync: falha ao buscar insights, usando série zerada")
		}
	}

	records := s.reconciler.Reconcile(entities, preset.WindowDays(), rows)

	result := s.store.Upsert(ctx, run.req.UserID, level, entityIDs, records)

	logger.WithFields(log.Fields{
		"rows":          len(rows),
		"records":       len(records),
		"written":       result.Written,
		"failed_chunks": result.FailedChunks,
	}).Info("sync: nível sincronizado")

	return errors.Join(fetchErr, result.Err())
}
