package syncing

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/metrics-sync-api/internal/config"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
	"github.com/vfg2006/metrics-sync-api/internal/observability"
	"github.com/vfg2006/metrics-sync-api/pkg/utils"
)

// UpsertResult resume uma gravação em lotes. Falhas de lote não interrompem os demais.
type UpsertResult struct {
	Written      int
	FailedChunks int
	Errors       []error
}

// Err agrega as falhas da gravação, ou nil quando tudo foi gravado
func (r UpsertResult) Err() error {
	return errors.Join(r.Errors...)
}

type MetricsStore struct {
	repo      MetricsRepository
	notifier  ChangeNotifier
	chunkSize int
	now       func() time.Time
}

func NewMetricsStore(repo MetricsRepository, notifier ChangeNotifier, chunkSize int, now func() time.Time) *MetricsStore {
	if chunkSize <= 0 || chunkSize > config.MaxStoreChunkSize {
		chunkSize = config.MaxStoreChunkSize
	}
	if now == nil {
		now = time.Now
	}
	return &MetricsStore{
		repo:      repo,
		notifier:  notifier,
		chunkSize: chunkSize,
		now:       now,
	}
}

// Upsert grava os registros do nível em lotes e, ao final, marca last_synced_at
// só das entidades cujos registros foram todos gravados.
func (s *MetricsStore) Upsert(ctx context.Context, userID string, level domain.EntityLevel, entityIDs []string, records []domain.MetricRecord) UpsertResult {
	var result UpsertResult
	table := level.MetricsTable()
	written := make(map[string]struct{})
	failed := make(map[string]struct{})

	for i, chunk := range utils.Chunk(records, s.chunkSize) {
		if _, err := s.repo.UpsertMetrics(ctx, level, chunk); err != nil {
			storeErr := &domain.StoreWriteError{Table: table, Chunk: i, Size: len(chunk), Err: err}
			logrus.WithFields(logrus.Fields{
				"table":      table,
				"chunk":      i,
				"chunk_size": len(chunk),
				"error":      err.Error(),
			}).Error("store: falha ao gravar lote de métricas")

			observability.StoreChunkErrorsTotal.WithLabelValues(table).Inc()
			for _, id := range chunkEntityIDs(chunk) {
				failed[id] = struct{}{}
			}
			result.FailedChunks++
			result.Errors = append(result.Errors, storeErr)
			continue
		}

		result.Written += len(chunk)
		observability.RecordsWrittenTotal.WithLabelValues(table).Add(float64(len(chunk)))

		chunkIDs := chunkEntityIDs(chunk)
		for _, id := range chunkIDs {
			written[id] = struct{}{}
		}

		s.publish(ctx, domain.ChangeEvent{
			Table:     table,
			UserID:    userID,
			Operation: domain.ChangeUpsert,
			EntityIDs: chunkIDs,
			Count:     len(chunk),
		})
	}

	synced := syncedEntityIDs(entityIDs, written, failed)
	if len(synced) > 0 {
		if err := s.repo.MarkSynced(ctx, level, synced, s.now().UTC()); err != nil {
			logrus.WithFields(logrus.Fields{
				"table": level.EntityTable(),
				"count": len(synced),
				"error": err.Error(),
			}).Error("store: falha ao atualizar last_synced_at")
			result.Errors = append(result.Errors, err)
		} else {
			s.publish(ctx, domain.ChangeEvent{
				Table:     level.EntityTable(),
				UserID:    userID,
				Operation: domain.ChangeUpdate,
				EntityIDs: synced,
				Count:     len(synced),
			})
		}
	}

	logrus.WithFields(logrus.Fields{
		"table":         table,
		"records":       len(records),
		"written":       result.Written,
		"failed_chunks": result.FailedChunks,
	}).Debug("store: gravação do nível concluída")

	return result
}

// publish nunca falha a gravação: erros de notificação só são registrados
func (s *MetricsStore) publish(ctx context.Context, event domain.ChangeEvent) {
	if s.notifier == nil {
		return
	}

	event.OccurredAt = s.now().UTC()
	if id, err := utils.GenerateID(); err == nil {
		event.ID = id
	}

	if err := s.notifier.Publish(ctx, event); err != nil {
		logrus.WithFields(logrus.Fields{
			"table":   event.Table,
			"user_id": event.UserID,
			"error":   err.Error(),
		}).Warn("store: falha ao publicar notificação de mudança")
	}
}

func chunkEntityIDs(records []domain.MetricRecord) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.EntityID]; ok {
			continue
		}
		seen[r.EntityID] = struct{}{}
		ids = append(ids, r.EntityID)
	}
	return ids
}

// syncedEntityIDs mantém a ordem de entityIDs e descarta entidades sem registro
// gravado ou com algum lote que falhou
func syncedEntityIDs(entityIDs []string, written, failed map[string]struct{}) []string {
	ids := make([]string, 0, len(entityIDs))
	for _, id := range entityIDs {
		if _, ok := written[id]; !ok {
			continue
		}
		if _, ok := failed[id]; ok {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
