package syncing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
	"github.com/vfg2006/metrics-sync-api/pkg/utils"
)

// JobTracker persiste o ciclo de vida dos jobs. Toda transição é condicional ao
// status atual no banco, então um job nunca volta de estado.
type JobTracker struct {
	repo     SyncJobRepository
	notifier ChangeNotifier
	now      func() time.Time

	// dono de cada job criado por este tracker, até o job terminar
	owners sync.Map
}

func NewJobTracker(repo SyncJobRepository, notifier ChangeNotifier, now func() time.Time) *JobTracker {
	if now == nil {
		now = time.Now
	}
	return &JobTracker{
		repo:     repo,
		notifier: notifier,
		now:      now,
	}
}

func (t *JobTracker) Create(ctx context.Context, userID, adAccountID string, jobType domain.JobType) (string, error) {
	job := &domain.SyncJob{
		ID:          uuid.New().String(),
		UserID:      userID,
		AdAccountID: adAccountID,
		JobType:     jobType,
		Status:      domain.JobStatusPending,
		StartedAt:   t.now().UTC(),
	}

	if err := t.repo.Create(ctx, job); err != nil {
		return "", fmt.Errorf("erro ao criar job: %w", err)
	}

	t.owners.Store(job.ID, userID)
	t.publish(ctx, job, domain.ChangeInsert)

	return job.ID, nil
}

// Begin só sai de pending. Em qualquer outro estado devolve ErrInvalidTransition
// sem alterar o job.
func (t *JobTracker) Begin(ctx context.Context, jobID string) error {
	applied, err := t.repo.Transition(ctx, jobID, domain.JobTransition{
		From: domain.JobStatusPending,
		To:   domain.JobStatusRunning,
	})
	if err != nil {
		return fmt.Errorf("erro ao iniciar job: %w", err)
	}

	if applied {
		t.publish(ctx, t.reread(ctx, jobID, domain.JobStatusRunning), domain.ChangeUpdate)
		return nil
	}

	job, err := t.Get(ctx, jobID)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: job %s está %s", ErrInvalidTransition, jobID, job.Status)
}

// Succeed é um no-op quando o job já terminou
func (t *JobTracker) Succeed(ctx context.Context, jobID string, details *domain.JobDetails) error {
	completedAt := t.now().UTC()
	return t.finish(ctx, jobID, domain.JobTransition{
		From:        domain.JobStatusRunning,
		To:          domain.JobStatusCompleted,
		CompletedAt: &completedAt,
		Details:     details,
	})
}

// Fail é um no-op quando o job já terminou. Um job que nem chegou a começar
// também pode ser marcado como failed.
func (t *JobTracker) Fail(ctx context.Context, jobID string, message string) error {
	completedAt := t.now().UTC()
	return t.finish(ctx, jobID, domain.JobTransition{
		From:         domain.JobStatusRunning,
		To:           domain.JobStatusFailed,
		CompletedAt:  &completedAt,
		ErrorMessage: &message,
	})
}

func (t *JobTracker) finish(ctx context.Context, jobID string, transition domain.JobTransition) error {
	applied, err := t.repo.Transition(ctx, jobID, transition)
	if err != nil {
		return fmt.Errorf("erro ao finalizar job: %w", err)
	}

	if applied {
		t.publish(ctx, t.reread(ctx, jobID, transition.To), domain.ChangeUpdate)
		t.owners.Delete(jobID)
		return nil
	}

	job, err := t.Get(ctx, jobID)
	if err != nil {
		return err
	}

	switch {
	case job.Status.IsTerminal():
		logrus.WithFields(logrus.Fields{
			"job_id": jobID,
			"status": job.Status,
			"target": transition.To,
		}).Debug("tracker: job já finalizado, transição ignorada")
		return nil
	case job.Status != transition.From && job.Status.CanTransitionTo(transition.To):
		transition.From = job.Status
		return t.finish(ctx, jobID, transition)
	default:
		return fmt.Errorf("%w: job %s está %s", ErrInvalidTransition, jobID, job.Status)
	}
}

// reread relê um job cuja transição já foi gravada. Se a releitura falhar, o
// job é montado com o status gravado e o dono registrado no Create.
func (t *JobTracker) reread(ctx context.Context, jobID string, status domain.JobStatus) *domain.SyncJob {
	job, err := t.Get(ctx, jobID)
	if err == nil {
		return job
	}

	logrus.WithFields(logrus.Fields{
		"job_id": jobID,
		"status": status,
		"error":  err.Error(),
	}).Warn("tracker: transição gravada, mas a releitura do job falhou")

	job = &domain.SyncJob{ID: jobID, Status: status}
	if userID, ok := t.owners.Load(jobID); ok {
		job.UserID = userID.(string)
	}
	return job
}

func (t *JobTracker) Get(ctx context.Context, jobID string) (*domain.SyncJob, error) {
	job, err := t.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar job: %w", err)
	}
	if job == nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	return job, nil
}

func (t *JobTracker) publish(ctx context.Context, job *domain.SyncJob, operation domain.ChangeOperation) {
	if t.notifier == nil {
		return
	}

	event := domain.ChangeEvent{
		Table:      domain.SyncJobsTable,
		UserID:     job.UserID,
		Operation:  operation,
		EntityIDs:  []string{job.ID},
		Count:      1,
		JobID:      job.ID,
		Status:     job.Status,
		OccurredAt: t.now().UTC(),
	}
	if id, err := utils.GenerateID(); err == nil {
		event.ID = id
	}

	if err := t.notifier.Publish(ctx, event); err != nil {
		logrus.WithFields(logrus.Fields{
			"job_id": job.ID,
			"status": job.Status,
			"error":  err.Error(),
		}).Warn("tracker: falha ao publicar mudança do job")
	}
}
