package syncing_test

import (
	"context"
	"errors"
	"sync"

	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

// memoryJobRepo guarda os jobs em memória aplicando as transições condicionais
// da mesma forma que o repositório do postgres.
type memoryJobRepo struct {
	mu               sync.Mutex
	jobs             map[string]*domain.SyncJob
	createErr        error
	failTransitionTo domain.JobStatus
	failReadAt       domain.JobStatus
}

func newMemoryJobRepo() *memoryJobRepo {
	return &memoryJobRepo{jobs: make(map[string]*domain.SyncJob)}
}

func (r *memoryJobRepo) Create(_ context.Context, job *domain.SyncJob) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *job
	r.jobs[job.ID] = &stored
	return nil
}

func (r *memoryJobRepo) GetByID(_ context.Context, id string) (*domain.SyncJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	if r.failReadAt != "" && job.Status == r.failReadAt {
		return nil, errors.New("too many connections")
	}
	copied := *job
	return &copied, nil
}

func (r *memoryJobRepo) Transition(_ context.Context, id string, t domain.JobTransition) (bool, error) {
	if r.failTransitionTo != "" && t.To == r.failTransitionTo {
		return false, errors.New("connection reset by peer")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok || job.Status != t.From {
		return false, nil
	}

	job.Status = t.To
	if t.CompletedAt != nil {
		job.CompletedAt = t.CompletedAt
	}
	if t.ErrorMessage != nil {
		job.ErrorMessage = t.ErrorMessage
	}
	if t.Details != nil {
		job.Details = t.Details
	}
	return true, nil
}

func (r *memoryJobRepo) put(job domain.SyncJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = &job
}

func (r *memoryJobRepo) only() *domain.SyncJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range r.jobs {
		copied := *job
		return &copied
	}
	return nil
}
