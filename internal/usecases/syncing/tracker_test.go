package syncing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
	"github.com/vfg2006/metrics-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/metrics-sync-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func newTracker(t *testing.T, repo syncing.SyncJobRepository) (*syncing.JobTracker, *mocks.MockChangeNotifier) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockChangeNotifier(ctrl)
	notifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return syncing.NewJobTracker(repo, notifier, fixedClock), notifier
}

func TestJobTracker_Lifecycle(t *testing.T) {
	repo := newMemoryJobRepo()
	tracker, _ := newTracker(t, repo)
	ctx := context.Background()

	jobID, err := tracker.Create(ctx, "user-1", "act_1", domain.JobTypeMetrics)
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	job, err := tracker.Get(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusPending, job.Status)
	assert.Equal(t, fixedNow, job.StartedAt)

	require.NoError(t, tracker.Begin(ctx, jobID))

	details := &domain.JobDetails{CampaignsSynced: 3}
	require.NoError(t, tracker.Succeed(ctx, jobID, details))

	job, err = tracker.Get(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, job.Status)
	require.NotNil(t, job.CompletedAt)
	assert.Equal(t, fixedNow, *job.CompletedAt)
	assert.Equal(t, 3, job.Details.CampaignsSynced)
}

func TestJobTracker_BeginOnTerminalJob(t *testing.T) {
	for _, status := range []domain.JobStatus{domain.JobStatusCompleted, domain.JobStatusFailed} {
		t.Run(string(status), func(t *testing.T) {
			repo := newMemoryJobRepo()
			completedAt := fixedNow.Add(-time.Hour)
			repo.put(domain.SyncJob{ID: "job-1", UserID: "user-1", Status: status, CompletedAt: &completedAt})
			tracker, _ := newTracker(t, repo)

			err := tracker.Begin(context.Background(), "job-1")

			require.Error(t, err)
			assert.True(t, errors.Is(err, syncing.ErrInvalidTransition))

			job, err := tracker.Get(context.Background(), "job-1")
			require.NoError(t, err)
			assert.Equal(t, status, job.Status)
			assert.Equal(t, completedAt, *job.CompletedAt)
		})
	}
}

func TestJobTracker_TerminalIsNoOp(t *testing.T) {
	repo := newMemoryJobRepo()
	message := "falha original"
	repo.put(domain.SyncJob{ID: "job-1", UserID: "user-1", Status: domain.JobStatusFailed, ErrorMessage: &message})
	tracker, _ := newTracker(t, repo)
	ctx := context.Background()

	require.NoError(t, tracker.Succeed(ctx, "job-1", &domain.JobDetails{}))
	require.NoError(t, tracker.Fail(ctx, "job-1", "outra falha"))

	job, err := tracker.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, job.Status)
	assert.Equal(t, "falha original", *job.ErrorMessage)
	assert.Nil(t, job.Details)
}

func TestJobTracker_FailFromPending(t *testing.T) {
	repo := newMemoryJobRepo()
	repo.put(domain.SyncJob{ID: "job-1", UserID: "user-1", Status: domain.JobStatusPending})
	tracker, _ := newTracker(t, repo)
	ctx := context.Background()

	require.Error(t, tracker.Succeed(ctx, "job-1", &domain.JobDetails{}))
	require.NoError(t, tracker.Fail(ctx, "job-1", "não iniciou"))

	job, err := tracker.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, job.Status)
	assert.Equal(t, "não iniciou", *job.ErrorMessage)
}

func TestJobTracker_NotFound(t *testing.T) {
	tracker, _ := newTracker(t, newMemoryJobRepo())

	_, err := tracker.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, syncing.ErrJobNotFound))

	err = tracker.Begin(context.Background(), "nope")
	assert.True(t, errors.Is(err, syncing.ErrJobNotFound))
}

func TestJobTracker_PublishesJobChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockChangeNotifier(ctrl)
	tracker := syncing.NewJobTracker(newMemoryJobRepo(), notifier, fixedClock)

	var statuses []domain.JobStatus
	notifier.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event domain.ChangeEvent) error {
			assert.Equal(t, domain.SyncJobsTable, event.Table)
			assert.Equal(t, "user-1", event.UserID)
			statuses = append(statuses, event.Status)
			return nil
		}).
		Times(3)

	ctx := context.Background()
	jobID, err := tracker.Create(ctx, "user-1", "act_1", domain.JobTypeMetrics)
	require.NoError(t, err)
	require.NoError(t, tracker.Begin(ctx, jobID))
	require.NoError(t, tracker.Fail(ctx, jobID, "boom"))

	assert.Equal(t, []domain.JobStatus{domain.JobStatusPending, domain.JobStatusRunning, domain.JobStatusFailed}, statuses)
}

func TestJobTracker_FinishSurvivesFailedReread(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockChangeNotifier(ctrl)
	repo := newMemoryJobRepo()
	tracker := syncing.NewJobTracker(repo, notifier, fixedClock)

	var last domain.ChangeEvent
	notifier.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event domain.ChangeEvent) error {
			last = event
			return nil
		}).
		Times(3)

	ctx := context.Background()
	jobID, err := tracker.Create(ctx, "user-1", "act_1", domain.JobTypeMetrics)
	require.NoError(t, err)
	require.NoError(t, tracker.Begin(ctx, jobID))

	repo.failReadAt = domain.JobStatusCompleted
	require.NoError(t, tracker.Succeed(ctx, jobID, &domain.JobDetails{AdsSynced: 4}))

	assert.Equal(t, jobID, last.JobID)
	assert.Equal(t, "user-1", last.UserID)
	assert.Equal(t, domain.JobStatusCompleted, last.Status)

	repo.failReadAt = ""
	job, err := tracker.Get(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, job.Status)
	assert.Equal(t, 4, job.Details.AdsSynced)
}
