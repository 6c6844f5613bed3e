package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/metrics-sync-api/internal/api/handler/router"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
	"github.com/vfg2006/metrics-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/metrics-sync-api/internal/usecases/syncing/mocks"
	"github.com/vfg2006/metrics-sync-api/pkg/apiErrors"
	"github.com/vfg2006/metrics-sync-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func withUser(r *http.Request, userID string, roleID int) *http.Request {
	claims := &domain.Claims{UserID: userID, UserRoleID: roleID}
	return r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyUser, claims))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSyncMetrics(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(service *mocks.MockMetricsSyncer)
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Sincronização concluída",
			body: `{"ad_account_id":"act_1","entityType":"adset","entityId":"s9","timeRange":"last_7_days"}`,
			setup: func(service *mocks.MockMetricsSyncer) {
				service.EXPECT().
					SyncAllMetrics(gomock.Any(), syncing.SyncRequest{
						UserID:      "user-1",
						AdAccountID: "act_1",
						DatePreset:  domain.PresetLast7Days,
						EntityType:  domain.LevelAdSet,
						EntityID:    "s9",
					}).
					Return("job-1", nil)
				service.EXPECT().
					GetJob(gomock.Any(), "job-1").
					Return(&domain.SyncJob{ID: "job-1", Status: domain.JobStatusCompleted}, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body syncMetricsResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "job-1", body.JobID)
				assert.Equal(t, domain.JobStatusCompleted, body.Status)
			},
		},
		{
			name:       "Corpo inválido",
			body:       `{"ad_account_id":`,
			setup:      func(service *mocks.MockMetricsSyncer) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Tipo de entidade inválido",
			body:       `{"ad_account_id":"act_1","entityType":"account","entityId":"1"}`,
			setup:      func(service *mocks.MockMetricsSyncer) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "Conta sem token armazenado",
			body: `{"ad_account_id":"act_1"}`,
			setup: func(service *mocks.MockMetricsSyncer) {
				service.EXPECT().SyncAllMetrics(gomock.Any(), gomock.Any()).Return("", syncing.ErrMissingAccessToken)
			},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrMissingAccessToken, decodeError(t, rec).Code)
			},
		},
		{
			name: "Conta não conectada",
			body: `{"ad_account_id":"act_9"}`,
			setup: func(service *mocks.MockMetricsSyncer) {
				service.EXPECT().SyncAllMetrics(gomock.Any(), gomock.Any()).Return("", syncing.ErrAccountNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "Falha de orquestração devolve o job",
			body: `{"ad_account_id":"act_1","access_token":"tok"}`,
			setup: func(service *mocks.MockMetricsSyncer) {
				service.EXPECT().
					SyncAllMetrics(gomock.Any(), gomock.Any()).
					Return("job-2", &domain.OrchestrationError{JobID: "job-2", Op: "complete job", Err: errors.New("db down")})
			},
			wantStatus: http.StatusInternalServerError,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := decodeError(t, rec)
				assert.Equal(t, apiErrors.ErrSyncFailed, body.Code)
				assert.Equal(t, map[string]any{"job_id": "job-2"}, body.Details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockMetricsSyncer(ctrl)
			tt.setup(service)

			rt := router.New(router.WithRoutes(MetricsSync(service)...))
			req := withUser(httptest.NewRequest(http.MethodPost, "/v1/metrics/sync", strings.NewReader(tt.body)), "user-1", middleware.RoleClient)
			rec := httptest.NewRecorder()

			rt.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestGetSyncJob(t *testing.T) {
	job := &domain.SyncJob{ID: "job-1", UserID: "user-1", Status: domain.JobStatusRunning}

	tests := []struct {
		name       string
		userID     string
		roleID     int
		getErr     error
		wantStatus int
	}{
		{name: "Dono do job", userID: "user-1", roleID: middleware.RoleClient, wantStatus: http.StatusOK},
		{name: "Outro usuário não enxerga", userID: "user-2", roleID: middleware.RoleClient, wantStatus: http.StatusNotFound},
		{name: "Administrador enxerga todos", userID: "admin", roleID: middleware.RoleAdmin, wantStatus: http.StatusOK},
		{name: "Job inexistente", userID: "user-1", roleID: middleware.RoleClient, getErr: syncing.ErrJobNotFound, wantStatus: http.StatusNotFound},
		{name: "Erro no banco", userID: "user-1", roleID: middleware.RoleClient, getErr: errors.New("timeout"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockMetricsSyncer(ctrl)
			if tt.getErr != nil {
				service.EXPECT().GetJob(gomock.Any(), "job-1").Return(nil, tt.getErr)
			} else {
				service.EXPECT().GetJob(gomock.Any(), "job-1").Return(job, nil)
			}

			rt := router.New(router.WithRoutes(MetricsSync(service)...))
			req := withUser(httptest.NewRequest(http.MethodGet, "/v1/sync-jobs/job-1", nil), tt.userID, tt.roleID)
			rec := httptest.NewRecorder()

			rt.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var body domain.SyncJob
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, domain.JobStatusRunning, body.Status)
			}
		})
	}
}

type fakeCronRunner struct {
	started bool
	calls   int
}

func (f *fakeCronRunner) TriggerManualSync() bool {
	f.calls++
	return f.started
}

func (f *fakeCronRunner) GetStatus() map[string]any {
	return map[string]any{"sync_running": !f.started}
}

func TestCronJobs(t *testing.T) {
	runner := &fakeCronRunner{started: true}
	rt := router.New(router.WithRoutes(CronJobs(runner)...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/v1/cron/metrics/run", nil), "admin", middleware.RoleAdmin))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	runner.started = false
	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/v1/cron/metrics/run", nil), "admin", middleware.RoleAdmin))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/v1/cron/metrics/run", nil), "user-1", middleware.RoleClient))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 2, runner.calls)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil), "sup", middleware.RoleSupervisor))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"metrics"`)
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func TestHealthcheck(t *testing.T) {
	rt := router.New(router.WithRoutes(Healthcheck(map[string]Pinger{"postgres": fakePinger{}})...))
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"postgres":"up"`)

	rt = router.New(router.WithRoutes(Healthcheck(map[string]Pinger{"redis": fakePinger{err: errors.New("refused")}})...))
	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nao-existe", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
