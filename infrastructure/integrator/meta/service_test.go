package meta

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/metrics-sync-api/internal/config"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
	"github.com/vfg2006/metrics-sync-api/pkg/retry"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Meta: config.Meta{RequiredScopes: []string{"ads_read", "ads_management"}},
		MetricsSync: config.MetricsSync{
			BatchSize:            10,
			MaxConcurrentBatches: 3,
		},
	}
}

func ids(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

func rowsFor(ids []string) []metadomain.InsightRow {
	rows := make([]metadomain.InsightRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, metadomain.InsightRow{AdID: id, DateStart: "2024-03-01", Impressions: "1"})
	}
	return rows
}

func TestMetaIntegrator_FetchInsights_Batching(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	service := New(testConfig(), client)

	var (
		mu    sync.Mutex
		sizes []int
	)

	client.EXPECT().
		GetInsights(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req metaclient.InsightsRequest) ([]metadomain.InsightRow, error) {
			assert.Equal(t, "ad", req.Level)
			assert.Equal(t, "act_1", req.AdAccountID)
			assert.Equal(t, "last_30_days", req.DatePreset)
			mu.Lock()
			sizes = append(sizes, len(req.IDs))
			mu.Unlock()
			return rowsFor(req.IDs), nil
		}).
		Times(3)

	rows, err := service.FetchInsights(context.Background(), domain.InsightsQuery{
		AdAccountID: "act_1",
		Level:       domain.LevelAd,
		EntityIDs:   ids("a", 25),
		AccessToken: "token",
	})

	require.NoError(t, err)
	assert.Len(t, rows, 25)
	assert.ElementsMatch(t, []int{10, 10, 5}, sizes)
	// a ordem dos lotes é preservada no resultado
	assert.Equal(t, "a0", rows[0].EntityID)
	assert.Equal(t, "a24", rows[24].EntityID)
}

func TestMetaIntegrator_FetchInsights_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	service := New(testConfig(), client)

	client.EXPECT().
		GetInsights(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req metaclient.InsightsRequest) ([]metadomain.InsightRow, error) {
			if req.IDs[0] == "a10" {
				return nil, &domain.PermissionError{Code: 200, Message: "denied"}
			}
			return rowsFor(req.IDs), nil
		}).
		Times(3)

	rows, err := service.FetchInsights(context.Background(), domain.InsightsQuery{
		Level:     domain.LevelAd,
		EntityIDs: ids("a", 25),
	})

	require.Error(t, err)
	assert.True(t, domain.IsPermissionError(err))
	assert.Len(t, rows, 15)
}

func TestMetaIntegrator_FetchInsights_LogsEntityLevel(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	service := New(testConfig(), client)

	client.EXPECT().
		GetInsights(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("i/o timeout"))

	_, err := service.FetchInsights(context.Background(), domain.InsightsQuery{
		Level:     domain.LevelAdSet,
		EntityIDs: ids("s", 3),
	})
	require.Error(t, err)

	var warned bool
	for _, entry := range hook.AllEntries() {
		// "level" é reservado pelo logrus e seria renomeado para fields.level
		assert.NotContains(t, entry.Data, "level")
		if entry.Message == "insights: falha ao buscar lote" {
			warned = true
			assert.Equal(t, domain.LevelAdSet, entry.Data["entity_level"])
		}
	}
	assert.True(t, warned)
}

func TestMetaIntegrator_FetchInsights_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	service := New(testConfig(), client)

	rows, err := service.FetchInsights(context.Background(), domain.InsightsQuery{Level: domain.LevelCampaign})

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestMetaIntegrator_FetchInsights_Retry(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		calls     int
		wantError bool
	}{
		{
			name:  "Falha temporária é repetida",
			err:   &domain.TransientFetchError{Code: 17, Message: "rate limited"},
			calls: 2,
		},
		{
			name:      "Erro de permissão não é repetido",
			err:       &domain.PermissionError{Code: 200, Message: "denied"},
			calls:     1,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			policy := retry.New(3, time.Millisecond, 2*time.Millisecond, nil)
			service := New(testConfig(), client, WithRetryPolicy(policy))

			attempts := 0
			client.EXPECT().
				GetInsights(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req metaclient.InsightsRequest) ([]metadomain.InsightRow, error) {
					attempts++
					if attempts == 1 {
						return nil, tt.err
					}
					return []metadomain.InsightRow{{CampaignID: "c1", DateStart: "2024-03-01"}}, nil
				}).
				Times(tt.calls)

			rows, err := service.FetchInsights(context.Background(), domain.InsightsQuery{
				Level:     domain.LevelCampaign,
				EntityIDs: []string{"c1"},
			})

			if tt.wantError {
				require.Error(t, err)
				assert.Empty(t, rows)
				return
			}
			require.NoError(t, err)
			assert.Len(t, rows, 1)
		})
	}
}

func TestMetaIntegrator_CheckPermissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	service := New(testConfig(), client)

	client.EXPECT().
		GetPermissions(gomock.Any(), "token").
		Return([]metadomain.Permission{
			{Permission: "ads_read", Status: "granted"},
			{Permission: "ads_management", Status: "declined"},
		}, nil)

	missing, err := service.CheckPermissions(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, []string{"ads_management"}, missing)

	client.EXPECT().
		GetPermissions(gomock.Any(), "expired").
		Return(nil, errors.New("boom"))

	_, err = service.CheckPermissions(context.Background(), "expired")
	assert.Error(t, err)
}

func TestFactoryRawMetricRows(t *testing.T) {
	rows := []metadomain.InsightRow{
		{
			AdSetID:       "s1",
			DateStart:     "2024-03-01",
			Clicks:        "4",
			CostPerResult: []byte(`[{"indicator":"actions:offsite_conversion","values":[{"value":"2.5"}]}]`),
			Actions:       []metadomain.Action{{ActionType: "offsite_conversion", Value: "3"}},
		},
		{CampaignID: "c1", DateStart: "2024-03-01"},
	}

	result := FactoryRawMetricRows(domain.LevelAdSet, rows)

	require.Len(t, result, 1)
	assert.Equal(t, "s1", result[0].EntityID)
	assert.Equal(t, "2.5", result[0].CostPerResult)
	assert.Equal(t, []domain.Action{{ActionType: "offsite_conversion", Value: "3"}}, result[0].Actions)
}
