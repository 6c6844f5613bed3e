package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

func TestBuildUpsertQuery(t *testing.T) {
	records := []domain.MetricRecord{
		domain.EmptyMetricRecord("a1", "2024-03-01"),
		{EntityID: "a1", Date: "2024-03-02", Clicks: 3, Spend: "1.25", CostPerResult: ""},
	}

	tests := []struct {
		level     domain.EntityLevel
		table     string
		conflict  string
		keyColumn string
	}{
		{domain.LevelCampaign, "campaign_metrics", "ON CONFLICT (campaign_id, date)", "campaign_id"},
		{domain.LevelAdSet, "adset_metrics", "ON CONFLICT (ad_set_id, date)", "ad_set_id"},
		{domain.LevelAd, "ad_metrics", "ON CONFLICT (ad_id, date)", "ad_id"},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			query, args, err := BuildUpsertQuery(tt.level, records)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(query, "INSERT INTO "+tt.table+" ("+tt.keyColumn+","))
			assert.Contains(t, query, tt.conflict)
			assert.Contains(t, query, "DO UPDATE SET impressions = EXCLUDED.impressions")
			assert.Contains(t, query, "conversion_rate = EXCLUDED.conversion_rate, updated_at = NOW()")
			assert.NotContains(t, query, "date = EXCLUDED.date")
			assert.Len(t, args, 2*(len(metricColumns)+1))
			// cost_per_result vazio vira zero
			assert.Equal(t, domain.ZeroDecimal, args[len(metricColumns)+1+12])
		})
	}

	_, _, err := BuildUpsertQuery(domain.EntityLevel("account"), records)
	assert.Error(t, err)
}

func TestBuildListEntitiesQuery(t *testing.T) {
	query, args, err := buildListEntitiesQuery(domain.LevelAd, []string{"s1", "s2"})
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, ad_set_id, name, last_synced_at FROM ads WHERE ad_set_id = ANY($1) ORDER BY id", query)
	assert.Len(t, args, 1)
}

func TestBuildTransitionQuery(t *testing.T) {
	completedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	message := "boom"

	t.Run("Begin só altera o status", func(t *testing.T) {
		query, args, err := buildTransitionQuery("job-1", domain.JobTransition{
			From: domain.JobStatusPending,
			To:   domain.JobStatusRunning,
		})
		require.NoError(t, err)

		assert.Equal(t, "UPDATE sync_jobs SET status = $1 WHERE id = $2 AND status = $3", query)
		assert.Equal(t, []interface{}{"running", "job-1", "pending"}, args)
	})

	t.Run("Fail grava mensagem e data de conclusão", func(t *testing.T) {
		query, args, err := buildTransitionQuery("job-1", domain.JobTransition{
			From:         domain.JobStatusRunning,
			To:           domain.JobStatusFailed,
			CompletedAt:  &completedAt,
			ErrorMessage: &message,
		})
		require.NoError(t, err)

		assert.Equal(t, "UPDATE sync_jobs SET status = $1, completed_at = $2, error_message = $3 WHERE id = $4 AND status = $5", query)
		assert.Equal(t, []interface{}{"failed", completedAt, "boom", "job-1", "running"}, args)
	})

	t.Run("Succeed serializa os detalhes", func(t *testing.T) {
		_, args, err := buildTransitionQuery("job-1", domain.JobTransition{
			From:        domain.JobStatusRunning,
			To:          domain.JobStatusCompleted,
			CompletedAt: &completedAt,
			Details:     &domain.JobDetails{CampaignsSynced: 2, PermissionIssues: true},
		})
		require.NoError(t, err)

		require.Len(t, args, 5)
		assert.JSONEq(t, `{"campaigns_synced":2,"adsets_synced":0,"ads_synced":0,"permission_issues":true}`, args[2].(string))
	})
}
