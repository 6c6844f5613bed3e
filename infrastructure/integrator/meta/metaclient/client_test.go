package metaclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/metrics-sync-api/internal/config"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

func newTestClient(serverURL string) *MetaClient {
	cfg := &config.Config{
		Meta: config.Meta{URL: serverURL, RequestTimeout: 5 * time.Second},
	}
	return NewClient(cfg)
}

func TestMetaClient_GetInsights(t *testing.T) {
	t.Run("Segue a paginação e envia os filtros do lote", func(t *testing.T) {
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")

			if r.URL.Path == "/page2" {
				_, _ = w.Write([]byte(`{"data":[{"campaign_id":"c2","date_start":"2024-03-01","impressions":"7"}]}`))
				return
			}

			assert.Equal(t, "/act_123/insights", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "token", q.Get("access_token"))
			assert.Equal(t, "campaign", q.Get("level"))
			assert.Equal(t, "last_7_days", q.Get("date_preset"))
			assert.Equal(t, "1", q.Get("time_increment"))
			assert.Equal(t, `["c1","c2"]`, q.Get("campaign_ids"))

			_, _ = w.Write([]byte(`{
				"data":[
					{"campaign_id":"c1","date_start":"2024-03-01","impressions":"10","cost_per_result":"1.50"},
					{"campaign_id":"c1","date_start":"2024-03-02","impressions":"12"}
				],
				"paging":{"cursors":{"after":"abc"},"next":"` + server.URL + `/page2"}
			}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		rows, err := client.GetInsights(context.Background(), InsightsRequest{
			AdAccountID: "123",
			Level:       "campaign",
			IDs:         []string{"c1", "c2"},
			DatePreset:  "last_7_days",
			AccessToken: "token",
		})

		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "c1", rows[0].CampaignID)
		assert.Equal(t, "1.50", rows[0].CostPerResultValue())
		assert.Equal(t, "c2", rows[2].EntityID("campaign"))
	})

	t.Run("Aceita id de conta já prefixado", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/act_999/insights", r.URL.Path)
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		rows, err := newTestClient(server.URL).GetInsights(context.Background(), InsightsRequest{
			AdAccountID: "act_999",
			Level:       "ad",
			IDs:         []string{"a1"},
		})

		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestMetaClient_GetInsights_Errors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantPermError bool
		wantTransient bool
	}{
		{
			name:          "Código 200 é erro de permissão",
			status:        http.StatusForbidden,
			body:          `{"error":{"message":"(#200) Requires ads_read permission","type":"OAuthException","code":200}}`,
			wantPermError: true,
		},
		{
			name:          "Código 10 é erro de permissão",
			status:        http.StatusBadRequest,
			body:          `{"error":{"message":"Application does not have capability","code":10}}`,
			wantPermError: true,
		},
		{
			name:          "Limite de chamadas é falha temporária",
			status:        http.StatusBadRequest,
			body:          `{"error":{"message":"User request limit reached","code":17}}`,
			wantTransient: true,
		},
		{
			name:          "Resposta sem envelope de erro é falha temporária",
			status:        http.StatusBadGateway,
			body:          `<html>bad gateway</html>`,
			wantTransient: true,
		},
		{
			name:          "Erro dentro de resposta 200 também é classificado",
			status:        http.StatusOK,
			body:          `{"error":{"message":"Missing permission","code":1}}`,
			wantPermError: true,
		},
		{
			name:          "JSON inválido é falha temporária",
			status:        http.StatusOK,
			body:          `{"data":[`,
			wantTransient: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			rows, err := newTestClient(server.URL).GetInsights(context.Background(), InsightsRequest{
				AdAccountID: "1",
				Level:       "campaign",
				IDs:         []string{"c1"},
			})

			require.Error(t, err)
			assert.Nil(t, rows)
			assert.Equal(t, tt.wantPermError, domain.IsPermissionError(err))
			assert.Equal(t, tt.wantTransient, domain.IsTransientFetchError(err))
		})
	}
}

func TestMetaClient_GetInsights_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	_, err := newTestClient(serverURL).GetInsights(context.Background(), InsightsRequest{
		AdAccountID: "1",
		Level:       "campaign",
		IDs:         []string{"c1"},
	})

	require.Error(t, err)
	assert.True(t, domain.IsTransientFetchError(err))
}

func TestMetaClient_GetPermissions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/permissions", r.URL.Path)
		assert.Equal(t, "token", r.URL.Query().Get("access_token"))
		_, _ = w.Write([]byte(`{"data":[
			{"permission":"ads_read","status":"granted"},
			{"permission":"ads_management","status":"declined"}
		]}`))
	}))
	defer server.Close()

	permissions, err := newTestClient(server.URL).GetPermissions(context.Background(), "token")

	require.NoError(t, err)
	require.Len(t, permissions, 2)
	assert.True(t, permissions[0].Granted())
	assert.False(t, permissions[1].Granted())
}
