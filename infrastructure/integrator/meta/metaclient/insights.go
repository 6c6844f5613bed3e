package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

// InsightFields são os campos pedidos em cada chamada de insights
const InsightFields = "account_id,campaign_id,adset_id,ad_id,date_start,date_stop,impressions,clicks,reach," +
	"frequency,ctr,spend,cpc,cpm,unique_clicks,unique_ctr,cost_per_result,actions,conversions"

// maxPages limita a paginação para não seguir cursores indefinidamente
const maxPages = 50

type ResponseInsights struct {
	Data   []metadomain.InsightRow  `json:"data"`
	Paging *metadomain.Paging       `json:"paging,omitempty"`
	Error  *metadomain.ErrorDetails `json:"error,omitempty"`
}

func (c *MetaClient) GetInsights(ctx context.Context, req InsightsRequest) ([]metadomain.InsightRow, error) {
	idsJSON, err := json.Marshal(req.IDs)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar ids: %w", err)
	}

	params := url.Values{}
	params.Add("access_token", req.AccessToken)
	params.Add("fields", InsightFields)
	params.Add("time_increment", "1")
	params.Add("level", req.Level)
	params.Add("date_preset", req.DatePreset)
	params.Add(req.Level+"_ids", string(idsJSON))

	nextURL := fmt.Sprintf("%s/%s/insights?%s", c.Cfg.Meta.URL, accountPath(req.AdAccountID), params.Encode())

	rows := make([]metadomain.InsightRow, 0)
	for page := 0; nextURL != "" && page < maxPages; page++ {
		response, err := c.getInsightsPage(ctx, nextURL)
		if err != nil {
			return nil, err
		}

		rows = append(rows, response.Data...)

		nextURL = ""
		if response.Paging != nil {
			nextURL = response.Paging.Next
		}
	}

	if nextURL != "" {
		logrus.WithFields(logrus.Fields{
			"entity_level": req.Level,
			"ids":          len(req.IDs),
			"max_pages":    maxPages,
		}).Warn("Paginação de insights interrompida no limite de páginas")
	}

	return rows, nil
}

func (c *MetaClient) getInsightsPage(ctx context.Context, pageURL string) (*ResponseInsights, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &domain.TransientFetchError{Message: "erro ao fazer a requisição", Err: err}
	}
	defer resp.Body.Close()

	body, err := c.HandleResponse(resp)
	if err != nil {
		return nil, err
	}

	var response ResponseInsights
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &domain.TransientFetchError{Message: "erro ao decodificar JSON de insights", Err: err}
	}

	if response.Error != nil {
		return nil, ClassifyError(response.Error)
	}

	return &response, nil
}

func accountPath(adAccountID string) string {
	if strings.HasPrefix(adAccountID, "act_") {
		return adAccountID
	}
	return "act_" + adAccountID
}
