package metadomain

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// InsightRow é uma linha de /insights com time_increment=1
type InsightRow struct {
	AccountID     string              `json:"account_id"`
	CampaignID    string              `json:"campaign_id"`
	AdSetID       string              `json:"adset_id"`
	AdID          string              `json:"ad_id"`
	DateStart     string              `json:"date_start"`
	DateStop      string              `json:"date_stop"`
	Impressions   string              `json:"impressions"`
	Clicks        string              `json:"clicks"`
	Reach         string              `json:"reach"`
	Frequency     string              `json:"frequency"`
	CTR           string              `json:"ctr"`
	Spend         string              `json:"spend"`
	CPC           string              `json:"cpc"`
	CPM           string              `json:"cpm"`
	UniqueClicks  string              `json:"unique_clicks"`
	UniqueCTR     string              `json:"unique_ctr"`
	CostPerResult jsoniter.RawMessage `json:"cost_per_result,omitempty"`
	Actions       []Action            `json:"actions"`
}

// EntityID devolve o id da linha de acordo com o nível consultado
func (r *InsightRow) EntityID(level string) string {
	switch level {
	case "campaign":
		return r.CampaignID
	case "adset":
		return r.AdSetID
	case "ad":
		return r.AdID
	}
	return ""
}

type costPerResultIndicator struct {
	Indicator string `json:"indicator"`
	Values    []struct {
		Value string `json:"value"`
	} `json:"values"`
}

// CostPerResultValue aceita tanto o formato texto quanto a lista de indicadores
// que versões recentes do Graph API devolvem.
func (r *InsightRow) CostPerResultValue() string {
	return firstValue(r.CostPerResult)
}

func firstValue(raw jsoniter.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var actions []Action
	if err := json.Unmarshal(raw, &actions); err == nil && len(actions) > 0 && actions[0].Value != "" {
		return actions[0].Value
	}

	var indicators []costPerResultIndicator
	if err := json.Unmarshal(raw, &indicators); err == nil {
		for _, indicator := range indicators {
			if len(indicator.Values) > 0 {
				return indicator.Values[0].Value
			}
		}
	}

	return ""
}

// Permission é um item de /me/permissions
type Permission struct {
	Permission string `json:"permission"`
	Status     string `json:"status"`
}

// Granted indica se o escopo foi concedido pelo usuário
func (p Permission) Granted() bool {
	return p.Status == "granted"
}
