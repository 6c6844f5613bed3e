package meta

import (
	metadomain "github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

// FactoryRawMetricRows converte as linhas do Graph API no formato de domínio,
// descartando as que não trazem o id do nível consultado.
func FactoryRawMetricRows(level domain.EntityLevel, rows []metadomain.InsightRow) []domain.RawMetricRow {
	result := make([]domain.RawMetricRow, 0, len(rows))

	for i := range rows {
		row := &rows[i]

		entityID := row.EntityID(string(level))
		if entityID == "" {
			continue
		}

		actions := make([]domain.Action, 0, len(row.Actions))
		for _, a := range row.Actions {
			actions = append(actions, domain.Action{ActionType: a.ActionType, Value: a.Value})
		}

		result = append(result, domain.RawMetricRow{
			EntityID:      entityID,
			DateStart:     row.DateStart,
			DateStop:      row.DateStop,
			Impressions:   row.Impressions,
			Clicks:        row.Clicks,
			Reach:         row.Reach,
			Frequency:     row.Frequency,
			CTR:           row.CTR,
			Spend:         row.Spend,
			CPC:           row.CPC,
			CPM:           row.CPM,
			UniqueClicks:  row.UniqueClicks,
			UniqueCTR:     row.UniqueCTR,
			CostPerResult: row.CostPerResultValue(),
			Actions:       actions,
		})
	}

	return result
}
