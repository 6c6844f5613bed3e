package syncing

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
	"github.com/vfg2006/metrics-sync-api/pkg/utils"
)

// Reconciler transforma as linhas do Meta em uma série diária sem lacunas:
// um registro por entidade e por dia da janela, zerado quando não há dados.
type Reconciler struct {
	now func() time.Time
}

func NewReconciler(now func() time.Time) *Reconciler {
	if now == nil {
		now = time.Now
	}
	return &Reconciler{now: now}
}

type rowKey struct {
	entityID string
	date     string
}

// Reconcile não depende da ordem das linhas. Para uma mesma entidade e data
// vale a primeira linha recebida.
func (r *Reconciler) Reconcile(entities []domain.Entity, windowDays int, rows []domain.RawMetricRow) []domain.MetricRecord {
	dates := domain.WindowDates(r.now().UTC(), windowDays)

	index := make(map[rowKey]*domain.RawMetricRow, len(rows))
	for i := range rows {
		key := rowKey{entityID: rows[i].EntityID, date: rows[i].DateStart}
		if _, exists := index[key]; !exists {
			index[key] = &rows[i]
		}
	}

	seen := make(map[string]struct{}, len(entities))
	records := make([]domain.MetricRecord, 0, len(entities)*len(dates))

	for _, entity := range entities {
		if _, dup := seen[entity.ID]; dup {
			continue
		}
		seen[entity.ID] = struct{}{}

		for _, date := range dates {
			row, ok := index[rowKey{entityID: entity.ID, date: date}]
			if !ok {
				records = append(records, domain.EmptyMetricRecord(entity.ID, date))
				continue
			}
			records = append(records, toMetricRecord(entity.ID, date, row))
		}
	}

	return records
}

func toMetricRecord(entityID, date string, row *domain.RawMetricRow) domain.MetricRecord {
	p := &fieldParser{entityID: entityID, date: date}

	record := domain.MetricRecord{
		EntityID:      entityID,
		Date:          date,
		Impressions:   p.parseInt(row.Impressions, "impressions"),
		Clicks:        p.parseInt(row.Clicks, "clicks"),
		Reach:         p.parseInt(row.Reach, "reach"),
		Frequency:     p.parseFloat(row.Frequency, "frequency"),
		Spend:         p.parseDecimal(row.Spend, "spend"),
		CPC:           p.parseDecimal(row.CPC, "cpc"),
		CPM:           p.parseDecimal(row.CPM, "cpm"),
		CTR:           p.parseFloat(row.CTR, "ctr"),
		UniqueClicks:  p.parseInt(row.UniqueClicks, "unique_clicks"),
		UniqueCTR:     p.parseFloat(row.UniqueCTR, "unique_ctr"),
		CostPerResult: p.parseDecimal(row.CostPerResult, "cost_per_result"),
	}

	record.Conversions = p.conversions(row)
	record.ConversionRate = domain.ConversionRate(record.Conversions, record.Clicks)

	return record
}

// fieldParser converte os textos do Meta registrando, sem interromper, os valores inválidos
type fieldParser struct {
	entityID string
	date     string
}

func (p *fieldParser) parseInt(value, field string) int64 {
	n, err := utils.ParseInt(value)
	if err != nil {
		p.warn(field, value)
		return 0
	}
	return n
}

func (p *fieldParser) parseFloat(value, field string) float64 {
	f, err := utils.ParseFloat(value)
	if err != nil {
		p.warn(field, value)
		return 0
	}
	return f
}

func (p *fieldParser) parseDecimal(value, field string) string {
	d, err := utils.NormalizeDecimal(value)
	if err != nil {
		p.warn(field, value)
	}
	return d
}

// conversions soma as ações offsite_conversion. Sem nenhuma dessas ações o total é zero.
func (p *fieldParser) conversions(row *domain.RawMetricRow) int64 {
	var total int64
	for _, action := range row.Actions {
		if action.ActionType != domain.OffsiteConversionAction {
			continue
		}
		total += p.parseInt(action.Value, "actions.offsite_conversion")
	}
	return total
}

func (p *fieldParser) warn(field, value string) {
	logrus.WithFields(logrus.Fields{
		"entity_id": p.entityID,
		"date":      p.date,
		"field":     field,
		"value":     value,
	}).Warn("reconcile: valor numérico inválido, usando zero")
}
