package domain

// OffsiteConversionAction é o action_type somado como conversão
const OffsiteConversionAction = "offsite_conversion"

// Action é um par action_type/value como devolvido pelo Meta
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// RawMetricRow é uma linha diária de insights devolvida pelo Meta, ainda com
// os valores numéricos em texto.
type RawMetricRow struct {
	EntityID      string   `json:"entity_id"`
	DateStart     string   `json:"date_start"`
	DateStop      string   `json:"date_stop"`
	Impressions   string   `json:"impressions"`
	Clicks        string   `json:"clicks"`
	Reach         string   `json:"reach"`
	Frequency     string   `json:"frequency"`
	CTR           string   `json:"ctr"`
	Spend         string   `json:"spend"`
	CPC           string   `json:"cpc"`
	CPM           string   `json:"cpm"`
	UniqueClicks  string   `json:"unique_clicks"`
	UniqueCTR     string   `json:"unique_ctr"`
	CostPerResult string   `json:"cost_per_result"`
	Actions       []Action `json:"actions"`
}

// MetricRecord é a métrica diária persistida para uma entidade.
// Spend, CPC, CPM e CostPerResult são decimais em texto para não perder precisão.
type MetricRecord struct {
	EntityID       string  `json:"entity_id"`
	Date           string  `json:"date"`
	Impressions    int64   `json:"impressions"`
	Clicks         int64   `json:"clicks"`
	Reach          int64   `json:"reach"`
	Frequency      float64 `json:"frequency"`
	Spend          string  `json:"spend"`
	CPC            string  `json:"cpc"`
	CPM            string  `json:"cpm"`
	CTR            float64 `json:"ctr"`
	UniqueClicks   int64   `json:"unique_clicks"`
	UniqueCTR      float64 `json:"unique_ctr"`
	CostPerResult  string  `json:"cost_per_result"`
	Conversions    int64   `json:"conversions"`
	ConversionRate float64 `json:"conversion_rate"`
}

// ZeroDecimal é o valor usado nos campos decimais de registros sem dados
const ZeroDecimal = "0"

// EmptyMetricRecord cria o registro zerado usado para preencher dias sem dados
func EmptyMetricRecord(entityID, date string) MetricRecord {
	return MetricRecord{
		EntityID:      entityID,
		Date:          date,
		Spend:         ZeroDecimal,
		CPC:           ZeroDecimal,
		CPM:           ZeroDecimal,
		CostPerResult: ZeroDecimal,
	}
}

// ConversionRate calcula conversions/clicks, ou 0 quando não houve cliques
func ConversionRate(conversions, clicks int64) float64 {
	if clicks <= 0 {
		return 0
	}
	return float64(conversions) / float64(clicks)
}

// IsEmpty indica se o registro não carrega nenhum valor medido
func (m MetricRecord) IsEmpty() bool {
	return m.Impressions == 0 && m.Clicks == 0 && m.Reach == 0 && m.Conversions == 0 &&
		isZeroDecimal(m.Spend)
}

func isZeroDecimal(v string) bool {
	switch v {
	case "", "0", "0.0", "0.00":
		return true
	}
	return false
}
