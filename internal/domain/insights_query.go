package domain

// InsightsQuery pede as métricas diárias de um conjunto de entidades do mesmo nível
type InsightsQuery struct {
	AdAccountID string
	Level       EntityLevel
	EntityIDs   []string
	DatePreset  DatePreset
	AccessToken string
}
