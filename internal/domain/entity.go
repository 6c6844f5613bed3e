package domain

import (
	"fmt"
	"time"
)

// EntityLevel identifica um nível da hierarquia de anúncios
type EntityLevel string

const (
	LevelCampaign EntityLevel = "campaign"
	LevelAdSet    EntityLevel = "adset"
	LevelAd       EntityLevel = "ad"
)

// Levels retorna os níveis na ordem em que devem ser sincronizados
func Levels() []EntityLevel {
	return []EntityLevel{LevelCampaign, LevelAdSet, LevelAd}
}

func ParseEntityLevel(value string) (EntityLevel, error) {
	switch EntityLevel(value) {
	case LevelCampaign, LevelAdSet, LevelAd:
		return EntityLevel(value), nil
	case "ad_set", "adSet":
		return LevelAdSet, nil
	}

	return "", fmt.Errorf("nível de entidade inválido: %q", value)
}

// MetricsTable é a tabela onde as métricas diárias do nível são gravadas
func (l EntityLevel) MetricsTable() string {
	switch l {
	case LevelCampaign:
		return "campaign_metrics"
	case LevelAdSet:
		return "adset_metrics"
	case LevelAd:
		return "ad_metrics"
	}
	return ""
}

// KeyColumn é a coluna que, junto com date, forma a chave única das métricas
func (l EntityLevel) KeyColumn() string {
	switch l {
	case LevelCampaign:
		return "campaign_id"
	case LevelAdSet:
		return "ad_set_id"
	case LevelAd:
		return "ad_id"
	}
	return ""
}

// EntityTable é a tabela do repositório de entidades para o nível
func (l EntityLevel) EntityTable() string {
	switch l {
	case LevelCampaign:
		return "campaigns"
	case LevelAdSet:
		return "ad_sets"
	case LevelAd:
		return "ads"
	}
	return ""
}

// ParentColumn é a coluna da tabela de entidades que aponta para o pai
func (l EntityLevel) ParentColumn() string {
	switch l {
	case LevelCampaign:
		return "ad_account_id"
	case LevelAdSet:
		return "campaign_id"
	case LevelAd:
		return "ad_set_id"
	}
	return ""
}

// IDsParam é o nome do parâmetro de filtro por ids na API de insights do Meta
func (l EntityLevel) IDsParam() string {
	return string(l) + "_ids"
}

// Child retorna o próximo nível da hierarquia
func (l EntityLevel) Child() (EntityLevel, bool) {
	switch l {
	case LevelCampaign:
		return LevelAdSet, true
	case LevelAdSet:
		return LevelAd, true
	}
	return "", false
}

// Entity representa uma campanha, conjunto de anúncios ou anúncio.
// O pipeline só altera LastSyncedAt.
type Entity struct {
	ID           string      `json:"id"`
	ParentID     string      `json:"parent_id"`
	Name         string      `json:"name"`
	Level        EntityLevel `json:"level"`
	LastSyncedAt *time.Time  `json:"last_synced_at,omitempty"`
}

// EntityIDs extrai os ids na ordem recebida
func EntityIDs(entities []Entity) []string {
	ids := make([]string, 0, len(entities))
	for _, e := range entities {
		ids = append(ids, e.ID)
	}
	return ids
}

// ConnectedAccount é uma conta de anúncios com token OAuth armazenado
type ConnectedAccount struct {
	UserID      string `json:"user_id"`
	AdAccountID string `json:"ad_account_id"`
	AccessToken string `json:"-"`
}
