package metaclient

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/metrics-sync-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks

type Client interface {
	GetInsights(ctx context.Context, req InsightsRequest) ([]metadomain.InsightRow, error)
	GetPermissions(ctx context.Context, accessToken string) ([]metadomain.Permission, error)
}

// InsightsRequest descreve uma chamada de /insights para um lote de entidades
type InsightsRequest struct {
	AdAccountID string
	Level       string
	IDs         []string
	DatePreset  string
	AccessToken string
}

type MetaClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *MetaClient {
	return &MetaClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: cfg.Meta.RequestTimeout,
		},
	}
}
